package visualization

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Table is a column-addressable result table. Numeric columns hold float64
// values; label columns hold categorical strings. All columns share one row
// count, fixed by the first column added. Values are copied on the way in and
// on the way out, so builders never alias caller memory.
type Table struct {
	order   []string
	numeric map[string][]float64
	labels  map[string][]string
	rows    int
}

func NewTable() *Table {
	return &Table{
		numeric: make(map[string][]float64),
		labels:  make(map[string][]string),
	}
}

// TableFromDense builds a table with one numeric column per matrix column.
func TableFromDense(m mat.Matrix, names []string) (*Table, error) {
	rows, cols := m.Dims()
	if len(names) != cols {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrRowMismatch, len(names), cols)
	}

	t := NewTable()
	for colIdx, name := range names {
		values := make([]float64, rows)
		mat.Col(values, colIdx, m)
		if err := t.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) AddColumn(name string, values []float64) error {
	if err := t.checkNew(name, len(values)); err != nil {
		return err
	}
	t.numeric[name] = slices.Clone(values)
	t.order = append(t.order, name)
	return nil
}

func (t *Table) AddLabels(name string, values []string) error {
	if err := t.checkNew(name, len(values)); err != nil {
		return err
	}
	t.labels[name] = slices.Clone(values)
	t.order = append(t.order, name)
	return nil
}

func (t *Table) checkNew(name string, n int) error {
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(t.order) > 0 && n != t.rows {
		return fmt.Errorf("%w: column %q has %d rows, table has %d", ErrRowMismatch, name, n, t.rows)
	}
	t.rows = n
	return nil
}

func (t *Table) HasColumn(name string) bool {
	_, num := t.numeric[name]
	_, lab := t.labels[name]
	return num || lab
}

// IsNumeric reports whether name is a numeric column.
func (t *Table) IsNumeric(name string) bool {
	_, ok := t.numeric[name]
	return ok
}

// Column returns a copy of a numeric column.
func (t *Table) Column(name string) ([]float64, error) {
	if values, ok := t.numeric[name]; ok {
		return slices.Clone(values), nil
	}
	if _, ok := t.labels[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, name)
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Labels returns a copy of a label column.
func (t *Table) Labels(name string) ([]string, error) {
	if values, ok := t.labels[name]; ok {
		return slices.Clone(values), nil
	}
	return nil, fmt.Errorf("%w: label column %q", ErrColumnNotFound, name)
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	return slices.Clone(t.order)
}

func (t *Table) Rows() int {
	return t.rows
}

// Matrix stacks the named numeric columns into a rows x len(names) matrix.
func (t *Table) Matrix(names []string) (*mat.Dense, error) {
	if len(names) == 0 {
		return nil, ErrNoDimensions
	}
	if t.rows == 0 {
		return nil, ErrEmptyTable
	}

	m := mat.NewDense(t.rows, len(names), nil)
	for colIdx, name := range names {
		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		m.SetCol(colIdx, values)
	}
	return m, nil
}

// columns fetches several numeric columns, failing on the first missing one.
func (t *Table) columns(names []string) ([][]float64, error) {
	out := make([][]float64, len(names))
	for i, name := range names {
		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		out[i] = values
	}
	return out, nil
}
