package visualization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTable(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []float64{1, 2, 3}))
	require.NoError(t, tbl.AddLabels("kind", []string{"x", "y", "x"}))

	assert.Equal(t, 3, tbl.Rows())
	assert.Equal(t, []string{"a", "kind"}, tbl.Columns())
	assert.True(t, tbl.HasColumn("kind"))
	assert.True(t, tbl.IsNumeric("a"))
	assert.False(t, tbl.IsNumeric("kind"))

	t.Run("duplicate", func(t *testing.T) {
		require.ErrorIs(t, tbl.AddColumn("a", []float64{1, 2, 3}), ErrDuplicateColumn)
	})
	t.Run("row mismatch", func(t *testing.T) {
		require.ErrorIs(t, tbl.AddColumn("b", []float64{1}), ErrRowMismatch)
	})
	t.Run("missing", func(t *testing.T) {
		_, err := tbl.Column("nope")
		require.ErrorIs(t, err, ErrColumnNotFound)
		_, err = tbl.Labels("nope")
		require.ErrorIs(t, err, ErrColumnNotFound)
	})
	t.Run("label column is not numeric", func(t *testing.T) {
		_, err := tbl.Column("kind")
		require.ErrorIs(t, err, ErrNotNumeric)
	})
	t.Run("copies", func(t *testing.T) {
		src := []float64{9, 9, 9}
		require.NoError(t, tbl.AddColumn("c", src))
		src[0] = 0

		col, err := tbl.Column("c")
		require.NoError(t, err)
		assert.Equal(t, []float64{9, 9, 9}, col)

		col[1] = -1
		again, err := tbl.Column("c")
		require.NoError(t, err)
		assert.Equal(t, []float64{9, 9, 9}, again)
	})
}

func TestTableFromDense(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	tbl, err := TableFromDense(m, []string{"p", "q"})
	require.NoError(t, err)

	q, err := tbl.Column("q")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, q)

	back, err := tbl.Matrix([]string{"p", "q"})
	require.NoError(t, err)
	assert.True(t, mat.Equal(m, back))

	_, err = TableFromDense(m, []string{"p"})
	require.Error(t, err)
}

func TestTableMatrix_Errors(t *testing.T) {
	_, err := NewTable().Matrix([]string{"a"})
	require.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewTable().Matrix(nil)
	require.ErrorIs(t, err, ErrNoDimensions)
}
