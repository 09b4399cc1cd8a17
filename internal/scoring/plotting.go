package scoring

import (
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const maxBarWidth = 40

// PlotScoresTerminal prints the top candidates by combined score, best first,
// with their row utility and novelty next to a bar scaled to the best score.
// limit <= 0 prints every candidate.
func PlotScoresTerminal(w io.Writer, scores AcquisitionScores, title string, limit int) {
	if len(scores.Combined) == 0 {
		fmt.Fprintf(w, "\n%s: no candidates\n", title)
		return
	}

	ranking := scores.Ranking()
	if limit > 0 && limit < len(ranking) {
		ranking = ranking[:limit]
	}
	best := floats.Max(scores.Combined)

	fmt.Fprintf(w, "\n%s (%d of %d candidates):\n", title, len(ranking), len(scores.Combined))
	fmt.Fprintln(w, "Rank | Candidate | Utility    | Novelty  | Combined")
	fmt.Fprintln(w, "-----|-----------|------------|----------|"+strings.Repeat("-", maxBarWidth+10))

	for rank, idx := range ranking {
		barWidth := maxBarWidth
		if best > 0 {
			barWidth = int(scores.Combined[idx] / best * maxBarWidth)
		}
		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%4d | %9d | %10.4f | %8.4f | %s %.4f\n",
			rank+1, idx, valueAt(scores.RowUtility, idx), valueAt(scores.Novelty, idx), bar, scores.Combined[idx])
	}
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
