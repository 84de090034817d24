package cli

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"cocoverse/internal/dataset"
	"cocoverse/internal/selection"
)

const barWidth = 30

func (a *app) matrixCmd() *cobra.Command {
	var (
		flags filterFlags
		order string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print visible entity frequencies and the P(A|B) co-occurrence matrix",
		Long: "Prints a log-scaled frequency bar for every visible entity, then the\n" +
			"conditional probability P(row | column) over visible relations.\n" +
			"Rows and columns are ordered by asymmetry (asym) or by frequency (count).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mo := dataset.MatrixOrder(order)
			if mo != dataset.OrderAsymmetry && mo != dataset.OrderFrequency {
				return fmt.Errorf("--order must be %q or %q, got %q", dataset.OrderAsymmetry, dataset.OrderFrequency, order)
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}

			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			engine := a.newEngine(ds)
			if err := flags.apply(cmd, engine); err != nil {
				return err
			}
			writeMatrix(cmd.OutOrStdout(), engine.DerivedView(), mo, limit)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&order, "order", string(dataset.OrderAsymmetry), "Matrix order: asym or count")
	cmd.Flags().IntVar(&limit, "limit", 12, "Show at most this many rows and columns")
	return cmd
}

func writeMatrix(w io.Writer, view selection.DerivedView, order dataset.MatrixOrder, limit int) {
	if len(view.Entities) == 0 {
		subtle.Fprintln(w, "no visible entities")
		return
	}

	section(w, "Frequency")
	byCount := append(view.Entities[:0:0], view.Entities...)
	sort.SliceStable(byCount, func(i, j int) bool { return byCount[i].Count > byCount[j].Count })
	top := math.Log1p(float64(byCount[0].Count))
	nameWidth := 0
	for _, e := range byCount {
		nameWidth = max(nameWidth, len([]rune(e.Name)))
	}
	for _, e := range byCount {
		n := 0
		if top > 0 {
			n = int(math.Round(math.Log1p(float64(e.Count)) / top * barWidth))
		}
		fmt.Fprintf(w, "  %s %s %d\n", pad(e.Name, nameWidth), info.Sprint(strings.Repeat("█", n)), e.Count)
	}
	subtle.Fprintln(w, "  log scale")

	m := dataset.ConditionalMatrix(view.Entities, view.Relations, order)
	n := min(limit, len(m.Entities))

	section(w, "P(A|B)")
	headers := []string{"A \\ B"}
	for _, e := range m.Entities[:n] {
		headers = append(headers, abbreviate(e.Name, 6))
	}
	rows := make([][]string, 0, n)
	for i, e := range m.Entities[:n] {
		row := []string{e.Name}
		for j := 0; j < n; j++ {
			row = append(row, formatProb(i, j, m.P[i][j]))
		}
		rows = append(rows, row)
	}
	table(w, headers, rows)
	if n < len(m.Entities) {
		subtle.Fprintf(w, "  … %d more\n", len(m.Entities)-n)
	}
	fmt.Fprintf(w, "  max %.0f%% · ordered by %s\n", m.Max()*100, orderName(order))
}

func formatProb(i, j int, p float64) string {
	switch {
	case i == j:
		return "-"
	case p == 0:
		return "·"
	default:
		return fmt.Sprintf("%.0f%%", p*100)
	}
}

func abbreviate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func orderName(o dataset.MatrixOrder) string {
	if o == dataset.OrderFrequency {
		return "frequency"
	}
	return "asymmetry"
}
