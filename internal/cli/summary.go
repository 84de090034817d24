package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/adapters"
)

func (a *app) summaryCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print counts, categories, insights and the locked entity's neighbours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			engine := a.newEngine(ds)
			if err := flags.apply(cmd, engine); err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), ds, engine, a.cfg.UI.NeighborLimit)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func writeSummary(w io.Writer, ds *dataset.Dataset, engine *selection.Engine, neighborLimit int) {
	view := engine.DerivedView()
	state := engine.State()
	stats := view.Stats()

	brand.Fprint(w, "cocoverse")
	fmt.Fprintf(w, "  %d/%d entities · %d/%d relations · weight ≥ %g\n",
		stats.Entities, ds.Len(), stats.Relations, len(ds.Relations()), stats.Threshold)
	if filters := adapters.DescribeFilters(state); filters != "" {
		warn.Fprintf(w, "  filters: %s\n", filters)
	}

	visiblePerCategory := make(map[string]int)
	for _, e := range view.Entities {
		visiblePerCategory[e.Category]++
	}
	section(w, "Categories")
	rows := make([][]string, 0, len(ds.Categories()))
	for _, c := range ds.Categories() {
		rows = append(rows, []string{
			c.Name,
			strconv.Itoa(visiblePerCategory[c.Name]) + "/" + strconv.Itoa(c.Entities),
			strconv.Itoa(c.Occurrences),
			fmt.Sprintf("%.3f", c.MeanScale),
			scaleMix(c.ScaleDistribution),
		})
	}
	table(w, []string{"CATEGORY", "VISIBLE", "OCCURRENCES", "MEAN SCALE", "S/M/L"}, rows)

	ins := dataset.ComputeInsights(view.Entities)
	section(w, "Insights")
	if ins.Total == 0 {
		subtle.Fprintln(w, "  no visible entities")
	} else {
		fmt.Fprintf(w, "  center %d%% · edge %d%%\n", ins.CenterRatio, ins.EdgeRatio)
		fmt.Fprintf(w, "  small %d%% · medium %d%% · large %d%%\n",
			ins.ClassRatio[domain.ScaleSmall], ins.ClassRatio[domain.ScaleMedium], ins.ClassRatio[domain.ScaleLarge])
		if ins.SmallBiased != "" {
			fmt.Fprintf(w, "  most small-biased: %s\n", info.Sprint(ins.SmallBiased))
		}
	}

	if state.Locked == "" {
		return
	}
	locked, _ := ds.Entity(state.Locked)
	section(w, "Locked")
	fmt.Fprintf(w, "  %s (%s) %s\n", good.Sprint(locked.Name), locked.Category, subtle.Sprint(view.HighlightOf(locked.ID)))

	neighbors := view.NeighborsOf(locked.ID)
	if len(neighbors) == 0 {
		subtle.Fprintln(w, "  no visible neighbours")
		return
	}
	if neighborLimit > 0 && len(neighbors) > neighborLimit {
		neighbors = neighbors[:neighborLimit]
	}
	rows = rows[:0]
	for _, n := range neighbors {
		rows = append(rows, []string{
			n.Entity.Name,
			strconv.FormatFloat(n.Weight, 'g', -1, 64),
			fmt.Sprintf("%.2f", n.Conditional),
		})
	}
	table(w, []string{"NEIGHBOUR", "WEIGHT", "P(N|LOCKED)"}, rows)
}

// scaleMix formats a scale distribution as small/medium/large counts
func scaleMix(dist map[domain.ScaleClass]int) string {
	parts := make([]string, len(domain.ScaleClasses))
	for i, c := range domain.ScaleClasses {
		parts[i] = strconv.Itoa(dist[c])
	}
	return strings.Join(parts, "/")
}
