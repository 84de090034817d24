package adapters

import (
	"fmt"
	"strings"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/views"
)

// StatusBar summarizes the active filters, the view's counts and spatial insights
type StatusBar struct {
	state        StateSource
	styles       *views.Styles
	showInsights bool

	stats    selection.ViewStats
	insights dataset.Insights
}

// NewStatusBar creates a status bar
func NewStatusBar(state StateSource, styles *views.Styles, showInsights bool) *StatusBar {
	return &StatusBar{state: state, styles: styles, showInsights: showInsights}
}

// Update recomputes counts and insights for view
func (s *StatusBar) Update(view selection.DerivedView) {
	s.stats = view.Stats()
	s.insights = dataset.ComputeInsights(view.Entities)
}

// Stats returns the counts from the last view
func (s *StatusBar) Stats() selection.ViewStats {
	return s.stats
}

// Render draws the filter line and, when enabled, the insights line
func (s *StatusBar) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d entities · %d relations · weight ≥ %g",
		s.stats.Entities, s.stats.Relations, s.stats.Threshold)

	if filters := DescribeFilters(s.state.State()); filters != "" {
		b.WriteString("  ")
		b.WriteString(s.styles.Filter.Render("[" + filters + "]"))
	}

	if s.showInsights && s.insights.Total > 0 {
		fmt.Fprintf(&b, "\ncenter %d%% · edge %d%% · small %d%% medium %d%% large %d%%",
			s.insights.CenterRatio, s.insights.EdgeRatio,
			s.insights.ClassRatio[domain.ScaleSmall],
			s.insights.ClassRatio[domain.ScaleMedium],
			s.insights.ClassRatio[domain.ScaleLarge])
		if s.insights.SmallBiased != "" {
			fmt.Fprintf(&b, " · most small: %s", s.insights.SmallBiased)
		}
	}
	return s.styles.Status.Render(b.String())
}

// DescribeFilters renders the active entity-level filters and lock as a compact label
func DescribeFilters(st selection.State) string {
	var parts []string
	if st.Category != "" {
		parts = append(parts, "category:"+st.Category)
	}
	if st.Region != nil {
		parts = append(parts, fmt.Sprintf("region:%.2f,%.2f-%.2f,%.2f",
			st.Region.X0, st.Region.Y0, st.Region.X1, st.Region.Y1))
	}
	if st.Scale != nil {
		parts = append(parts, fmt.Sprintf("scale:%.3f-%.3f", st.Scale.Min, st.Scale.Max))
	}
	if st.Locked != "" {
		parts = append(parts, "lock:"+st.Locked)
	}
	if len(st.Excluded) > 0 {
		parts = append(parts, fmt.Sprintf("excluded:%d", len(st.Excluded)))
	}
	return strings.Join(parts, " ")
}
