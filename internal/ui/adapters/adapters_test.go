package adapters

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/views"
)

func fixture(t *testing.T) *selection.Engine {
	t.Helper()
	ds, err := dataset.New(
		[]domain.Entity{
			{ID: "p", Name: "person", Category: "human", X: 0.1, Y: 0.1, Scale: 0.5, Count: 10},
			{ID: "d", Name: "dog", Category: "animal", X: 0.95, Y: 0.95, Scale: 0.2, Count: 4},
			{ID: "c", Name: "cat", Category: "animal", X: 0.8, Y: 0.2, Scale: 0.1, Count: 2},
			{ID: "k", Name: "kite", Category: "sports", X: 0.5, Y: 0.5, Scale: 0.05, Count: 1},
		},
		[]domain.Relation{
			{A: "p", B: "d", Weight: 5},
			{A: "p", B: "c", Weight: 2},
			{A: "p", B: "k", Weight: 1},
		},
	)
	require.NoError(t, err)
	return selection.New(ds)
}

func TestEntityListHidesFilteredRows(t *testing.T) {
	e := fixture(t)
	list := NewEntityList(e.Dataset(), views.NewStyles(), false)
	e.Attach(list)

	e.SetCategoryFilter("animal")
	assert.Equal(t, 2, list.Len())

	out := list.Render(80, 10)
	assert.Contains(t, out, "dog")
	assert.NotContains(t, out, "person")
}

func TestEntityListShowsDimmedRows(t *testing.T) {
	e := fixture(t)
	list := NewEntityList(e.Dataset(), views.NewStyles(), true)
	e.Attach(list)

	e.SetCategoryFilter("animal")
	require.NoError(t, e.ToggleExclude("k"))

	assert.Equal(t, 3, list.Len(), "dimmed rows stay, excluded rows go")
	out := list.Render(80, 10)
	assert.Contains(t, out, "person")
	assert.NotContains(t, out, "kite")
}

func TestEntityListCursorFollowsEntity(t *testing.T) {
	e := fixture(t)
	list := NewEntityList(e.Dataset(), views.NewStyles(), false)
	e.Attach(list)
	e.ResetAll()

	list.Move(2)
	cur, ok := list.Current()
	require.True(t, ok)
	assert.Equal(t, "c", cur.ID)

	// person disappears; the cursor stays on cat
	e.SetCategoryFilter("animal")
	cur, _ = list.Current()
	assert.Equal(t, "c", cur.ID)

	list.Move(-10)
	cur, _ = list.Current()
	assert.Equal(t, "d", cur.ID)
	list.Move(10)
	cur, _ = list.Current()
	assert.Equal(t, "c", cur.ID)

	assert.True(t, list.Jump("d"))
	assert.False(t, list.Jump("p"))
}

func TestEntityListEmptyAndScrolling(t *testing.T) {
	e := fixture(t)
	list := NewEntityList(e.Dataset(), views.NewStyles(), false)
	e.Attach(list)

	e.SetCategoryFilter("vehicle")
	_, ok := list.Current()
	assert.False(t, ok)
	assert.Contains(t, list.Render(80, 5), "No entities match")

	e.SetCategoryFilter("")
	list.Move(3)
	out := list.Render(80, 2)
	assert.Contains(t, out, "kite")
	assert.Contains(t, out, "3-4 of 4")
}

func TestDensityChart(t *testing.T) {
	e := fixture(t)
	chart := NewDensityChart(e, views.NewStyles(), 2)
	e.Attach(chart)
	e.ResetAll()

	assert.Equal(t, [][]int{{1, 1}, {0, 2}}, chart.Counts())
	assert.Equal(t, domain.Rect{X0: 0.5, Y0: 0, X1: 1, Y1: 0.5}, chart.CellRect(0, 1))

	out := chart.Render()
	assert.Len(t, strings.Split(out, "\n"), 2)

	require.NoError(t, e.LockEntity("p"))
	assert.Contains(t, chart.Render(), "[]")

	require.NoError(t, e.SetSpatialRegion(&domain.Rect{X0: 0.6, Y0: 0.6, X1: 1, Y1: 1}))
	assert.Equal(t, [][]int{{0, 0}, {0, 1}}, chart.Counts())
	assert.NotContains(t, chart.Render(), "[]", "locked entity is outside the region")
}

func TestInfoPanel(t *testing.T) {
	e := fixture(t)
	panel := NewInfoPanel(e.Dataset(), views.NewStyles(), 2)
	e.Attach(panel)

	require.NoError(t, e.LockEntity("p"))
	neighbors := panel.Neighbors()
	require.Len(t, neighbors, 2)
	assert.Equal(t, "d", neighbors[0].Entity.ID)
	assert.InDelta(t, 0.5, neighbors[0].Conditional, 1e-9)
	assert.Equal(t, "c", neighbors[1].Entity.ID)

	out := panel.Render()
	assert.Contains(t, out, "person")
	assert.Contains(t, out, "dog")
	assert.Contains(t, out, "1 more")

	require.NoError(t, e.SetWeightThreshold(10))
	assert.Contains(t, panel.Render(), "No visible co-occurrences")

	e.SetCategoryFilter("animal")
	assert.Contains(t, panel.Render(), "Hidden by the current filters")

	require.NoError(t, e.LockEntity(""))
	assert.Contains(t, panel.Render(), "Nothing locked")
}

func TestStatusBar(t *testing.T) {
	e := fixture(t)
	bar := NewStatusBar(e, views.NewStyles(), true)
	e.Attach(bar)

	e.SetCategoryFilter("animal")
	assert.Equal(t, selection.ViewStats{Entities: 2, Relations: 0, Threshold: 1}, bar.Stats())

	out := bar.Render()
	assert.Contains(t, out, "2 entities")
	assert.Contains(t, out, "category:animal")
	assert.Contains(t, out, "edge 50%", "dog sits past the 0.9 border, cat does not")
}

func TestDescribeFilters(t *testing.T) {
	assert.Empty(t, DescribeFilters(selection.State{}))

	got := DescribeFilters(selection.State{
		Category: "animal",
		Region:   &domain.Rect{X0: 0, Y0: 0, X1: 0.5, Y1: 0.5},
		Scale:    &domain.Interval{Min: 0.1, Max: 0.2},
		Locked:   "d",
		Excluded: []string{"k", "c"},
	})
	assert.Equal(t, "category:animal region:0.00,0.00-0.50,0.50 scale:0.100-0.200 lock:d excluded:2", got)
}
