package adapters

import (
	"strings"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
	"cocoverse/internal/selection"
	"cocoverse/internal/ui/views"
)

// StateSource exposes the active filters to adapters that draw them
type StateSource interface {
	State() selection.State
}

var densityRamp = []rune(" .:-=+*#%@")

// DensityChart bins visible entity positions into a character heatmap. The
// brushed region is shaded and the locked entity's cell is marked.
type DensityChart struct {
	state  StateSource
	styles *views.Styles
	size   int

	grid   [][]int
	peak   int
	locked *domain.Entity
}

// NewDensityChart creates a size×size heatmap
func NewDensityChart(state StateSource, styles *views.Styles, size int) *DensityChart {
	if size < 1 {
		size = 1
	}
	return &DensityChart{state: state, styles: styles, size: size}
}

// Update re-bins the view's visible entities
func (c *DensityChart) Update(view selection.DerivedView) {
	c.grid = dataset.Density(view.Entities, c.size)
	c.peak = 0
	for _, row := range c.grid {
		for _, n := range row {
			if n > c.peak {
				c.peak = n
			}
		}
	}

	c.locked = nil
	if view.LockedVisible {
		for i := range view.Entities {
			if view.Entities[i].ID == view.Locked {
				e := view.Entities[i]
				c.locked = &e
				break
			}
		}
	}
}

// Counts returns the current grid, indexed [row][col]
func (c *DensityChart) Counts() [][]int {
	return c.grid
}

// CellRect returns the unit-square rectangle covered by a grid cell
func (c *DensityChart) CellRect(row, col int) domain.Rect {
	n := float64(c.size)
	return domain.Rect{
		X0: float64(col) / n, Y0: float64(row) / n,
		X1: float64(col+1) / n, Y1: float64(row+1) / n,
	}
}

// Render draws the heatmap, two characters per cell
func (c *DensityChart) Render() string {
	region := c.state.State().Region

	lockedRow, lockedCol := -1, -1
	if c.locked != nil {
		g := dataset.Density([]domain.Entity{*c.locked}, c.size)
		for r := range g {
			for col := range g[r] {
				if g[r][col] > 0 {
					lockedRow, lockedCol = r, col
				}
			}
		}
	}

	var b strings.Builder
	for r, row := range c.grid {
		for col, n := range row {
			glyph := string(c.glyph(n))
			cell := glyph + glyph
			if r == lockedRow && col == lockedCol {
				cell = c.styles.Locked.Render("[]")
			} else if region != nil && overlaps(*region, c.CellRect(r, col)) {
				cell = c.styles.Region.Render(cell)
			}
			b.WriteString(cell)
		}
		if r < len(c.grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (c *DensityChart) glyph(n int) rune {
	if n == 0 || c.peak == 0 {
		return densityRamp[0]
	}
	i := 1 + (n*(len(densityRamp)-2))/c.peak
	if i >= len(densityRamp) {
		i = len(densityRamp) - 1
	}
	return densityRamp[i]
}

func overlaps(a, b domain.Rect) bool {
	return a.X0 < b.X1 && b.X0 < a.X1 && a.Y0 < b.Y1 && b.Y0 < a.Y1
}
