package dataset

import (
	"math"
	"sort"

	"cocoverse/internal/domain"
)

// Insights summarizes where and how large a set of entities is
type Insights struct {
	Total       int
	CenterRatio int                       // percent inside the central [0.3,0.7]² square
	EdgeRatio   int                       // percent within 0.1 of any border
	ClassRatio  map[domain.ScaleClass]int // percent per scale class
	SmallBiased string                    // category with the highest share of small objects
}

// ComputeInsights derives spatial and scale insights for the given entities
func ComputeInsights(entities []domain.Entity) Insights {
	ins := Insights{
		Total:      len(entities),
		ClassRatio: make(map[domain.ScaleClass]int, len(domain.ScaleClasses)),
	}
	if len(entities) == 0 {
		return ins
	}

	var center, edge int
	classes := make(map[domain.ScaleClass]int)
	type tally struct{ small, classified int }
	perCategory := make(map[string]*tally)

	for _, e := range entities {
		if e.X >= 0.3 && e.X <= 0.7 && e.Y >= 0.3 && e.Y <= 0.7 {
			center++
		}
		if e.X < 0.1 || e.X > 0.9 || e.Y < 0.1 || e.Y > 0.9 {
			edge++
		}
		if e.Class == "" {
			continue
		}
		classes[e.Class]++
		t, ok := perCategory[e.Category]
		if !ok {
			t = &tally{}
			perCategory[e.Category] = t
		}
		t.classified++
		if e.Class == domain.ScaleSmall {
			t.small++
		}
	}

	ins.CenterRatio = percent(center, len(entities))
	ins.EdgeRatio = percent(edge, len(entities))
	for _, c := range domain.ScaleClasses {
		ins.ClassRatio[c] = percent(classes[c], len(entities))
	}

	names := make([]string, 0, len(perCategory))
	for name := range perCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	best := -1.0
	for _, name := range names {
		t := perCategory[name]
		ratio := float64(t.small) / float64(t.classified)
		if ratio > best {
			best = ratio
			ins.SmallBiased = name
		}
	}

	return ins
}

func percent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Density bins entity positions into an n×n grid indexed [row][col], with
// rows following Y. Positions outside [0,1] are clamped to the border cells.
func Density(entities []domain.Entity, n int) [][]int {
	if n < 1 {
		return nil
	}
	grid := make([][]int, n)
	for i := range grid {
		grid[i] = make([]int, n)
	}
	for _, e := range entities {
		grid[cell(e.Y, n)][cell(e.X, n)]++
	}
	return grid
}

func cell(v float64, n int) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	i := int(v * float64(n))
	if i >= n {
		return n - 1
	}
	return i
}
