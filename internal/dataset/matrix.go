package dataset

import (
	"math"
	"sort"

	"cocoverse/internal/domain"
)

// MatrixOrder selects how ConditionalMatrix orders its rows and columns
type MatrixOrder string

const (
	// OrderAsymmetry puts the entities whose co-occurrence is most one-sided first
	OrderAsymmetry MatrixOrder = "asym"
	// OrderFrequency puts the most frequent entities first
	OrderFrequency MatrixOrder = "count"
)

// Matrix holds P(row | col) for every ordered pair of entities
type Matrix struct {
	Entities  []domain.Entity // row and column order
	P         [][]float64     // P[i][j] = P(Entities[i] | Entities[j])
	Asymmetry []float64       // per entity, mean |P(a|b) - P(b|a)| over the others
}

// Max returns the largest off-diagonal probability, 0 for an empty matrix
func (m Matrix) Max() float64 {
	var top float64
	for i, row := range m.P {
		for j, p := range row {
			if i != j && p > top {
				top = p
			}
		}
	}
	return top
}

// ConditionalMatrix builds the conditional co-occurrence matrix of entities
// through relations. P(a|b) is the a-b weight over b's count, 0 on the diagonal
// and when b never occurs. Relations touching an entity outside the list are
// ignored, and parallel relations count with their strongest weight.
func ConditionalMatrix(entities []domain.Entity, relations []domain.Relation, order MatrixOrder) Matrix {
	n := len(entities)
	index := make(map[string]int, n)
	for i, e := range entities {
		index[e.ID] = i
	}

	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	for _, r := range relations {
		a, okA := index[r.A]
		b, okB := index[r.B]
		if !okA || !okB || a == b {
			continue
		}
		if r.Weight > weights[a][b] {
			weights[a][b] = r.Weight
			weights[b][a] = r.Weight
		}
	}

	p := make([][]float64, n)
	for i := range p {
		p[i] = make([]float64, n)
		for j := range p[i] {
			if i != j && entities[j].Count > 0 {
				p[i][j] = weights[i][j] / float64(entities[j].Count)
			}
		}
	}

	asym := make([]float64, n)
	if n > 1 {
		for i := range entities {
			var sum float64
			for j := range entities {
				if i != j {
					sum += math.Abs(p[i][j] - p[j][i])
				}
			}
			asym[i] = sum / float64(n-1)
		}
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(x, y int) bool {
		a, b := perm[x], perm[y]
		if order == OrderAsymmetry && asym[a] != asym[b] {
			return asym[a] > asym[b]
		}
		if entities[a].Count != entities[b].Count {
			return entities[a].Count > entities[b].Count
		}
		return entities[a].ID < entities[b].ID
	})

	m := Matrix{
		Entities:  make([]domain.Entity, n),
		P:         make([][]float64, n),
		Asymmetry: make([]float64, n),
	}
	for i, src := range perm {
		m.Entities[i] = entities[src]
		m.Asymmetry[i] = asym[src]
		m.P[i] = make([]float64, n)
		for j, col := range perm {
			m.P[i][j] = p[src][col]
		}
	}
	return m
}
