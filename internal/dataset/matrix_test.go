package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocoverse/internal/domain"
)

func matrixFixture() ([]domain.Entity, []domain.Relation) {
	return []domain.Entity{
			{ID: "p", Name: "person", Count: 10},
			{ID: "d", Name: "dog", Count: 5},
			{ID: "c", Name: "car", Count: 20},
			{ID: "k", Name: "kite", Count: 0},
		}, []domain.Relation{
			{A: "p", B: "d", Weight: 4},
			{A: "d", B: "p", Weight: 3}, // parallel, weaker
			{A: "p", B: "c", Weight: 2},
			{A: "d", B: "c", Weight: 1},
			{A: "p", B: "k", Weight: 1},
			{A: "p", B: "x", Weight: 8}, // x is not in the list
		}
}

func ids(m Matrix) []string {
	out := make([]string, len(m.Entities))
	for i, e := range m.Entities {
		out[i] = e.ID
	}
	return out
}

func TestConditionalMatrixByAsymmetry(t *testing.T) {
	entities, relations := matrixFixture()
	m := ConditionalMatrix(entities, relations, OrderAsymmetry)

	require.Equal(t, []string{"p", "d", "c", "k"}, ids(m))

	assert.InDelta(t, 0.8, m.P[0][1], 1e-9, "P(person|dog)")
	assert.InDelta(t, 0.4, m.P[1][0], 1e-9, "P(dog|person)")
	assert.InDelta(t, 0.1, m.P[0][2], 1e-9, "P(person|car)")
	assert.InDelta(t, 0.2, m.P[2][0], 1e-9, "P(car|person)")
	assert.Zero(t, m.P[0][3], "kite never occurs")
	assert.InDelta(t, 0.1, m.P[3][0], 1e-9, "P(kite|person)")
	for i := range m.P {
		assert.Zero(t, m.P[i][i])
	}

	assert.InDelta(t, 0.2, m.Asymmetry[0], 1e-9)
	assert.InDelta(t, 0.55/3, m.Asymmetry[1], 1e-9)
	assert.InDelta(t, 0.25/3, m.Asymmetry[2], 1e-9)
	assert.InDelta(t, 0.1/3, m.Asymmetry[3], 1e-9)

	assert.InDelta(t, 0.8, m.Max(), 1e-9)
}

func TestConditionalMatrixByFrequency(t *testing.T) {
	entities, relations := matrixFixture()
	m := ConditionalMatrix(entities, relations, OrderFrequency)

	require.Equal(t, []string{"c", "p", "d", "k"}, ids(m))
	assert.InDelta(t, 0.2, m.P[0][1], 1e-9, "P(car|person)")
	assert.InDelta(t, 0.2, m.P[0][2], 1e-9, "P(car|dog)")
	assert.InDelta(t, 0.05, m.P[2][0], 1e-9, "P(dog|car)")
}

func TestConditionalMatrixEmpty(t *testing.T) {
	m := ConditionalMatrix(nil, nil, OrderAsymmetry)
	assert.Empty(t, m.Entities)
	assert.Zero(t, m.Max())

	single := ConditionalMatrix([]domain.Entity{{ID: "a", Count: 3}}, nil, OrderAsymmetry)
	assert.Equal(t, [][]float64{{0}}, single.P)
	assert.Equal(t, []float64{0}, single.Asymmetry)
}
