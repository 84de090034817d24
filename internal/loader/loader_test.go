package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
)

const sampleDoc = `{
  "entities": [
    {"id": "1", "name": "person", "category": "human", "x": 0.5, "y": 0.4,
     "scale": 0.02, "count": 120, "probability": 0.3, "class": "large", "area_px": 10},
    {"id": "2", "name": "dog", "category": "animal", "x": 0.1, "y": 0.9,
     "scale": 0.01, "count": 30, "area_px": 2000},
    {"id": "3", "name": "cat", "category": "animal", "scale": 0.005, "count": 12, "area_px": 500},
    {"id": "4", "name": "kite", "category": "sports"}
  ],
  "relations": [
    {"a": "1", "b": "2", "weight": 40},
    {"a": "2", "b": "3", "weight": 4.5}
  ]
}`

func TestDecode(t *testing.T) {
	ds, err := Decode(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 4, ds.Len())

	person, ok := ds.Entity("1")
	require.True(t, ok)
	assert.Equal(t, domain.Entity{
		ID: "1", Name: "person", Category: "human",
		X: 0.5, Y: 0.4, Scale: 0.02, Count: 120, Probability: 0.3,
		Class: domain.ScaleLarge,
	}, person)

	dog, _ := ds.Entity("2")
	assert.Equal(t, domain.ScaleMedium, dog.Class, "class derived from area")
	cat, _ := ds.Entity("3")
	assert.Equal(t, domain.ScaleSmall, cat.Class)
	kite, _ := ds.Entity("4")
	assert.Empty(t, kite.Class, "no area means no class")

	assert.Equal(t, []domain.Relation{
		{A: "1", B: "2", Weight: 40},
		{A: "2", B: "3", Weight: 4.5},
	}, ds.Relations())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "unknown class",
			doc:  `{"entities":[{"id":"1","class":"huge"}]}`,
			want: ErrUnknownClass,
		},
		{
			name: "dangling relation",
			doc:  `{"entities":[{"id":"1"}],"relations":[{"a":"1","b":"9","weight":1}]}`,
			want: dataset.ErrDanglingRelation,
		},
		{
			name: "duplicate id",
			doc:  `{"entities":[{"id":"1"},{"id":"1"}]}`,
			want: dataset.ErrDuplicateEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"entities": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse dataset")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
