// Package loader decodes a prepared dataset file into a dataset.Dataset.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"cocoverse/internal/dataset"
	"cocoverse/internal/domain"
)

// ErrUnknownClass is returned when an entity carries a scale class other than
// small, medium or large
var ErrUnknownClass = errors.New("unknown scale class")

type fileEntity struct {
	domain.Entity
	AreaPx float64 `json:"area_px"`
}

type file struct {
	Entities  []fileEntity      `json:"entities"`
	Relations []domain.Relation `json:"relations"`
}

// Load reads and decodes the dataset file at path
func Load(path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a dataset document. An entity without a class gets one from
// its pixel area when area_px is set.
func Decode(r io.Reader) (*dataset.Dataset, error) {
	var doc file
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	entities := make([]domain.Entity, len(doc.Entities))
	for i, fe := range doc.Entities {
		e := fe.Entity
		switch e.Class {
		case "":
			if fe.AreaPx > 0 {
				e.Class = domain.ClassifyArea(fe.AreaPx)
			}
		case domain.ScaleSmall, domain.ScaleMedium, domain.ScaleLarge:
		default:
			return nil, fmt.Errorf("entity %q class %q: %w", e.ID, e.Class, ErrUnknownClass)
		}
		entities[i] = e
	}

	return dataset.New(entities, doc.Relations)
}
