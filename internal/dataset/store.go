package dataset

import "cocoverse/internal/domain"

// EntityStore provides read access to entity data
type EntityStore interface {
	Entity(id string) (domain.Entity, bool)
	Entities() []domain.Entity
}

// CategoryStore provides read access to category summaries
type CategoryStore interface {
	Categories() []domain.CategorySummary
	Category(name string) (domain.CategorySummary, bool)
}

var (
	_ EntityStore   = (*Dataset)(nil)
	_ CategoryStore = (*Dataset)(nil)
)
