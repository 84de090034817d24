// Package dataset holds the immutable reference data every chart reads:
// entities, relations, per-category summaries and a weighted adjacency graph.
// A Dataset is built once and never mutated, so it can be shared freely.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/stat"

	"cocoverse/internal/domain"
)

var (
	// ErrEmptyID is returned when an entity has no id
	ErrEmptyID = errors.New("entity id is empty")
	// ErrDuplicateEntity is returned when two entities share an id
	ErrDuplicateEntity = errors.New("duplicate entity id")
	// ErrDanglingRelation is returned when a relation references an unknown entity
	ErrDanglingRelation = errors.New("relation references unknown entity")
)

// Dataset is the read-only, indexed collection of entities and relations
type Dataset struct {
	entities   []domain.Entity
	index      map[string]int // id -> position in entities
	relations  []domain.Relation
	categories []domain.CategorySummary
	catIndex   map[string]int

	graph     *simple.WeightedUndirectedGraph
	minWeight float64
	maxWeight float64
}

// Neighbor is an adjacent entity and the strongest relation weight to it
type Neighbor struct {
	ID     string
	Weight float64
}

// New validates and indexes the given entities and relations.
// The input slices are copied.
func New(entities []domain.Entity, relations []domain.Relation) (*Dataset, error) {
	d := &Dataset{
		entities:  make([]domain.Entity, len(entities)),
		index:     make(map[string]int, len(entities)),
		relations: make([]domain.Relation, len(relations)),
		graph:     simple.NewWeightedUndirectedGraph(0, 0),
	}
	copy(d.entities, entities)
	copy(d.relations, relations)

	for i, e := range d.entities {
		if e.ID == "" {
			return nil, fmt.Errorf("entity at position %d: %w", i, ErrEmptyID)
		}
		if _, exists := d.index[e.ID]; exists {
			return nil, fmt.Errorf("entity %q: %w", e.ID, ErrDuplicateEntity)
		}
		d.index[e.ID] = i
		d.graph.AddNode(simple.Node(i))
	}

	for i, r := range d.relations {
		a, okA := d.index[r.A]
		b, okB := d.index[r.B]
		if !okA || !okB {
			return nil, fmt.Errorf("relation %d (%s-%s): %w", i, r.A, r.B, ErrDanglingRelation)
		}

		if i == 0 || r.Weight < d.minWeight {
			d.minWeight = r.Weight
		}
		if i == 0 || r.Weight > d.maxWeight {
			d.maxWeight = r.Weight
		}

		// Self-loops stay in the relation list but never make a neighbour
		if a == b {
			continue
		}
		// Parallel relations collapse to the strongest weight
		if w, ok := d.graph.Weight(int64(a), int64(b)); ok && w >= r.Weight {
			continue
		}
		d.graph.SetWeightedEdge(d.graph.NewWeightedEdge(simple.Node(a), simple.Node(b), r.Weight))
	}

	d.categories = summarize(d.entities)
	d.catIndex = make(map[string]int, len(d.categories))
	for i, c := range d.categories {
		d.catIndex[c.Name] = i
	}

	return d, nil
}

// summarize computes category summaries ordered by entity count, then name
func summarize(entities []domain.Entity) []domain.CategorySummary {
	byName := make(map[string]*domain.CategorySummary)
	scaleSums := make(map[string]float64)
	var order []string

	for _, e := range entities {
		s, ok := byName[e.Category]
		if !ok {
			s = &domain.CategorySummary{
				Name:              e.Category,
				ScaleDistribution: make(map[domain.ScaleClass]int),
			}
			byName[e.Category] = s
			order = append(order, e.Category)
		}
		s.Entities++
		s.Occurrences += e.Count
		scaleSums[e.Category] += e.Scale
		if e.Class != "" {
			s.ScaleDistribution[e.Class]++
		}
	}

	summaries := make([]domain.CategorySummary, 0, len(order))
	for _, name := range order {
		s := byName[name]
		s.MeanScale = scaleSums[name] / float64(s.Entities)
		summaries = append(summaries, *s)
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Entities != summaries[j].Entities {
			return summaries[i].Entities > summaries[j].Entities
		}
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

// Len returns the number of entities
func (d *Dataset) Len() int {
	return len(d.entities)
}

// Entity retrieves an entity by id
func (d *Dataset) Entity(id string) (domain.Entity, bool) {
	i, ok := d.index[id]
	if !ok {
		return domain.Entity{}, false
	}
	return d.entities[i], true
}

// Has reports whether id names an entity in the dataset
func (d *Dataset) Has(id string) bool {
	_, ok := d.index[id]
	return ok
}

// Entities returns the entities in load order. The slice must not be modified.
func (d *Dataset) Entities() []domain.Entity {
	return d.entities
}

// Relations returns the relations in load order. The slice must not be modified.
func (d *Dataset) Relations() []domain.Relation {
	return d.relations
}

// Categories returns the category summaries, largest first
func (d *Dataset) Categories() []domain.CategorySummary {
	return d.categories
}

// Category looks up a single category summary
func (d *Dataset) Category(name string) (domain.CategorySummary, bool) {
	i, ok := d.catIndex[name]
	if !ok {
		return domain.CategorySummary{}, false
	}
	return d.categories[i], true
}

// WeightRange returns the smallest and largest relation weight.
// Both are zero when there are no relations.
func (d *Dataset) WeightRange() (min, max float64) {
	return d.minWeight, d.maxWeight
}

// FindByName looks an entity up by name, ignoring case and surrounding space
func (d *Dataset) FindByName(name string) (domain.Entity, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return domain.Entity{}, false
	}
	for _, e := range d.entities {
		if strings.ToLower(e.Name) == needle {
			return e, true
		}
	}
	return domain.Entity{}, false
}

// Adjacent returns every entity directly related to id, strongest first
func (d *Dataset) Adjacent(id string) []Neighbor {
	i, ok := d.index[id]
	if !ok {
		return nil
	}

	var neighbors []Neighbor
	nodes := d.graph.From(int64(i))
	for nodes.Next() {
		other := nodes.Node().ID()
		w, _ := d.graph.Weight(int64(i), other)
		neighbors = append(neighbors, Neighbor{ID: d.entities[other].ID, Weight: w})
	}
	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Weight != neighbors[b].Weight {
			return neighbors[a].Weight > neighbors[b].Weight
		}
		return neighbors[a].ID < neighbors[b].ID
	})
	return neighbors
}

// ScaleBands splits the scale axis into at most n contiguous intervals holding
// roughly equal numbers of entities. Every band but the last stops one float
// short of the next band's Min, so each entity falls in exactly one band.
// Repeated scales can merge bands, and no band is ever zero-width. Returns nil
// for n < 1, an empty dataset, or one where every scale is equal.
func (d *Dataset) ScaleBands(n int) []domain.Interval {
	if n < 1 || len(d.entities) == 0 {
		return nil
	}

	scales := make([]float64, len(d.entities))
	for i, e := range d.entities {
		scales[i] = e.Scale
	}
	sort.Float64s(scales)

	lo, top := scales[0], scales[len(scales)-1]
	if lo >= top {
		return nil
	}

	bands := make([]domain.Interval, 0, n)
	for i := 1; i < n; i++ {
		hi := stat.Quantile(float64(i)/float64(n), stat.Empirical, scales, nil)
		if hi <= lo || hi >= top {
			continue
		}
		below := math.Nextafter(hi, math.Inf(-1))
		if below <= lo {
			continue
		}
		bands = append(bands, domain.Interval{Min: lo, Max: below})
		lo = hi
	}
	return append(bands, domain.Interval{Min: lo, Max: top})
}
