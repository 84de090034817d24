package domain

import "math"

// Entity represents a visualizable data point (graph node, annotation, keypoint)
type Entity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	X           float64    `json:"x"`     // normalized horizontal position in [0,1]
	Y           float64    `json:"y"`     // normalized vertical position in [0,1]
	Scale       float64    `json:"scale"` // relative object area, the scale-range axis
	Count       int        `json:"count"` // occurrence count
	Probability float64    `json:"probability"`
	Class       ScaleClass `json:"class,omitempty"`
}

// Relation represents a weighted undirected link between two entities
type Relation struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

// Touches reports whether id is one of the relation's endpoints
func (r Relation) Touches(id string) bool {
	return r.A == id || r.B == id
}

// Other returns the endpoint opposite id
func (r Relation) Other(id string) string {
	if r.A == id {
		return r.B
	}
	return r.A
}

// CategorySummary aggregates the entities of one category
type CategorySummary struct {
	Name              string
	Entities          int // number of entities in the category
	Occurrences       int // sum of entity counts
	MeanScale         float64
	ScaleDistribution map[ScaleClass]int
}

// ScaleClass buckets objects by size
type ScaleClass string

const (
	ScaleSmall  ScaleClass = "small"
	ScaleMedium ScaleClass = "medium"
	ScaleLarge  ScaleClass = "large"
)

// ScaleClasses lists the classes from smallest to largest
var ScaleClasses = []ScaleClass{ScaleSmall, ScaleMedium, ScaleLarge}

// COCO area thresholds in pixels
const (
	smallAreaLimit  = 32 * 32
	mediumAreaLimit = 96 * 96
)

// ClassifyArea maps a pixel area to its scale class
func ClassifyArea(pixels float64) ScaleClass {
	switch {
	case pixels < smallAreaLimit:
		return ScaleSmall
	case pixels < mediumAreaLimit:
		return ScaleMedium
	default:
		return ScaleLarge
	}
}

// Rect is an axis-aligned rectangle in normalized [0,1]² coordinates
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// Contains reports whether the point lies inside the rectangle, bounds inclusive
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Area returns the rectangle's area
func (r Rect) Area() float64 {
	return (r.X1 - r.X0) * (r.Y1 - r.Y0)
}

// HasNaN reports whether any coordinate is NaN
func (r Rect) HasNaN() bool {
	return math.IsNaN(r.X0) || math.IsNaN(r.Y0) || math.IsNaN(r.X1) || math.IsNaN(r.Y1)
}

// Interval is a closed numeric interval
type Interval struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the interval, bounds inclusive
func (iv Interval) Contains(v float64) bool {
	return v >= iv.Min && v <= iv.Max
}

// Highlight is the per-entity classification of a derived view
type Highlight string

const (
	HighlightNormal   Highlight = "normal"
	HighlightLocked   Highlight = "locked"
	HighlightNeighbor Highlight = "neighbor"
	HighlightExcluded Highlight = "excluded"
	HighlightDimmed   Highlight = "dimmed"
)
