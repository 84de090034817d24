package domain

// InteractionType represents the kind of raw interaction a chart emits
type InteractionType string

// Interaction types
const (
	InteractionCategoryPicked    InteractionType = "CategoryPicked"
	InteractionRegionBrushed     InteractionType = "RegionBrushed"
	InteractionScaleBrushed      InteractionType = "ScaleBrushed"
	InteractionThresholdChanged  InteractionType = "ThresholdChanged"
	InteractionEntityClicked     InteractionType = "EntityClicked"
	InteractionEntityExcluded    InteractionType = "EntityExcluded"
	InteractionBackgroundClicked InteractionType = "BackgroundClicked"
	InteractionFocusRequested    InteractionType = "FocusRequested"
	InteractionResetRequested    InteractionType = "ResetRequested"
)

// Interaction is the interface for all events chart adapters raise
type Interaction interface {
	Type() InteractionType
}

// CategoryPickedEvent is emitted when a category is chosen ("all" clears)
type CategoryPickedEvent struct {
	Category string
}

func (e CategoryPickedEvent) Type() InteractionType { return InteractionCategoryPicked }

// RegionBrushedEvent is emitted on every brush step; a nil Region clears the brush
type RegionBrushedEvent struct {
	Region *Rect
}

func (e RegionBrushedEvent) Type() InteractionType { return InteractionRegionBrushed }

// ScaleBrushedEvent is emitted when a scale interval is brushed
type ScaleBrushedEvent struct {
	Range *Interval
}

func (e ScaleBrushedEvent) Type() InteractionType { return InteractionScaleBrushed }

// ThresholdChangedEvent is emitted when the relation weight slider moves
type ThresholdChangedEvent struct {
	Weight float64
}

func (e ThresholdChangedEvent) Type() InteractionType { return InteractionThresholdChanged }

// EntityClickedEvent is emitted when a mark is clicked
type EntityClickedEvent struct {
	ID string
}

func (e EntityClickedEvent) Type() InteractionType { return InteractionEntityClicked }

// EntityExcludedEvent is emitted when a mark is double-clicked or an excluded chip is removed
type EntityExcludedEvent struct {
	ID string
}

func (e EntityExcludedEvent) Type() InteractionType { return InteractionEntityExcluded }

// BackgroundClickedEvent is emitted when empty chart space is clicked
type BackgroundClickedEvent struct{}

func (e BackgroundClickedEvent) Type() InteractionType { return InteractionBackgroundClicked }

// FocusRequestedEvent is emitted when an entity is searched by name
type FocusRequestedEvent struct {
	Name string
}

func (e FocusRequestedEvent) Type() InteractionType { return InteractionFocusRequested }

// ResetRequestedEvent is emitted by the reset control
type ResetRequestedEvent struct{}

func (e ResetRequestedEvent) Type() InteractionType { return InteractionResetRequested }
