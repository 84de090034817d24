package selection

import (
	"fmt"

	"cocoverse/internal/domain"
)

// Dispatch routes a chart interaction to the matching operation
func (e *Engine) Dispatch(ev domain.Interaction) error {
	switch ev := ev.(type) {
	case domain.CategoryPickedEvent:
		e.SetCategoryFilter(ev.Category)
		return nil
	case domain.RegionBrushedEvent:
		return e.SetSpatialRegion(ev.Region)
	case domain.ScaleBrushedEvent:
		return e.SetScaleRange(ev.Range)
	case domain.ThresholdChangedEvent:
		return e.SetWeightThreshold(ev.Weight)
	case domain.EntityClickedEvent:
		return e.LockEntity(ev.ID)
	case domain.BackgroundClickedEvent:
		return e.LockEntity("")
	case domain.EntityExcludedEvent:
		return e.ToggleExclude(ev.ID)
	case domain.FocusRequestedEvent:
		return e.FocusByName(ev.Name)
	case domain.ResetRequestedEvent:
		e.ResetAll()
		return nil
	case nil:
		return fmt.Errorf("nil interaction: %w", ErrUnsupportedInteraction)
	default:
		return fmt.Errorf("%s: %w", ev.Type(), ErrUnsupportedInteraction)
	}
}
