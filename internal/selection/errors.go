package selection

import "errors"

var (
	// ErrInvalidRange is returned for a numeric filter with min > max or NaN bounds
	ErrInvalidRange = errors.New("invalid range")
	// ErrEntityNotFound is returned when an operation names an id absent from the dataset
	ErrEntityNotFound = errors.New("entity not found")
	// ErrListenerReentrancy marks a mutation made from inside a notification.
	// It is never returned: the mutation is deferred until the round completes.
	ErrListenerReentrancy = errors.New("mutation from inside a listener")
	// ErrUnsupportedInteraction is returned by Dispatch for an unknown interaction type
	ErrUnsupportedInteraction = errors.New("unsupported interaction")
)
