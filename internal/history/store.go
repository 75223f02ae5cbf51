package history

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an outcome ID does not exist.
var ErrNotFound = errors.New("event outcome not found")

// Store persists event outcomes.
type Store interface {
	Add(ctx context.Context, o *EventOutcome) error
	Get(ctx context.Context, id string) (EventOutcome, error)
	// List returns all outcomes ordered by event date.
	List(ctx context.Context) ([]EventOutcome, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
