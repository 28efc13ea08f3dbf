// README: Repository contract for booking persistence.
package booking

import (
	"context"
	"time"

	"carzz/internal/types"
)

// Repository is implemented by the postgres store and the in-memory store.
// UpdateStatus is compare-and-set on the current status; it reports whether
// a row changed so concurrent writers lose cleanly.
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error)
	SetLock(ctx context.Context, id types.ID, unlocked bool, unlockTime *time.Time) error
	SetTracking(ctx context.Context, id types.ID, enabled bool) error
	SetLocation(ctx context.Context, id types.ID, p types.Point) error
	AppendEvent(ctx context.Context, e *Event) error
}
