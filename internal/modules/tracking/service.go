// README: Tracking service fans a position update out to the live set and the trail.
package tracking

import (
	"context"
	"time"

	"carzz/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Record publishes the latest position for a tracked booking. The live set is
// updated first; the snapshot trail is append-only history.
func (s *Service) Record(ctx context.Context, bookingID types.ID, p types.Point) error {
	if err := s.store.SetLive(ctx, bookingID, p); err != nil {
		return err
	}
	return s.store.AppendSnapshot(ctx, Snapshot{
		BookingID:  bookingID,
		Position:   p,
		RecordedAt: time.Now(),
	})
}

// Forget removes a booking from the live set, used when tracking is switched off.
func (s *Service) Forget(ctx context.Context, bookingID types.ID) error {
	return s.store.RemoveLive(ctx, bookingID)
}
