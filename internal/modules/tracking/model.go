// README: Position snapshot persisted for tracked bookings.
package tracking

import (
	"time"

	"carzz/internal/types"
)

type Snapshot struct {
	ID         int64
	BookingID  types.ID
	Position   types.Point
	RecordedAt time.Time
}
