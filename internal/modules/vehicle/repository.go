// README: Repository contract over the catalog; postgres and memory implementations.
package vehicle

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("vehicle not found")

// Repository is the capability set the rest of the system needs from the
// catalog. Availability is the only field anyone mutates.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Vehicle, error)
	Get(ctx context.Context, kind Kind, id int64) (Vehicle, error)
	SetAvailability(ctx context.Context, kind Kind, id int64, available bool) error
}
