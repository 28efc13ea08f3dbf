// README: Booking lifecycle service: creation, status transitions, lock and tracking ops.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
	"carzz/internal/types"
)

var (
	ErrNotFound           = errors.New("booking not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCoordinates = errors.New("coordinates out of range")
	ErrConflict           = errors.New("booking state conflict")
	ErrBadRequest         = errors.New("bad request")
)

// Pricer computes the quote for a rental window; satisfied by pricing.Service.
type Pricer interface {
	Compute(req pricing.Request) (pricing.Quote, error)
}

// Tracker receives live positions for bookings with tracking enabled;
// satisfied by tracking.Service. Optional.
type Tracker interface {
	Record(ctx context.Context, bookingID types.ID, p types.Point) error
	Forget(ctx context.Context, bookingID types.ID) error
}

type Service struct {
	bookings Repository
	vehicles vehicle.Repository
	pricer   Pricer
	tracker  Tracker
}

func NewService(bookings Repository, vehicles vehicle.Repository, pricer Pricer, tracker Tracker) *Service {
	return &Service{bookings: bookings, vehicles: vehicles, pricer: pricer, tracker: tracker}
}

type CreateCommand struct {
	VehicleID   int64
	VehicleKind vehicle.Kind
	UserID      types.ID
	StartTime   time.Time
	EndTime     time.Time
}

// Create prices the rental window, reserves the vehicle, and stores a new
// booking in confirmed status. The vehicle's availability flag is the only
// reservation mechanism: an open booking keeps it false until a terminal
// transition releases it.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if cmd.UserID == "" || cmd.VehicleID == 0 {
		return nil, ErrBadRequest
	}

	v, err := s.vehicles.Get(ctx, cmd.VehicleKind, cmd.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !v.IsAvailable {
		return nil, ErrVehicleUnavailable
	}

	quote, err := s.pricer.Compute(pricing.Request{
		RatePerDay: v.PricePerHour,
		Start:      cmd.StartTime,
		End:        cmd.EndTime,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &Booking{
		ID:          types.ID(uuid.NewString()),
		VehicleID:   cmd.VehicleID,
		VehicleKind: cmd.VehicleKind,
		UserID:      cmd.UserID,
		StartTime:   cmd.StartTime,
		EndTime:     cmd.EndTime,
		TotalCost:   quote.Total,
		RateTier:    quote.Tier,
		KmAllowance: quote.KmAllowance,
		Status:      StatusConfirmed,
		CreatedAt:   now,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	if err := s.vehicles.SetAvailability(ctx, cmd.VehicleKind, cmd.VehicleID, false); err != nil {
		// No compensating delete: the storage collaborator owns consistency here.
		return nil, err
	}
	_ = s.bookings.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: "",
		ToStatus:   StatusConfirmed,
		Actor:      string(cmd.UserID),
		CreatedAt:  now,
	})
	return b, nil
}

// SetStatus moves a booking along the lifecycle. Entering a terminal status
// releases the vehicle.
func (s *Service) SetStatus(ctx context.Context, id types.ID, to Status) (*Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, ErrInvalidTransition
	}
	ok, err := s.bookings.UpdateStatus(ctx, id, b.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	if to.Terminal() {
		if err := s.vehicles.SetAvailability(ctx, b.VehicleKind, b.VehicleID, true); err != nil {
			return nil, err
		}
	}
	_ = s.bookings.AppendEvent(ctx, &Event{
		BookingID:  id,
		FromStatus: b.Status,
		ToStatus:   to,
		Actor:      string(b.UserID),
		CreatedAt:  time.Now(),
	})
	b.Status = to
	return b, nil
}

// Unlock marks the vehicle unlocked and stamps the unlock time. Unlocking an
// already-unlocked booking is a no-op success.
func (s *Service) Unlock(ctx context.Context, id types.ID) (*Booking, error) {
	return s.setLock(ctx, id, true)
}

// Lock is the inverse of Unlock, equally idempotent.
func (s *Service) Lock(ctx context.Context, id types.ID) (*Booking, error) {
	return s.setLock(ctx, id, false)
}

func (s *Service) setLock(ctx context.Context, id types.ID, unlocked bool) (*Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.IsUnlocked == unlocked {
		return b, nil
	}
	var at *time.Time
	if unlocked {
		now := time.Now()
		at = &now
	}
	if err := s.bookings.SetLock(ctx, id, unlocked, at); err != nil {
		return nil, err
	}
	b.IsUnlocked = unlocked
	b.UnlockTime = at
	return b, nil
}

// UpdateLocation overwrites the booking's last-known position and, when
// tracking is enabled, forwards it to the live tracker.
func (s *Service) UpdateLocation(ctx context.Context, id types.ID, p types.Point) (*Booking, error) {
	if !p.Valid() {
		return nil, ErrInvalidCoordinates
	}
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.SetLocation(ctx, id, p); err != nil {
		return nil, err
	}
	b.LastKnown = &p
	if b.TrackingEnabled && s.tracker != nil {
		// Best effort; a tracker outage must not fail the update.
		_ = s.tracker.Record(ctx, id, p)
	}
	return b, nil
}

func (s *Service) SetTracking(ctx context.Context, id types.ID, enabled bool) (*Booking, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.SetTracking(ctx, id, enabled); err != nil {
		return nil, err
	}
	if !enabled && s.tracker != nil {
		_ = s.tracker.Forget(ctx, id)
	}
	b.TrackingEnabled = enabled
	return b, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.bookings.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Booking, error) {
	return s.bookings.List(ctx)
}
