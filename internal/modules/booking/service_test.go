// README: Booking lifecycle tests over the in-memory stores.
package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
	"carzz/internal/types"
)

func newTestService(t *testing.T) (*Service, *MemStore, *vehicle.MemStore) {
	t.Helper()
	bookings := NewMemStore()
	vehicles := vehicle.NewMemStore(vehicle.SeedFleet())
	svc := NewService(bookings, vehicles, pricing.NewService(), nil)
	return svc, bookings, vehicles
}

func mustCreate(t *testing.T, svc *Service, kind vehicle.Kind, vehicleID int64) *Booking {
	t.Helper()
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	b, err := svc.Create(context.Background(), CreateCommand{
		VehicleID:   vehicleID,
		VehicleKind: kind,
		UserID:      "u1",
		StartTime:   start,
		EndTime:     start.Add(26 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func assertAvailability(t *testing.T, vehicles *vehicle.MemStore, kind vehicle.Kind, id int64, want bool) {
	t.Helper()
	v, err := vehicles.Get(context.Background(), kind, id)
	if err != nil {
		t.Fatalf("get vehicle: %v", err)
	}
	if v.IsAvailable != want {
		t.Fatalf("vehicle %s/%d availability = %v, want %v", kind, id, v.IsAvailable, want)
	}
}

func TestCreateBooking(t *testing.T) {
	svc, store, vehicles := newTestService(t)

	// Swift at 150/day, 26h window: 150 + 2*round(150/8) = 150 + 2*19 = 188
	b := mustCreate(t, svc, vehicle.KindCar, 1)
	if b.Status != StatusConfirmed {
		t.Errorf("status = %s, want %s", b.Status, StatusConfirmed)
	}
	if b.TotalCost.Amount != 188 {
		t.Errorf("total = %d, want 188", b.TotalCost.Amount)
	}
	if b.RateTier != pricing.TierDailyPlusHourly {
		t.Errorf("tier = %s, want %s", b.RateTier, pricing.TierDailyPlusHourly)
	}
	if b.KmAllowance != "300-400km" {
		t.Errorf("allowance = %s, want 300-400km", b.KmAllowance)
	}
	assertAvailability(t, vehicles, vehicle.KindCar, 1, false)

	events := store.Events()
	if len(events) != 1 || events[0].ToStatus != StatusConfirmed {
		t.Errorf("events = %+v, want single confirmed event", events)
	}
}

func TestCreateBooking_VehicleUnavailable(t *testing.T) {
	svc, _, _ := newTestService(t)

	mustCreate(t, svc, vehicle.KindBike, 1)

	start := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateCommand{
		VehicleID:   1,
		VehicleKind: vehicle.KindBike,
		UserID:      "u2",
		StartTime:   start,
		EndTime:     start.Add(4 * time.Hour),
	})
	if err != ErrVehicleUnavailable {
		t.Fatalf("second booking error = %v, want ErrVehicleUnavailable", err)
	}
}

func TestCreateBooking_UnknownVehicle(t *testing.T) {
	svc, _, _ := newTestService(t)
	start := time.Now()
	_, err := svc.Create(context.Background(), CreateCommand{
		VehicleID:   42,
		VehicleKind: vehicle.KindCar,
		UserID:      "u1",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	})
	if err != ErrNotFound {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateBooking_InvalidWindow(t *testing.T) {
	svc, _, vehicles := newTestService(t)
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), CreateCommand{
		VehicleID:   1,
		VehicleKind: vehicle.KindCar,
		UserID:      "u1",
		StartTime:   start,
		EndTime:     start, // zero-length
	})
	if err != pricing.ErrInvalidInterval {
		t.Fatalf("error = %v, want pricing.ErrInvalidInterval", err)
	}
	// Pricing failed before the reservation; the vehicle must stay available.
	assertAvailability(t, vehicles, vehicle.KindCar, 1, true)
}

func TestLifecycleHappyPath(t *testing.T) {
	svc, _, vehicles := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindCar, 2)

	if _, err := svc.SetStatus(ctx, b.ID, StatusActive); err != nil {
		t.Fatalf("confirmed -> active: %v", err)
	}
	assertAvailability(t, vehicles, vehicle.KindCar, 2, false)

	if _, err := svc.SetStatus(ctx, b.ID, StatusCompleted); err != nil {
		t.Fatalf("active -> completed: %v", err)
	}
	assertAvailability(t, vehicles, vehicle.KindCar, 2, true)

	// Terminal: every further transition is rejected.
	for _, to := range []Status{StatusConfirmed, StatusActive, StatusCancelled} {
		if _, err := svc.SetStatus(ctx, b.ID, to); err != ErrInvalidTransition {
			t.Errorf("completed -> %s error = %v, want ErrInvalidTransition", to, err)
		}
	}
}

func TestCancelReleasesVehicle(t *testing.T) {
	svc, _, vehicles := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindCar, 3)
	if _, err := svc.SetStatus(ctx, b.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	assertAvailability(t, vehicles, vehicle.KindCar, 3, true)

	// The released vehicle can be booked again.
	mustCreate(t, svc, vehicle.KindCar, 3)
}

func TestSetStatus_SkipAndUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindCar, 1)
	if _, err := svc.SetStatus(ctx, b.ID, StatusCompleted); err != ErrInvalidTransition {
		t.Errorf("confirmed -> completed error = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.SetStatus(ctx, "missing", StatusActive); err != ErrNotFound {
		t.Errorf("unknown booking error = %v, want ErrNotFound", err)
	}
}

func TestLockUnlockIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindBike, 2)
	if b.IsUnlocked {
		t.Fatal("new booking must start locked")
	}

	u1, err := svc.Unlock(ctx, b.ID)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !u1.IsUnlocked || u1.UnlockTime == nil {
		t.Fatalf("unlock did not set state: %+v", u1)
	}

	// Second unlock is a no-op success and keeps the original unlock time.
	u2, err := svc.Unlock(ctx, b.ID)
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if u2.UnlockTime == nil || !u2.UnlockTime.Equal(*u1.UnlockTime) {
		t.Errorf("second unlock changed unlock time: %v vs %v", u2.UnlockTime, u1.UnlockTime)
	}

	l, err := svc.Lock(ctx, b.ID)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	if l.IsUnlocked {
		t.Error("lock did not clear unlocked flag")
	}
	if _, err := svc.Lock(ctx, b.ID); err != nil {
		t.Fatalf("second lock: %v", err)
	}

	// Lock state never touches availability.
	if _, err := svc.Unlock(ctx, "missing"); err != ErrNotFound {
		t.Errorf("unlock unknown error = %v, want ErrNotFound", err)
	}
}

func TestUpdateLocation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindCar, 1)

	got, err := svc.UpdateLocation(ctx, b.ID, types.Point{Lat: 28.6139, Lng: 77.2090})
	if err != nil {
		t.Fatalf("update location: %v", err)
	}
	if got.LastKnown == nil || got.LastKnown.Lat != 28.6139 {
		t.Fatalf("last known = %+v", got.LastKnown)
	}

	bad := []types.Point{
		{Lat: 91, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 181},
		{Lat: 0, Lng: -181},
	}
	for _, p := range bad {
		if _, err := svc.UpdateLocation(ctx, b.ID, p); err != ErrInvalidCoordinates {
			t.Errorf("UpdateLocation(%+v) error = %v, want ErrInvalidCoordinates", p, err)
		}
	}
}

type recordingTracker struct {
	mu      sync.Mutex
	records []types.Point
}

func (r *recordingTracker) Record(_ context.Context, _ types.ID, p types.Point) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, p)
	return nil
}

func (r *recordingTracker) Forget(_ context.Context, _ types.ID) error {
	return nil
}

func TestTrackingFeedsTracker(t *testing.T) {
	bookings := NewMemStore()
	vehicles := vehicle.NewMemStore(vehicle.SeedFleet())
	tracker := &recordingTracker{}
	svc := NewService(bookings, vehicles, pricing.NewService(), tracker)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindCar, 1)

	// Tracking disabled: updates stay local.
	if _, err := svc.UpdateLocation(ctx, b.ID, types.Point{Lat: 1, Lng: 1}); err != nil {
		t.Fatalf("update location: %v", err)
	}
	if len(tracker.records) != 0 {
		t.Fatalf("tracker received %d records while disabled", len(tracker.records))
	}

	if _, err := svc.SetTracking(ctx, b.ID, true); err != nil {
		t.Fatalf("enable tracking: %v", err)
	}
	if _, err := svc.UpdateLocation(ctx, b.ID, types.Point{Lat: 2, Lng: 2}); err != nil {
		t.Fatalf("update location: %v", err)
	}
	if len(tracker.records) != 1 {
		t.Fatalf("tracker records = %d, want 1", len(tracker.records))
	}

	if _, err := svc.SetTracking(ctx, b.ID, false); err != nil {
		t.Fatalf("disable tracking: %v", err)
	}
	if _, err := svc.UpdateLocation(ctx, b.ID, types.Point{Lat: 3, Lng: 3}); err != nil {
		t.Fatalf("update location: %v", err)
	}
	if len(tracker.records) != 1 {
		t.Fatalf("tracker records = %d after disable, want 1", len(tracker.records))
	}
}

func TestEventsRecordTransitions(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	b := mustCreate(t, svc, vehicle.KindCar, 1)
	if _, err := svc.SetStatus(ctx, b.ID, StatusActive); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if _, err := svc.SetStatus(ctx, b.ID, StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}

	events := store.Events()
	want := []Status{StatusConfirmed, StatusActive, StatusCompleted}
	if len(events) != len(want) {
		t.Fatalf("events = %d, want %d", len(events), len(want))
	}
	for i, e := range events {
		if e.ToStatus != want[i] {
			t.Errorf("event %d to = %s, want %s", i, e.ToStatus, want[i])
		}
	}
}
