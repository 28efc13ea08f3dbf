// README: In-memory booking store for the mock backend and tests.
package booking

import (
	"context"
	"sync"
	"time"

	"carzz/internal/types"
)

type MemStore struct {
	mu       sync.RWMutex
	bookings map[types.ID]*Booking
	events   []Event
	nextID   int64
}

func NewMemStore() *MemStore {
	return &MemStore{bookings: map[types.ID]*Booking{}}
}

func (s *MemStore) Create(_ context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *MemStore) Get(_ context.Context, id types.ID) (*Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemStore) List(_ context.Context) ([]Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	// newest first, matching the postgres store
	for i := 1; i < len(out); i++ {
		j := i - 1
		for j >= 0 && out[j].CreatedAt.Before(out[j+1].CreatedAt) {
			out[j], out[j+1] = out[j+1], out[j]
			j--
		}
	}
	return out, nil
}

func (s *MemStore) UpdateStatus(_ context.Context, id types.ID, from, to Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return false, ErrNotFound
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	return true, nil
}

func (s *MemStore) SetLock(_ context.Context, id types.ID, unlocked bool, unlockTime *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.IsUnlocked = unlocked
	b.UnlockTime = unlockTime
	return nil
}

func (s *MemStore) SetTracking(_ context.Context, id types.ID, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.TrackingEnabled = enabled
	return nil
}

func (s *MemStore) SetLocation(_ context.Context, id types.ID, p types.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.LastKnown = &types.Point{Lat: p.Lat, Lng: p.Lng}
	return nil
}

func (s *MemStore) AppendEvent(_ context.Context, e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	cp := *e
	cp.ID = s.nextID
	s.events = append(s.events, cp)
	return nil
}

// Events returns a copy of the recorded state changes, oldest first.
func (s *MemStore) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
