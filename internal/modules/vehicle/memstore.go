// README: In-memory catalog for the mock backend; seeded with the demo fleet.
package vehicle

import (
	"context"
	"sync"

	"carzz/internal/types"
)

// MemStore keeps the catalog in process memory behind the same Repository
// contract as the postgres store. It backs the "memory" backend and tests.
type MemStore struct {
	mu       sync.RWMutex
	vehicles map[Kind]map[int64]Vehicle
}

func NewMemStore(seed []Vehicle) *MemStore {
	s := &MemStore{vehicles: map[Kind]map[int64]Vehicle{
		KindCar:  {},
		KindBike: {},
	}}
	for _, v := range seed {
		s.vehicles[v.Kind][v.ID] = v
	}
	return s
}

func (s *MemStore) List(_ context.Context, f Filter) ([]Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Vehicle
	for _, byID := range s.vehicles {
		for _, v := range byID {
			if f.Matches(v) {
				out = append(out, v)
			}
		}
	}
	sortByID(out)
	return out, nil
}

func (s *MemStore) Get(_ context.Context, kind Kind, id int64) (Vehicle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vehicles[kind][id]
	if !ok {
		return Vehicle{}, ErrNotFound
	}
	return v, nil
}

func (s *MemStore) SetAvailability(_ context.Context, kind Kind, id int64, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vehicles[kind][id]
	if !ok {
		return ErrNotFound
	}
	v.IsAvailable = available
	s.vehicles[kind][id] = v
	return nil
}

// insertion sort; the mock fleet is tiny
func sortByID(vs []Vehicle) {
	for i := 1; i < len(vs); i++ {
		j := i - 1
		for j >= 0 && vs[j].ID > vs[j+1].ID {
			vs[j], vs[j+1] = vs[j+1], vs[j]
			j--
		}
	}
}

// SeedFleet is the demo catalog served by the memory backend.
func SeedFleet() []Vehicle {
	return []Vehicle{
		{
			ID: 1, Kind: KindCar, Make: "Maruti Suzuki", Model: "Swift", Year: 2023,
			Category: "Hatchback", PricePerHour: types.Rupees(150),
			ImageURL: "https://images.unsplash.com/photo-1583121274602-3e2820c69888?w=400",
			Location: "Delhi", IsAvailable: true, FuelType: "Petrol",
			Transmission: "Manual", Seats: 5,
		},
		{
			ID: 2, Kind: KindCar, Make: "Hyundai", Model: "Creta", Year: 2023,
			Category: "SUV", PricePerHour: types.Rupees(250),
			ImageURL: "https://images.unsplash.com/photo-1549317336-206569e8475c?w=400",
			Location: "Mumbai", IsAvailable: true, FuelType: "Petrol",
			Transmission: "Automatic", Seats: 5,
		},
		{
			ID: 3, Kind: KindCar, Make: "Honda", Model: "City", Year: 2023,
			Category: "Sedan", PricePerHour: types.Rupees(180),
			ImageURL: "https://images.unsplash.com/photo-1552519507-da3b142c6e3d?w=400",
			Location: "Bangalore", IsAvailable: true, FuelType: "Petrol",
			Transmission: "Manual", Seats: 5,
		},
		{
			ID: 1, Kind: KindBike, Make: "Honda", Model: "Activa 6G", Year: 2023,
			Category: "Scooter", PricePerHour: types.Rupees(50),
			ImageURL: "https://images.unsplash.com/photo-1558618966-fcd25c85cd64?w=400",
			Location: "Delhi", IsAvailable: true, FuelType: "Petrol",
			EngineCapacity: "110cc",
		},
		{
			ID: 2, Kind: KindBike, Make: "TVS", Model: "Apache RTR 160", Year: 2023,
			Category: "Sports", PricePerHour: types.Rupees(80),
			ImageURL: "https://images.unsplash.com/photo-1568772585407-9361f9bf3a87?w=400",
			Location: "Mumbai", IsAvailable: true, FuelType: "Petrol",
			EngineCapacity: "160cc",
		},
	}
}
