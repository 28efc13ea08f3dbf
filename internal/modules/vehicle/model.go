// README: Vehicle catalog entities shared by cars and bikes.
package vehicle

import (
	"strings"

	"carzz/internal/types"
)

// Kind discriminates the two catalog branches.
type Kind string

const (
	KindCar  Kind = "car"
	KindBike Kind = "bike"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(strings.ToLower(s)) {
	case KindCar:
		return KindCar, true
	case KindBike:
		return KindBike, true
	}
	return "", false
}

// Vehicle is a catalog entry. Transmission and Seats are set for cars,
// EngineCapacity for bikes; the zero values are omitted from JSON.
type Vehicle struct {
	ID             int64       `json:"id"`
	Kind           Kind        `json:"kind"`
	Make           string      `json:"make"`
	Model          string      `json:"model"`
	Year           int         `json:"year"`
	Category       string      `json:"category"`
	PricePerHour   types.Money `json:"pricePerHour"`
	ImageURL       string      `json:"imageUrl"`
	Location       string      `json:"location"`
	IsAvailable    bool        `json:"isAvailable"`
	FuelType       string      `json:"fuelType"`
	Transmission   string      `json:"transmission,omitempty"`
	Seats          int         `json:"seats,omitempty"`
	EngineCapacity string      `json:"engineCapacity,omitempty"`
}

// Filter narrows a catalog listing. Location "" or "all" matches everything,
// otherwise it is a case-insensitive exact match; Search is a case-insensitive
// substring over make, model, and category.
type Filter struct {
	Kind     Kind
	Location string
	Search   string
}

func (f Filter) Matches(v Vehicle) bool {
	if v.Kind != f.Kind {
		return false
	}
	if f.Location != "" && !strings.EqualFold(f.Location, "all") &&
		!strings.EqualFold(v.Location, f.Location) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(v.Make), term) &&
			!strings.Contains(strings.ToLower(v.Model), term) &&
			!strings.Contains(strings.ToLower(v.Category), term) {
			return false
		}
	}
	return true
}
