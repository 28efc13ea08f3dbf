// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
	"carzz/internal/types"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusConfirmed, StatusActive, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// AllowedTransitions represents the booking lifecycle as code. Completed and
// cancelled are terminal: no outgoing transitions.
var AllowedTransitions = map[Status][]Status{
	StatusConfirmed: {StatusActive, StatusCancelled},
	StatusActive:    {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status releases the vehicle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type Booking struct {
	ID              types.ID     `json:"id"`
	VehicleID       int64        `json:"vehicleId"`
	VehicleKind     vehicle.Kind `json:"vehicleType"`
	UserID          types.ID     `json:"userId"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         time.Time    `json:"endTime"`
	TotalCost       types.Money  `json:"totalCost"`
	RateTier        pricing.Tier `json:"rateTier"`
	KmAllowance     string       `json:"kmAllowance"`
	Status          Status       `json:"status"`
	IsUnlocked      bool         `json:"isUnlocked"`
	UnlockTime      *time.Time   `json:"unlockTime,omitempty"`
	TrackingEnabled bool         `json:"trackingEnabled"`
	LastKnown       *types.Point `json:"lastKnownLocation,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// Event is an append-only record of a status change.
type Event struct {
	ID         int64
	BookingID  types.ID
	FromStatus Status
	ToStatus   Status
	Actor      string
	CreatedAt  time.Time
}
