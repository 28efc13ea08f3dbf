// README: Pricing service computes rental quotes under the tiered day/hour schedule.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"carzz/internal/types"
)

var (
	ErrInvalidInterval = errors.New("end time must be after start time")
	ErrInvalidRate     = errors.New("rate must be positive")
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Compute turns a base rate and rental window into a quote.
//
// Schedule, with H = billable hours and R = the full-day rate:
//   - H <= 24:            R
//   - 24 < H <= 26:       R + (H-24) * round(R/8)   (hourly overrun)
//   - 26 < H <= 30:       R + round(R*0.6)          (half-day overrun)
//   - H > 30:             R * ceil(H/24)
//
// The intermediate hourly/half-day rates are rounded before they are combined;
// the final total is never rounded.
func (s *Service) Compute(req Request) (Quote, error) {
	if req.RatePerDay.Amount <= 0 {
		return Quote{}, ErrInvalidRate
	}
	elapsed := req.End.Sub(req.Start)
	if elapsed <= 0 {
		return Quote{}, ErrInvalidInterval
	}

	hours := billableHours(elapsed)
	days := (hours + 23) / 24

	rate := req.RatePerDay.Amount
	var total int64
	var tier Tier
	switch extra := hours - 24; {
	case hours <= 24:
		total = rate
		tier = TierFullDay
	case extra <= 2:
		hourly := roundRate(float64(rate) / 8)
		total = rate + int64(extra)*hourly
		tier = TierDailyPlusHourly
	case extra <= 6:
		halfDay := roundRate(float64(rate) * 0.6)
		total = rate + halfDay
		tier = TierDailyPlusHalfDay
	default:
		total = rate * int64(days)
		tier = TierMultiDay
	}

	return Quote{
		Hours:       hours,
		Days:        days,
		Total:       types.Money{Amount: total, Currency: req.RatePerDay.Currency},
		Tier:        tier,
		KmAllowance: kmAllowance(hours),
	}, nil
}

// billableHours rounds the elapsed duration up to whole hours, minimum one.
func billableHours(d time.Duration) int {
	h := int((d + time.Hour - 1) / time.Hour)
	if h < 1 {
		h = 1
	}
	return h
}

func roundRate(v float64) int64 {
	return int64(math.Round(v))
}

// kmAllowance returns the advertised distance band for a rental of h hours.
// Short rentals scale linearly at 15-20 km per hour.
func kmAllowance(h int) string {
	switch {
	case h >= 24:
		return "300-400km"
	case h >= 18:
		return "250-300km"
	case h >= 13:
		return "180-250km"
	case h >= 8:
		return "130-180km"
	default:
		return fmt.Sprintf("%d-%dkm", h*15, h*20)
	}
}
