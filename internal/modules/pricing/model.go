// README: Rate tier and quote definitions for the rental price schedule.
package pricing

import (
	"time"

	"carzz/internal/types"
)

// Tier is the pricing bracket selected by elapsed-hour ranges.
type Tier string

const (
	TierFullDay          Tier = "full_day"
	TierDailyPlusHourly  Tier = "daily_plus_hourly"
	TierDailyPlusHalfDay Tier = "daily_plus_half_day"
	TierMultiDay         Tier = "multi_day"
)

// Request carries the inputs of a quote: the vehicle's base rate (interpreted
// as the full-day rate) and the rental window.
type Request struct {
	RatePerDay types.Money
	Start      time.Time
	End        time.Time
}

// Quote is the priced duration. It is derived deterministically from a Request
// and never mutated; callers recompute when inputs change.
type Quote struct {
	Hours       int
	Days        int
	Total       types.Money
	Tier        Tier
	KmAllowance string
}
