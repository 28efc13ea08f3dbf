// README: Quote handler prices a rental window without creating a booking.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
)

type QuoteHandler struct {
	catalog *vehicle.Service
	pricing *pricing.Service
}

func NewQuoteHandler(catalog *vehicle.Service, pricingSvc *pricing.Service) *QuoteHandler {
	return &QuoteHandler{catalog: catalog, pricing: pricingSvc}
}

type quoteReq struct {
	VehicleID   int64     `json:"vehicleId" binding:"required"`
	VehicleType string    `json:"vehicleType" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

type quoteResp struct {
	Hours       int          `json:"hours"`
	Days        int          `json:"days"`
	TotalCost   int64        `json:"totalCost"`
	Currency    string       `json:"currency"`
	RateTier    pricing.Tier `json:"rateTier"`
	KmAllowance string       `json:"kmAllowance"`
}

// Quote handles POST /api/quotes.
func (h *QuoteHandler) Quote(c *gin.Context) {
	var req quoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	kind, ok := vehicle.ParseKind(req.VehicleType)
	if !ok {
		writeError(c, http.StatusBadRequest, "vehicleType must be car or bike")
		return
	}
	v, err := h.catalog.Get(c.Request.Context(), kind, req.VehicleID)
	if err == vehicle.ErrNotFound {
		writeError(c, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	quote, err := h.pricing.Compute(pricing.Request{
		RatePerDay: v.PricePerHour,
		Start:      req.StartTime,
		End:        req.EndTime,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quoteResp{
		Hours:       quote.Hours,
		Days:        quote.Days,
		TotalCost:   quote.Total.Amount,
		Currency:    quote.Total.Currency,
		RateTier:    quote.Tier,
		KmAllowance: quote.KmAllowance,
	})
}
