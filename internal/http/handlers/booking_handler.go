// README: Booking handlers: create, read, status, lock, location, tracking.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carzz/internal/modules/booking"
	"carzz/internal/modules/vehicle"
	"carzz/internal/types"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: svc}
}

type createBookingReq struct {
	VehicleID   int64     `json:"vehicleId" binding:"required"`
	VehicleType string    `json:"vehicleType" binding:"required"`
	UserID      string    `json:"userId" binding:"required"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	kind, ok := vehicle.ParseKind(req.VehicleType)
	if !ok {
		writeError(c, http.StatusBadRequest, "vehicleType must be car or bike")
		return
	}
	b, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		VehicleID:   req.VehicleID,
		VehicleKind: kind,
		UserID:      types.ID(req.UserID),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, b)
}

// List handles GET /api/bookings.
func (h *BookingHandler) List(c *gin.Context) {
	out, err := h.bookings.List(c.Request.Context())
	if err != nil {
		writeBookingError(c, err)
		return
	}
	if out == nil {
		out = []booking.Booking{}
	}
	writeJSON(c, http.StatusOK, out)
}

// Get handles GET /api/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.bookings.Get(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

type setStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) SetStatus(c *gin.Context) {
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	status, ok := booking.ParseStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "unknown status")
		return
	}
	b, err := h.bookings.SetStatus(c.Request.Context(), types.ID(c.Param("id")), status)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

// Unlock handles POST /api/bookings/:id/unlock.
func (h *BookingHandler) Unlock(c *gin.Context) {
	b, err := h.bookings.Unlock(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

// Lock handles POST /api/bookings/:id/lock.
func (h *BookingHandler) Lock(c *gin.Context) {
	b, err := h.bookings.Lock(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

type locationReq struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// UpdateLocation handles POST /api/bookings/:id/location.
func (h *BookingHandler) UpdateLocation(c *gin.Context) {
	var req locationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.bookings.UpdateLocation(c.Request.Context(), types.ID(c.Param("id")),
		types.Point{Lat: *req.Lat, Lng: *req.Lng})
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}

type trackingReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetTracking handles POST /api/bookings/:id/tracking.
func (h *BookingHandler) SetTracking(c *gin.Context) {
	var req trackingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.bookings.SetTracking(c.Request.Context(), types.ID(c.Param("id")), *req.Enabled)
	if err != nil {
		writeBookingError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, b)
}
