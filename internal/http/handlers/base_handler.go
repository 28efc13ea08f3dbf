// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carzz/internal/modules/booking"
	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeBookingError maps module sentinels onto HTTP status codes. Anything
// unrecognised is a storage failure and stays opaque.
func writeBookingError(c *gin.Context, err error) {
	switch err {
	case booking.ErrBadRequest, booking.ErrInvalidCoordinates,
		pricing.ErrInvalidInterval, pricing.ErrInvalidRate:
		writeError(c, http.StatusBadRequest, err.Error())
	case booking.ErrNotFound, vehicle.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case booking.ErrVehicleUnavailable, booking.ErrInvalidTransition, booking.ErrConflict:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
