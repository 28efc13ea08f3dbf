// README: Catalog handlers for car and bike listings.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carzz/internal/modules/vehicle"
)

type VehicleHandler struct {
	catalog *vehicle.Service
}

func NewVehicleHandler(svc *vehicle.Service) *VehicleHandler {
	return &VehicleHandler{catalog: svc}
}

// ListCars handles GET /api/cars?location=&search=.
func (h *VehicleHandler) ListCars(c *gin.Context) {
	h.list(c, vehicle.KindCar)
}

// ListBikes handles GET /api/bikes?location=&search=.
func (h *VehicleHandler) ListBikes(c *gin.Context) {
	h.list(c, vehicle.KindBike)
}

func (h *VehicleHandler) list(c *gin.Context, kind vehicle.Kind) {
	vehicles, err := h.catalog.List(c.Request.Context(), vehicle.Filter{
		Kind:     kind,
		Location: c.Query("location"),
		Search:   c.Query("search"),
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if vehicles == nil {
		vehicles = []vehicle.Vehicle{}
	}
	writeJSON(c, http.StatusOK, vehicles)
}

// GetCar handles GET /api/cars/:id.
func (h *VehicleHandler) GetCar(c *gin.Context) {
	h.get(c, vehicle.KindCar)
}

// GetBike handles GET /api/bikes/:id.
func (h *VehicleHandler) GetBike(c *gin.Context) {
	h.get(c, vehicle.KindBike)
}

func (h *VehicleHandler) get(c *gin.Context, kind vehicle.Kind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	v, err := h.catalog.Get(c.Request.Context(), kind, id)
	if err == vehicle.ErrNotFound {
		writeError(c, http.StatusNotFound, "vehicle not found")
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, v)
}
