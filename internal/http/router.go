// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carzz/internal/http/handlers"
	"carzz/internal/http/middleware"
	"carzz/internal/modules/booking"
	"carzz/internal/modules/chat"
	"carzz/internal/modules/pricing"
	"carzz/internal/modules/vehicle"
)

type RouterDeps struct {
	Catalog  *vehicle.Service
	Pricing  *pricing.Service
	Bookings *booking.Service
	Chat     *chat.Service
	Log      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(deps.Log))
	r.Use(middleware.Logging(deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")

	vehicleHandler := handlers.NewVehicleHandler(deps.Catalog)
	api.GET("/cars", vehicleHandler.ListCars)
	api.GET("/cars/:id", vehicleHandler.GetCar)
	api.GET("/bikes", vehicleHandler.ListBikes)
	api.GET("/bikes/:id", vehicleHandler.GetBike)

	quoteHandler := handlers.NewQuoteHandler(deps.Catalog, deps.Pricing)
	api.POST("/quotes", quoteHandler.Quote)

	bookingHandler := handlers.NewBookingHandler(deps.Bookings)
	api.GET("/bookings", bookingHandler.List)
	api.POST("/bookings", bookingHandler.Create)
	api.GET("/bookings/:id", bookingHandler.Get)
	api.PATCH("/bookings/:id/status", bookingHandler.SetStatus)
	api.POST("/bookings/:id/unlock", bookingHandler.Unlock)
	api.POST("/bookings/:id/lock", bookingHandler.Lock)
	api.POST("/bookings/:id/location", bookingHandler.UpdateLocation)
	api.POST("/bookings/:id/tracking", bookingHandler.SetTracking)

	chatHandler := handlers.NewChatHandler(deps.Chat)
	api.POST("/chat", chatHandler.Chat)

	return r
}
