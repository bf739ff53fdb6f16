package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aachanin1/new-athlete-academy-sub000/internal/auth"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/config"
	"github.com/aachanin1/new-athlete-academy-sub000/internal/service"
)

// NewRouter собирает HTTP-маршруты ядра бронирования.
func NewRouter(
	cfg config.App,
	availability *service.AvailabilityService,
	booking *service.BookingService,
) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	availH := NewAvailabilityHandler(availability)
	bookH := NewBookingHandler(booking)
	sessH := NewSessionHandler(booking)

	v1 := r.Group("/v1", JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/sessions/available", availH.List)
		v1.POST("/bookings", bookH.Create)
		v1.DELETE("/bookings", bookH.Cancel)
		v1.GET("/pricing/quote", PricingQuote)

		admin := v1.Group("", RequireRole(auth.RoleAdmin))
		admin.POST("/sessions", sessH.Create)
	}

	return r
}
