// File: routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	providerRepo "reservekit/database/repository/provider"
	"reservekit/handlers"
	"reservekit/middleware"
)

// RegisterRoutes wires the full HTTP surface onto the router.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, providers providerRepo.ProviderRepository) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", handlers.HealthHandler)

	v1 := r.Group("/v1")
	{
		// Dashboard sign-in is rate limited by client IP, not API key.
		v1.POST("/auth/token", middleware.RateLimitMiddleware(), hb.IssueTokenHandler)

		api := v1.Group("")
		api.Use(middleware.APIKeyAuthMiddleware(providers))
		api.Use(middleware.RateLimitMiddleware())

		api.POST("/services", hb.CreateServiceHandler)
		api.GET("/services", hb.ListServicesHandler)
		api.GET("/services/:id", hb.GetServiceHandler)
		api.PATCH("/services/:id", hb.UpdateServiceHandler)
		api.DELETE("/services/:id", hb.DeleteServiceHandler)

		api.GET("/time-slots", hb.ListTimeSlotsHandler)
		api.PATCH("/time-slots", hb.BatchUpsertTimeSlotsHandler)
		api.DELETE("/time-slots", hb.DeleteTimeSlotsByDayHandler)
		api.DELETE("/time-slots/:id", hb.DeleteTimeSlotHandler)

		api.POST("/bookings", hb.CreateBookingHandler)
		api.GET("/bookings", hb.ListBookingsHandler)
		api.GET("/bookings/:id", hb.GetBookingHandler)
		api.PATCH("/bookings/:id", hb.UpdateBookingHandler)
		api.DELETE("/bookings/:id", hb.DeleteBookingHandler)

		api.GET("/bookings/:id/customer", hb.GetBookingCustomerHandler)
		api.PATCH("/bookings/:id/customer", hb.UpdateBookingCustomerHandler)
	}
}
