package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campsite-backend/controllers"
	"campsite-backend/metrics"
	"campsite-backend/middleware"
	"campsite-backend/tracing"
)

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Availability *controllers.AvailabilityController
	Pricing      *controllers.PricingController
	Pitch        *controllers.PitchController
	Booking      *controllers.BookingController
	Customer     *controllers.CustomerController
	Dashboard    *controllers.DashboardController
	Health       *controllers.HealthController
}

// ParseCorsOrigins splits a comma separated CORS_ORIGINS value, defaulting to "*".
func ParseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(ctl Controllers, corsOrigins string) *gin.Engine {
	controllers.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), metrics.Middleware, tracing.Middleware())

	origins := ParseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", ctl.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/availability", ctl.Availability.GetAvailability)
		api.GET("/occupancy", ctl.Availability.GetOccupancy)

		pricing := api.Group("/pricing")
		{
			pricing.GET("/calculate", ctl.Pricing.CalculatePrice)
			pricing.GET("/seasons", ctl.Pricing.GetSeasons)
			pricing.GET("/seasons/:id", ctl.Pricing.GetSeason)
			pricing.POST("/seasons", ctl.Pricing.CreateSeason)
			pricing.PUT("/seasons/:id", ctl.Pricing.UpdateSeason)
			pricing.DELETE("/seasons/:id", ctl.Pricing.DeleteSeason)
		}

		pitches := api.Group("/pitches")
		{
			pitches.GET("", ctl.Pitch.GetPitches)
			// must stay above /:id
			pitches.POST("/split", ctl.Pitch.SplitPitch)
			pitches.POST("/merge", ctl.Pitch.MergePitches)

			pitches.GET("/:id", ctl.Pitch.GetPitch)
			pitches.POST("", ctl.Pitch.CreatePitch)
			pitches.PUT("/:id", ctl.Pitch.UpdatePitch)
			pitches.DELETE("/:id", ctl.Pitch.DeletePitch)
		}

		sectors := api.Group("/sectors")
		{
			sectors.GET("", ctl.Pitch.GetSectors)
			sectors.POST("", ctl.Pitch.CreateSector)
			sectors.DELETE("/:id", ctl.Pitch.DeleteSector)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctl.Booking.GetBookings)
			bookings.POST("", ctl.Booking.CreateBooking)
			bookings.GET("/:id", ctl.Booking.GetBooking)
			bookings.PUT("/:id/dates", ctl.Booking.RescheduleBooking)
			bookings.POST("/:id/checkin", ctl.Booking.CheckInBooking)
			bookings.POST("/:id/checkout", ctl.Booking.CheckoutBooking)
			bookings.POST("/:id/cancel", ctl.Booking.CancelBooking)
			bookings.DELETE("/:id", ctl.Booking.DeleteBooking)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", ctl.Customer.GetCustomers)
			customers.GET("/:id", ctl.Customer.GetCustomer)
			customers.POST("", ctl.Customer.CreateCustomer)
			customers.PUT("/:id", ctl.Customer.UpdateCustomer)
			customers.DELETE("/:id", ctl.Customer.DeleteCustomer)
		}

		api.GET("/dashboard/stats", ctl.Dashboard.GetStats)
	}

	return r
}
