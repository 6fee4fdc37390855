package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"campsite-backend/config"
	"campsite-backend/controllers"
	"campsite-backend/locks"
	"campsite-backend/repository"
	"campsite-backend/routes"
	"campsite-backend/services"
	"campsite-backend/tracing"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	settings := config.Load()
	gin.SetMode(settings.GinMode)

	shutdownTracing := tracing.Init(settings.ServiceName, settings.OTLPEndpoint)

	db, err := config.ConnectDatabase(settings)
	if err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Database handle unavailable: %v", err)
	}
	log.Printf("✅ Database connection established (%s), migrations applied", settings.DBDriver)

	checks := map[string]controllers.HealthCheck{
		"database": sqlDB.PingContext,
	}

	// Split and merge locks are shared through Redis when it is configured.
	var locker locks.Locker = locks.NewMemoryLocker()
	var rdb *redis.Client
	if settings.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
			DB:       settings.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("⚠️ Redis at %s unreachable (%v); using in-process locks", settings.RedisAddr, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			locker = locks.NewRedisLocker(rdb, 0)
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			log.Printf("✅ Redis locks enabled (%s)", settings.RedisAddr)
		}
	}

	// Repositories
	pitchRepo := repository.NewPitchRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	customerRepo := repository.NewCustomerRepository(db)

	// Services
	pricingService := services.NewPricingService(seasonRepo)
	availabilityService := services.NewAvailabilityService(pitchRepo, bookingRepo)
	pitchService := services.NewPitchService(pitchRepo, locker)
	bookingService := services.NewBookingService(bookingRepo, pitchRepo, customerRepo, pricingService)
	seasonService := services.NewSeasonService(seasonRepo)
	customerService := services.NewCustomerService(customerRepo)
	dashboardService := services.NewDashboardService(pitchRepo, bookingRepo, seasonRepo)

	// Controllers
	router := routes.SetupRouter(routes.Controllers{
		Availability: controllers.NewAvailabilityController(availabilityService),
		Pricing:      controllers.NewPricingController(pricingService, seasonService),
		Pitch:        controllers.NewPitchController(pitchService),
		Booking:      controllers.NewBookingController(bookingService),
		Customer:     controllers.NewCustomerController(customerService),
		Dashboard:    controllers.NewDashboardController(dashboardService),
		Health:       controllers.NewHealthController(checks),
	}, settings.CorsOrigins)

	addr := ":" + settings.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	if shutdownTracing != nil {
		shutdownTracing(ctx)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = sqlDB.Close()

	log.Println("✅ Server stopped gracefully")
}
