package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"villa-backend/config"
	"villa-backend/controllers"
	"villa-backend/queue"
	"villa-backend/routes"
	"villa-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Optional Redis for the public response cache
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("⚠️  Redis not reachable; response caching disabled")
	} else {
		log.Println("✅ Redis connected; response caching enabled")
	}

	// Optional booking-event consumer
	if queue.Enabled() {
		go queue.StartBookingConsumer()
		log.Println("✅ Booking event consumer started")
	}

	// Initialize services
	couponService := services.NewCouponService(db)
	loyaltyService := services.NewLoyaltyService(db)
	emailService := services.NewEmailService(db)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, couponService, loyaltyService, emailService)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService)
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	couponController := controllers.NewCouponController(couponService)
	loyaltyController := controllers.NewLoyaltyController(loyaltyService)
	emailController := controllers.NewEmailController(emailService)
	hostController := controllers.NewHostController(bookingService, availabilityService)

	// Build router
	router := routes.SetupRouter(
		bookingController,
		availabilityController,
		couponController,
		loyaltyController,
		emailController,
		hostController,
		rdb,
	)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

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
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
