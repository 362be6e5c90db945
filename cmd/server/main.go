package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/database"
	"github.com/Shafriii/PoC-EasyHoliday/internal/engine"
	"github.com/Shafriii/PoC-EasyHoliday/internal/handlers"
	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/payment"
	"github.com/Shafriii/PoC-EasyHoliday/internal/router"
	"github.com/Shafriii/PoC-EasyHoliday/internal/service"
	"github.com/Shafriii/PoC-EasyHoliday/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
)

func main() {
	// Load .env if present; real env vars win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	port := getEnv("API_PORT", "8080")
	dbURL := os.Getenv("DATABASE_URL")
	temporalHost := os.Getenv("TEMPORAL_HOST")

	// Inventory store: Postgres when DATABASE_URL is set, otherwise the
	// in-memory store seeded from JSON snapshots.
	var store inventory.Store
	if dbURL != "" {
		log.Println("Connecting to database...")
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		log.Println("Connected to database")
		store = database.NewStore(pool)
	} else {
		mem := inventory.NewMemoryStore()
		flightsFile := getEnv("FLIGHTS_FILE", "data/flights.json")
		hotelsFile := getEnv("HOTELS_FILE", "data/hotels.json")

		n, err := inventory.LoadFlightsFile(mem, flightsFile)
		if err != nil {
			log.Fatalf("Failed to load flights from %s: %v", flightsFile, err)
		}
		m, err := inventory.LoadHotelsFile(mem, hotelsFile)
		if err != nil {
			log.Fatalf("Failed to load hotels from %s: %v", hotelsFile, err)
		}
		log.Printf("Loaded %d flights and %d hotels into memory store", n, m)
		store = mem
	}

	// Temporal is optional; without it bookings run in-process.
	var temporalClient client.Client
	if temporalHost != "" {
		c, err := client.Dial(client.Options{
			HostPort: temporalHost,
		})
		if err != nil {
			log.Fatalf("Failed to create Temporal client: %v", err)
		}
		defer c.Close()
		temporalClient = c
		log.Printf("Connected to Temporal server at %s", temporalHost)
	} else {
		log.Println("TEMPORAL_HOST not set, booking runs in-process")
	}

	hub := websocket.NewHub()
	go hub.Run()

	eng := engine.New(store, payment.NewSimulatedGateway())
	bookingService := service.NewBookingService(store, eng, temporalClient, hub)

	h := handlers.NewHandler(bookingService)
	r := router.SetupRouter(h, hub)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("API Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
