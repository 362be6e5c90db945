package main

import (
	"context"
	"log"
	"os"

	"github.com/Shafriii/PoC-EasyHoliday/internal/activities"
	"github.com/Shafriii/PoC-EasyHoliday/internal/database"
	"github.com/Shafriii/PoC-EasyHoliday/internal/engine"
	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/payment"
	"github.com/Shafriii/PoC-EasyHoliday/internal/workflows"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	temporalHost := getEnv("TEMPORAL_HOST", "localhost:7233")
	dbURL := os.Getenv("DATABASE_URL")

	// The worker shares the server's store selection: Postgres when
	// configured, seeded memory store otherwise.
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

	log.Printf("Connecting to Temporal at %s...", temporalHost)
	c, err := client.Dial(client.Options{
		HostPort: temporalHost,
	})
	if err != nil {
		log.Fatalf("Failed to connect to Temporal: %v", err)
	}
	defer c.Close()
	log.Println("Connected to Temporal")

	w := worker.New(c, workflows.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.VacationBookingWorkflow)

	gateway := payment.NewSimulatedGateway()
	acts := activities.NewActivities(engine.New(store, gateway), gateway)
	w.RegisterActivityWithOptions(acts.ResolveItinerary, activity.RegisterOptions{Name: "ResolveItinerary"})
	w.RegisterActivityWithOptions(acts.ChargePayment, activity.RegisterOptions{Name: "ChargePayment"})
	w.RegisterActivityWithOptions(acts.CommitBooking, activity.RegisterOptions{Name: "CommitBooking"})
	w.RegisterActivityWithOptions(acts.RefundPayment, activity.RegisterOptions{Name: "RefundPayment"})

	log.Println("Starting Temporal worker...")
	err = w.Run(worker.InterruptCh())
	if err != nil {
		log.Fatalf("Worker failed: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
