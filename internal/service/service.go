// Package service sits between the HTTP layer and the booking engine. It
// answers inventory searches straight from the store, prices trips through
// the engine, and books either through the Temporal workflow (when a client
// is configured) or the in-process engine.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/engine"
	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/Shafriii/PoC-EasyHoliday/internal/websocket"
	"github.com/Shafriii/PoC-EasyHoliday/internal/workflows"
	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
)

// BookingService defines what the HTTP layer needs from the booking core.
type BookingService interface {
	SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]models.FlightOffering, error)
	SearchHotels(ctx context.Context, city string, checkIn time.Time, nights int, style models.TravelStyle) ([]models.HotelOffering, error)
	PriceTrip(ctx context.Context, itinerary models.Itinerary, budgetIDR int64) (*models.PriceTripResponse, error)
	Book(ctx context.Context, itinerary models.Itinerary, budgetIDR int64, payment models.PaymentState) (*models.BookingOutcome, error)
	GetBooking(ctx context.Context, id string) (*models.BookingRecord, error)
	ListBookings(ctx context.Context) ([]models.BookingRecord, error)
}

// bookingServiceImpl implements BookingService
type bookingServiceImpl struct {
	store          inventory.Store
	engine         *engine.Engine
	temporalClient client.Client
	hub            *websocket.Hub
	now            func() time.Time
}

// NewBookingService creates a new BookingService. temporalClient and hub may
// be nil; booking then runs in-process and no availability updates are
// pushed.
func NewBookingService(store inventory.Store, eng *engine.Engine, temporalClient client.Client, hub *websocket.Hub) BookingService {
	return &bookingServiceImpl{
		store:          store,
		engine:         eng,
		temporalClient: temporalClient,
		hub:            hub,
		now:            time.Now,
	}
}

func (s *bookingServiceImpl) SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]models.FlightOffering, error) {
	return s.store.FlightsFor(ctx, origin, destination, date)
}

func (s *bookingServiceImpl) SearchHotels(ctx context.Context, city string, checkIn time.Time, nights int, style models.TravelStyle) ([]models.HotelOffering, error) {
	if style == "" {
		return s.store.HotelsForAnyStyle(ctx, city, checkIn, nights)
	}
	return s.store.HotelsFor(ctx, city, checkIn, nights, style)
}

func (s *bookingServiceImpl) PriceTrip(ctx context.Context, itinerary models.Itinerary, budgetIDR int64) (*models.PriceTripResponse, error) {
	res, err := s.engine.ResolveAndPrice(ctx, itinerary, budgetIDR, s.today())
	if err != nil {
		return nil, err
	}
	return &models.PriceTripResponse{
		Flights:  res.Flights,
		Stays:    res.Stays,
		Cost:     res.Cost,
		Failures: res.Failures,
	}, nil
}

func (s *bookingServiceImpl) Book(ctx context.Context, itinerary models.Itinerary, budgetIDR int64, payment models.PaymentState) (*models.BookingOutcome, error) {
	outcome, err := s.book(ctx, itinerary, budgetIDR, payment)
	if err != nil {
		return nil, err
	}
	if outcome.Status == models.StatusCommitted {
		s.notifyCommitted(itinerary, outcome)
	}
	return outcome, nil
}

func (s *bookingServiceImpl) book(ctx context.Context, itinerary models.Itinerary, budgetIDR int64, payment models.PaymentState) (*models.BookingOutcome, error) {
	if s.temporalClient == nil {
		return s.engine.Book(ctx, itinerary, budgetIDR, payment, s.today())
	}

	workflowOptions := client.StartWorkflowOptions{
		ID:        "vacation-booking-" + uuid.New().String()[:8],
		TaskQueue: workflows.TaskQueue,
	}

	run, err := s.temporalClient.ExecuteWorkflow(ctx, workflowOptions, workflows.VacationBookingWorkflow, models.BookingWorkflowInput{
		Itinerary: itinerary,
		BudgetIDR: budgetIDR,
		Payment:   payment,
		Today:     s.today(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start workflow: %w", err)
	}

	var result models.BookingWorkflowResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, fmt.Errorf("workflow failed: %w", err)
	}
	return outcomeFrom(result)
}

// outcomeFrom unwraps a workflow result. A completed workflow always carries
// an outcome; a missing one is reported instead of dereferenced downstream.
func outcomeFrom(result models.BookingWorkflowResult) (*models.BookingOutcome, error) {
	if result.Outcome == nil {
		return nil, fmt.Errorf("workflow completed without an outcome")
	}
	return result.Outcome, nil
}

func (s *bookingServiceImpl) GetBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	return s.store.Booking(ctx, id)
}

func (s *bookingServiceImpl) ListBookings(ctx context.Context) ([]models.BookingRecord, error) {
	return s.store.Bookings(ctx)
}

func (s *bookingServiceImpl) today() time.Time {
	return models.DateOnly(s.now())
}

// notifyCommitted pushes the post-commit unit counts for every offering the
// booking consumed. Counts are derived from the resolved offerings, which
// were read just before the commit.
func (s *bookingServiceImpl) notifyCommitted(itinerary models.Itinerary, outcome *models.BookingOutcome) {
	if s.hub == nil || outcome.Record == nil {
		return
	}

	unitsLeft := make(map[string]int)
	kinds := make(map[string]models.ConsumptionKind)
	for _, pair := range outcome.Flights {
		for _, leg := range []*models.FlightOffering{pair.Outbound, pair.Return} {
			if leg != nil {
				unitsLeft[leg.ID] = leg.SeatsLeft
				kinds[leg.ID] = models.ConsumeFlightSeat
			}
		}
	}
	for _, stay := range outcome.Stays {
		unitsLeft[stay.Hotel.ID] = stay.Hotel.RoomsLeft
		kinds[stay.Hotel.ID] = models.ConsumeHotelRoom
	}

	consumptions := engine.BuildConsumptions(itinerary, outcome.Flights, outcome.Stays)
	updates := make([]websocket.AvailabilityUpdate, 0, len(consumptions))
	for _, c := range consumptions {
		left := unitsLeft[c.OfferingID] - c.Units
		if left < 0 {
			left = 0
		}
		updates = append(updates, websocket.AvailabilityUpdate{
			OfferingID: c.OfferingID,
			Kind:       string(kinds[c.OfferingID]),
			UnitsLeft:  left,
		})
	}
	s.hub.BroadcastBookingCommitted(outcome.Record.ID, updates)
}
