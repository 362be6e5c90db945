package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/Shafriii/PoC-EasyHoliday/internal/payment"
	"github.com/google/uuid"
)

// ResolveAndPrice matches the itinerary against inventory and prices the
// result. It never mutates anything; unresolved legs and stays are returned
// as failures alongside whatever did resolve.
func (e *Engine) ResolveAndPrice(ctx context.Context, itin models.Itinerary, budgetIDR int64, today time.Time) (*Resolution, error) {
	flights, flightFailures, err := e.resolveFlights(ctx, itin, today)
	if err != nil {
		return nil, err
	}

	stays, stayFailures, err := e.resolveStays(ctx, itin)
	if err != nil {
		return nil, err
	}

	failures := append(flightFailures, stayFailures...)
	return &Resolution{
		Flights:  flights,
		Stays:    stays,
		Cost:     ReconcileCost(flights, stays, budgetIDR),
		Failures: failures,
	}, nil
}

// Book resolves the itinerary and either commits a booking or returns a
// proposal. Commit requires, in order: a fully resolved itinerary, the
// auto-book grant, and a card on file. Any miss, a declined charge, or an
// availability race downgrades to StatusProposed with no inventory change.
func (e *Engine) Book(ctx context.Context, itin models.Itinerary, budgetIDR int64, state models.PaymentState, today time.Time) (*models.BookingOutcome, error) {
	res, err := e.ResolveAndPrice(ctx, itin, budgetIDR, today)
	if err != nil {
		return nil, err
	}

	if reason := CommitGate(res.FullyResolved(), len(res.Failures), state); reason != "" {
		return proposed(res, reason), nil
	}

	receipt, err := e.payments.Charge(ctx, res.Cost.GrandTotalIDR, state)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentUnavailable) {
			return proposed(res, err.Error()), nil
		}
		return nil, fmt.Errorf("failed to charge payment: %w", err)
	}

	record, err := e.CommitResolved(ctx, itin, res.Flights, res.Stays, res.Cost, receipt)
	if err != nil {
		if errors.Is(err, inventory.ErrInsufficientAvailability) {
			// Compensate the charge; the inventory itself was left untouched.
			if refundErr := e.payments.Refund(ctx, receipt.TransactionID); refundErr != nil {
				log.Printf("Booking: refund of %s failed: %v", receipt.TransactionID, refundErr)
			}
			return proposed(res, "availability changed before commit"), nil
		}
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return &models.BookingOutcome{
		Status:  models.StatusCommitted,
		Record:  record,
		Flights: res.Flights,
		Stays:   res.Stays,
		Cost:    res.Cost,
	}, nil
}

// CommitResolved builds a booking record from an already-resolved and
// already-charged itinerary and commits it against inventory. Callers get
// inventory.ErrInsufficientAvailability back untouched so they can
// compensate the charge and downgrade to a proposal.
func (e *Engine) CommitResolved(ctx context.Context, itin models.Itinerary, flights []models.ResolvedFlightPair, stays []models.StayPlan, cost models.CostBreakdown, receipt *models.PaymentReceipt) (*models.BookingRecord, error) {
	record := e.buildRecord(itin, &Resolution{Flights: flights, Stays: stays, Cost: cost}, receipt)
	if err := e.store.Commit(ctx, record, BuildConsumptions(itin, flights, stays)); err != nil {
		return nil, err
	}
	return record, nil
}

// CommitGate checks the ordered commit preconditions and returns the first
// failing reason, or "" when the booking may proceed.
func CommitGate(fullyResolved bool, failureCount int, state models.PaymentState) string {
	if !fullyResolved {
		return fmt.Sprintf("%d unresolved legs or stays", failureCount)
	}
	if !state.AutoBookAllowed {
		return "auto-book not allowed"
	}
	if !state.HasCard {
		return "no payment method on file"
	}
	return ""
}

func proposed(res *Resolution, reason string) *models.BookingOutcome {
	return &models.BookingOutcome{
		Status:   models.StatusProposed,
		Flights:  res.Flights,
		Stays:    res.Stays,
		Cost:     res.Cost,
		Failures: res.Failures,
		Reason:   reason,
	}
}

func (e *Engine) buildRecord(itin models.Itinerary, res *Resolution, receipt *models.PaymentReceipt) *models.BookingRecord {
	var cities []string
	for _, run := range itin.CityRuns() {
		cities = append(cities, run.City)
	}

	record := &models.BookingRecord{
		ID:           newBookingID(),
		Origin:       itin.Origin,
		Country:      itin.DestinationCountry,
		Cities:       cities,
		Flights:      res.Flights,
		Stays:        res.Stays,
		Cost:         res.Cost,
		PaymentToken: receipt.TransactionID,
		CreatedAt:    e.now().UTC(),
	}
	if len(itin.Days) > 0 {
		record.StartDate = models.DateOnly(itin.Days[0].Date)
		record.EndDate = models.DateOnly(itin.Days[len(itin.Days)-1].Date)
	}
	return record
}

func newBookingID() string {
	return "BK-" + strings.ToUpper(uuid.New().String()[:8])
}

// BuildConsumptions turns a resolution into the availability decrements a
// commit applies: seat units per resolved leg, room units per stay. Units
// against the same offering aggregate so the store clamps on the true total.
func BuildConsumptions(itin models.Itinerary, flights []models.ResolvedFlightPair, stays []models.StayPlan) []models.Consumption {
	type key struct {
		kind models.ConsumptionKind
		id   string
	}
	units := make(map[key]int)
	var order []key

	add := func(k key, n int) {
		if _, seen := units[k]; !seen {
			order = append(order, k)
		}
		units[k] += n
	}

	for _, pair := range flights {
		if pair.Outbound != nil {
			add(key{models.ConsumeFlightSeat, pair.Outbound.ID}, itin.SeatUnits())
		}
		if pair.Return != nil {
			add(key{models.ConsumeFlightSeat, pair.Return.ID}, itin.SeatUnits())
		}
	}
	for _, stay := range stays {
		add(key{models.ConsumeHotelRoom, stay.Hotel.ID}, itin.RoomUnits())
	}

	out := make([]models.Consumption, 0, len(order))
	for _, k := range order {
		out = append(out, models.Consumption{Kind: k.kind, OfferingID: k.id, Units: units[k]})
	}
	return out
}
