package engine

import (
	"context"
	"testing"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoBookState() models.PaymentState {
	return models.PaymentState{
		HasCard:         true,
		AutoBookAllowed: true,
		Token:           "tok_demo_abc",
		CardLast4:       "1111",
	}
}

func TestBook_CommitsAndConsumesInventory(t *testing.T) {
	store := baliStore()
	e, gateway := newTestEngine(store)

	outcome, err := e.Book(context.Background(), baliItinerary(), 5_000_000, autoBookState(), day("2025-02-01"))
	require.NoError(t, err)
	require.Equal(t, models.StatusCommitted, outcome.Status)
	require.NotNil(t, outcome.Record)

	record := outcome.Record
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, []string{"Bali"}, record.Cities)
	assert.Equal(t, int64(3_420_000), record.Cost.GrandTotalIDR)

	amount, ok := gateway.ChargedAmount(record.PaymentToken)
	require.True(t, ok)
	assert.Equal(t, record.Cost.GrandTotalIDR, amount)

	seats, _ := store.FlightSeatsLeft("OUT")
	assert.Equal(t, 0, seats)
	seats, _ = store.FlightSeatsLeft("RET")
	assert.Equal(t, 0, seats)
	rooms, _ := store.HotelRoomsLeft("HT-STD")
	assert.Equal(t, 1, rooms)

	persisted, err := store.Booking(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.PaymentToken, persisted.PaymentToken)
}

func TestBook_SecondCallProposedWhenSeatsExhausted(t *testing.T) {
	store := baliStore()
	e, _ := newTestEngine(store)
	ctx := context.Background()

	first, err := e.Book(ctx, baliItinerary(), 5_000_000, autoBookState(), day("2025-02-01"))
	require.NoError(t, err)
	require.Equal(t, models.StatusCommitted, first.Status)

	second, err := e.Book(ctx, baliItinerary(), 5_000_000, autoBookState(), day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, second.Status)
	assert.Nil(t, second.Record)
	assert.NotEmpty(t, second.Failures)

	// Availability is exhausted, never negative.
	seats, _ := store.FlightSeatsLeft("OUT")
	assert.Equal(t, 0, seats)
}

func TestBook_ProposedWithoutAutoBookGrant(t *testing.T) {
	store := baliStore()
	e, _ := newTestEngine(store)

	state := autoBookState()
	state.AutoBookAllowed = false

	outcome, err := e.Book(context.Background(), baliItinerary(), 5_000_000, state, day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, outcome.Status)
	assert.Contains(t, outcome.Reason, "auto-book")

	// Proposal still carries the full priced resolution.
	assert.Len(t, outcome.Flights, 1)
	assert.Len(t, outcome.Stays, 1)
	assert.Equal(t, int64(3_420_000), outcome.Cost.GrandTotalIDR)

	// Nothing was consumed.
	seats, _ := store.FlightSeatsLeft("OUT")
	assert.Equal(t, 1, seats)
}

func TestBook_ProposedWithoutCard(t *testing.T) {
	e, _ := newTestEngine(baliStore())

	state := autoBookState()
	state.HasCard = false

	outcome, err := e.Book(context.Background(), baliItinerary(), 5_000_000, state, day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, outcome.Status)
	assert.Contains(t, outcome.Reason, "payment method")
}

func TestBook_ProposedWhenUnresolved(t *testing.T) {
	store := baliStore()
	e, gateway := newTestEngine(store)

	itin := baliItinerary()
	itin.Origin = "Surabaya"

	outcome, err := e.Book(context.Background(), itin, 5_000_000, autoBookState(), day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, outcome.Status)
	assert.NotEmpty(t, outcome.Failures)

	// The gate fires before the charge; nothing was billed.
	_, ok := gateway.ChargedAmount("")
	assert.False(t, ok)
	rooms, _ := store.HotelRoomsLeft("HT-STD")
	assert.Equal(t, 2, rooms)
}

func TestBook_PaymentDeclineAbortsBeforeInventory(t *testing.T) {
	store := baliStore()
	e, gateway := newTestEngine(store)
	gateway.FailNext()

	outcome, err := e.Book(context.Background(), baliItinerary(), 5_000_000, autoBookState(), day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, outcome.Status)
	assert.Contains(t, outcome.Reason, "payment unavailable")

	seats, _ := store.FlightSeatsLeft("OUT")
	assert.Equal(t, 1, seats)
	rooms, _ := store.HotelRoomsLeft("HT-STD")
	assert.Equal(t, 2, rooms)
}

func TestBook_CommitRaceRefundsAndProposes(t *testing.T) {
	store := baliStore()
	e, gateway := newTestEngine(store)

	// Two travelers need two seats; each leg has one. Resolution succeeds
	// (seats remain on sale) but the clamped commit must refuse.
	itin := baliItinerary()
	itin.Travelers = 2

	outcome, err := e.Book(context.Background(), itin, 10_000_000, autoBookState(), day("2025-02-01"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusProposed, outcome.Status)
	assert.Contains(t, outcome.Reason, "availability changed")

	// The charge landed first and was compensated.
	require.Len(t, outcome.Flights, 1)
	seats, _ := store.FlightSeatsLeft("OUT")
	assert.Equal(t, 1, seats, "clamped commit must leave availability untouched")

	bookings, err := store.Bookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, bookings)

	// Exactly one charge happened and it was refunded.
	assert.Nil(t, outcome.Record)
	assert.Equal(t, 1, gateway.ChargeCount())
	assert.Equal(t, 1, gateway.RefundCount())
}

func TestBuildConsumptions_AggregatesPerOffering(t *testing.T) {
	itin := models.Itinerary{Travelers: 2, Rooms: 1}

	shared := &models.FlightOffering{ID: "SHARED"}
	flights := []models.ResolvedFlightPair{
		{Outbound: shared},
		{Outbound: shared},
	}
	stays := []models.StayPlan{{Hotel: models.HotelOffering{ID: "HT"}}}

	got := BuildConsumptions(itin, flights, stays)
	require.Len(t, got, 2)
	assert.Equal(t, models.Consumption{Kind: models.ConsumeFlightSeat, OfferingID: "SHARED", Units: 4}, got[0])
	assert.Equal(t, models.Consumption{Kind: models.ConsumeHotelRoom, OfferingID: "HT", Units: 1}, got[1])
}
