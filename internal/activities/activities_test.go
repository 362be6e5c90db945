package activities

import (
	"context"
	"testing"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/engine"
	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/Shafriii/PoC-EasyHoliday/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func baliItinerary() models.Itinerary {
	return models.Itinerary{
		Origin:             "Jakarta",
		DestinationCountry: "Indonesia",
		Style:              models.StyleMidRange,
		Days: []models.ItineraryDay{
			{City: "Bali", Date: day("2025-03-01")},
			{City: "Bali", Date: day("2025-03-02")},
			{City: "Bali", Date: day("2025-03-03")},
		},
	}
}

func seededStore() *inventory.MemoryStore {
	store := inventory.NewMemoryStore()
	store.AddFlights(
		models.FlightOffering{ID: "OUT", Carrier: "Garuda", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-01"), PriceIDR: 1_000_000, SeatsLeft: 1},
		models.FlightOffering{ID: "RET", Carrier: "Garuda", Origin: "Bali", Destination: "Jakarta", Date: day("2025-03-03"), PriceIDR: 950_000, SeatsLeft: 1},
	)
	store.AddHotels(models.HotelOffering{
		ID: "HT-STD", Name: "Sunrise Inn", City: "Bali", Country: "Indonesia", Style: models.StyleMidRange,
		AvailableFrom: day("2025-01-01"), AvailableTo: day("2025-12-31"), PricePerNightIDR: 300_000, RoomsLeft: 2,
	})
	return store
}

func newActivityEnv(t *testing.T, store inventory.Store, gateway payment.Gateway) (*testsuite.TestActivityEnvironment, *Activities) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	acts := NewActivities(engine.New(store, gateway), gateway)
	env.RegisterActivityWithOptions(acts.ResolveItinerary, activity.RegisterOptions{Name: "ResolveItinerary"})
	env.RegisterActivityWithOptions(acts.ChargePayment, activity.RegisterOptions{Name: "ChargePayment"})
	env.RegisterActivityWithOptions(acts.CommitBooking, activity.RegisterOptions{Name: "CommitBooking"})
	env.RegisterActivityWithOptions(acts.RefundPayment, activity.RegisterOptions{Name: "RefundPayment"})
	return env, acts
}

func TestResolveItineraryActivity(t *testing.T) {
	env, _ := newActivityEnv(t, seededStore(), payment.NewSimulatedGateway())

	val, err := env.ExecuteActivity("ResolveItinerary", models.ResolveItineraryInput{
		Itinerary: baliItinerary(),
		BudgetIDR: 5_000_000,
		Today:     day("2025-02-01"),
	})
	require.NoError(t, err)

	var out models.ResolveItineraryOutput
	require.NoError(t, val.Get(&out))

	assert.Empty(t, out.Failures)
	require.Len(t, out.Flights, 1)
	assert.Equal(t, "OUT", out.Flights[0].Outbound.ID)
	require.NotNil(t, out.Flights[0].Return)
	assert.Equal(t, "RET", out.Flights[0].Return.ID)
	require.Len(t, out.Stays, 1)
	assert.Equal(t, 3, out.Stays[0].Nights)
	assert.Equal(t, int64(900_000), out.Cost.AccommodationIDR)
	assert.Equal(t, int64(5_000_000), out.Cost.BudgetIDR)
	assert.False(t, out.Cost.OverBudget)
}

func TestChargePaymentActivity(t *testing.T) {
	gateway := payment.NewSimulatedGateway()
	env, _ := newActivityEnv(t, seededStore(), gateway)

	val, err := env.ExecuteActivity("ChargePayment", models.ChargePaymentInput{
		AmountIDR: 3_060_000,
		Payment: models.PaymentState{
			HasCard:         true,
			AutoBookAllowed: true,
			Token:           "tok_demo_abc",
			CardLast4:       "4242",
		},
	})
	require.NoError(t, err)

	var out models.ChargePaymentOutput
	require.NoError(t, val.Get(&out))

	assert.False(t, out.Declined)
	require.NotNil(t, out.Receipt)
	assert.Equal(t, int64(3_060_000), out.Receipt.AmountIDR)
	amount, charged := gateway.ChargedAmount(out.Receipt.TransactionID)
	assert.True(t, charged)
	assert.Equal(t, int64(3_060_000), amount)
}

func TestChargePaymentActivityDecline(t *testing.T) {
	gateway := payment.NewSimulatedGateway()
	gateway.FailNext()
	env, _ := newActivityEnv(t, seededStore(), gateway)

	val, err := env.ExecuteActivity("ChargePayment", models.ChargePaymentInput{
		AmountIDR: 3_060_000,
		Payment: models.PaymentState{
			HasCard:         true,
			AutoBookAllowed: true,
			Token:           "tok_demo_abc",
		},
	})
	require.NoError(t, err)

	var out models.ChargePaymentOutput
	require.NoError(t, val.Get(&out))

	assert.True(t, out.Declined)
	assert.Nil(t, out.Receipt)
	assert.NotEmpty(t, out.Reason)
}

func TestCommitBookingActivity(t *testing.T) {
	store := seededStore()
	gateway := payment.NewSimulatedGateway()
	env, _ := newActivityEnv(t, store, gateway)

	eng := engine.New(store, gateway)
	res, err := eng.ResolveAndPrice(context.Background(), baliItinerary(), 5_000_000, day("2025-02-01"))
	require.NoError(t, err)
	require.True(t, res.FullyResolved())

	val, err := env.ExecuteActivity("CommitBooking", models.CommitBookingInput{
		Itinerary: baliItinerary(),
		Flights:   res.Flights,
		Stays:     res.Stays,
		Cost:      res.Cost,
		Receipt:   models.PaymentReceipt{TransactionID: "pay_test", AmountIDR: res.Cost.GrandTotalIDR},
	})
	require.NoError(t, err)

	var out models.CommitBookingOutput
	require.NoError(t, val.Get(&out))

	assert.False(t, out.InsufficientAvailability)
	require.NotNil(t, out.Record)
	assert.Contains(t, out.Record.ID, "BK-")
	seats, _ := store.FlightSeatsLeft("OUT")
	assert.Equal(t, 0, seats)
}

func TestCommitBookingActivityLosesRace(t *testing.T) {
	store := seededStore()
	gateway := payment.NewSimulatedGateway()
	env, _ := newActivityEnv(t, store, gateway)

	eng := engine.New(store, gateway)
	res, err := eng.ResolveAndPrice(context.Background(), baliItinerary(), 5_000_000, day("2025-02-01"))
	require.NoError(t, err)

	// Consume the last outbound seat before the commit lands.
	require.NoError(t, store.Commit(context.Background(), &models.BookingRecord{ID: "BK-RIVAL"}, []models.Consumption{
		{Kind: models.ConsumeFlightSeat, OfferingID: "OUT", Units: 1},
	}))

	val, err := env.ExecuteActivity("CommitBooking", models.CommitBookingInput{
		Itinerary: baliItinerary(),
		Flights:   res.Flights,
		Stays:     res.Stays,
		Cost:      res.Cost,
		Receipt:   models.PaymentReceipt{TransactionID: "pay_test", AmountIDR: res.Cost.GrandTotalIDR},
	})
	require.NoError(t, err)

	var out models.CommitBookingOutput
	require.NoError(t, val.Get(&out))

	assert.True(t, out.InsufficientAvailability)
	assert.Nil(t, out.Record)
	rooms, _ := store.HotelRoomsLeft("HT-STD")
	assert.Equal(t, 2, rooms)
}

func TestRefundPaymentActivity(t *testing.T) {
	gateway := payment.NewSimulatedGateway()
	env, _ := newActivityEnv(t, seededStore(), gateway)

	receipt, err := gateway.Charge(context.Background(), 1_000_000, models.PaymentState{
		HasCard: true,
		Token:   "tok_demo_abc",
	})
	require.NoError(t, err)

	_, err = env.ExecuteActivity("RefundPayment", models.RefundPaymentInput{
		TransactionID: receipt.TransactionID,
	})
	require.NoError(t, err)
	assert.True(t, gateway.Refunded(receipt.TransactionID))
}
