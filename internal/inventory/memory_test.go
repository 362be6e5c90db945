package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func setupTestStore() *MemoryStore {
	store := NewMemoryStore()
	store.AddFlights(
		models.FlightOffering{ID: "FL-1", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-01"), PriceIDR: 1_000_000, SeatsLeft: 1},
		models.FlightOffering{ID: "FL-2", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-01"), PriceIDR: 1_200_000, SeatsLeft: 5},
		models.FlightOffering{ID: "FL-3", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-03"), PriceIDR: 800_000, SeatsLeft: 3},
		models.FlightOffering{ID: "FL-4", Origin: "Bali", Destination: "Jakarta", Date: day("2025-03-08"), PriceIDR: 950_000, SeatsLeft: 2},
	)
	store.AddHotels(
		models.HotelOffering{
			ID: "HT-1", Name: "Sunrise Standard", City: "Bali", Country: "Indonesia",
			Style: models.StyleMidRange, AvailableFrom: day("2025-03-01"), AvailableTo: day("2025-03-31"),
			PricePerNightIDR: 300_000, RoomsLeft: 4,
		},
		models.HotelOffering{
			ID: "HT-2", Name: "Cliff Villas", City: "Bali", Country: "Indonesia",
			Style: models.StyleLuxury, AvailableFrom: day("2025-03-01"), AvailableTo: day("2025-03-05"),
			PricePerNightIDR: 1_500_000, RoomsLeft: 1,
		},
	)
	return store
}

func TestFlightsFor_OrderedByPrice(t *testing.T) {
	store := setupTestStore()

	flights, err := store.FlightsFor(context.Background(), "Jakarta", "Bali", day("2025-03-01"))
	require.NoError(t, err)
	require.Len(t, flights, 2)
	assert.Equal(t, "FL-1", flights[0].ID)
	assert.Equal(t, "FL-2", flights[1].ID)
}

func TestFlightsFor_EmptyWhenNoMatch(t *testing.T) {
	store := setupTestStore()

	flights, err := store.FlightsFor(context.Background(), "Jakarta", "Bali", day("2025-03-02"))
	require.NoError(t, err)
	assert.Empty(t, flights)
}

func TestFlightsFor_SkipsSoldOut(t *testing.T) {
	store := setupTestStore()
	require.NoError(t, store.Commit(context.Background(), &models.BookingRecord{ID: "b1"}, []models.Consumption{
		{Kind: models.ConsumeFlightSeat, OfferingID: "FL-1", Units: 1},
	}))

	flights, err := store.FlightsFor(context.Background(), "Jakarta", "Bali", day("2025-03-01"))
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "FL-2", flights[0].ID)
}

func TestFlightsNear_OrderedByDateDistanceThenPrice(t *testing.T) {
	store := NewMemoryStore()
	store.AddFlights(
		models.FlightOffering{ID: "A", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-04"), PriceIDR: 500_000, SeatsLeft: 1},
		models.FlightOffering{ID: "B", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-03"), PriceIDR: 900_000, SeatsLeft: 1},
		models.FlightOffering{ID: "C", Origin: "Jakarta", Destination: "Bali", Date: day("2025-03-03"), PriceIDR: 700_000, SeatsLeft: 1},
	)

	flights, err := store.FlightsNear(context.Background(), "Jakarta", "Bali", day("2025-03-02"), 3, time.Time{})
	require.NoError(t, err)
	require.Len(t, flights, 3)
	// One day away beats two days away regardless of price.
	assert.Equal(t, "C", flights[0].ID)
	assert.Equal(t, "B", flights[1].ID)
	assert.Equal(t, "A", flights[2].ID)
}

func TestFlightsNear_RespectsSpreadAndNotBefore(t *testing.T) {
	store := setupTestStore()

	// FL-3 departs 2025-03-03, two days past the requested date.
	flights, err := store.FlightsNear(context.Background(), "Jakarta", "Bali", day("2025-03-05"), 1, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, flights)

	flights, err = store.FlightsNear(context.Background(), "Jakarta", "Bali", day("2025-03-05"), 3, day("2025-03-04"))
	require.NoError(t, err)
	assert.Empty(t, flights, "offerings before notBefore must be excluded")
}

func TestHotelsFor_WindowMustCoverStay(t *testing.T) {
	store := setupTestStore()

	// 3 nights from 2025-03-04 runs through 2025-03-06; Cliff Villas' window
	// ends 2025-03-05 so only a full-cover query on earlier dates finds it.
	hotels, err := store.HotelsFor(context.Background(), "Bali", day("2025-03-04"), 3, models.StyleLuxury)
	require.NoError(t, err)
	assert.Empty(t, hotels)

	hotels, err = store.HotelsFor(context.Background(), "Bali", day("2025-03-03"), 3, models.StyleLuxury)
	require.NoError(t, err)
	require.Len(t, hotels, 1)
	assert.Equal(t, "HT-2", hotels[0].ID)
}

func TestHotelsForAnyStyle_IgnoresStyleFilter(t *testing.T) {
	store := setupTestStore()

	hotels, err := store.HotelsForAnyStyle(context.Background(), "Bali", day("2025-03-01"), 3)
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	// Cheapest total stay price first.
	assert.Equal(t, "HT-1", hotels[0].ID)
}

func TestCommit_DecrementsAndAppends(t *testing.T) {
	store := setupTestStore()
	record := &models.BookingRecord{ID: "BK-1", CreatedAt: time.Now()}

	err := store.Commit(context.Background(), record, []models.Consumption{
		{Kind: models.ConsumeFlightSeat, OfferingID: "FL-2", Units: 2},
		{Kind: models.ConsumeHotelRoom, OfferingID: "HT-1", Units: 1},
	})
	require.NoError(t, err)

	seats, ok := store.FlightSeatsLeft("FL-2")
	require.True(t, ok)
	assert.Equal(t, 3, seats)

	rooms, ok := store.HotelRoomsLeft("HT-1")
	require.True(t, ok)
	assert.Equal(t, 3, rooms)

	got, err := store.Booking(context.Background(), "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "BK-1", got.ID)
}

func TestCommit_InsufficientAvailabilityLeavesEverythingUntouched(t *testing.T) {
	store := setupTestStore()

	err := store.Commit(context.Background(), &models.BookingRecord{ID: "BK-1"}, []models.Consumption{
		{Kind: models.ConsumeFlightSeat, OfferingID: "FL-2", Units: 1},
		{Kind: models.ConsumeFlightSeat, OfferingID: "FL-1", Units: 2}, // only 1 seat left
	})
	require.ErrorIs(t, err, ErrInsufficientAvailability)

	// The valid first consumption must not have been applied either.
	seats, _ := store.FlightSeatsLeft("FL-2")
	assert.Equal(t, 5, seats)
	seats, _ = store.FlightSeatsLeft("FL-1")
	assert.Equal(t, 1, seats)

	_, err = store.Booking(context.Background(), "BK-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommit_NeverWritesNegative(t *testing.T) {
	store := setupTestStore()
	ctx := context.Background()

	consume := []models.Consumption{{Kind: models.ConsumeFlightSeat, OfferingID: "FL-1", Units: 1}}
	require.NoError(t, store.Commit(ctx, &models.BookingRecord{ID: "BK-1"}, consume))

	err := store.Commit(ctx, &models.BookingRecord{ID: "BK-2"}, consume)
	require.ErrorIs(t, err, ErrInsufficientAvailability)

	seats, _ := store.FlightSeatsLeft("FL-1")
	assert.Equal(t, 0, seats)
}

func TestBookings_OldestFirst(t *testing.T) {
	store := setupTestStore()
	ctx := context.Background()

	require.NoError(t, store.Commit(ctx, &models.BookingRecord{ID: "BK-1"}, nil))
	require.NoError(t, store.Commit(ctx, &models.BookingRecord{ID: "BK-2"}, nil))

	all, err := store.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "BK-1", all[0].ID)
	assert.Equal(t, "BK-2", all[1].ID)
}
