package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
)

var (
	// ErrInsufficientAvailability is returned by Commit when any consumed
	// offering no longer has enough units. The whole commit is rolled back;
	// a negative count is never written.
	ErrInsufficientAvailability = errors.New("insufficient availability")

	// ErrNotFound is returned for lookups of unknown offerings or bookings.
	ErrNotFound = errors.New("not found")
)

// Store is the queryable view over flight and hotel inventory plus the
// append-only booking log. All query methods are read-only and return empty
// results, not errors, when nothing matches. Commit is the only mutation:
// it decrements availability and appends the booking record as one atomic
// unit per store.
type Store interface {
	// FlightsFor returns offerings with seats on the exact date,
	// cheapest first.
	FlightsFor(ctx context.Context, origin, destination string, date time.Time) ([]models.FlightOffering, error)

	// FlightsNear returns offerings with seats within maxDaySpread days of
	// date (never before notBefore), ordered by date distance then price.
	FlightsNear(ctx context.Context, origin, destination string, date time.Time, maxDaySpread int, notBefore time.Time) ([]models.FlightOffering, error)

	// HotelsFor returns offerings of the requested style whose window fully
	// covers [checkIn, checkIn+nights), ordered by total stay price.
	HotelsFor(ctx context.Context, city string, checkIn time.Time, nights int, style models.TravelStyle) ([]models.HotelOffering, error)

	// HotelsForAnyStyle is HotelsFor without the style filter; the caller
	// marks the resulting stay as downgraded.
	HotelsForAnyStyle(ctx context.Context, city string, checkIn time.Time, nights int) ([]models.HotelOffering, error)

	// Commit atomically applies every consumption and appends the record.
	// Returns ErrInsufficientAvailability, with no partial effects, when any
	// offering cannot cover its units.
	Commit(ctx context.Context, record *models.BookingRecord, consumptions []models.Consumption) error

	// Booking returns a persisted booking by id.
	Booking(ctx context.Context, id string) (*models.BookingRecord, error)

	// Bookings returns all persisted bookings, oldest first.
	Bookings(ctx context.Context) ([]models.BookingRecord, error)
}
