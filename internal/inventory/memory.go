package inventory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
)

// MemoryStore keeps inventory and bookings in process memory behind a
// single RWMutex. Commit validates every consumption under the write lock
// before touching anything, so concurrent callers can never drive a count
// negative or observe a half-applied booking.
type MemoryStore struct {
	mu       sync.RWMutex
	flights  []*models.FlightOffering
	hotels   []*models.HotelOffering
	bookings []models.BookingRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AddFlights loads flight offerings. Insertion order is preserved and used
// as the final tie-break in query results.
func (s *MemoryStore) AddFlights(offerings ...models.FlightOffering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range offerings {
		f := offerings[i]
		f.Date = models.DateOnly(f.Date)
		s.flights = append(s.flights, &f)
	}
}

// AddHotels loads hotel offerings.
func (s *MemoryStore) AddHotels(offerings ...models.HotelOffering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range offerings {
		h := offerings[i]
		h.AvailableFrom = models.DateOnly(h.AvailableFrom)
		h.AvailableTo = models.DateOnly(h.AvailableTo)
		s.hotels = append(s.hotels, &h)
	}
}

func sameCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// FlightsFor returns exact-date offerings with seats, cheapest first.
func (s *MemoryStore) FlightsFor(ctx context.Context, origin, destination string, date time.Time) ([]models.FlightOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FlightOffering
	for _, f := range s.flights {
		if f.SeatsLeft > 0 && sameCity(f.Origin, origin) && sameCity(f.Destination, destination) && models.SameDay(f.Date, date) {
			out = append(out, *f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceIDR < out[j].PriceIDR
	})
	return out, nil
}

// FlightsNear returns offerings with seats within maxDaySpread days of the
// requested date, ordered by date distance, then price, then earliest date.
func (s *MemoryStore) FlightsNear(ctx context.Context, origin, destination string, date time.Time, maxDaySpread int, notBefore time.Time) ([]models.FlightOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.FlightOffering
	for _, f := range s.flights {
		if f.SeatsLeft <= 0 || !sameCity(f.Origin, origin) || !sameCity(f.Destination, destination) {
			continue
		}
		if models.DaySpan(f.Date, date) > maxDaySpread {
			continue
		}
		if !notBefore.IsZero() && f.Date.Before(models.DateOnly(notBefore)) {
			continue
		}
		out = append(out, *f)
	}
	want := models.DateOnly(date)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := models.DaySpan(out[i].Date, want), models.DaySpan(out[j].Date, want)
		if di != dj {
			return di < dj
		}
		if out[i].PriceIDR != out[j].PriceIDR {
			return out[i].PriceIDR < out[j].PriceIDR
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

// HotelsFor returns style-matched offerings covering the stay, ordered by
// total stay price.
func (s *MemoryStore) HotelsFor(ctx context.Context, city string, checkIn time.Time, nights int, style models.TravelStyle) ([]models.HotelOffering, error) {
	return s.queryHotels(city, checkIn, nights, &style), nil
}

// HotelsForAnyStyle ignores the style filter; used for downgrade fallback.
func (s *MemoryStore) HotelsForAnyStyle(ctx context.Context, city string, checkIn time.Time, nights int) ([]models.HotelOffering, error) {
	return s.queryHotels(city, checkIn, nights, nil), nil
}

func (s *MemoryStore) queryHotels(city string, checkIn time.Time, nights int, style *models.TravelStyle) []models.HotelOffering {
	s.mu.RLock()
	defer s.mu.RUnlock()

	checkIn = models.DateOnly(checkIn)
	var out []models.HotelOffering
	for _, h := range s.hotels {
		if h.RoomsLeft <= 0 || !sameCity(h.City, city) || !h.Covers(checkIn, nights) {
			continue
		}
		if style != nil && h.Style != *style {
			continue
		}
		out = append(out, *h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PricePerNightIDR*int64(nights) < out[j].PricePerNightIDR*int64(nights)
	})
	return out
}

// Commit applies all consumptions and appends the booking record under one
// write lock. Every consumption is validated first; if any offering is
// short, nothing changes and ErrInsufficientAvailability is returned.
func (s *MemoryStore) Commit(ctx context.Context, record *models.BookingRecord, consumptions []models.Consumption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flightsByID := make(map[string]*models.FlightOffering, len(s.flights))
	for _, f := range s.flights {
		flightsByID[f.ID] = f
	}
	hotelsByID := make(map[string]*models.HotelOffering, len(s.hotels))
	for _, h := range s.hotels {
		hotelsByID[h.ID] = h
	}

	// Validate before applying anything.
	for _, c := range consumptions {
		switch c.Kind {
		case models.ConsumeFlightSeat:
			f, ok := flightsByID[c.OfferingID]
			if !ok {
				return ErrNotFound
			}
			if f.SeatsLeft < c.Units {
				return ErrInsufficientAvailability
			}
		case models.ConsumeHotelRoom:
			h, ok := hotelsByID[c.OfferingID]
			if !ok {
				return ErrNotFound
			}
			if h.RoomsLeft < c.Units {
				return ErrInsufficientAvailability
			}
		}
	}

	for _, c := range consumptions {
		switch c.Kind {
		case models.ConsumeFlightSeat:
			flightsByID[c.OfferingID].SeatsLeft -= c.Units
		case models.ConsumeHotelRoom:
			hotelsByID[c.OfferingID].RoomsLeft -= c.Units
		}
	}

	s.bookings = append(s.bookings, *record)
	return nil
}

// Booking returns a persisted booking by id.
func (s *MemoryStore) Booking(ctx context.Context, id string) (*models.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

// Bookings returns all persisted bookings, oldest first.
func (s *MemoryStore) Bookings(ctx context.Context) ([]models.BookingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.BookingRecord, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

// FlightSeatsLeft reports current availability for an offering id.
func (s *MemoryStore) FlightSeatsLeft(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.flights {
		if f.ID == id {
			return f.SeatsLeft, true
		}
	}
	return 0, false
}

// HotelRoomsLeft reports current availability for an offering id.
func (s *MemoryStore) HotelRoomsLeft(id string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hotels {
		if h.ID == id {
			return h.RoomsLeft, true
		}
	}
	return 0, false
}
