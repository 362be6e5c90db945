package models

import "time"

// TravelStyle is the accommodation tier a traveler asked for.
type TravelStyle string

const (
	StyleBackpacker TravelStyle = "backpacker"
	StyleMidRange   TravelStyle = "mid-range"
	StyleLuxury     TravelStyle = "luxury"
)

// FlightOffering is one dated seat inventory entry for a route.
// Identity (origin, destination, date, carrier slot) is immutable;
// SeatsLeft is the only field the booking transactor may change.
type FlightOffering struct {
	ID          string    `json:"id"`
	Carrier     string    `json:"carrier"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
	PriceIDR    int64     `json:"priceIdr"`
	SeatsLeft   int       `json:"seatsLeft"`
}

// HotelOffering is one hotel's availability window for a city and style.
// Only RoomsLeft is mutable.
type HotelOffering struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	City             string      `json:"city"`
	Country          string      `json:"country"`
	Style            TravelStyle `json:"style"`
	AvailableFrom    time.Time   `json:"availableFrom"`
	AvailableTo      time.Time   `json:"availableTo"`
	PricePerNightIDR int64       `json:"pricePerNightIdr"`
	RoomsLeft        int         `json:"roomsLeft"`
}

// Covers reports whether the offering's window fully contains the
// [checkIn, checkIn+nights) stay.
func (h HotelOffering) Covers(checkIn time.Time, nights int) bool {
	if nights < 1 {
		return false
	}
	lastNight := checkIn.AddDate(0, 0, nights-1)
	return !checkIn.Before(h.AvailableFrom) && !lastNight.After(h.AvailableTo)
}

// ConsumptionKind identifies which inventory table a consumption hits.
type ConsumptionKind string

const (
	ConsumeFlightSeat ConsumptionKind = "flight_seat"
	ConsumeHotelRoom  ConsumptionKind = "hotel_room"
)

// Consumption is one availability decrement a booking commit applies.
type Consumption struct {
	Kind       ConsumptionKind `json:"kind"`
	OfferingID string          `json:"offeringId"`
	Units      int             `json:"units"`
}

// DateOnly truncates t to a UTC calendar date. All offering dates and
// itinerary dates are compared at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}

// DaySpan returns the absolute distance between two dates in whole days.
func DaySpan(a, b time.Time) int {
	d := int(DateOnly(a).Sub(DateOnly(b)).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
