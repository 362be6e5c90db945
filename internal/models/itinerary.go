package models

import "time"

// Activity is one scheduled item on an itinerary day with its cost estimate.
type Activity struct {
	Name       string `json:"name"`
	EstCostIDR int64  `json:"estCostIdr"`
}

// ItineraryDay is one calendar day of a generated travel plan.
type ItineraryDay struct {
	City       string     `json:"city"`
	Date       time.Time  `json:"date"`
	Activities []Activity `json:"activities,omitempty"`
}

// Itinerary is the day-by-day plan produced by the external generation
// collaborator. It arrives already validated: days are ordered by date and
// multi-city plans visit at least three distinct cities.
type Itinerary struct {
	Origin             string         `json:"origin"`
	DestinationCountry string         `json:"destinationCountry"`
	Style              TravelStyle    `json:"style"`
	Travelers          int            `json:"travelers,omitempty"` // seats per leg, default 1
	Rooms              int            `json:"rooms,omitempty"`     // rooms per stay, default 1
	Days               []ItineraryDay `json:"days"`
}

// SeatUnits returns the seats consumed per resolved leg.
func (i Itinerary) SeatUnits() int {
	if i.Travelers < 1 {
		return 1
	}
	return i.Travelers
}

// RoomUnits returns the rooms consumed per stay plan.
func (i Itinerary) RoomUnits() int {
	if i.Rooms < 1 {
		return 1
	}
	return i.Rooms
}

// CityRun is a maximal run of consecutive itinerary days spent in one city.
type CityRun struct {
	City    string
	CheckIn time.Time
	Nights  int
}

// CityRuns splits the itinerary into consecutive same-city runs, in
// itinerary order. Each run becomes one stay to plan.
func (i Itinerary) CityRuns() []CityRun {
	var runs []CityRun
	for _, day := range i.Days {
		if n := len(runs); n > 0 && runs[n-1].City == day.City {
			runs[n-1].Nights++
			continue
		}
		runs = append(runs, CityRun{City: day.City, CheckIn: DateOnly(day.Date), Nights: 1})
	}
	return runs
}

// StayPlan records how one city's stay resolved against hotel inventory.
type StayPlan struct {
	City           string        `json:"city"`
	CheckIn        time.Time     `json:"checkIn"`
	Nights         int           `json:"nights"`
	Hotel          HotelOffering `json:"hotel"`
	EffectiveStyle TravelStyle   `json:"effectiveStyle"`
	Downgraded     bool          `json:"downgraded"`
}

// TotalIDR is the stay's accommodation cost.
func (s StayPlan) TotalIDR() int64 {
	return s.Hotel.PricePerNightIDR * int64(s.Nights)
}

// ResolvedFlightPair records how one city-pair transition resolved.
// Return is nil for one-way intermediate transitions.
type ResolvedFlightPair struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	Outbound     *FlightOffering `json:"outbound"`
	Return       *FlightOffering `json:"return,omitempty"`
	FallbackUsed bool            `json:"fallbackUsed"`
}

// TotalIDR sums the pair's leg prices.
func (p ResolvedFlightPair) TotalIDR() int64 {
	var total int64
	if p.Outbound != nil {
		total += p.Outbound.PriceIDR
	}
	if p.Return != nil {
		total += p.Return.PriceIDR
	}
	return total
}
