package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
)

// Seed file shapes mirror the JSON inventory snapshots the datasets ship in.
type seedFlight struct {
	ID           string `json:"id"`
	Airline      string `json:"airline"`
	From         string `json:"from"`
	To           string `json:"to"`
	Date         string `json:"date"`
	BasePriceIDR int64  `json:"base_price_idr"`
	SeatsLeft    int    `json:"seats_left"`
}

type seedHotel struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	City             string `json:"city"`
	Country          string `json:"country"`
	Category         string `json:"category"`
	PricePerNightIDR int64  `json:"price_per_night_idr"`
	RoomsLeft        int    `json:"rooms_left"`
	AvailableFrom    string `json:"available_from"`
	AvailableTo      string `json:"available_to"`
}

// LoadFlightsFile reads a flights.json snapshot into the store.
func LoadFlightsFile(store *MemoryStore, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rows []seedFlight
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var loaded int
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			continue // skip malformed rows, matching the snapshot loader's tolerance
		}
		store.AddFlights(models.FlightOffering{
			ID:          row.ID,
			Carrier:     row.Airline,
			Origin:      row.From,
			Destination: row.To,
			Date:        date,
			PriceIDR:    row.BasePriceIDR,
			SeatsLeft:   row.SeatsLeft,
		})
		loaded++
	}
	return loaded, nil
}

// LoadHotelsFile reads a hotels.json snapshot into the store.
func LoadHotelsFile(store *MemoryStore, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var rows []seedHotel
	if err := json.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var loaded int
	for _, row := range rows {
		from, errFrom := time.Parse("2006-01-02", row.AvailableFrom)
		to, errTo := time.Parse("2006-01-02", row.AvailableTo)
		if errFrom != nil || errTo != nil {
			continue
		}
		store.AddHotels(models.HotelOffering{
			ID:               row.ID,
			Name:             row.Name,
			City:             row.City,
			Country:          row.Country,
			Style:            models.TravelStyle(row.Category),
			AvailableFrom:    from,
			AvailableTo:      to,
			PricePerNightIDR: row.PricePerNightIDR,
			RoomsLeft:        row.RoomsLeft,
		})
		loaded++
	}
	return loaded, nil
}
