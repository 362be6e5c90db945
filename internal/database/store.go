// Package database provides the Postgres-backed inventory store. Commit
// runs as a single transaction with clamped decrements, so two sessions
// racing for the last seat can never drive availability negative.
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles all database operations against the inventory schema.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store over an existing connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const flightColumns = "id, carrier, origin, destination, date, price_idr, seats_left"

func scanFlights(rows pgx.Rows) ([]models.FlightOffering, error) {
	defer rows.Close()

	var flights []models.FlightOffering
	for rows.Next() {
		var f models.FlightOffering
		err := rows.Scan(&f.ID, &f.Carrier, &f.Origin, &f.Destination, &f.Date, &f.PriceIDR, &f.SeatsLeft)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight offering: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// FlightsFor returns exact-date offerings with seats, cheapest first.
func (s *Store) FlightsFor(ctx context.Context, origin, destination string, date time.Time) ([]models.FlightOffering, error) {
	query := `
		SELECT ` + flightColumns + `
		FROM flight_offerings
		WHERE LOWER(origin) = LOWER($1) AND LOWER(destination) = LOWER($2)
		  AND date = $3 AND seats_left > 0
		ORDER BY price_idr ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, origin, destination, models.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("failed to query flight offerings: %w", err)
	}
	return scanFlights(rows)
}

// FlightsNear returns offerings with seats within maxDaySpread days of the
// requested date, ordered by date distance, then price, then earliest date.
func (s *Store) FlightsNear(ctx context.Context, origin, destination string, date time.Time, maxDaySpread int, notBefore time.Time) ([]models.FlightOffering, error) {
	if notBefore.IsZero() {
		notBefore = time.Unix(0, 0)
	}

	query := `
		SELECT ` + flightColumns + `
		FROM flight_offerings
		WHERE LOWER(origin) = LOWER($1) AND LOWER(destination) = LOWER($2)
		  AND seats_left > 0
		  AND ABS(date - $3::date) <= $4
		  AND date >= $5
		ORDER BY ABS(date - $3::date) ASC, price_idr ASC, date ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, origin, destination,
		models.DateOnly(date), maxDaySpread, models.DateOnly(notBefore))
	if err != nil {
		return nil, fmt.Errorf("failed to query nearby flight offerings: %w", err)
	}
	return scanFlights(rows)
}

const hotelColumns = "id, name, city, country, style, available_from, available_to, price_per_night_idr, rooms_left"

func scanHotels(rows pgx.Rows) ([]models.HotelOffering, error) {
	defer rows.Close()

	var hotels []models.HotelOffering
	for rows.Next() {
		var h models.HotelOffering
		err := rows.Scan(&h.ID, &h.Name, &h.City, &h.Country, &h.Style,
			&h.AvailableFrom, &h.AvailableTo, &h.PricePerNightIDR, &h.RoomsLeft)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hotel offering: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// HotelsFor returns style-matched offerings whose window covers the whole
// stay, ordered by total stay price.
func (s *Store) HotelsFor(ctx context.Context, city string, checkIn time.Time, nights int, style models.TravelStyle) ([]models.HotelOffering, error) {
	return s.queryHotels(ctx, city, checkIn, nights, string(style))
}

// HotelsForAnyStyle is HotelsFor without the style filter.
func (s *Store) HotelsForAnyStyle(ctx context.Context, city string, checkIn time.Time, nights int) ([]models.HotelOffering, error) {
	return s.queryHotels(ctx, city, checkIn, nights, "")
}

func (s *Store) queryHotels(ctx context.Context, city string, checkIn time.Time, nights int, style string) ([]models.HotelOffering, error) {
	checkIn = models.DateOnly(checkIn)
	lastNight := checkIn.AddDate(0, 0, nights-1)

	query := `
		SELECT ` + hotelColumns + `
		FROM hotel_offerings
		WHERE LOWER(city) = LOWER($1) AND rooms_left > 0
		  AND available_from <= $2 AND available_to >= $3
		  AND ($4 = '' OR style = $4)
		ORDER BY price_per_night_idr ASC, id ASC
	`

	rows, err := s.pool.Query(ctx, query, city, checkIn, lastNight, style)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotel offerings: %w", err)
	}
	return scanHotels(rows)
}

// Commit decrements availability for every consumption and appends the
// booking record inside one transaction. Each decrement is clamped in SQL:
// zero rows affected means the offering cannot cover its units, the
// transaction rolls back, and ErrInsufficientAvailability is returned.
func (s *Store) Commit(ctx context.Context, record *models.BookingRecord, consumptions []models.Consumption) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range consumptions {
		var result interface{ RowsAffected() int64 }
		switch c.Kind {
		case models.ConsumeFlightSeat:
			tag, err := tx.Exec(ctx, `
				UPDATE flight_offerings
				SET seats_left = seats_left - $1
				WHERE id = $2 AND seats_left >= $1
			`, c.Units, c.OfferingID)
			if err != nil {
				return fmt.Errorf("failed to consume flight seats: %w", err)
			}
			result = tag
		case models.ConsumeHotelRoom:
			tag, err := tx.Exec(ctx, `
				UPDATE hotel_offerings
				SET rooms_left = rooms_left - $1
				WHERE id = $2 AND rooms_left >= $1
			`, c.Units, c.OfferingID)
			if err != nil {
				return fmt.Errorf("failed to consume hotel rooms: %w", err)
			}
			result = tag
		default:
			return fmt.Errorf("unknown consumption kind %q", c.Kind)
		}
		if result.RowsAffected() == 0 {
			return inventory.ErrInsufficientAvailability
		}
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal booking record: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, payment_token, grand_total_idr, record, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, record.ID, record.PaymentToken, record.Cost.GrandTotalIDR, payload, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return tx.Commit(ctx)
}

// Booking returns a persisted booking by id.
func (s *Store) Booking(ctx context.Context, id string) (*models.BookingRecord, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT record FROM bookings WHERE id = $1
	`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, inventory.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	var record models.BookingRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking record: %w", err)
	}
	return &record, nil
}

// Bookings returns all persisted bookings, oldest first.
func (s *Store) Bookings(ctx context.Context) ([]models.BookingRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT record FROM bookings ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var records []models.BookingRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		var record models.BookingRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal booking record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
