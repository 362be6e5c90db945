package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/confirmation"
	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/Shafriii/PoC-EasyHoliday/internal/service"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// Handler contains HTTP handlers for the API
type Handler struct {
	bookingService service.BookingService
}

// NewHandler creates a new Handler instance
func NewHandler(bookingService service.BookingService) *Handler {
	return &Handler{
		bookingService: bookingService,
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

// GetFlights handles GET /api/flights?origin=&destination=&date=
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	origin := q.Get("origin")
	destination := q.Get("destination")
	if origin == "" || destination == "" {
		respondError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}

	date, err := parseDate(q.Get("date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	flights, err := h.bookingService.SearchFlights(r.Context(), origin, destination, date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search flights")
		return
	}
	respondJSON(w, http.StatusOK, flights)
}

// GetHotels handles GET /api/hotels?city=&checkIn=&nights=&style=
func (h *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")
	if city == "" {
		respondError(w, http.StatusBadRequest, "city is required")
		return
	}

	checkIn, err := parseDate(q.Get("checkIn"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	nights, err := strconv.Atoi(q.Get("nights"))
	if err != nil || nights < 1 {
		respondError(w, http.StatusBadRequest, "nights must be a positive integer")
		return
	}

	style := models.TravelStyle(q.Get("style"))
	hotels, err := h.bookingService.SearchHotels(r.Context(), city, checkIn, nights, style)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search hotels")
		return
	}
	respondJSON(w, http.StatusOK, hotels)
}

// PriceTrip handles POST /api/trips/price
func (h *Handler) PriceTrip(w http.ResponseWriter, r *http.Request) {
	var req models.PriceTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateItinerary(req.Itinerary); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.BudgetIDR < 0 {
		respondError(w, http.StatusBadRequest, "Budget must not be negative")
		return
	}

	priced, err := h.bookingService.PriceTrip(r.Context(), req.Itinerary, req.BudgetIDR)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, priced)
}

// CreateBooking handles POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateItinerary(req.Itinerary); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.BudgetIDR < 0 {
		respondError(w, http.StatusBadRequest, "Budget must not be negative")
		return
	}

	outcome, err := h.bookingService.Book(r.Context(), req.Itinerary, req.BudgetIDR, req.Payment)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusOK
	if outcome.Status == models.StatusCommitted {
		status = http.StatusCreated
	}
	respondJSON(w, status, outcome)
}

// GetBooking handles GET /api/bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	record, err := h.bookingService.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// ListBookings handles GET /api/bookings
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	records, err := h.bookingService.ListBookings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// GetBookingConfirmation handles GET /api/bookings/{id}/confirmation.pdf
func (h *Handler) GetBookingConfirmation(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["id"]

	record, err := h.bookingService.GetBooking(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Booking not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load booking")
		return
	}

	data, err := confirmation.GeneratePDFBytes(record)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render confirmation")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func validateItinerary(itin models.Itinerary) string {
	if itin.Origin == "" {
		return "Origin is required"
	}
	if len(itin.Days) == 0 {
		return "Itinerary must contain at least one day"
	}
	if itin.Travelers < 0 || itin.Rooms < 0 {
		return "Travelers and rooms must not be negative"
	}
	for i, day := range itin.Days {
		if day.City == "" {
			return fmt.Sprintf("Day %d is missing a city", i+1)
		}
		if day.Date.IsZero() {
			return fmt.Sprintf("Day %d is missing a date", i+1)
		}
	}
	return ""
}
