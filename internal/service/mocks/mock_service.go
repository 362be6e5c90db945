package mocks

import (
	"context"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of service.BookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) SearchFlights(ctx context.Context, origin, destination string, date time.Time) ([]models.FlightOffering, error) {
	args := m.Called(ctx, origin, destination, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlightOffering), args.Error(1)
}

func (m *MockBookingService) SearchHotels(ctx context.Context, city string, checkIn time.Time, nights int, style models.TravelStyle) ([]models.HotelOffering, error) {
	args := m.Called(ctx, city, checkIn, nights, style)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.HotelOffering), args.Error(1)
}

func (m *MockBookingService) PriceTrip(ctx context.Context, itinerary models.Itinerary, budgetIDR int64) (*models.PriceTripResponse, error) {
	args := m.Called(ctx, itinerary, budgetIDR)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceTripResponse), args.Error(1)
}

func (m *MockBookingService) Book(ctx context.Context, itinerary models.Itinerary, budgetIDR int64, payment models.PaymentState) (*models.BookingOutcome, error) {
	args := m.Called(ctx, itinerary, budgetIDR, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingOutcome), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*models.BookingRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingRecord), args.Error(1)
}

func (m *MockBookingService) ListBookings(ctx context.Context) ([]models.BookingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BookingRecord), args.Error(1)
}
