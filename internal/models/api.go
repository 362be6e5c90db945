package models

// PriceTripRequest is the body of POST /api/trips/price.
type PriceTripRequest struct {
	Itinerary Itinerary `json:"itinerary"`
	BudgetIDR int64     `json:"budgetIdr"`
}

// PriceTripResponse is the priced-but-uncommitted view of a trip.
type PriceTripResponse struct {
	Flights  []ResolvedFlightPair `json:"flights"`
	Stays    []StayPlan           `json:"stays"`
	Cost     CostBreakdown        `json:"cost"`
	Failures []ResolutionFailure  `json:"failures,omitempty"`
}

// CreateBookingRequest is the body of POST /api/bookings.
type CreateBookingRequest struct {
	Itinerary Itinerary    `json:"itinerary"`
	BudgetIDR int64        `json:"budgetIdr"`
	Payment   PaymentState `json:"payment"`
}
