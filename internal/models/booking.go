package models

import "time"

// CostBreakdown is the pure cost aggregation over a resolved itinerary.
// Amounts are integer IDR.
type CostBreakdown struct {
	FlightsIDR       int64 `json:"flightsIdr"`
	AccommodationIDR int64 `json:"accommodationIdr"`
	BufferIDR        int64 `json:"bufferIdr"`
	GrandTotalIDR    int64 `json:"grandTotalIdr"`
	BudgetIDR        int64 `json:"budgetIdr"`
	OverBudget       bool  `json:"overBudget"`
}

// PaymentState is what the payment collaborator shares with the core.
// Raw card data never crosses this boundary.
type PaymentState struct {
	HasCard         bool   `json:"hasCard"`
	AutoBookAllowed bool   `json:"autoBookAllowed"`
	Token           string `json:"token,omitempty"`
	CardLast4       string `json:"cardLast4,omitempty"`
}

// PaymentReceipt is the result of a successful charge.
type PaymentReceipt struct {
	TransactionID string `json:"transactionId"`
	AmountIDR     int64  `json:"amountIdr"`
	CardLast4     string `json:"cardLast4,omitempty"`
}

// BookingRecord is the persisted outcome of a committed booking.
// Immutable once created; later inventory changes never touch it.
type BookingRecord struct {
	ID           string               `json:"id"`
	Origin       string               `json:"origin"`
	Country      string               `json:"country"`
	Cities       []string             `json:"cities"`
	StartDate    time.Time            `json:"startDate"`
	EndDate      time.Time            `json:"endDate"`
	Flights      []ResolvedFlightPair `json:"flights"`
	Stays        []StayPlan           `json:"stays"`
	Cost         CostBreakdown        `json:"cost"`
	PaymentToken string               `json:"paymentToken"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// FailureKind classifies a resolution failure.
type FailureKind string

const (
	FailureUnresolvedLeg  FailureKind = "unresolved_leg"
	FailureUnresolvedStay FailureKind = "unresolved_stay"
)

// ResolutionFailure is a per-leg or per-city resolution miss. Failures are
// collected into results rather than raised, so callers can still show the
// parts that did resolve.
type ResolutionFailure struct {
	Kind   FailureKind `json:"kind"`
	From   string      `json:"from,omitempty"`
	To     string      `json:"to,omitempty"`
	City   string      `json:"city,omitempty"`
	Date   time.Time   `json:"date,omitempty"`
	Nights int         `json:"nights,omitempty"`
	Style  TravelStyle `json:"style,omitempty"`
	Reason string      `json:"reason"`
}

// BookingStatus tags the two terminal outcomes of a booking request.
type BookingStatus string

const (
	StatusCommitted BookingStatus = "committed"
	StatusProposed  BookingStatus = "proposed"
)

// BookingOutcome is the tagged result of Book: either a committed
// BookingRecord, or a proposal carrying the resolution with no side effects.
type BookingOutcome struct {
	Status   BookingStatus        `json:"status"`
	Record   *BookingRecord       `json:"record,omitempty"`
	Flights  []ResolvedFlightPair `json:"flights"`
	Stays    []StayPlan           `json:"stays"`
	Cost     CostBreakdown        `json:"cost"`
	Failures []ResolutionFailure  `json:"failures,omitempty"`
	Reason   string               `json:"reason,omitempty"`
}
