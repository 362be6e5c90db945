package models

import "time"

// BookingWorkflowInput is the input for the vacation booking workflow.
type BookingWorkflowInput struct {
	Itinerary Itinerary    `json:"itinerary"`
	BudgetIDR int64        `json:"budgetIdr"`
	Payment   PaymentState `json:"payment"`
	Today     time.Time    `json:"today"`
}

// BookingWorkflowResult is what the workflow returns to the caller.
type BookingWorkflowResult struct {
	Outcome *BookingOutcome `json:"outcome"`
}

// ResolveItineraryInput is the input to the ResolveItinerary activity.
type ResolveItineraryInput struct {
	Itinerary Itinerary `json:"itinerary"`
	BudgetIDR int64     `json:"budgetIdr"`
	Today     time.Time `json:"today"`
}

// ResolveItineraryOutput carries a completed resolution back to the workflow.
type ResolveItineraryOutput struct {
	Flights  []ResolvedFlightPair `json:"flights"`
	Stays    []StayPlan           `json:"stays"`
	Cost     CostBreakdown        `json:"cost"`
	Failures []ResolutionFailure  `json:"failures,omitempty"`
}

// ChargePaymentInput is the input to the ChargePayment activity.
type ChargePaymentInput struct {
	AmountIDR int64        `json:"amountIdr"`
	Payment   PaymentState `json:"payment"`
}

// ChargePaymentOutput reports the charge result. Declined marks a business
// refusal (no card, provider decline) the workflow turns into a proposal;
// activity errors are reserved for infrastructure failures.
type ChargePaymentOutput struct {
	Receipt  *PaymentReceipt `json:"receipt,omitempty"`
	Declined bool            `json:"declined,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// CommitBookingInput is the input to the CommitBooking activity.
type CommitBookingInput struct {
	Itinerary Itinerary            `json:"itinerary"`
	Flights   []ResolvedFlightPair `json:"flights"`
	Stays     []StayPlan           `json:"stays"`
	Cost      CostBreakdown        `json:"cost"`
	Receipt   PaymentReceipt       `json:"receipt"`
}

// CommitBookingOutput reports the commit result. InsufficientAvailability
// marks the one failure mode that downgrades to a proposal instead of
// erroring the workflow.
type CommitBookingOutput struct {
	Record                   *BookingRecord `json:"record,omitempty"`
	InsufficientAvailability bool           `json:"insufficientAvailability,omitempty"`
	Reason                   string         `json:"reason,omitempty"`
}

// RefundPaymentInput is the compensation input when a commit fails after a
// successful charge.
type RefundPaymentInput struct {
	TransactionID string `json:"transactionId"`
}
