// Package activities exposes the booking engine's steps as Temporal
// activities: resolve, charge, commit, and the refund compensation.
package activities

import (
	"context"
	"errors"

	"github.com/Shafriii/PoC-EasyHoliday/internal/engine"
	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/Shafriii/PoC-EasyHoliday/internal/payment"
	"go.temporal.io/sdk/activity"
)

// Activities bundles the dependencies the booking activities share.
type Activities struct {
	engine   *engine.Engine
	payments payment.Gateway
}

// NewActivities creates the activity set.
func NewActivities(eng *engine.Engine, payments payment.Gateway) *Activities {
	return &Activities{engine: eng, payments: payments}
}

// ResolveItinerary matches the itinerary against inventory and prices it.
// Read-only; safe to retry.
func (a *Activities) ResolveItinerary(ctx context.Context, input models.ResolveItineraryInput) (*models.ResolveItineraryOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Resolving itinerary", "origin", input.Itinerary.Origin, "days", len(input.Itinerary.Days))

	res, err := a.engine.ResolveAndPrice(ctx, input.Itinerary, input.BudgetIDR, input.Today)
	if err != nil {
		return nil, err
	}

	logger.Info("Itinerary resolved", "failures", len(res.Failures), "grandTotal", res.Cost.GrandTotalIDR)
	return &models.ResolveItineraryOutput{
		Flights:  res.Flights,
		Stays:    res.Stays,
		Cost:     res.Cost,
		Failures: res.Failures,
	}, nil
}

// ChargePayment charges the grand total against the stored payment state.
// Declines come back as a result, not an error, so the workflow can turn
// them into a proposal without tripping the retry policy.
func (a *Activities) ChargePayment(ctx context.Context, input models.ChargePaymentInput) (*models.ChargePaymentOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Charging payment", "amount", input.AmountIDR)

	receipt, err := a.payments.Charge(ctx, input.AmountIDR, input.Payment)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentUnavailable) {
			logger.Warn("Payment declined", "reason", err.Error())
			return &models.ChargePaymentOutput{Declined: true, Reason: err.Error()}, nil
		}
		return nil, err
	}

	logger.Info("Payment charged", "transactionId", receipt.TransactionID)
	return &models.ChargePaymentOutput{Receipt: receipt}, nil
}

// CommitBooking consumes inventory and persists the booking record as one
// atomic unit. An availability race reports InsufficientAvailability so the
// workflow can compensate the charge; nothing is partially applied.
func (a *Activities) CommitBooking(ctx context.Context, input models.CommitBookingInput) (*models.CommitBookingOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Committing booking", "grandTotal", input.Cost.GrandTotalIDR)

	record, err := a.engine.CommitResolved(ctx, input.Itinerary, input.Flights, input.Stays, input.Cost, &input.Receipt)
	if err != nil {
		if errors.Is(err, inventory.ErrInsufficientAvailability) {
			logger.Warn("Commit lost availability race")
			return &models.CommitBookingOutput{
				InsufficientAvailability: true,
				Reason:                   "availability changed before commit",
			}, nil
		}
		return nil, err
	}

	logger.Info("Booking committed", "bookingId", record.ID)
	return &models.CommitBookingOutput{Record: record}, nil
}

// RefundPayment compensates a charge whose booking could not be committed.
func (a *Activities) RefundPayment(ctx context.Context, input models.RefundPaymentInput) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Refunding payment", "transactionId", input.TransactionID)
	return a.payments.Refund(ctx, input.TransactionID)
}
