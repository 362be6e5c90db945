package workflows

import (
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/engine"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	// TaskQueue is where the booking worker listens.
	TaskQueue = "vacation-booking-queue"

	// ResolveTimeout bounds inventory resolution.
	ResolveTimeout = 30 * time.Second
	// PaymentTimeout bounds the external charge call.
	PaymentTimeout = 10 * time.Second
	// CommitTimeout bounds the inventory commit transaction.
	CommitTimeout = 30 * time.Second
)

// VacationBookingWorkflow orchestrates one booking request:
// resolve -> precondition gate -> charge -> commit. Every non-committed
// path ends in a Proposed outcome with the resolution attached, and a
// commit that loses the availability race refunds the charge before
// downgrading. No partial state survives the workflow.
func VacationBookingWorkflow(ctx workflow.Context, input models.BookingWorkflowInput) (*models.BookingWorkflowResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Booking workflow started", "origin", input.Itinerary.Origin, "budget", input.BudgetIDR)

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: ResolveTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	})

	// Charges are never retried automatically.
	paymentCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: PaymentTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var res models.ResolveItineraryOutput
	err := workflow.ExecuteActivity(ctx, "ResolveItinerary", models.ResolveItineraryInput{
		Itinerary: input.Itinerary,
		BudgetIDR: input.BudgetIDR,
		Today:     input.Today,
	}).Get(ctx, &res)
	if err != nil {
		return nil, err
	}

	proposal := func(reason string) *models.BookingWorkflowResult {
		return &models.BookingWorkflowResult{Outcome: &models.BookingOutcome{
			Status:   models.StatusProposed,
			Flights:  res.Flights,
			Stays:    res.Stays,
			Cost:     res.Cost,
			Failures: res.Failures,
			Reason:   reason,
		}}
	}

	if reason := engine.CommitGate(len(res.Failures) == 0, len(res.Failures), input.Payment); reason != "" {
		logger.Info("Booking gated to proposal", "reason", reason)
		return proposal(reason), nil
	}

	var charge models.ChargePaymentOutput
	err = workflow.ExecuteActivity(paymentCtx, "ChargePayment", models.ChargePaymentInput{
		AmountIDR: res.Cost.GrandTotalIDR,
		Payment:   input.Payment,
	}).Get(ctx, &charge)
	if err != nil {
		return nil, err
	}
	if charge.Declined {
		logger.Info("Charge declined", "reason", charge.Reason)
		return proposal(charge.Reason), nil
	}

	commitCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: CommitTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	})

	var commit models.CommitBookingOutput
	err = workflow.ExecuteActivity(commitCtx, "CommitBooking", models.CommitBookingInput{
		Itinerary: input.Itinerary,
		Flights:   res.Flights,
		Stays:     res.Stays,
		Cost:      res.Cost,
		Receipt:   *charge.Receipt,
	}).Get(ctx, &commit)
	if err != nil || commit.InsufficientAvailability {
		// Compensate the charge before reporting the downgrade.
		refundErr := workflow.ExecuteActivity(ctx, "RefundPayment", models.RefundPaymentInput{
			TransactionID: charge.Receipt.TransactionID,
		}).Get(ctx, nil)
		if refundErr != nil {
			logger.Error("Refund compensation failed", "transactionId", charge.Receipt.TransactionID, "error", refundErr)
		}
		if err != nil {
			return nil, err
		}
		logger.Info("Commit lost availability race; proposing instead")
		return proposal(commit.Reason), nil
	}

	logger.Info("Booking committed", "bookingId", commit.Record.ID)
	return &models.BookingWorkflowResult{Outcome: &models.BookingOutcome{
		Status:  models.StatusCommitted,
		Record:  commit.Record,
		Flights: res.Flights,
		Stays:   res.Stays,
		Cost:    res.Cost,
	}}, nil
}
