package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/google/uuid"
)

// ErrPaymentUnavailable is returned when the collaborator cannot charge:
// no card on file, or the provider declined. A failed charge aborts the
// whole booking commit before any inventory is touched.
var ErrPaymentUnavailable = errors.New("payment unavailable")

// Gateway is the payment collaborator boundary. The core only ever sees
// PaymentState and receipts; raw card data stays on the other side.
type Gateway interface {
	Charge(ctx context.Context, amountIDR int64, state models.PaymentState) (*models.PaymentReceipt, error)
	Refund(ctx context.Context, transactionID string) error
}

// SimulatedGateway mints tokens locally and records charges in memory.
// FailNext forces the next charge to be declined, which tests use to
// exercise the commit-abort path.
type SimulatedGateway struct {
	mu       sync.Mutex
	charges  map[string]int64
	refunds  map[string]bool
	failNext bool
}

// NewSimulatedGateway creates a gateway with no recorded charges.
func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{
		charges: make(map[string]int64),
		refunds: make(map[string]bool),
	}
}

// FailNext makes the next Charge return ErrPaymentUnavailable.
func (g *SimulatedGateway) FailNext() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failNext = true
}

// Charge simulates a payment against the stored payment state.
func (g *SimulatedGateway) Charge(ctx context.Context, amountIDR int64, state models.PaymentState) (*models.PaymentReceipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failNext {
		g.failNext = false
		return nil, fmt.Errorf("%w: declined by provider", ErrPaymentUnavailable)
	}
	if !state.HasCard || state.Token == "" {
		return nil, fmt.Errorf("%w: no payment method on file", ErrPaymentUnavailable)
	}
	if amountIDR <= 0 {
		return nil, fmt.Errorf("%w: invalid amount %d", ErrPaymentUnavailable, amountIDR)
	}

	txID := "pay_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	g.charges[txID] = amountIDR

	return &models.PaymentReceipt{
		TransactionID: txID,
		AmountIDR:     amountIDR,
		CardLast4:     state.CardLast4,
	}, nil
}

// Refund voids a previous charge. Unknown transaction ids are an error so
// compensation bugs surface in tests.
func (g *SimulatedGateway) Refund(ctx context.Context, transactionID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.charges[transactionID]; !ok {
		return fmt.Errorf("refund of unknown transaction %s", transactionID)
	}
	g.refunds[transactionID] = true
	return nil
}

// Refunded reports whether a transaction was refunded.
func (g *SimulatedGateway) Refunded(transactionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refunds[transactionID]
}

// ChargeCount returns how many charges the gateway processed.
func (g *SimulatedGateway) ChargeCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.charges)
}

// RefundCount returns how many refunds the gateway processed.
func (g *SimulatedGateway) RefundCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.refunds)
}

// ChargedAmount returns the recorded amount for a transaction id.
func (g *SimulatedGateway) ChargedAmount(transactionID string) (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	amount, ok := g.charges[transactionID]
	return amount, ok
}
