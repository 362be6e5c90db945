// Package engine matches generated itineraries against flight and hotel
// inventory, prices the result against a budget, and commits bookings that
// atomically consume availability.
package engine

import (
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/inventory"
	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
	"github.com/Shafriii/PoC-EasyHoliday/internal/payment"
)

const (
	// NearestDateSpreadDays bounds the nearest-date flight fallback.
	NearestDateSpreadDays = 3
)

// Engine wires the resolvers, the cost reconciler, and the booking
// transactor over a shared inventory store and payment gateway.
type Engine struct {
	store    inventory.Store
	payments payment.Gateway
	now      func() time.Time
}

// New creates an Engine.
func New(store inventory.Store, payments payment.Gateway) *Engine {
	return &Engine{
		store:    store,
		payments: payments,
		now:      time.Now,
	}
}

// Resolution is the non-mutating output of ResolveAndPrice: everything that
// matched, everything that did not, and the cost math over what matched.
type Resolution struct {
	Flights  []models.ResolvedFlightPair `json:"flights"`
	Stays    []models.StayPlan           `json:"stays"`
	Cost     models.CostBreakdown        `json:"cost"`
	Failures []models.ResolutionFailure  `json:"failures,omitempty"`
}

// FullyResolved reports whether every leg and stay matched an offering.
func (r *Resolution) FullyResolved() bool {
	return len(r.Failures) == 0
}
