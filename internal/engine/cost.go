package engine

import "github.com/Shafriii/PoC-EasyHoliday/internal/models"

// ReconcileCost aggregates resolved flight and stay costs against a budget.
// Pure integer arithmetic: buffer is 20% of the flight+accommodation base
// and the over-budget check compares 5*grandTotal against 6*budget so the
// exact 1.20x boundary is never over budget.
func ReconcileCost(flights []models.ResolvedFlightPair, stays []models.StayPlan, budgetIDR int64) models.CostBreakdown {
	var flightsTotal int64
	for _, pair := range flights {
		flightsTotal += pair.TotalIDR()
	}

	var accommodationTotal int64
	for _, stay := range stays {
		accommodationTotal += stay.TotalIDR()
	}

	base := flightsTotal + accommodationTotal
	buffer := base / 5
	grand := base + buffer

	return models.CostBreakdown{
		FlightsIDR:       flightsTotal,
		AccommodationIDR: accommodationTotal,
		BufferIDR:        buffer,
		GrandTotalIDR:    grand,
		BudgetIDR:        budgetIDR,
		OverBudget:       5*grand > 6*budgetIDR,
	}
}
