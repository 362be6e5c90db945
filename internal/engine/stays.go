package engine

import (
	"context"
	"fmt"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
)

// resolveStays plans one stay per consecutive-city run of the itinerary.
// Each stay resolves independently: requested style first, any style as a
// downgrade fallback, otherwise an unresolved-stay failure.
func (e *Engine) resolveStays(ctx context.Context, itin models.Itinerary) ([]models.StayPlan, []models.ResolutionFailure, error) {
	var stays []models.StayPlan
	var failures []models.ResolutionFailure

	for _, run := range itin.CityRuns() {
		if run.Nights < 1 {
			continue
		}

		styled, err := e.store.HotelsFor(ctx, run.City, run.CheckIn, run.Nights, itin.Style)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query hotels: %w", err)
		}
		if len(styled) > 0 {
			stays = append(stays, models.StayPlan{
				City:           run.City,
				CheckIn:        run.CheckIn,
				Nights:         run.Nights,
				Hotel:          styled[0],
				EffectiveStyle: styled[0].Style,
			})
			continue
		}

		any, err := e.store.HotelsForAnyStyle(ctx, run.City, run.CheckIn, run.Nights)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to query hotels: %w", err)
		}
		if len(any) > 0 {
			stays = append(stays, models.StayPlan{
				City:           run.City,
				CheckIn:        run.CheckIn,
				Nights:         run.Nights,
				Hotel:          any[0],
				EffectiveStyle: any[0].Style,
				Downgraded:     true,
			})
			continue
		}

		failures = append(failures, models.ResolutionFailure{
			Kind:   models.FailureUnresolvedStay,
			City:   run.City,
			Date:   run.CheckIn,
			Nights: run.Nights,
			Style:  itin.Style,
			Reason: fmt.Sprintf("no hotel in %s covering %d nights from %s", run.City, run.Nights, run.CheckIn.Format("2006-01-02")),
		})
	}

	return stays, failures, nil
}
