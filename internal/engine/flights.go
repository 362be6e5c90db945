package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/Shafriii/PoC-EasyHoliday/internal/models"
)

// legRequest is one flight leg the itinerary needs.
type legRequest struct {
	from string
	to   string
	date time.Time
}

// resolveFlights resolves every city transition the itinerary implies.
// The trip frame (origin to first city, last city back to origin) becomes
// one pair holding both legs; each intermediate transition becomes a
// one-way pair with a nil return. Unresolved legs are reported, never
// silently dropped.
func (e *Engine) resolveFlights(ctx context.Context, itin models.Itinerary, today time.Time) ([]models.ResolvedFlightPair, []models.ResolutionFailure, error) {
	runs := itin.CityRuns()
	if len(runs) == 0 {
		return nil, nil, nil
	}

	firstCity := runs[0].City
	lastCity := runs[len(runs)-1].City
	startDate := models.DateOnly(itin.Days[0].Date)
	returnDate := models.DateOnly(itin.Days[len(itin.Days)-1].Date)

	var pairs []models.ResolvedFlightPair
	var failures []models.ResolutionFailure

	outbound, outFallback, outFail, err := e.resolveLeg(ctx, legRequest{from: itin.Origin, to: firstCity, date: startDate}, today)
	if err != nil {
		return nil, nil, err
	}
	returning, retFallback, retFail, err := e.resolveLeg(ctx, legRequest{from: lastCity, to: itin.Origin, date: returnDate}, today)
	if err != nil {
		return nil, nil, err
	}
	if outFail != nil {
		failures = append(failures, *outFail)
	}
	if retFail != nil {
		failures = append(failures, *retFail)
	}
	pairs = append(pairs, models.ResolvedFlightPair{
		From:         itin.Origin,
		To:           firstCity,
		Outbound:     outbound,
		Return:       returning,
		FallbackUsed: outFallback || retFallback,
	})

	for i := 1; i < len(runs); i++ {
		req := legRequest{from: runs[i-1].City, to: runs[i].City, date: runs[i].CheckIn}
		leg, fallback, fail, err := e.resolveLeg(ctx, req, today)
		if err != nil {
			return nil, nil, err
		}
		if fail != nil {
			failures = append(failures, *fail)
		}
		pairs = append(pairs, models.ResolvedFlightPair{
			From:         req.from,
			To:           req.to,
			Outbound:     leg,
			FallbackUsed: fallback,
		})
	}

	return pairs, failures, nil
}

// resolveLeg picks the cheapest exact-date offering, falling back to the
// nearest dated offering within NearestDateSpreadDays. A nil offering with
// a non-nil failure means the leg is unresolved.
func (e *Engine) resolveLeg(ctx context.Context, req legRequest, today time.Time) (*models.FlightOffering, bool, *models.ResolutionFailure, error) {
	exact, err := e.store.FlightsFor(ctx, req.from, req.to, req.date)
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to query flights: %w", err)
	}
	if len(exact) > 0 {
		leg := exact[0]
		return &leg, false, nil, nil
	}

	near, err := e.store.FlightsNear(ctx, req.from, req.to, req.date, NearestDateSpreadDays, today)
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to query nearby flights: %w", err)
	}
	if len(near) > 0 {
		leg := near[0]
		return &leg, true, nil, nil
	}

	fail := &models.ResolutionFailure{
		Kind:   models.FailureUnresolvedLeg,
		From:   req.from,
		To:     req.to,
		Date:   req.date,
		Reason: fmt.Sprintf("no flight from %s to %s within %d days of %s", req.from, req.to, NearestDateSpreadDays, req.date.Format("2006-01-02")),
	}
	return nil, false, fail, nil
}
