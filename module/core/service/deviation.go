package service

import (
	"fmt"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

// DeviationDetector decides whether a single location sample has wandered
// farther from every planned stop than the trip's threshold allows.
type DeviationDetector struct {
	cfg MonitorConfig
}

func NewDeviationDetector(cfg MonitorConfig) *DeviationDetector {
	return &DeviationDetector{cfg: cfg}
}

// Evaluate returns a new active deviation alert, or nil when the sample is
// within threshold or the trip has no planned stops. Each out-of-threshold
// sample produces its own alert; suppression of repeats is deliberately not
// done here.
func (d *DeviationDetector) Evaluate(now time.Time, sample *domain.LocationSample, trip *domain.Trip, waypoints []domain.PlannedLocation) *domain.SafetyAlert {
	if len(waypoints) == 0 {
		return nil
	}

	_, dist := nearestWaypoint(sample.Coordinate, waypoints)
	if dist <= trip.DeviationThresholdKm {
		return nil
	}

	distCopy := dist
	return &domain.SafetyAlert{
		UserID:                sample.UserID,
		TripID:                trip.ID,
		Kind:                  domain.AlertDeviation,
		Status:                domain.AlertActive,
		Title:                 domain.AlertDeviation.Title(),
		Message:               fmt.Sprintf("You are %.1fkm away from your planned route. Are you safe?", dist),
		Coordinate:            sample.Coordinate,
		DistanceFromPlannedKm: &distCopy,
		TriggeredAt:           now,
		ResponseDeadline:      now.Add(d.cfg.ResponseTimeout),
	}
}
