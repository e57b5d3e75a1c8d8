package service

import (
	"fmt"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

// StationaryDetector checks whether a traveler's recent samples show them
// immobile outside any planned location for the whole trailing window.
type StationaryDetector struct {
	cfg MonitorConfig
}

func NewStationaryDetector(cfg MonitorConfig) *StationaryDetector {
	return &StationaryDetector{cfg: cfg}
}

// Evaluate inspects recent, a traveler's samples within the trailing window
// ordered by timestamp ascending, and returns a new active stationary alert
// or nil. Fewer than two samples, or a trip without planned stops, is
// insufficient evidence. Any sample farther
// than the movement epsilon from the latest disqualifies immediately.
func (d *StationaryDetector) Evaluate(now time.Time, userID int64, trip *domain.Trip, recent []domain.LocationSample, waypoints []domain.PlannedLocation) *domain.SafetyAlert {
	if len(recent) < 2 || len(waypoints) == 0 {
		return nil
	}

	latest := recent[len(recent)-1]
	for i := range recent[:len(recent)-1] {
		if distanceKm(latest.Coordinate, recent[i].Coordinate) > d.cfg.MovementEpsilonKm {
			return nil
		}
	}

	_, dist := nearestWaypoint(latest.Coordinate, waypoints)
	if dist <= d.cfg.StationaryAlertRadiusKm {
		return nil
	}

	hours := int(d.cfg.StationaryWindow.Hours())
	distCopy := dist
	return &domain.SafetyAlert{
		UserID:                userID,
		TripID:                trip.ID,
		Kind:                  domain.AlertStationary,
		Status:                domain.AlertActive,
		Title:                 domain.AlertStationary.Title(),
		Message:               fmt.Sprintf("You've been in the same location for %d+ hours, %.1fkm from planned locations. Are you safe?", hours, dist),
		Coordinate:            latest.Coordinate,
		DistanceFromPlannedKm: &distCopy,
		TriggeredAt:           now,
		ResponseDeadline:      now.Add(d.cfg.ResponseTimeout),
	}
}
