package service

import (
	"context"
	"log"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/publisher"
)

// MonitorService runs the safety checks for each incoming location sample and
// persists and publishes whatever alerts they raise.
type MonitorService struct {
	itinerary  database.ItineraryRepository
	history    database.SampleRepository
	alerts     database.AlertRepository
	pub        publisher.AlertPublisher
	deviation  *DeviationDetector
	stationary *StationaryDetector
	cfg        MonitorConfig
	now        func() time.Time
}

func NewMonitorService(
	itinerary database.ItineraryRepository,
	history database.SampleRepository,
	alerts database.AlertRepository,
	pub publisher.AlertPublisher,
	cfg MonitorConfig,
) *MonitorService {
	return &MonitorService{
		itinerary:  itinerary,
		history:    history,
		alerts:     alerts,
		pub:        pub,
		deviation:  NewDeviationDetector(cfg),
		stationary: NewStationaryDetector(cfg),
		cfg:        cfg,
		now:        time.Now,
	}
}

// HandleSample loads the trip, its planned stops and the traveler's trailing
// sample window, then delegates to OnLocationSample. The sample itself must
// already be persisted by the caller.
func (s *MonitorService) HandleSample(ctx context.Context, sample *domain.LocationSample) ([]domain.SafetyAlert, error) {
	trip, err := s.itinerary.GetTrip(ctx, sample.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil || !trip.MonitoringEnabled {
		return nil, nil
	}

	waypoints, err := s.itinerary.GetPlannedLocations(ctx, trip.ID)
	if err != nil {
		return nil, err
	}

	since := s.now().Add(-s.cfg.StationaryWindow)
	recent, err := s.history.GetRecentSamples(ctx, sample.UserID, trip.ID, since)
	if err != nil {
		return nil, err
	}

	return s.OnLocationSample(ctx, sample, trip, waypoints, recent)
}

// OnLocationSample runs the deviation check then the stationarity check
// against a snapshot of trip data. Every alert in the returned slice has
// already been stored and published; callers must not persist it again. A
// store failure aborts the evaluation and is returned as-is.
func (s *MonitorService) OnLocationSample(
	ctx context.Context,
	sample *domain.LocationSample,
	trip *domain.Trip,
	waypoints []domain.PlannedLocation,
	recent []domain.LocationSample,
) ([]domain.SafetyAlert, error) {
	if trip == nil || !trip.MonitoringEnabled {
		return nil, nil
	}

	now := s.now()
	var fired []domain.SafetyAlert

	if a := s.deviation.Evaluate(now, sample, trip, waypoints); a != nil {
		if err := s.persist(ctx, a); err != nil {
			return nil, err
		}
		fired = append(fired, *a)
	}

	if a := s.stationary.Evaluate(now, sample.UserID, trip, recent, waypoints); a != nil {
		if err := s.persist(ctx, a); err != nil {
			return nil, err
		}
		fired = append(fired, *a)
	}

	return fired, nil
}

func (s *MonitorService) persist(ctx context.Context, alert *domain.SafetyAlert) error {
	if err := s.alerts.Insert(ctx, alert); err != nil {
		return err
	}
	// the alert is durable at this point; event fan-out is best effort
	if err := s.pub.PublishTriggered(ctx, alert); err != nil {
		log.Printf("publish alert %d: %v", alert.ID, err)
	}
	return nil
}
