package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

func newMonitorService(itin *mockItineraryRepo, hist *mockSampleRepo, alerts *mockAlertRepo, pub *mockAlertPublisher) *MonitorService {
	if itin == nil {
		itin = &mockItineraryRepo{}
	}
	if hist == nil {
		hist = &mockSampleRepo{}
	}
	if alerts == nil {
		alerts = &mockAlertRepo{}
	}
	if pub == nil {
		pub = &mockAlertPublisher{}
	}
	return NewMonitorService(itin, hist, alerts, pub, DefaultMonitorConfig())
}

func farSample(now time.Time) *domain.LocationSample {
	return &domain.LocationSample{
		UserID:     3,
		TripID:     7,
		Coordinate: domain.Coordinate{Lat: 48.8566, Lon: 2.3522}, // ~4.2km from the waypoint
		Timestamp:  now,
	}
}

func TestOnLocationSample_DeviationOnly(t *testing.T) {
	now := time.Unix(1715003456, 0)
	alerts := &mockAlertRepo{}
	pub := &mockAlertPublisher{}

	svc := newMonitorService(nil, nil, alerts, pub)
	svc.now = func() time.Time { return now }

	fired, err := svc.OnLocationSample(context.Background(), farSample(now), parisTrip(), parisWaypoints(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(fired))
	}
	if fired[0].Kind != domain.AlertDeviation {
		t.Errorf("expected deviation, got %s", fired[0].Kind)
	}
	if len(alerts.inserted) != 1 {
		t.Fatalf("expected the alert to be stored, got %d inserts", len(alerts.inserted))
	}
	if len(pub.triggered) != 1 {
		t.Errorf("expected 1 triggered event, got %d", len(pub.triggered))
	}
	if fired[0].ID == 0 {
		t.Error("expected stored alert to carry its assigned id")
	}
}

func TestOnLocationSample_DeviationAndStationary(t *testing.T) {
	now := time.Unix(1715003456, 0)
	alerts := &mockAlertRepo{}

	svc := newMonitorService(nil, nil, alerts, nil)
	svc.now = func() time.Time { return now }

	// stationary cluster ~4.2km from the waypoint; the latest sample also
	// deviates, so both detectors fire on the same evaluation
	recent := clusterAt(48.8566, 2.3522, 5, now)
	sample := &recent[len(recent)-1]

	fired, err := svc.OnLocationSample(context.Background(), sample, parisTrip(), parisWaypoints(), recent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(fired))
	}
	if fired[0].Kind != domain.AlertDeviation || fired[1].Kind != domain.AlertStationary {
		t.Errorf("expected deviation before stationary, got %s then %s", fired[0].Kind, fired[1].Kind)
	}
}

func TestOnLocationSample_MonitoringDisabled(t *testing.T) {
	now := time.Unix(1715003456, 0)
	alerts := &mockAlertRepo{}

	svc := newMonitorService(nil, nil, alerts, nil)
	svc.now = func() time.Time { return now }

	trip := parisTrip()
	trip.MonitoringEnabled = false

	fired, err := svc.OnLocationSample(context.Background(), farSample(now), trip, parisWaypoints(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("expected no alerts with monitoring disabled, got %d", len(fired))
	}
	if len(alerts.inserted) != 0 {
		t.Errorf("expected no inserts, got %d", len(alerts.inserted))
	}
}

func TestOnLocationSample_QuietSample(t *testing.T) {
	now := time.Unix(1715003456, 0)

	svc := newMonitorService(nil, nil, nil, nil)
	svc.now = func() time.Time { return now }

	sample := &domain.LocationSample{
		UserID:     3,
		TripID:     7,
		Coordinate: domain.Coordinate{Lat: 48.8590, Lon: 2.2950}, // ~70m from the waypoint
		Timestamp:  now,
	}

	fired, err := svc.OnLocationSample(context.Background(), sample, parisTrip(), parisWaypoints(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("expected no alerts, got %d", len(fired))
	}
}

func TestOnLocationSample_StoreError(t *testing.T) {
	now := time.Unix(1715003456, 0)
	alerts := &mockAlertRepo{
		insertFn: func(_ context.Context, _ *domain.SafetyAlert) error {
			return errors.New("db down")
		},
	}
	pub := &mockAlertPublisher{}

	svc := newMonitorService(nil, nil, alerts, pub)
	svc.now = func() time.Time { return now }

	fired, err := svc.OnLocationSample(context.Background(), farSample(now), parisTrip(), parisWaypoints(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if fired != nil {
		t.Fatalf("expected no alerts on store failure, got %d", len(fired))
	}
	if len(pub.triggered) != 0 {
		t.Errorf("expected no events on store failure, got %d", len(pub.triggered))
	}
}

func TestHandleSample_LoadsSnapshot(t *testing.T) {
	now := time.Unix(1715003456, 0)
	var gotSince time.Time

	itin := &mockItineraryRepo{
		getTripFn: func(_ context.Context, tripID int64) (*domain.Trip, error) {
			if tripID != 7 {
				t.Fatalf("unexpected tripID: %d", tripID)
			}
			return parisTrip(), nil
		},
		getPlannedLocationsFn: func(_ context.Context, _ int64) ([]domain.PlannedLocation, error) {
			return parisWaypoints(), nil
		},
	}
	hist := &mockSampleRepo{
		getRecentSamplesFn: func(_ context.Context, userID, tripID int64, since time.Time) ([]domain.LocationSample, error) {
			gotSince = since
			return nil, nil
		},
	}

	svc := newMonitorService(itin, hist, nil, nil)
	svc.now = func() time.Time { return now }

	fired, err := svc.HandleSample(context.Background(), farSample(now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(fired))
	}
	if want := now.Add(-4 * time.Hour); !gotSince.Equal(want) {
		t.Errorf("expected window start %v, got %v", want, gotSince)
	}
}

func TestHandleSample_MonitoringDisabledSkipsLoads(t *testing.T) {
	itin := &mockItineraryRepo{
		getTripFn: func(_ context.Context, _ int64) (*domain.Trip, error) {
			trip := parisTrip()
			trip.MonitoringEnabled = false
			return trip, nil
		},
		getPlannedLocationsFn: func(_ context.Context, _ int64) ([]domain.PlannedLocation, error) {
			t.Fatal("GetPlannedLocations should not be called")
			return nil, nil
		},
	}

	svc := newMonitorService(itin, nil, nil, nil)
	fired, err := svc.HandleSample(context.Background(), farSample(time.Unix(1715003456, 0)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fired) != 0 {
		t.Fatalf("expected no alerts, got %d", len(fired))
	}
}

func TestHandleSample_TripLookupError(t *testing.T) {
	itin := &mockItineraryRepo{
		getTripFn: func(_ context.Context, _ int64) (*domain.Trip, error) {
			return nil, errors.New("db down")
		},
	}

	svc := newMonitorService(itin, nil, nil, nil)
	if _, err := svc.HandleSample(context.Background(), farSample(time.Unix(1715003456, 0))); err == nil {
		t.Fatal("expected error")
	}
}
