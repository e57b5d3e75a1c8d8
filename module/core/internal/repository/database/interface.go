package database

import (
	"context"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

// ItineraryRepository reads trip configuration and planned stops. The engine
// never writes through it.
type ItineraryRepository interface {
	GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error)
	GetPlannedLocations(ctx context.Context, tripID int64) ([]domain.PlannedLocation, error)
}

// SampleRepository stores and reads traveler location samples.
type SampleRepository interface {
	Insert(ctx context.Context, sample *domain.LocationSample) error
	GetLatest(ctx context.Context, userID, tripID int64) (*domain.LocationSample, error)
	GetRecentSamples(ctx context.Context, userID, tripID int64, since time.Time) ([]domain.LocationSample, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationSample, error)
}

// AlertRepository stores safety alerts. Status updates are guarded: they
// apply only while the row is still active, so a concurrent respond and
// escalate cannot both win.
type AlertRepository interface {
	Insert(ctx context.Context, alert *domain.SafetyAlert) error
	GetByID(ctx context.Context, id int64) (*domain.SafetyAlert, error)
	FindByUserTrip(ctx context.Context, userID, tripID int64) ([]domain.SafetyAlert, error)
	FindActive(ctx context.Context) ([]domain.SafetyAlert, error)
	MarkResponded(ctx context.Context, id int64, status domain.AlertStatus, message string, respondedAt time.Time) (bool, error)
	Escalate(ctx context.Context, id int64) (bool, error)
}
