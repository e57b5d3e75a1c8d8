package service

import (
	"context"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

type mockItineraryRepo struct {
	getTripFn             func(ctx context.Context, tripID int64) (*domain.Trip, error)
	getPlannedLocationsFn func(ctx context.Context, tripID int64) ([]domain.PlannedLocation, error)
}

func (m *mockItineraryRepo) GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	return m.getTripFn(ctx, tripID)
}

func (m *mockItineraryRepo) GetPlannedLocations(ctx context.Context, tripID int64) ([]domain.PlannedLocation, error) {
	return m.getPlannedLocationsFn(ctx, tripID)
}

type mockSampleRepo struct {
	insertFn           func(ctx context.Context, sample *domain.LocationSample) error
	getLatestFn        func(ctx context.Context, userID, tripID int64) (*domain.LocationSample, error)
	getRecentSamplesFn func(ctx context.Context, userID, tripID int64, since time.Time) ([]domain.LocationSample, error)
	getHistoryFn       func(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationSample, error)
}

func (m *mockSampleRepo) Insert(ctx context.Context, sample *domain.LocationSample) error {
	return m.insertFn(ctx, sample)
}

func (m *mockSampleRepo) GetLatest(ctx context.Context, userID, tripID int64) (*domain.LocationSample, error) {
	return m.getLatestFn(ctx, userID, tripID)
}

func (m *mockSampleRepo) GetRecentSamples(ctx context.Context, userID, tripID int64, since time.Time) ([]domain.LocationSample, error) {
	return m.getRecentSamplesFn(ctx, userID, tripID, since)
}

func (m *mockSampleRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationSample, error) {
	return m.getHistoryFn(ctx, query)
}

type mockAlertRepo struct {
	insertFn        func(ctx context.Context, alert *domain.SafetyAlert) error
	getByIDFn       func(ctx context.Context, id int64) (*domain.SafetyAlert, error)
	findByUserTrip  func(ctx context.Context, userID, tripID int64) ([]domain.SafetyAlert, error)
	findActiveFn    func(ctx context.Context) ([]domain.SafetyAlert, error)
	markRespondedFn func(ctx context.Context, id int64, status domain.AlertStatus, message string, respondedAt time.Time) (bool, error)
	escalateFn      func(ctx context.Context, id int64) (bool, error)

	inserted []*domain.SafetyAlert
}

func (m *mockAlertRepo) Insert(ctx context.Context, alert *domain.SafetyAlert) error {
	m.inserted = append(m.inserted, alert)
	if m.insertFn != nil {
		return m.insertFn(ctx, alert)
	}
	alert.ID = int64(len(m.inserted))
	return nil
}

func (m *mockAlertRepo) GetByID(ctx context.Context, id int64) (*domain.SafetyAlert, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockAlertRepo) FindByUserTrip(ctx context.Context, userID, tripID int64) ([]domain.SafetyAlert, error) {
	return m.findByUserTrip(ctx, userID, tripID)
}

func (m *mockAlertRepo) FindActive(ctx context.Context) ([]domain.SafetyAlert, error) {
	return m.findActiveFn(ctx)
}

func (m *mockAlertRepo) MarkResponded(ctx context.Context, id int64, status domain.AlertStatus, message string, respondedAt time.Time) (bool, error) {
	return m.markRespondedFn(ctx, id, status, message, respondedAt)
}

func (m *mockAlertRepo) Escalate(ctx context.Context, id int64) (bool, error) {
	return m.escalateFn(ctx, id)
}

type mockAlertPublisher struct {
	publishTriggeredFn func(ctx context.Context, alert *domain.SafetyAlert) error
	publishEscalatedFn func(ctx context.Context, alert *domain.SafetyAlert) error

	triggered []*domain.SafetyAlert
	escalated []*domain.SafetyAlert
}

func (m *mockAlertPublisher) PublishTriggered(ctx context.Context, alert *domain.SafetyAlert) error {
	m.triggered = append(m.triggered, alert)
	if m.publishTriggeredFn != nil {
		return m.publishTriggeredFn(ctx, alert)
	}
	return nil
}

func (m *mockAlertPublisher) PublishEscalated(ctx context.Context, alert *domain.SafetyAlert) error {
	m.escalated = append(m.escalated, alert)
	if m.publishEscalatedFn != nil {
		return m.publishEscalatedFn(ctx, alert)
	}
	return nil
}
