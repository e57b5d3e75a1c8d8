package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/publisher"
)

// ErrAlertNotActive is returned when a transition is attempted on an alert
// that has already reached a terminal status. Callers should treat it as a
// logic or race condition, not retry it.
var ErrAlertNotActive = errors.New("alert is not active")

// ErrAlertNotFound is returned when the referenced alert does not exist.
var ErrAlertNotFound = errors.New("alert not found")

// ErrNoLocation is returned when a manual alert is requested for a trip with
// no location samples to anchor it to.
var ErrNoLocation = errors.New("no location data for trip")

// AlertService owns the alert state machine: active until the traveler
// responds or the deadline sweep escalates. All terminal states are final.
type AlertService struct {
	alerts  database.AlertRepository
	samples database.SampleRepository
	pub     publisher.AlertPublisher
	cfg     MonitorConfig
	now     func() time.Time
}

func NewAlertService(
	alerts database.AlertRepository,
	samples database.SampleRepository,
	pub publisher.AlertPublisher,
	cfg MonitorConfig,
) *AlertService {
	return &AlertService{
		alerts:  alerts,
		samples: samples,
		pub:     pub,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Respond records the traveler's answer to an active alert. The status row
// update is guarded on the alert still being active, so losing a race with
// the deadline sweep surfaces as ErrAlertNotActive rather than overwriting
// the escalation.
func (s *AlertService) Respond(ctx context.Context, alertID int64, kind domain.ResponseKind, message string) (*domain.SafetyAlert, error) {
	alert, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlertNotFound
		}
		return nil, err
	}
	if alert.Status.Terminal() {
		return nil, ErrAlertNotActive
	}

	var status domain.AlertStatus
	switch kind {
	case domain.ResponseSafe:
		status = domain.AlertRespondedSafe
		if message == "" {
			message = "User confirmed they are safe"
		}
	case domain.ResponseHelp:
		status = domain.AlertRespondedHelp
		if message == "" {
			message = "User requested help"
		}
	default:
		return nil, fmt.Errorf("unknown response kind %q", kind)
	}

	respondedAt := s.now()
	updated, err := s.alerts.MarkResponded(ctx, alertID, status, message, respondedAt)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrAlertNotActive
	}

	alert.Status = status
	alert.ResponseMessage = &message
	alert.RespondedAt = &respondedAt
	return alert, nil
}

// CheckDeadline escalates alert if it is still active and its response
// deadline has strictly passed. It reports whether the escalation happened.
// Calling it on a terminal alert is an error.
func (s *AlertService) CheckDeadline(ctx context.Context, alert *domain.SafetyAlert, now time.Time) (bool, error) {
	if alert.Status.Terminal() {
		return false, ErrAlertNotActive
	}
	if !now.After(alert.ResponseDeadline) {
		return false, nil
	}

	escalated, err := s.alerts.Escalate(ctx, alert.ID)
	if err != nil {
		return false, err
	}
	if !escalated {
		// someone responded between the read and the update
		return false, nil
	}

	alert.Status = domain.AlertEscalated
	if err := s.pub.PublishEscalated(ctx, alert); err != nil {
		log.Printf("publish escalation for alert %d: %v", alert.ID, err)
	}
	return true, nil
}

// SweepDeadlines runs CheckDeadline over every active alert and returns how
// many were escalated.
func (s *AlertService) SweepDeadlines(ctx context.Context) (int, error) {
	active, err := s.alerts.FindActive(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	count := 0
	for i := range active {
		escalated, err := s.CheckDeadline(ctx, &active[i], now)
		if err != nil {
			return count, err
		}
		if escalated {
			count++
		}
	}
	return count, nil
}

// CreateManual raises an SOS-style alert anchored at the traveler's most
// recent sample for the trip.
func (s *AlertService) CreateManual(ctx context.Context, userID, tripID int64, message string) (*domain.SafetyAlert, error) {
	latest, err := s.samples.GetLatest(ctx, userID, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoLocation
		}
		return nil, err
	}

	now := s.now()
	alert := &domain.SafetyAlert{
		UserID:           userID,
		TripID:           tripID,
		Kind:             domain.AlertManual,
		Status:           domain.AlertActive,
		Title:            domain.AlertManual.Title(),
		Message:          message,
		Coordinate:       latest.Coordinate,
		TriggeredAt:      now,
		ResponseDeadline: now.Add(s.cfg.ResponseTimeout),
	}

	if err := s.alerts.Insert(ctx, alert); err != nil {
		return nil, err
	}
	if err := s.pub.PublishTriggered(ctx, alert); err != nil {
		log.Printf("publish alert %d: %v", alert.ID, err)
	}
	return alert, nil
}

// ListForTrip returns all alerts for a traveler on a trip.
func (s *AlertService) ListForTrip(ctx context.Context, userID, tripID int64) ([]domain.SafetyAlert, error) {
	return s.alerts.FindByUserTrip(ctx, userID, tripID)
}
