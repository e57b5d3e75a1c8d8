package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/publisher"
)

var _ publisher.AlertPublisher = (*AlertPublisher)(nil)

const (
	exchangeName = "travel.safety"
	queueName    = "safety_alerts"
)

const (
	eventTriggered = "alert_triggered"
	eventEscalated = "alert_escalated"
)

type AlertPublisher struct {
	ch *amqp.Channel
}

func NewAlertPublisher(conn *amqp.Connection) (*AlertPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &AlertPublisher{ch: ch}, nil
}

type alertEvent struct {
	Event                 string           `json:"event"`
	AlertID               int64            `json:"alert_id"`
	UserID                int64            `json:"user_id"`
	TripID                int64            `json:"trip_id"`
	Kind                  domain.AlertKind `json:"kind"`
	Title                 string           `json:"title"`
	Message               string           `json:"message"`
	Latitude              float64          `json:"latitude"`
	Longitude             float64          `json:"longitude"`
	DistanceFromPlannedKm *float64         `json:"distance_from_planned_km,omitempty"`
	TriggeredAt           int64            `json:"triggered_at"`
	ResponseDeadline      int64            `json:"response_deadline"`
}

func (p *AlertPublisher) PublishTriggered(ctx context.Context, alert *domain.SafetyAlert) error {
	return p.publish(ctx, eventTriggered, alert)
}

func (p *AlertPublisher) PublishEscalated(ctx context.Context, alert *domain.SafetyAlert) error {
	return p.publish(ctx, eventEscalated, alert)
}

func (p *AlertPublisher) publish(ctx context.Context, event string, alert *domain.SafetyAlert) error {
	msg := alertEvent{
		Event:                 event,
		AlertID:               alert.ID,
		UserID:                alert.UserID,
		TripID:                alert.TripID,
		Kind:                  alert.Kind,
		Title:                 alert.Title,
		Message:               alert.Message,
		Latitude:              alert.Coordinate.Lat,
		Longitude:             alert.Coordinate.Lon,
		DistanceFromPlannedKm: alert.DistanceFromPlannedKm,
		TriggeredAt:           alert.TriggeredAt.Unix(),
		ResponseDeadline:      alert.ResponseDeadline.Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
