package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database"
)

var _ database.AlertRepository = (*AlertRepo)(nil)

type AlertRepo struct {
	db *sql.DB
}

func NewAlertRepo(db *sql.DB) *AlertRepo {
	return &AlertRepo{db: db}
}

const alertColumns = `id, user_id, trip_id, kind, status, title, message, latitude, longitude, distance_from_planned_km, triggered_at, response_deadline, responded_at, response_message`

func (r *AlertRepo) Insert(ctx context.Context, alert *domain.SafetyAlert) error {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO safety_alerts (user_id, trip_id, kind, status, title, message, latitude, longitude, distance_from_planned_km, triggered_at, response_deadline)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		alert.UserID, alert.TripID, string(alert.Kind), string(alert.Status), alert.Title, alert.Message,
		alert.Coordinate.Lat, alert.Coordinate.Lon, alert.DistanceFromPlannedKm,
		alert.TriggeredAt, alert.ResponseDeadline,
	)
	return row.Scan(&alert.ID)
}

func (r *AlertRepo) GetByID(ctx context.Context, id int64) (*domain.SafetyAlert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM safety_alerts WHERE id = $1`,
		id,
	)
	return scanAlert(row)
}

func (r *AlertRepo) FindByUserTrip(ctx context.Context, userID, tripID int64) ([]domain.SafetyAlert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM safety_alerts WHERE user_id = $1 AND trip_id = $2 ORDER BY triggered_at DESC`,
		userID, tripID,
	)
	if err != nil {
		return nil, err
	}
	return collectAlerts(rows)
}

func (r *AlertRepo) FindActive(ctx context.Context) ([]domain.SafetyAlert, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM safety_alerts WHERE status = 'active' ORDER BY response_deadline ASC`,
	)
	if err != nil {
		return nil, err
	}
	return collectAlerts(rows)
}

// MarkResponded applies the response only if the alert is still active, and
// reports whether a row was updated.
func (r *AlertRepo) MarkResponded(ctx context.Context, id int64, status domain.AlertStatus, message string, respondedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE safety_alerts SET status = $2, response_message = $3, responded_at = $4 WHERE id = $1 AND status = 'active'`,
		id, string(status), message, respondedAt,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Escalate flips an active alert to escalated, reporting whether it won the
// race against a concurrent response.
func (r *AlertRepo) Escalate(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE safety_alerts SET status = 'escalated' WHERE id = $1 AND status = 'active'`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanAlert(row rowScanner) (*domain.SafetyAlert, error) {
	var a domain.SafetyAlert
	var kind, status string
	var distance sql.NullFloat64
	var respondedAt sql.NullTime
	var responseMessage sql.NullString

	if err := row.Scan(&a.ID, &a.UserID, &a.TripID, &kind, &status, &a.Title, &a.Message,
		&a.Coordinate.Lat, &a.Coordinate.Lon, &distance,
		&a.TriggeredAt, &a.ResponseDeadline, &respondedAt, &responseMessage); err != nil {
		return nil, err
	}

	a.Kind = domain.AlertKind(kind)
	a.Status = domain.AlertStatus(status)
	if distance.Valid {
		a.DistanceFromPlannedKm = &distance.Float64
	}
	if respondedAt.Valid {
		a.RespondedAt = &respondedAt.Time
	}
	if responseMessage.Valid {
		a.ResponseMessage = &responseMessage.String
	}
	return &a, nil
}

func collectAlerts(rows *sql.Rows) ([]domain.SafetyAlert, error) {
	defer func() { _ = rows.Close() }()

	var results []domain.SafetyAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *a)
	}
	return results, rows.Err()
}
