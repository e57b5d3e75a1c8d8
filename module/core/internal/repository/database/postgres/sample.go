package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database"
)

var _ database.SampleRepository = (*SampleRepo)(nil)

type SampleRepo struct {
	db *sql.DB
}

func NewSampleRepo(db *sql.DB) *SampleRepo {
	return &SampleRepo{db: db}
}

const sampleColumns = `id, user_id, trip_id, latitude, longitude, accuracy_meters, battery_level, is_manual, timestamp`

func (r *SampleRepo) Insert(ctx context.Context, sample *domain.LocationSample) error {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO location_samples (user_id, trip_id, latitude, longitude, accuracy_meters, battery_level, is_manual, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		sample.UserID, sample.TripID, sample.Coordinate.Lat, sample.Coordinate.Lon,
		sample.AccuracyMeters, sample.BatteryLevel, sample.IsManual, sample.Timestamp,
	)
	return row.Scan(&sample.ID)
}

func (r *SampleRepo) GetLatest(ctx context.Context, userID, tripID int64) (*domain.LocationSample, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sampleColumns+` FROM location_samples WHERE user_id = $1 AND trip_id = $2 ORDER BY timestamp DESC LIMIT 1`,
		userID, tripID,
	)
	return scanSample(row)
}

func (r *SampleRepo) GetRecentSamples(ctx context.Context, userID, tripID int64, since time.Time) ([]domain.LocationSample, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sampleColumns+` FROM location_samples WHERE user_id = $1 AND trip_id = $2 AND timestamp >= $3 ORDER BY timestamp ASC`,
		userID, tripID, since,
	)
	if err != nil {
		return nil, err
	}
	return collectSamples(rows)
}

func (r *SampleRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationSample, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sampleColumns+` FROM location_samples WHERE user_id = $1 AND trip_id = $2 AND timestamp >= $3 AND timestamp <= $4 ORDER BY timestamp ASC`,
		query.UserID, query.TripID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	return collectSamples(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSample(row rowScanner) (*domain.LocationSample, error) {
	var s domain.LocationSample
	var accuracy sql.NullFloat64
	var battery sql.NullInt64

	if err := row.Scan(&s.ID, &s.UserID, &s.TripID, &s.Coordinate.Lat, &s.Coordinate.Lon,
		&accuracy, &battery, &s.IsManual, &s.Timestamp); err != nil {
		return nil, err
	}
	if accuracy.Valid {
		s.AccuracyMeters = &accuracy.Float64
	}
	if battery.Valid {
		level := int(battery.Int64)
		s.BatteryLevel = &level
	}
	return &s, nil
}

func collectSamples(rows *sql.Rows) ([]domain.LocationSample, error) {
	defer func() { _ = rows.Close() }()

	var results []domain.LocationSample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *s)
	}
	return results, rows.Err()
}
