package postgres

import (
	"context"
	"database/sql"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database"
)

var _ database.ItineraryRepository = (*ItineraryRepo)(nil)

type ItineraryRepo struct {
	db *sql.DB
}

func NewItineraryRepo(db *sql.DB) *ItineraryRepo {
	return &ItineraryRepo{db: db}
}

func (r *ItineraryRepo) GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, owner_id, name, monitoring_enabled, deviation_threshold_km FROM trips WHERE id = $1`,
		tripID,
	)

	var t domain.Trip
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.MonitoringEnabled, &t.DeviationThresholdKm); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ItineraryRepo) GetPlannedLocations(ctx context.Context, tripID int64) ([]domain.PlannedLocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, trip_id, name, latitude, longitude, radius_meters, is_accommodation FROM planned_locations WHERE trip_id = $1 ORDER BY id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.PlannedLocation
	for rows.Next() {
		var pl domain.PlannedLocation
		if err := rows.Scan(&pl.ID, &pl.TripID, &pl.Name, &pl.Coordinate.Lat, &pl.Coordinate.Lon, &pl.RadiusMeters, &pl.IsAccommodation); err != nil {
			return nil, err
		}
		results = append(results, pl)
	}
	return results, rows.Err()
}
