package domain

// Trip is read-only configuration for the monitoring engine. It is created
// and edited by the itinerary service, never here.
type Trip struct {
	ID                   int64   `json:"id"`
	OwnerID              int64   `json:"owner_id"`
	Name                 string  `json:"name"`
	MonitoringEnabled    bool    `json:"monitoring_enabled"`
	DeviationThresholdKm float64 `json:"deviation_threshold_km"`
}

// PlannedLocation is a stop on a trip's itinerary.
type PlannedLocation struct {
	ID              int64      `json:"id"`
	TripID          int64      `json:"trip_id"`
	Name            string     `json:"name"`
	Coordinate      Coordinate `json:"coordinate"`
	RadiusMeters    float64    `json:"radius_meters"`
	IsAccommodation bool       `json:"is_accommodation"`
}
