package domain

import "time"

// LocationSample is one GPS reading for a traveler on a trip. Samples are
// append-only and ordered by timestamp.
type LocationSample struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	TripID         int64      `json:"trip_id"`
	Coordinate     Coordinate `json:"coordinate"`
	Timestamp      time.Time  `json:"timestamp"`
	AccuracyMeters *float64   `json:"accuracy_meters,omitempty"`
	BatteryLevel   *int       `json:"battery_level,omitempty"`
	IsManual       bool       `json:"is_manual"`
}

// HistoryQuery selects a traveler's samples within a time range.
type HistoryQuery struct {
	UserID int64
	TripID int64
	Start  time.Time
	End    time.Time
}
