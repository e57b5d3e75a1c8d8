package domain

import "time"

type AlertKind string

const (
	AlertDeviation  AlertKind = "deviation"
	AlertStationary AlertKind = "stationary"
	AlertManual     AlertKind = "manual"
)

// Title returns the display title for the kind.
func (k AlertKind) Title() string {
	switch k {
	case AlertDeviation:
		return "Location Deviation Detected"
	case AlertStationary:
		return "Stationary Alert"
	case AlertManual:
		return "Manual Safety Alert"
	}
	return "Safety Alert"
}

type AlertStatus string

const (
	AlertActive        AlertStatus = "active"
	AlertRespondedSafe AlertStatus = "responded_safe"
	AlertRespondedHelp AlertStatus = "responded_help"
	AlertEscalated     AlertStatus = "escalated"
)

// Terminal reports whether no further transitions are allowed from s.
func (s AlertStatus) Terminal() bool {
	return s != AlertActive
}

// ResponseKind is the traveler's answer to an active alert.
type ResponseKind string

const (
	ResponseSafe ResponseKind = "safe"
	ResponseHelp ResponseKind = "help"
)

// SafetyAlert is the engine's own mutable entity. Detectors create it,
// the lifecycle service transitions its status, nothing ever deletes it.
// DistanceFromPlannedKm is a snapshot taken at trigger time and is never
// recomputed; ResponseDeadline is set once at creation.
type SafetyAlert struct {
	ID                    int64       `json:"id"`
	UserID                int64       `json:"user_id"`
	TripID                int64       `json:"trip_id"`
	Kind                  AlertKind   `json:"kind"`
	Status                AlertStatus `json:"status"`
	Title                 string      `json:"title"`
	Message               string      `json:"message"`
	Coordinate            Coordinate  `json:"coordinate"`
	DistanceFromPlannedKm *float64    `json:"distance_from_planned_km,omitempty"`
	TriggeredAt           time.Time   `json:"triggered_at"`
	ResponseDeadline      time.Time   `json:"response_deadline"`
	RespondedAt           *time.Time  `json:"responded_at,omitempty"`
	ResponseMessage       *string     `json:"response_message,omitempty"`
}
