package service

import "time"

// MonitorConfig carries the tunables of the safety engine. It is passed in
// explicitly at construction so tests can vary parameters deterministically.
type MonitorConfig struct {
	// ResponseTimeout is how long a traveler has to answer an alert before
	// the deadline sweep escalates it.
	ResponseTimeout time.Duration
	// StationaryWindow is the trailing window of samples inspected by the
	// stationarity check.
	StationaryWindow time.Duration
	// MovementEpsilonKm is the maximum spread between samples for a traveler
	// to still count as stationary.
	MovementEpsilonKm float64
	// StationaryAlertRadiusKm is how far from every planned location a
	// stationary traveler must be before an alert fires.
	StationaryAlertRadiusKm float64
	// SweepInterval is how often the deadline sweep runs.
	SweepInterval time.Duration
}

func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		ResponseTimeout:         15 * time.Minute,
		StationaryWindow:        4 * time.Hour,
		MovementEpsilonKm:       0.5,
		StationaryAlertRadiusKm: 1.0,
		SweepInterval:           time.Minute,
	}
}
