package service

import (
	"context"
	"log"
	"time"
)

// EscalationSweeper periodically escalates active alerts whose response
// deadline has passed. Sample ingestion never reaches the escalated status
// on its own; this sweep is the only driver for it.
type EscalationSweeper struct {
	alerts   *AlertService
	interval time.Duration
}

func NewEscalationSweeper(alerts *AlertService, interval time.Duration) *EscalationSweeper {
	return &EscalationSweeper{alerts: alerts, interval: interval}
}

// Run blocks until ctx is cancelled, sweeping once per interval. Sweep
// failures are logged and retried on the next tick.
func (s *EscalationSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := s.alerts.SweepDeadlines(ctx)
			if err != nil {
				log.Printf("deadline sweep error: %v", err)
				continue
			}
			if count > 0 {
				log.Printf("deadline sweep escalated %d alert(s)", count)
			}
		}
	}
}
