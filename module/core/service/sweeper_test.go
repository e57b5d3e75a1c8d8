package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

func TestSweeperRun_EscalatesOverdueAlerts(t *testing.T) {
	now := time.Unix(1715003456, 0)
	var escalations atomic.Int64

	repo := &mockAlertRepo{
		findActiveFn: func(_ context.Context) ([]domain.SafetyAlert, error) {
			return []domain.SafetyAlert{*activeAlert(now.Add(-time.Minute))}, nil
		},
		escalateFn: func(_ context.Context, _ int64) (bool, error) {
			escalations.Add(1)
			return true, nil
		},
	}

	svc := newAlertService(repo, nil, nil)
	svc.now = func() time.Time { return now }

	sweeper := NewEscalationSweeper(svc, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for escalations.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected at least one escalation")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return on cancellation")
	}
}
