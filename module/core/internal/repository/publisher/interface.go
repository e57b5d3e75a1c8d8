package publisher

import (
	"context"

	"github.com/tripsentry/tripsentry/module/core/domain"
)

// AlertPublisher announces alert lifecycle events to downstream consumers
// (notification dispatch lives outside this service).
type AlertPublisher interface {
	PublishTriggered(ctx context.Context, alert *domain.SafetyAlert) error
	PublishEscalated(ctx context.Context, alert *domain.SafetyAlert) error
}
