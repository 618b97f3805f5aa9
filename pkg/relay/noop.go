package relay

import (
	"context"

	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/logger"
)

// NoopRelay is the unconfigured/development sink. It performs no outbound
// call and returns a distinguishable accepted-but-not-delivered outcome, so
// operators can tell simulated acceptance from a real send.
type NoopRelay struct{}

func NewNoopRelay() *NoopRelay {
	return &NoopRelay{}
}

func (r *NoopRelay) Deliver(ctx context.Context, payload *domain.NormalizedPayload) domain.DeliveryOutcome {
	// Log the would-be payload for local inspection.
	logger.Log.Info("dev mode: would forward inspection request",
		"name", payload.Name,
		"email", payload.Email,
		"municipality", payload.Municipality,
		"inspection_type", payload.InspectionType,
		"requested_date", deref(payload.RequestedDate),
		"requested_time", deref(payload.RequestedTime),
	)
	return domain.DeliveryOutcome{Status: domain.StatusSkipped, Dev: true}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
