package usecase

import (
	"context"
	"strings"
	"time"

	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/logger"
)

// deliveryTimeout bounds the outbound call so a slow sink cannot hold the
// handler open indefinitely.
const deliveryTimeout = 8 * time.Second

type contactUsecase struct {
	validator domain.ContactValidator
	limiter   domain.RateLimiter
	relay     domain.DeliveryRelay
}

// NewContactUsecase creates the inspection request intake pipeline.
func NewContactUsecase(v domain.ContactValidator, rl domain.RateLimiter, relay domain.DeliveryRelay) domain.ContactUsecase {
	return &contactUsecase{
		validator: v,
		limiter:   rl,
		relay:     relay,
	}
}

// SubmitInspectionRequest sequences validate -> honeypot -> rate limit ->
// normalize -> deliver, with early exits. Validation runs first so invalid
// noise never consumes rate-limit tokens; honeypot hits are absorbed before
// the limiter so bot traps are never surfaced as 429s.
func (uc *contactUsecase) SubmitInspectionRequest(ctx context.Context, req *domain.ContactRequest, sourceID string) domain.SubmitResult {
	if fieldErrors := uc.validator.Validate(req); len(fieldErrors) > 0 {
		return domain.SubmitResult{
			Outcome:     domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindValidation},
			FieldErrors: fieldErrors,
		}
	}

	if req.IsBot() {
		// Silently absorb: success-shaped response, no delivery, and no hint
		// to the caller that the trap fired.
		logger.Log.Info("honeypot triggered, absorbing submission", "source", sourceID)
		return domain.SubmitResult{Outcome: domain.DeliveryOutcome{Status: domain.StatusSkipped}}
	}

	if !uc.limiter.Allow(sourceID) {
		logger.Log.Warn("submission rate limited", "source", sourceID)
		return domain.SubmitResult{
			Outcome: domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindRateLimited},
		}
	}

	payload := Normalize(req)

	// Field presence only; raw submission content stays out of the logs.
	logger.Log.Info("forwarding inspection request",
		"source", sourceID,
		"inspection_type", payload.InspectionType,
		"email_domain", emailDomain(payload.Email),
		"name_len", len(payload.Name),
		"notes_len", strLen(payload.Notes),
		"has_requested_date", payload.RequestedDate != nil,
	)

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()
	return domain.SubmitResult{Outcome: uc.relay.Deliver(ctx, payload)}
}

func emailDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}

func strLen(s *string) int {
	if s == nil {
		return 0
	}
	return len(*s)
}
