package domain

import (
	"context"
	"strings"
)

// InspectionTypes is the closed set of services that can be requested.
// The form renders this list verbatim; validation rejects anything else.
var InspectionTypes = []string{
	"Rough",
	"Final",
	"Above-Ceiling",
	"Service",
	"Re-Intro",
	"Pool",
	"PA-Pool",
}

// ContactRequest represents an inspection request form submission.
// Optional fields are pointers so that "absent" survives normalization as
// an explicit null instead of silently disappearing from the payload.
type ContactRequest struct {
	Name           string  `json:"name" validate:"required,min=2"`
	Company        *string `json:"company" validate:"-"`
	Phone          string  `json:"phone" validate:"required,min=7"`
	Email          string  `json:"email" validate:"required,email"`
	JobAddress     string  `json:"jobAddress" validate:"required,min=3"`
	Municipality   string  `json:"municipality" validate:"required,min=2"`
	InspectionType string  `json:"inspectionType" validate:"required,inspection_type"`
	PreferredDate  *string `json:"preferredDate" validate:"omitempty,flex_date"`
	PreferredTime  *string `json:"preferredTime" validate:"omitempty,clock_time"`
	Notes          *string `json:"notes" validate:"omitempty,max=2000"`
	// Honeypot is a hidden form field. Humans never fill it; any non-empty
	// value marks the submission as automated.
	Honeypot *string `json:"_hp" validate:"-"`
}

// IsBot reports whether the hidden honeypot field was filled in.
func (r *ContactRequest) IsBot() bool {
	return r.Honeypot != nil && strings.TrimSpace(*r.Honeypot) != ""
}

// NormalizedPayload is the strict whitelist of fields forwarded downstream.
// Nothing outside this struct ever crosses the delivery boundary, no matter
// what extra fields the inbound JSON carried.
type NormalizedPayload struct {
	Name           string  `json:"name"`
	Company        *string `json:"company"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	JobAddress     string  `json:"jobAddress"`
	Municipality   string  `json:"municipality"`
	InspectionType string  `json:"inspectionType"`
	RequestedDate  *string `json:"requestedDate"`
	RequestedTime  *string `json:"requestedTime"`
	Notes          *string `json:"notes"`
}

// DeliveryStatus tags the terminal state of a delivery attempt.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "delivered"
	StatusSkipped   DeliveryStatus = "skipped"
	StatusFailed    DeliveryStatus = "failed"
)

// ErrorKind classifies a failed submission for response mapping and logging.
type ErrorKind string

const (
	ErrKindValidation  ErrorKind = "validation"
	ErrKindRateLimited ErrorKind = "rate_limited"
	ErrKindUpstream    ErrorKind = "upstream_error"
	ErrKindInternal    ErrorKind = "internal_error"
)

// DeliveryOutcome is the tagged result of one delivery attempt.
type DeliveryOutcome struct {
	Status DeliveryStatus
	// MessageID is the provider message id when Status is StatusDelivered.
	MessageID string
	// Kind is set when Status is StatusFailed.
	Kind ErrorKind
	// Dev marks an accepted-but-not-delivered outcome (no sink configured),
	// so operators can tell simulated acceptance from a real send.
	Dev bool
}

// SubmitResult is what the intake pipeline hands back to the HTTP layer.
type SubmitResult struct {
	Outcome DeliveryOutcome
	// FieldErrors carries field-keyed messages when Kind is ErrKindValidation.
	FieldErrors map[string]string
}

// ContactValidator checks an untrusted request against the contact schema.
// A nil/empty map means the request is valid.
type ContactValidator interface {
	Validate(req *ContactRequest) map[string]string
}

// RateLimiter guards submission frequency per source identifier.
type RateLimiter interface {
	Allow(sourceID string) bool
}

// DeliveryRelay forwards a normalized payload to the configured sink.
type DeliveryRelay interface {
	Deliver(ctx context.Context, payload *NormalizedPayload) DeliveryOutcome
}

// ContactUsecase defines the interface for inspection request intake.
type ContactUsecase interface {
	// SubmitInspectionRequest runs the full intake pipeline:
	// validate -> honeypot -> rate limit -> normalize -> deliver.
	SubmitInspectionRequest(ctx context.Context, req *ContactRequest, sourceID string) SubmitResult
}
