package usecase

import (
	"strings"

	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/validation"
)

// Normalize projects a validated request onto the delivery whitelist.
// Optionals become nil (JSON null) when absent or blank, and the requested
// date is rewritten to canonical ISO form; unrecognized dates become null
// rather than erroring. Fields outside the whitelist never pass through.
func Normalize(req *domain.ContactRequest) *domain.NormalizedPayload {
	return &domain.NormalizedPayload{
		Name:           strings.TrimSpace(req.Name),
		Company:        optional(req.Company),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		JobAddress:     strings.TrimSpace(req.JobAddress),
		Municipality:   strings.TrimSpace(req.Municipality),
		InspectionType: strings.TrimSpace(req.InspectionType),
		RequestedDate:  normalizeDate(req.PreferredDate),
		RequestedTime:  optional(req.PreferredTime),
		Notes:          optional(req.Notes),
	}
}

// optional trims a pointer field, coercing blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// normalizeDate canonicalizes to ISO YYYY-MM-DD, or nil when absent/invalid.
func normalizeDate(s *string) *string {
	if s == nil {
		return nil
	}
	iso, ok := validation.NormalizeDate(*s)
	if !ok {
		return nil
	}
	return &iso
}
