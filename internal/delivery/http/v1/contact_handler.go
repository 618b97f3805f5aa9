package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go-inspection-backend/config"
	"go-inspection-backend/internal/delivery/http/response"
	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/apperror"
	"go-inspection-backend/pkg/phone"

	"github.com/gin-gonic/gin"
)

// maxBodyBytes caps the request body; a contact form never legitimately
// approaches this.
const maxBodyBytes = 64 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
	// upstreamFallback is the 502 message; it includes a callable office
	// number so the lead is not lost when delivery fails.
	upstreamFallback string
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, cfg *config.Config) {
	handler := &ContactHandler{
		contactUC: contactUC,
		upstreamFallback: fmt.Sprintf("Error sending email - please try again or call us at %s.",
			phone.FormatHuman(cfg.BusinessPhone)),
	}

	// Public Routes - NO authentication required
	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact accepts an inspection request submission and maps the
// pipeline outcome onto HTTP statuses:
// 200 delivered/dev/honeypot, 400 validation, 429 rate limited,
// 502 upstream delivery failure, 500 internal.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	// Malformed JSON is treated as an empty submission, not a fatal parse
	// error - validation then reports the missing fields.
	if body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes)); err == nil {
		_ = json.Unmarshal(body, &req)
	}

	result := h.contactUC.SubmitInspectionRequest(c.Request.Context(), &req, sourceID(c))

	switch result.Outcome.Status {
	case domain.StatusDelivered:
		response.Success(c, http.StatusOK, result.Outcome.MessageID, false)
	case domain.StatusSkipped:
		// Covers both absorbed honeypot hits (no dev marker, indistinguishable
		// from success to the caller) and dev/no-op acceptance.
		response.Success(c, http.StatusOK, "", result.Outcome.Dev)
	default:
		switch result.Outcome.Kind {
		case domain.ErrKindValidation:
			c.Error(apperror.Validation(result.FieldErrors))
		case domain.ErrKindRateLimited:
			c.Error(apperror.TooManyRequests("rate_limited"))
		case domain.ErrKindUpstream:
			c.Error(apperror.BadGateway(h.upstreamFallback, nil))
		default:
			c.Error(apperror.Internal(nil))
		}
	}
}

// sourceID derives a best-effort client identifier for rate limiting:
// first forwarded-for entry, then real-ip, then a local placeholder. Header
// values are client-influenced, so this is not a security boundary.
func sourceID(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return "local"
}
