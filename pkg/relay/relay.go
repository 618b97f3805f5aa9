// Package relay forwards normalized inspection requests to the upstream
// contact endpoint, optionally signing the body with a shared secret.
package relay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/logger"
)

// SignatureHeader carries the hex HMAC-SHA256 of the exact outgoing body.
const SignatureHeader = "X-Empire-Signature"

const requestTimeout = 8 * time.Second

// HTTPRelay POSTs the payload as JSON to a configured upstream endpoint.
// A non-2xx response is an upstream error; transport failures are internal.
// There is no automatic retry; the caller resubmits.
type HTTPRelay struct {
	url    string
	secret string
	client *http.Client
}

func NewHTTPRelay(url, secret string) *HTTPRelay {
	return &HTTPRelay{
		url:    url,
		secret: secret,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (r *HTTPRelay) Deliver(ctx context.Context, payload *domain.NormalizedPayload) domain.DeliveryOutcome {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("relay payload marshal failed", "error", err)
		return domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindInternal}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		logger.Log.Error("relay request build failed", "error", err)
		return domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindInternal}
	}
	req.Header.Set("Content-Type", "application/json")
	if r.secret != "" {
		// Sign the exact bytes on the wire; the secret itself never logs.
		req.Header.Set(SignatureHeader, Sign(r.secret, body))
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logger.Log.Error("relay upstream unreachable", "error", err, "kind", domain.ErrKindInternal)
		return domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindInternal}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		logger.Log.Error("relay upstream rejected request",
			"status", resp.StatusCode,
			"body", string(snippet),
			"kind", domain.ErrKindUpstream,
		)
		return domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindUpstream}
	}

	// Best-effort provider message id from the upstream response.
	var out struct {
		MessageID string `json:"messageId"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&out)

	logger.Log.Info("relay delivered inspection request",
		"status", resp.StatusCode,
		"message_id", out.MessageID,
		"signed", r.secret != "",
	)
	return domain.DeliveryOutcome{Status: domain.StatusDelivered, MessageID: out.MessageID}
}

// Sign computes the hex-encoded HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a hex signature against the body using a
// timing-safe comparison. A receiver with no secret configured accepts
// everything (signing disabled).
func VerifySignature(secret string, body []byte, hexSig string) bool {
	if secret == "" {
		return true
	}
	provided, err := hex.DecodeString(hexSig)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}
