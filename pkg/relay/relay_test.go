package relay_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/relay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload() *domain.NormalizedPayload {
	return &domain.NormalizedPayload{
		Name:           "Alice Jones",
		Email:          "alice@example.com",
		Phone:          "5551234567",
		JobAddress:     "1 Main St",
		Municipality:   "Philadelphia",
		InspectionType: "Rough",
	}
}

func TestDeliverSignsExactBody(t *testing.T) {
	const secret = "test-secret"

	var gotBody []byte
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotSig = r.Header.Get(relay.SignatureHeader)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "messageId": "office:abc123"})
	}))
	defer srv.Close()

	out := relay.NewHTTPRelay(srv.URL, secret).Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusDelivered, out.Status)
	assert.Equal(t, "office:abc123", out.MessageID)
	require.NotEmpty(t, gotSig)
	assert.Equal(t, relay.Sign(secret, gotBody), gotSig)
	assert.True(t, relay.VerifySignature(secret, gotBody, gotSig))

	// Signature is over the whitelisted JSON payload only.
	var forwarded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(gotBody, &forwarded))
	assert.Contains(t, forwarded, "name")
	assert.Contains(t, forwarded, "requestedDate")
	assert.NotContains(t, forwarded, "_hp")
}

func TestDeliverWithoutSecretOmitsHeader(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get(relay.SignatureHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	out := relay.NewHTTPRelay(srv.URL, "").Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusDelivered, out.Status)
	assert.Empty(t, gotSig)
}

func TestDeliverNon2xxIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := relay.NewHTTPRelay(srv.URL, "").Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, domain.ErrKindUpstream, out.Kind)
}

func TestDeliverUnreachableIsInternalError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // force a connection error

	out := relay.NewHTTPRelay(srv.URL, "").Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, domain.ErrKindInternal, out.Kind)
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"name":"Alice"}`)
	sig := relay.Sign("secret", body)

	assert.True(t, relay.VerifySignature("secret", body, sig))
	assert.False(t, relay.VerifySignature("secret", []byte(`{"name":"Mallory"}`), sig), "tampered body must fail")
	assert.False(t, relay.VerifySignature("other", body, sig), "wrong secret must fail")
	assert.False(t, relay.VerifySignature("secret", body, "not-hex"), "malformed signature must fail")
	assert.True(t, relay.VerifySignature("", body, ""), "verification is a no-op when signing is disabled")
}
