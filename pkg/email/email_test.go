package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"go-inspection-backend/config"
	"go-inspection-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		SMTPHost:       "smtp.example.com",
		SMTPPort:       "587",
		SMTPUsername:   "user",
		SMTPPassword:   "pass",
		SMTPFromEmail:  "requests@example.com",
		ContactEmailTo: "office@example.com",
		SendReceipt:    true,
		BusinessPhone:  "215-839-8997",
	}
}

func payload() *domain.NormalizedPayload {
	return &domain.NormalizedPayload{
		Name:           "Alice Jones",
		Email:          "alice@example.com",
		Phone:          "5551234567",
		JobAddress:     "1 Main St",
		Municipality:   "Philadelphia",
		InspectionType: "Rough",
		RequestedDate:  strPtr("2026-03-10"),
	}
}

type sentMail struct {
	from string
	to   []string
	msg  []byte
}

func TestDeliverSendsOfficeAndConfirmation(t *testing.T) {
	var sent []sentMail
	svc := NewService(testConfig())
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, sentMail{from: from, to: to, msg: msg})
		return nil
	}

	out := svc.Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusDelivered, out.Status)
	assert.True(t, strings.HasPrefix(out.MessageID, "office:"))
	require.Len(t, sent, 2, "office notification plus submitter confirmation")

	office := string(sent[0].msg)
	assert.Equal(t, []string{"office@example.com"}, sent[0].to)
	assert.Contains(t, office, "Subject: New Inspection — 2026-03-10 — Alice Jones — Rough")
	assert.Contains(t, office, "Reply-To: alice@example.com")

	confirm := string(sent[1].msg)
	assert.Equal(t, []string{"alice@example.com"}, sent[1].to)
	assert.Contains(t, confirm, "We've received your inspection request for 2026-03-10")
	assert.Contains(t, confirm, "(215) 839-8997")
}

func TestConfirmationFailureDoesNotFailDelivery(t *testing.T) {
	calls := 0
	svc := NewService(testConfig())
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		if calls == 2 {
			return errors.New("greylisted")
		}
		return nil
	}

	out := svc.Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusDelivered, out.Status, "confirmation errors are logged and swallowed")
	assert.Equal(t, 2, calls)
}

func TestOfficeSendFailureIsUpstreamError(t *testing.T) {
	calls := 0
	svc := NewService(testConfig())
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		return errors.New("550 rejected")
	}

	out := svc.Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusFailed, out.Status)
	assert.Equal(t, domain.ErrKindUpstream, out.Kind)
	assert.Equal(t, 1, calls, "no confirmation attempt after a failed office send")
}

func TestReceiptDisabledSkipsConfirmation(t *testing.T) {
	cfg := testConfig()
	cfg.SendReceipt = false

	calls := 0
	svc := NewService(cfg)
	svc.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		calls++
		return nil
	}

	out := svc.Deliver(context.Background(), payload())

	assert.Equal(t, domain.StatusDelivered, out.Status)
	assert.Equal(t, 1, calls)
}

func TestBCCRecipientsIncluded(t *testing.T) {
	cfg := testConfig()
	cfg.ContactEmailBCC = []string{"owner@example.com"}
	cfg.SendReceipt = false

	var to []string
	svc := NewService(cfg)
	svc.sendMail = func(addr string, a smtp.Auth, from string, rcpt []string, msg []byte) error {
		to = rcpt
		return nil
	}

	svc.Deliver(context.Background(), payload())
	assert.Equal(t, []string{"office@example.com", "owner@example.com"}, to)
}

func TestOfficeHTMLEscapesUserContent(t *testing.T) {
	p := payload()
	p.Name = `<script>alert("x")</script>`
	p.Notes = strPtr(`<img src=x onerror=alert(1)>`)

	body, err := OfficeHTML(p)
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.NotContains(t, body, "<img src=x")
}

func TestDisplayDatePlaceholder(t *testing.T) {
	assert.Equal(t, "Not specified", DisplayDate(nil))
	assert.Equal(t, "Not specified", DisplayDate(strPtr("")))
	assert.Equal(t, "2026-03-10", DisplayDate(strPtr("2026-03-10")))

	p := payload()
	p.RequestedDate = nil
	assert.Contains(t, OfficeSubject(p), "Not specified")
}

func TestConfirmationHTMLPhoneLink(t *testing.T) {
	body, err := ConfirmationHTML("Alice", "2026-03-10", "215-839-8997")
	require.NoError(t, err)

	assert.Contains(t, body, "(215) 839-8997")
	assert.Contains(t, body, `href="tel:+2158398997"`)
	assert.Contains(t, body, "7:30AM - 4:00PM")
}
