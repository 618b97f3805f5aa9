// Package email is the direct-mail delivery sink: it composes the office
// notification for a new inspection request and, optionally, a best-effort
// confirmation to the submitter.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"

	"go-inspection-backend/config"
	"go-inspection-backend/internal/domain"
	"go-inspection-backend/pkg/logger"
	"go-inspection-backend/pkg/phone"
)

// Service sends inspection request emails via SMTP.
type Service struct {
	host          string
	port          string
	username      string
	password      string
	fromEmail     string
	toEmail       string
	bcc           []string
	sendReceipt   bool
	businessPhone string

	// sendMail is swappable in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		host:          cfg.SMTPHost,
		port:          cfg.SMTPPort,
		username:      cfg.SMTPUsername,
		password:      cfg.SMTPPassword,
		fromEmail:     cfg.SMTPFromEmail,
		toEmail:       cfg.ContactEmailTo,
		bcc:           cfg.ContactEmailBCC,
		sendReceipt:   cfg.SendReceipt,
		businessPhone: cfg.BusinessPhone,
		sendMail:      smtp.SendMail,
	}
}

// IsConfigured checks if the service has valid SMTP configuration.
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Deliver sends the office notification, then (best effort) the submitter
// confirmation. A confirmation failure never downgrades a successful
// office send.
func (s *Service) Deliver(ctx context.Context, payload *domain.NormalizedPayload) domain.DeliveryOutcome {
	subject := OfficeSubject(payload)
	htmlBody, err := OfficeHTML(payload)
	if err != nil {
		logger.Log.Error("office email compose failed", "error", err, "kind", domain.ErrKindInternal)
		return domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindInternal}
	}

	messageID := uuid.NewString()
	msg := s.buildMessage(s.toEmail, payload.Email, subject, htmlBody, messageID)
	recipients := append([]string{s.toEmail}, s.bcc...)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := s.sendMail(addr, auth, s.fromEmail, recipients, msg); err != nil {
		logger.Log.Error("office email send failed", "error", err, "kind", domain.ErrKindUpstream)
		return domain.DeliveryOutcome{Status: domain.StatusFailed, Kind: domain.ErrKindUpstream}
	}
	logger.Log.Info("office email delivered",
		"message_id", messageID,
		"requested_date", DisplayDate(payload.RequestedDate),
		"inspection_type", payload.InspectionType,
	)

	if s.sendReceipt && payload.Email != "" {
		s.sendConfirmation(payload)
	}

	return domain.DeliveryOutcome{Status: domain.StatusDelivered, MessageID: "office:" + messageID}
}

// sendConfirmation emails the submitter. Errors are logged and swallowed.
func (s *Service) sendConfirmation(payload *domain.NormalizedPayload) {
	htmlBody, err := ConfirmationHTML(payload.Name, DisplayDate(payload.RequestedDate), s.businessPhone)
	if err != nil {
		logger.Log.Warn("confirmation email compose failed", "error", err)
		return
	}
	subject := fmt.Sprintf("We've received your inspection request for %s", DisplayDate(payload.RequestedDate))
	msg := s.buildMessage(payload.Email, "", subject, htmlBody, uuid.NewString())

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := s.sendMail(addr, auth, s.fromEmail, []string{payload.Email}, msg); err != nil {
		logger.Log.Warn("confirmation email send failed", "error", err)
	}
}

// buildMessage constructs a MIME message. replyTo may be empty.
func (s *Service) buildMessage(to, replyTo, subject, htmlBody, messageID string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", s.fromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	fmt.Fprintf(&b, "Message-Id: <%s@empireelectricalsolutions.com>\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.Bytes()
}

// DisplayDate substitutes a placeholder when no service date was requested.
func DisplayDate(requestedDate *string) string {
	if requestedDate == nil || *requestedDate == "" {
		return "Not specified"
	}
	return *requestedDate
}

// OfficeSubject builds the office notification subject line.
func OfficeSubject(p *domain.NormalizedPayload) string {
	return fmt.Sprintf("New Inspection — %s — %s — %s", DisplayDate(p.RequestedDate), p.Name, p.InspectionType)
}

// officeTemplate renders the office notification. html/template escapes every
// interpolated field, so hostile form input cannot inject markup.
var officeTemplate = template.Must(template.New("office").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #222;">
  <h2>New Inspection Request</h2>
  <p><b>Name:</b> {{.Name}}</p>
  {{if .Company}}<p><b>Company:</b> {{.Company}}</p>{{end}}
  <p><b>Email:</b> {{.Email}}</p>
  <p><b>Phone:</b> {{.Phone}}</p>
  <p><b>Job Address:</b> {{.JobAddress}}</p>
  <p><b>Municipality:</b> {{.Municipality}}</p>
  <p><b>Inspection Type:</b> {{.InspectionType}}</p>
  <p><b>Requested Date:</b> {{.DisplayDate}}</p>
  {{if .RequestedTime}}<p><b>Requested Time:</b> {{.RequestedTime}}</p>{{end}}
  {{if .Notes}}<p><b>Notes:</b></p><div style="background: #f8f9fa; padding: 12px; border-left: 4px solid #0066cc;">{{.Notes}}</div>{{end}}
</body>
</html>`))

// OfficeHTML renders the office notification body.
func OfficeHTML(p *domain.NormalizedPayload) (string, error) {
	data := struct {
		*domain.NormalizedPayload
		DisplayDate string
	}{p, DisplayDate(p.RequestedDate)}

	var body bytes.Buffer
	if err := officeTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute office template: %w", err)
	}
	return body.String(), nil
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #222; max-width: 600px; margin: 0 auto; padding: 20px;">
  <p>Hi {{.Name}},</p>
  <p>Thank you for contacting <strong>Empire Electrical Solutions</strong>. We are committed to connecting you with our expert inspection professionals and work closely with your municipality to keep your project on schedule. A team member will reach out during our regular business hours, <strong>7:30AM - 4:00PM (Monday-Friday)</strong> excluding holidays.</p>
  <div style="background-color: #f8f9fa; padding: 16px; border-left: 4px solid #007bff; margin: 20px 0;">
    <p style="margin: 0;"><strong>Requested Service Date:</strong> {{.DisplayDate}}</p>
  </div>
  <p>If you need immediate assistance, please call <a href="{{.TelHref}}" style="color: #007bff; font-weight: bold;">{{.PhoneHuman}}</a>.</p>
  <p style="margin-top: 24px; font-weight: bold;">Best regards,<br>Team Empire</p>
</div>`))

// ConfirmationHTML renders the submitter confirmation body.
func ConfirmationHTML(name, displayDate, businessPhone string) (string, error) {
	data := struct {
		Name        string
		DisplayDate string
		// template.URL because html/template rejects the tel: scheme otherwise.
		TelHref    template.URL
		PhoneHuman string
	}{
		Name:        name,
		DisplayDate: displayDate,
		TelHref:     template.URL(phone.TelHref(businessPhone)),
		PhoneHuman:  phone.FormatHuman(businessPhone),
	}
	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to execute confirmation template: %w", err)
	}
	return body.String(), nil
}
