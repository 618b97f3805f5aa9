package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DeliveryMode selects the sink the intake pipeline forwards to. Resolved
// once at startup instead of scattering env checks through the code.
type DeliveryMode int

const (
	// ModeNoOp accepts submissions without delivering them (development).
	ModeNoOp DeliveryMode = iota
	// ModeHTTPRelay forwards to the upstream contact endpoint.
	ModeHTTPRelay
	// ModeDirectMail composes and sends the office email directly.
	ModeDirectMail
)

func (m DeliveryMode) String() string {
	switch m {
	case ModeHTTPRelay:
		return "http_relay"
	case ModeDirectMail:
		return "direct_mail"
	default:
		return "noop"
	}
}

type Config struct {
	Port string
	// Upstream relay. Absent => no relay.
	ContactAPIURL       string
	ContactSharedSecret string
	// SMTP Configuration (direct mail mode)
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SMTPFromEmail   string
	ContactEmailTo  string
	ContactEmailBCC []string
	// SendReceipt enables the best-effort confirmation email to the submitter.
	SendReceipt bool
	// CORS
	AllowedOrigins []string
	// BusinessPhone is the office line quoted in fallback messages and
	// confirmation emails.
	BusinessPhone string
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		ContactAPIURL:       strings.TrimSpace(getEnv("CONTACT_API_URL", "")),
		ContactSharedSecret: getEnv("CONTACT_SHARED_SECRET", ""),
		SMTPHost:            getEnv("SMTP_HOST", ""),
		SMTPPort:            getEnv("SMTP_PORT", "587"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:       getEnv("SMTP_FROM_EMAIL", "requests@empireelectricalsolutions.com"),
		ContactEmailTo:      getEnv("CONTACT_EMAIL_TO", "office@empireelectricalsolutions.com"),
		ContactEmailBCC:     splitList(getEnv("CONTACT_EMAIL_BCC", "")),
		SendReceipt:         getEnvBool("SEND_RECEIPT", true),
		AllowedOrigins:      splitList(getEnv("ALLOWED_ORIGINS", "")),
		BusinessPhone:       getEnv("BUSINESS_PHONE", "215-839-8997"),
	}

	if cfg.ContactAPIURL == "" && !cfg.SMTPConfigured() {
		log.Println("WARNING: no CONTACT_API_URL and SMTP not configured. Submissions will be accepted but not delivered.")
	}

	return cfg, nil
}

// DeliveryMode resolves the sink from what is configured. The relay wins
// when both are set; SMTP is the fallback; otherwise dev/no-op.
func (c *Config) DeliveryMode() DeliveryMode {
	if c.ContactAPIURL != "" {
		return ModeHTTPRelay
	}
	if c.SMTPConfigured() {
		return ModeDirectMail
	}
	return ModeNoOp
}

// SMTPConfigured reports whether direct mail can be attempted.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
