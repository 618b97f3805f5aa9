// Package validation enforces the contact request schema: field presence and
// formats, the closed inspection-type set, and the business-hours/lead-time
// scheduling rules.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"go-inspection-backend/internal/domain"
)

// Scheduling constraints for requested inspection slots.
const (
	BusinessOpenHour  = 7  // 07:00 local
	BusinessCloseHour = 18 // 18:00 local
	MinLeadTime       = 60 * time.Minute
	MaxNotesLen       = 2000
)

var (
	isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	usDateRegex  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	clockRegex   = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// ContactValidator wraps a validator instance with the contact-specific
// rules registered. The time source is injectable so lead-time boundaries
// can be pinned in tests.
type ContactValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*ContactValidator)

// WithClock overrides the time source used by the scheduling rules.
func WithClock(now func() time.Time) Option {
	return func(cv *ContactValidator) { cv.now = now }
}

func New(opts ...Option) *ContactValidator {
	cv := &ContactValidator{now: time.Now}

	v := validator.New()
	// Report errors under the JSON field names the client submitted.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("inspection_type", validInspectionType)
	_ = v.RegisterValidation("flex_date", validFlexDate)
	_ = v.RegisterValidation("clock_time", validClockTime)
	v.RegisterStructValidation(cv.scheduleRule, domain.ContactRequest{})
	cv.validate = v

	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

// Validate checks an untrusted request and returns field-keyed messages, or
// nil when the request is well formed. It never panics on garbage input; a
// zero-value request simply fails its required-field rules.
func (cv *ContactValidator) Validate(req *domain.ContactRequest) map[string]string {
	if req == nil {
		req = &domain.ContactRequest{}
	}
	err := cv.validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": "Invalid request"}
	}
	details := make(map[string]string, len(verrs))
	for _, e := range verrs {
		// First error per field wins.
		if _, seen := details[e.Field()]; !seen {
			details[e.Field()] = formatFieldError(e)
		}
	}
	return details
}

// validInspectionType checks membership in the fixed inspection-type set.
func validInspectionType(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, t := range domain.InspectionTypes {
		if val == t {
			return true
		}
	}
	return false
}

// validFlexDate accepts ISO YYYY-MM-DD or US MM/DD/YYYY.
func validFlexDate(fl validator.FieldLevel) bool {
	_, ok := NormalizeDate(fl.Field().String())
	return ok
}

// validClockTime accepts 24-hour HH:MM.
func validClockTime(fl validator.FieldLevel) bool {
	return clockRegex.MatchString(fl.Field().String())
}

// scheduleRule enforces the business-hours window and minimum lead time when
// both a date and a time were supplied. Either violation is reported as one
// combined error on the time field.
func (cv *ContactValidator) scheduleRule(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.ContactRequest)
	if req.PreferredDate == nil || req.PreferredTime == nil {
		return
	}
	date, ok := NormalizeDate(*req.PreferredDate)
	if !ok || !clockRegex.MatchString(strings.TrimSpace(*req.PreferredTime)) {
		// Field-level rules already flagged the malformed part.
		return
	}
	instant, err := time.ParseInLocation("2006-01-02 15:04", date+" "+strings.TrimSpace(*req.PreferredTime), time.Local)
	if err != nil {
		return
	}

	minuteOfDay := instant.Hour()*60 + instant.Minute()
	inHours := minuteOfDay >= BusinessOpenHour*60 && minuteOfDay <= BusinessCloseHour*60
	leadOK := !instant.Before(cv.now().Add(MinLeadTime))
	if !inHours || !leadOK {
		sl.ReportError(req.PreferredTime, "preferredTime", "PreferredTime", "schedule_window", "")
	}
}

// NormalizeDate canonicalizes ISO YYYY-MM-DD or US MM/DD/YYYY input to an
// ISO date string. Unrecognized input reports ok=false instead of erroring.
func NormalizeDate(input string) (string, bool) {
	s := strings.TrimSpace(input)
	if isoDateRegex.MatchString(s) {
		return s, true
	}
	if m := usDateRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return fmt.Sprintf("%s-%02d-%02d", m[3], month, day), true
		}
	}
	return "", false
}

var fieldLabels = map[string]string{
	"name":           "Name",
	"company":        "Company",
	"phone":          "Phone",
	"email":          "Email",
	"jobAddress":     "Job address",
	"municipality":   "Municipality",
	"inspectionType": "Inspection type",
	"preferredDate":  "Preferred date",
	"preferredTime":  "Preferred time",
	"notes":          "Notes",
}

func formatFieldError(e validator.FieldError) string {
	label, ok := fieldLabels[e.Field()]
	if !ok {
		label = e.Field()
	}
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "email":
		return "Valid email required"
	case "inspection_type":
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(domain.InspectionTypes, ", "))
	case "flex_date":
		return fmt.Sprintf("%s must be YYYY-MM-DD or MM/DD/YYYY", label)
	case "clock_time":
		return fmt.Sprintf("%s must be HH:MM (24-hour)", label)
	case "schedule_window":
		return fmt.Sprintf("%s must fall between %02d:00 and %02d:00 and be at least %d minutes from now",
			label, BusinessOpenHour, BusinessCloseHour, int(MinLeadTime.Minutes()))
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
