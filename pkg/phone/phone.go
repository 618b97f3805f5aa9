// Package phone holds small helpers for rendering business phone numbers
// in fallback messages and confirmation emails.
package phone

import (
	"fmt"
	"strings"
)

// TelHref builds a tel: link target from a raw number, keeping only digits
// and a leading +.
func TelHref(raw string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if !strings.HasPrefix(clean, "+") {
		clean = "+" + clean
	}
	return "tel:" + clean
}

// FormatHuman renders a US number as (AAA) BBB-CCCC. Accepts 10-digit
// numbers or 11-digit numbers with a leading 1; anything else is returned
// unchanged.
func FormatHuman(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}
	return fmt.Sprintf("(%s) %s-%s", digits[0:3], digits[3:6], digits[6:])
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
