package phone_test

import (
	"testing"

	"go-inspection-backend/pkg/phone"

	"github.com/stretchr/testify/assert"
)

func TestFormatHuman(t *testing.T) {
	assert.Equal(t, "(215) 839-8997", phone.FormatHuman("215-839-8997"))
	assert.Equal(t, "(215) 839-8997", phone.FormatHuman("2158398997"))
	assert.Equal(t, "(215) 839-8997", phone.FormatHuman("+1 215 839 8997"))
	// Not a US 10/11-digit number: returned unchanged
	assert.Equal(t, "112", phone.FormatHuman("112"))
}

func TestTelHref(t *testing.T) {
	assert.Equal(t, "tel:+2158398997", phone.TelHref("215-839-8997"))
	assert.Equal(t, "tel:+12158398997", phone.TelHref("+1 (215) 839-8997"))
}
