package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Channel
	}{
		{"whatsapp prefix", "whatsapp:+15551234567", WhatsApp},
		{"plain number", "+15551234567", SMS},
		{"sms prefix", "sms:+15551234567", SMS},
		{"empty address", "", SMS},
		{"prefix not at start", "+1555whatsapp:", SMS},
		{"case sensitive prefix", "WhatsApp:+15551234567", SMS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"strips whatsapp", "whatsapp:+15551234567", "+15551234567"},
		{"strips sms", "sms:+15551234567", "+15551234567"},
		{"identity without prefix", "+15551234567", "+15551234567"},
		{"empty", "", ""},
		{"strips exactly one prefix", "whatsapp:sms:+1", "sms:+1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, raw := range []string{"whatsapp:+15551234567", "sms:+44700900123", "+15551234567", ""} {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "raw=%q", raw)
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	addrs := []string{"whatsapp:+15551234567", "sms:+15551234567", "+15551234567"}

	for _, raw := range addrs {
		n := Normalize(raw)
		assert.Equal(t, "whatsapp:"+n, Format(n, WhatsApp))
		assert.Equal(t, n, Format(n, SMS))
	}

	// Classify/Normalize/Format reconstructs a WhatsApp sender address.
	raw := "whatsapp:+15551234567"
	assert.Equal(t, raw, Format(Normalize(raw), Classify(raw)))
}

func TestFormat_EmptyAddress(t *testing.T) {
	assert.Equal(t, "", Format("", WhatsApp))
	assert.Equal(t, "", Format("", SMS))
}

func TestParse(t *testing.T) {
	ch, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, SMS, ch)

	ch, err = Parse(" WhatsApp ")
	require.NoError(t, err)
	assert.Equal(t, WhatsApp, ch)

	_, err = Parse("telegram")
	assert.Error(t, err)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "WHATSAPP", WhatsApp.Label())
	assert.Equal(t, "SMS", SMS.Label())
}
