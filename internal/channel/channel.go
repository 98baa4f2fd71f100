// Package channel classifies inbound message addresses and formats outbound ones.
package channel

import (
	"fmt"
	"strings"
)

// Channel is the transport variant a message arrived on.
type Channel string

const (
	SMS      Channel = "sms"
	WhatsApp Channel = "whatsapp"
)

// Address prefixes used by the messaging platform.
const (
	WhatsAppPrefix = "whatsapp:"
	SMSPrefix      = "sms:"
)

// knownPrefixes are stripped by Normalize. Order does not matter, at most one is removed.
var knownPrefixes = []string{WhatsAppPrefix, SMSPrefix}

// Classify returns the channel for a raw address. Anything that is not a
// WhatsApp address, including the empty string, is SMS.
func Classify(raw string) Channel {
	if strings.HasPrefix(raw, WhatsAppPrefix) {
		return WhatsApp
	}
	return SMS
}

// Normalize strips a single known channel prefix. Normalizing an already
// normalized address is a no-op.
func Normalize(raw string) string {
	for _, p := range knownPrefixes {
		if strings.HasPrefix(raw, p) {
			return strings.TrimPrefix(raw, p)
		}
	}
	return raw
}

// Format is the inverse of Normalize: it re-applies the WhatsApp prefix when
// ch is WhatsApp. The input may already carry a prefix.
func Format(addr string, ch Channel) string {
	addr = Normalize(addr)
	if addr == "" {
		return ""
	}
	if ch == WhatsApp {
		return WhatsAppPrefix + addr
	}
	return addr
}

// Parse reads an operator-supplied channel name. Empty defaults to SMS.
func Parse(s string) (Channel, error) {
	switch Channel(strings.ToLower(strings.TrimSpace(s))) {
	case "", SMS:
		return SMS, nil
	case WhatsApp:
		return WhatsApp, nil
	default:
		return "", fmt.Errorf("unknown channel %q", s)
	}
}

// Label is the upper-case tag used in log lines, e.g. "WHATSAPP".
func (c Channel) Label() string {
	return strings.ToUpper(string(c))
}

func (c Channel) String() string {
	return string(c)
}
