// Package privacy masks personal data before it reaches the logs.
package privacy

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// addressPrefixRegex matches a channel prefix such as "whatsapp:" or "sms:"
	addressPrefixRegex = regexp.MustCompile(`^[a-z]+:`)

	// whitespaceRegex matches runs of whitespace
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// visibleDigits is how many trailing characters of an address stay readable.
const visibleDigits = 4

// MaskAddress hides all but the last four characters of a phone address.
// A channel prefix and a leading "+" are kept.
func MaskAddress(addr string) string {
	if addr == "" {
		return ""
	}
	prefix := addressPrefixRegex.FindString(addr)
	number := strings.TrimPrefix(addr, prefix)
	if strings.HasPrefix(number, "+") {
		prefix += "+"
		number = number[1:]
	}
	if len(number) <= visibleDigits {
		return prefix + strings.Repeat("*", len(number))
	}
	return prefix + strings.Repeat("*", len(number)-visibleDigits) + number[len(number)-visibleDigits:]
}

// Preview collapses whitespace and truncates text to at most maxRunes runes
// so a message body can be logged on one line.
func Preview(text string, maxRunes int) string {
	text = strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes]) + "…"
}
