package sanitizer

import (
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"
)

// TrimAndNormalize trims the string and collapses internal whitespace
// runs into single spaces.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var b strings.Builder
	var lastWasSpace bool
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			b.WriteRune(r)
			lastWasSpace = false
		}
	}
	return b.String()
}

// NormalizeEmail lowercases and trims an email address. Always applied
// before storage so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DigitsOnly strips every non-digit character from a phone number.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PrettyPhone formats a phone number for human-facing output (review
// summaries, notification emails). Falls back to the raw input when the
// number cannot be parsed as a US number.
func PrettyPhone(phone string) string {
	parsed, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.NATIONAL)
}
