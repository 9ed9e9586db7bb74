// Package phone canonicalizes phone numbers to their digits-only form
// so that formatting differences never produce duplicate clients.
package phone

import "strings"

// Normalize strips everything but digits: "(714) 555-0100",
// "714-555-0100" and "+1 714 555 0100" all normalize consistently.
// The result is stable under repeated application.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Last10 returns the trailing 10 digits of a normalized number,
// dropping any country-code prefix. Shorter numbers are returned
// unchanged. Inbound sender numbers are matched on this suffix.
func Last10(raw string) string {
	digits := Normalize(raw)
	if len(digits) > 10 {
		return digits[len(digits)-10:]
	}
	return digits
}
