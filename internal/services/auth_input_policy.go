package services

import (
	"net/mail"
	"strings"
)

// NormalizeAuthEmail lower-cases and trims the address, returning "" for anything unparsable.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}
