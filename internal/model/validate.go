package model

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// FieldErrors maps a field name to a human-readable validation message.
// It is returned as the "details" member of a validation error response.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, msg := range e {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// checkLength records an error when the trimmed value is outside [min, max]
// runes. Required fields pass min >= 1.
func checkLength(errs FieldErrors, field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min || n > max {
		errs[field] = fmt.Sprintf("doit faire entre %d et %d caractères", min, max)
	}
}

// validEmail reports whether addr parses as a bare RFC 5322 address.
func validEmail(addr string) bool {
	if addr == "" || len(addr) > 254 {
		return false
	}
	parsed, err := mail.ParseAddress(addr)
	return err == nil && parsed.Address == addr
}
