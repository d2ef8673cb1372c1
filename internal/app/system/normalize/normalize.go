// Package normalize canonicalizes user-entered identity fields before they
// are stored or compared.
package normalize

import (
	"strings"
	"unicode"
)

// Email trims and lowercases an email address.
func Email(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Name trims and collapses internal whitespace, preserving case.
func Name(s string) string { return strings.Join(strings.Fields(s), " ") }

// Role trims and lowercases a role name.
func Role(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Phone keeps a leading '+' and the digits, dropping spaces, dashes and
// parentheses.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
