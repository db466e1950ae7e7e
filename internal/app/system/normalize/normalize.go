// Package normalize canonicalizes member-entered values before they are
// stored or compared.
package normalize

import "strings"

// Email lower-cases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses inner runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status lower-cases and trims a status value such as an RSVP status.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role lower-cases and trims a membership role.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query parameter value. Case is preserved.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// IDList splits a comma-separated list, trimming entries and dropping
// empty ones.
func IDList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
