// Package emailaddr parses free-text invitee email lists.
package emailaddr

import (
	"regexp"
	"strings"
)

// addressRE is the syntactic check applied to each token: local@domain.tld
// with no whitespace. Deliverability is not verified.
var addressRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ParseResult classifies the tokens of a comma-separated address list.
type ParseResult struct {
	// Emails is the lower-cased, de-duplicated address list in
	// first-occurrence order.
	Emails []string
	// Invalid holds the tokens that fail the syntactic check.
	Invalid []string
}

// ParseList splits raw on commas, trims and lower-cases each token,
// de-duplicates case-insensitively preserving first occurrence, and
// classifies every kept token. It is total: any input, including empty or
// whitespace-only, yields a result and never an error.
func ParseList(raw string) ParseResult {
	result := ParseResult{
		Emails:  []string{},
		Invalid: []string{},
	}

	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(token))
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}

		if addressRE.MatchString(email) {
			result.Emails = append(result.Emails, email)
		} else {
			result.Invalid = append(result.Invalid, email)
		}
	}

	return result
}

// Valid reports whether the list parsed without any invalid tokens.
func (r ParseResult) Valid() bool {
	return len(r.Invalid) == 0
}
