package domain

import (
	"strings"
	"unicode"
)

// Query represents a parsed jump input
type Query struct {
	Raw       string   // Normalized input
	Fragments []string // Space-separated fragments
}

// ParseQuery parses user input into a structured query
// Examples:
//   - "plex" -> ["plex"]
//   - "home ass" -> ["home", "ass"]
func ParseQuery(input string) *Query {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return &Query{Raw: input}
	}

	return &Query{
		Raw:       input,
		Fragments: splitAndClean(input, " "),
	}
}

// splitAndClean splits a string by separator and returns non-empty parts
func splitAndClean(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// LinkFragments extracts the words a link can be matched on, label first.
// Example: {Name: "Plex Media", AltName: "Movies"} -> ["movies", "plex", "media"]
func LinkFragments(l Link) []string {
	seen := make(map[string]bool)
	var out []string
	for _, source := range []string{l.Label(), l.Name} {
		words := strings.FieldsFunc(strings.ToLower(source), func(r rune) bool {
			return r == ' ' || r == '-' || r == '_' || r == '.'
		})
		for _, w := range words {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}

// normalizeFragment normalizes a fragment for matching
func normalizeFragment(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}
