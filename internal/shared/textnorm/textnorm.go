// Package textnorm builds case and accent insensitive comparison keys.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s and strips diacritical marks ("É Fácil" -> "e facil").
// Empty or whitespace-only input yields "".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	// A transform.Chain keeps internal state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Contains reports whether the normalized field contains the normalized term.
// An empty term matches every field.
func Contains(field, term string) bool {
	key := Normalize(term)
	if key == "" {
		return true
	}
	return strings.Contains(Normalize(field), key)
}

// ContainsAny reports whether any of fields contains term.
func ContainsAny(term string, fields ...string) bool {
	key := Normalize(term)
	if key == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(Normalize(f), key) {
			return true
		}
	}
	return false
}
