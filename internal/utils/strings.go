package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitSeatList splits comma/semicolon separated seat strings into cleaned slices.
func SplitSeatList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p))
	}
	return out
}

// JoinSeatList renders seat numbers the way receipts show them: "A1, A2".
func JoinSeatList(seats []string) string {
	if len(seats) == 0 {
		return "None"
	}
	return strings.Join(seats, ", ")
}

// Fallback returns v trimmed, or fallback when v is blank.
func Fallback(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
