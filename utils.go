package main

import (
	"path/filepath"
	"strings"
)

var months = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// monthOfYear converts a case-folded month name or abbreviation to its
// month number, or 0 if the token is not a month
func monthOfYear(token string) int {
	return months[token]
}

// leadingInt reads an optionally signed run of leading decimal digits after
// any leading whitespace and ignores the rest. Anything without leading
// digits is 0.
func leadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<31 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// isNumericToken reports whether a token reads as a non-zero number.
// "0" and "00" are therefore not numeric.
func isNumericToken(token string) bool {
	return leadingInt(token) != 0
}

// extensionOf returns the lower-cased extension without the dot
func extensionOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// hasWildcard reports whether a file name carries wildcard characters
func hasWildcard(name string) bool {
	return strings.ContainsAny(name, "*?[")
}

// matchWildcard matches a file name against a wildcard case-insensitively.
// A name without wildcards must match exactly, and "*.*" matches everything.
func matchWildcard(pattern, name string) bool {
	if pattern == "" || pattern == "*" || pattern == "*.*" {
		return true
	}
	if !hasWildcard(pattern) {
		return strings.EqualFold(pattern, name)
	}
	ok, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && ok
}
