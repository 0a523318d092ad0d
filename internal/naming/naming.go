package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// ToTitleCase upper-cases the first character of s and every character that
// follows a space separator. Spaces are kept and all other characters are
// left untouched.
// Example: "pet store" -> "Pet Store"
// Example: "dateTime" -> "DateTime"
func ToTitleCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))
	nextTitle := true

	for _, r := range s {
		switch {
		case isSpace(r):
			nextTitle = true
		case nextTitle:
			r = unicode.ToTitle(r)
			nextTitle = false
		}
		result.WriteRune(r)
	}

	return result.String()
}

// StripSpaces removes every space separator from s.
// Example: "Pet Store" -> "PetStore"
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Fold returns the case-folded form of s, suitable as a map key for
// case-insensitive lookups.
func Fold(s string) string {
	// A Caser holds state and must not be shared between goroutines.
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under full Unicode case folding.
func EqualFold(a, b string) bool {
	if a == b {
		return true
	}
	return Fold(a) == Fold(b)
}

func isSpace(r rune) bool {
	return unicode.In(r, unicode.Zs, unicode.Zl, unicode.Zp)
}
