package domain

import (
	"strings"
	"unicode"
)

// SplitWords breaks a kind name into words on casing boundaries.
//
// A new word starts at a lower-to-upper transition ("webApp"), at the last
// upper-case letter of an acronym run followed by lower case ("HTTPServer"
// gives "HTTP", "Server"), at a letter/digit transition, and at any of
// '_', '-', '.' or space, which are dropped.
func SplitWords(name string) []string {
	runes := []rune(name)
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if isWordSeparator(r) {
			flush()
			continue
		}

		if i > 0 && len(current) > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			case unicode.IsDigit(r) != unicode.IsDigit(prev):
				flush()
			}
		}

		current = append(current, r)
	}
	flush()

	return words
}

// ToLabel converts a kind name to a display label: "WebApplication" -> "Web Application"
func ToLabel(name string) string {
	return strings.Join(SplitWords(name), " ")
}

// ToAlias converts a kind name to an alias: "WebApplication" -> "web-application"
func ToAlias(name string) string {
	words := SplitWords(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

func isWordSeparator(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsSpace(r)
}
