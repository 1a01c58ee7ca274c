package naming

import (
	"strings"
	"unicode"
)

// ToNormalIdent converts a declared Go identifier to its normal snake form:
// the words of s, lowercased and joined by single underscores.
// "UserName", "userName" and "_user__name" all normalize to "user_name".
func ToNormalIdent(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return strings.Join(words, "_")
}

// Words splits an identifier into words, keeping their case.
// A word ends at a separator ('_', '-' or ' '), before an upper case rune
// that follows a lower case rune or digit, and before the last upper case
// rune of an acronym that is followed by lower case ("XMLParser" gives
// "XML" and "Parser"). Digits never start a word.
func Words(s string) []string {
	runes := []rune(s)

	var words []string

	start := -1

	for i, r := range runes {
		switch {
		case isSeparator(r):
			if start >= 0 {
				words = append(words, string(runes[start:i]))
				start = -1
			}
		case start < 0:
			start = i
		case breaksBefore(runes, i):
			words = append(words, string(runes[start:i]))
			start = i
		}
	}

	if start >= 0 {
		words = append(words, string(runes[start:]))
	}

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// breaksBefore reports whether runes[i] starts a new word. runes[i-1] is
// part of the current word.
func breaksBefore(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}

	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
