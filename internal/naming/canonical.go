package naming

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CanonicalName is the pair of names derived from one declared field name.
type CanonicalName struct {
	// LookupKey is the normal snake form, used verbatim as the string key
	// for name based column resolution (e.g. "user_name").
	LookupKey string
	// TypeRef is the upper camel form of LookupKey, used as the identifier
	// fragment of the column variant and the field value variant (e.g. "UserName").
	TypeRef string
}

// Canonicalize derives the CanonicalName of a declared field name.
// It is pure: the same input always yields the same output.
func Canonicalize(declared string) CanonicalName {
	normal := ToNormalIdent(declared)

	return CanonicalName{
		LookupKey: normal,
		TypeRef:   UpperCamel(normal),
	}
}

// UpperCamel converts a normal snake form name to UpperCamelCase.
// "id" -> "Id", "user_name" -> "UserName".
func UpperCamel(normal string) string {
	// A Caser keeps state between calls and must not be shared across goroutines.
	caser := cases.Title(language.Und)

	var sb strings.Builder

	sb.Grow(len(normal))

	for _, segment := range strings.Split(normal, "_") {
		if segment == "" {
			continue
		}

		sb.WriteString(caser.String(segment))
	}

	return sb.String()
}
