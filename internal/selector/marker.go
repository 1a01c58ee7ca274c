package selector

import (
	"reflect"
	"strings"
)

const (
	// DefaultGroup is the struct tag key recognized as the marker group.
	DefaultGroup = "struct_field"
	// SkipToken is the marker item that excludes a member.
	SkipToken = "skip"
)

// HasSkipMarker reports whether tag carries the skip marker under group.
// Only a well formed tag is inspected: reflect.StructTag.Lookup stops at the
// first syntax error, so malformed tags never read as skip markers.
// Items are compared exactly after trimming spaces; "skip=true", "Skip" and
// "noskip" do not match.
func HasSkipMarker(tag reflect.StructTag, group string) bool {
	if group == "" {
		group = DefaultGroup
	}

	value, ok := tag.Lookup(group)
	if !ok {
		return false
	}

	for _, item := range strings.Split(value, ",") {
		if strings.TrimSpace(item) == SkipToken {
			return true
		}
	}

	return false
}
