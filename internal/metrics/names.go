package metrics

import (
	"regexp"
	"strings"
)

// DirectiveMarker prefixes visualization directives embedded in node content.
// Nodes containing it are never metric names.
const DirectiveMarker = "{{renderer"

// reservedChars cannot appear in property names.
var reservedChars = regexp.MustCompile("[:;,^@#~\"`/|(){}\\[\\]]")

// ClearName strips characters that are reserved in property names. Spaces are kept.
func ClearName(name string) string {
	return reservedChars.ReplaceAllString(name, "")
}

// PropertyName converts a metric name to a journal property key.
func PropertyName(name string) string {
	return strings.ToLower(strings.ReplaceAll(ClearName(name), " ", "-"))
}

// JournalProperty is the property key for a metric and optional child.
// The two parts are joined with three underscores since property keys
// cannot contain a path separator.
func JournalProperty(name, child string) string {
	prop := PropertyName(name)
	if child != "" {
		prop += "___" + PropertyName(child)
	}
	return prop
}

// FullName formats a metric key path for display.
func FullName(name, child string) string {
	if child == "" {
		return name
	}
	return name + " / " + child
}
