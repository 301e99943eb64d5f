package viz

import "strings"

// Kind is a visualization family.
type Kind int

const (
	KindCard Kind = iota + 1
	KindBar
	KindLine
	KindPropertiesLine
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindCard:
		return "card"
	case KindBar:
		return "bar"
	case KindLine:
		return "line"
	case KindPropertiesLine:
		return "properties-line"
	default:
		return "unknown"
	}
}

// kindTags maps each kind to the type tags it accepts.
var kindTags = []struct {
	kind Kind
	tags []string
}{
	{KindCard, []string{"sum", "average", "latest", "count"}},
	{KindBar, []string{"bar"}},
	{KindLine, []string{"line", "cumulative-line"}},
	{KindPropertiesLine, []string{"properties-line", "properties-cumulative-line"}},
}

// KindFor resolves a type tag.
func KindFor(tag string) (Kind, bool) {
	for _, kt := range kindTags {
		for _, t := range kt.tags {
			if t == tag {
				return kt.kind, true
			}
		}
	}
	return 0, false
}

// Types lists every supported type tag in table order.
func Types() []string {
	var out []string
	for _, kt := range kindTags {
		out = append(out, kt.tags...)
	}
	return out
}

// isCumulative reports whether a line tag asks for running sums.
func isCumulative(tag string) bool {
	return strings.Contains(tag, "cumulative-")
}
