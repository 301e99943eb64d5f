package viz

import (
	"regexp"
	"strings"
)

// Discriminator is the first directive argument for metrics visualizations.
const Discriminator = ":metrics"

// NoChild stands in for an absent child name.
const NoChild = "-"

var directiveRe = regexp.MustCompile(`\{\{renderer\s+([^}]*)\}\}`)

// FindDirectives returns the argument lists of every renderer directive in
// content, in order of appearance.
func FindDirectives(content string) [][]string {
	matches := directiveRe.FindAllStringSubmatch(content, -1)
	out := make([][]string, 0, len(matches))
	for _, m := range matches {
		parts := strings.Split(m[1], ",")
		args := make([]string, len(parts))
		for i, p := range parts {
			args[i] = strings.TrimSpace(p)
		}
		out = append(out, args)
	}
	return out
}

// FormatDirective builds the directive for a metric visualization.
func FormatDirective(metric, child, typeTag string) string {
	if child == "" {
		child = NoChild
	}
	return "{{renderer " + strings.Join([]string{Discriminator, metric, child, typeTag}, ", ") + "}}"
}

// Directive is a parsed metrics directive.
type Directive struct {
	Metric string
	Child  string
	Type   string
}

// ParseArgs interprets directive arguments. It returns false for
// directives that are not metrics directives. Missing trailing arguments
// are empty.
func ParseArgs(args []string) (Directive, bool) {
	if len(args) == 0 || strings.TrimSpace(args[0]) != Discriminator {
		return Directive{}, false
	}
	arg := func(i int) string {
		if i < len(args) {
			return strings.TrimSpace(args[i])
		}
		return ""
	}
	d := Directive{Metric: arg(1), Child: arg(2), Type: arg(3)}
	if d.Child == NoChild {
		d.Child = ""
	}
	return d, true
}

// SplitBy splits text on runs of any of the delimiter characters, ignoring
// leading and trailing delimiters.
func SplitBy(text, delimiters string) []string {
	if delimiters == "" {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	return strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(delimiters, r)
	})
}
