// Package report turns project-tagged daily entry lines into rendered
// period reports.
package report

import (
	"regexp"
	"strings"
)

// lineRx matches the "[Name (Code)] rest-of-line" tagging convention.
// Name stops at the opening parenthesis of the code.
var lineRx = regexp.MustCompile(`^\[(.+?)\s*\((.+?)\)\]\s?(.*)$`)

// TaggedLine is one parsed project-tagged line of an entry.
type TaggedLine struct {
	ProjectName string
	ProjectCode string
	Text        string
}

// ParseLine extracts the (project, text) pair from a single line. Lines
// that do not follow the tagging convention return ok=false and are
// dropped from aggregation; free-form notes are expected and not an error.
func ParseLine(line string) (TaggedLine, bool) {
	m := lineRx.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil {
		return TaggedLine{}, false
	}
	return TaggedLine{ProjectName: m[1], ProjectCode: m[2], Text: m[3]}, true
}

// ParseEntryText applies ParseLine to every line of a multi-line entry,
// since one day may report work on several projects.
func ParseEntryText(text string) []TaggedLine {
	var out []TaggedLine
	for _, line := range strings.Split(text, "\n") {
		if tl, ok := ParseLine(line); ok {
			out = append(out, tl)
		}
	}
	return out
}

// FormatTag renders the tagging convention for a project, used when the
// todo-completion side effect appends to a daily entry.
func FormatTag(name, code, text string) string {
	return "[" + name + " (" + code + ")] " + text
}
