package manuscript

import (
	"regexp"
	"strings"
)

var (
	// headingMarks matches Markdown heading prefixes at the start of a
	// line. The run of hashes is consumed whole, so over-long prefixes
	// like "#######" cannot leave a fresh line-start hash behind.
	headingMarks = regexp.MustCompile(`(?m)^#{1,6}#*[ \t]*`)
	// horizontalRules matches lines consisting only of three or more
	// repeated '-', '_' or '*' characters.
	horizontalRules = regexp.MustCompile(`(?m)^[ \t]*(-{3,}|_{3,}|\*{3,})[ \t]*$`)
)

// Sanitize strips Markdown heading markers and horizontal-rule lines from
// raw manuscript text. It never fails; malformed input is normalized
// best-effort. Sanitize is idempotent: applying it to already-clean text
// returns the same string.
func Sanitize(raw string) string {
	s := strings.ReplaceAll(raw, "\r\n", "\n")
	s = headingMarks.ReplaceAllString(s, "")
	s = horizontalRules.ReplaceAllString(s, "")
	return s
}

// Tokenize splits sanitized text on **bold** markers into an alternating
// sequence of plain and bold runs. Leftover single '*' characters are
// stripped from each run as cleanup against unbalanced markers. Empty or
// whitespace-only input yields no runs.
func Tokenize(clean string) []Run {
	if strings.TrimSpace(clean) == "" {
		return nil
	}

	var runs []Run
	for i, part := range strings.Split(clean, "**") {
		part = strings.ReplaceAll(part, "*", "")
		if part == "" {
			continue
		}
		runs = append(runs, Run{Text: part, Bold: i%2 == 1})
	}
	return runs
}
