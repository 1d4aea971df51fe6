package style

import (
	"fmt"
	"strings"
)

// Admonition check messages.
const (
	msgBlankAfterAdmonition = "Blank line after admonition header; body must immediately follow"
	msgAdmonitionIndent     = "Admonition body must be indented %d spaces"
)

// checkAdmonition inspects the line after an admonition header at idx.
// A header on the last line has no body and yields nothing.
func checkAdmonition(lines []string, idx int, opts Options) (Violation, bool) {
	line := lines[idx]
	if !strings.HasPrefix(trimStart(line), opts.AdmonitionMarker) {
		return Violation{}, false
	}
	if idx+1 >= len(lines) {
		return Violation{}, false
	}

	headerLine := idx + 1
	bodyLine := headerLine + 1
	body := lines[idx+1]

	if isBlank(body) {
		return Violation{
			Check:   CheckAdmonition,
			Line:    bodyLine,
			Detail:  msgBlankAfterAdmonition,
			Context: body,
			Fix: &Fix{
				Line:        bodyLine,
				DeleteCount: DeleteLine,
			},
		}, true
	}

	expected := strings.Index(line, opts.AdmonitionMarker) + opts.BodyIndent
	content := trimStart(body)
	want := strings.Repeat(" ", expected)
	if body == want+content {
		return Violation{}, false
	}

	return Violation{
		Check:   CheckAdmonition,
		Line:    headerLine + opts.ReportOffset,
		Detail:  fmt.Sprintf(msgAdmonitionIndent, expected),
		Context: body,
		Fix: &Fix{
			Line:        bodyLine,
			DeleteCount: len(body) - len(content),
			InsertText:  want,
		},
	}, true
}
