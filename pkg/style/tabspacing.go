package style

import (
	"fmt"
	"strings"
)

const msgTabSpacing = "Lines must be indented to a strict %d-space boundary (found %d, suggest %d)"

// SuggestIndent returns the indentation width a line with got leading spaces
// should be moved to. Remainders below cutoff round down; the rest round up.
func SuggestIndent(got, unit, cutoff int) int {
	floorUnits := got / unit
	if got%unit >= cutoff {
		return (floorUnits + 1) * unit
	}
	return floorUnits * unit
}

func checkTabSpacing(line string, lineNum int, opts Options) (Violation, bool) {
	got := LeadingSpaceCount(line)
	if got%opts.TabWidth == 0 {
		return Violation{}, false
	}

	suggested := SuggestIndent(got, opts.TabWidth, opts.RoundUpCutoff)
	return Violation{
		Check:   CheckTabSpacing,
		Line:    lineNum,
		Detail:  fmt.Sprintf(msgTabSpacing, opts.TabWidth, got, suggested),
		Context: line,
		Fix: &Fix{
			Line:        lineNum,
			DeleteCount: got,
			InsertText:  strings.Repeat(" ", suggested),
		},
	}, true
}
