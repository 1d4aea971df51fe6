package style

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"strings"
	"unicode"
)

// LeadingSpaceCount returns the number of leading space characters in line.
// Tabs and other whitespace stop the count.
func LeadingSpaceCount(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// trimStart strips leading whitespace.
func trimStart(line string) string {
	return strings.TrimLeftFunc(line, unicode.IsSpace)
}

// isBlank reports whether line holds nothing but whitespace.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// ScanState tracks fenced code block nesting during a single pass.
type ScanState struct {
	depth int
}

// Depth returns the current code block nesting depth.
func (s *ScanState) Depth() int {
	return s.depth
}

// InCodeBlock reports whether the scan is inside a fenced code block.
func (s *ScanState) InCodeBlock() bool {
	return s.depth > 0
}

// fenceKind classifies a line with respect to code fences.
type fenceKind int

const (
	fenceNone fenceKind = iota
	fenceOpen
	fenceClose
)

// Advance updates the nesting depth for line and reports whether the line is
// a fence delimiter. A bare marker closes a block; a marker followed by
// anything (typically an info string) opens one. Unmatched closing fences
// leave the depth at zero.
func (s *ScanState) Advance(line, marker string) bool {
	switch classifyFence(line, marker) {
	case fenceOpen:
		s.depth++
		return true
	case fenceClose:
		if s.depth > 0 {
			s.depth--
		}
		return true
	default:
		return false
	}
}

func classifyFence(line, marker string) fenceKind {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, marker) {
		return fenceNone
	}
	if trimmed == marker {
		return fenceClose
	}
	return fenceOpen
}

// Check scans lines once and yields violations in ascending line order.
// Admonition violations are reported past their header, so they are held
// back until the scan reaches their line; on a shared line the admonition
// violation comes before the tab spacing one. Each check reports at most one
// violation per line. When two admonition headers land a violation on the
// same line, the earlier header's is kept.
//
// The returned sequence is lazy and can be ranged over any number of times;
// each iteration performs a fresh scan with its own ScanState.
func Check(lines []string, opts Options) iter.Seq[Violation] {
	opts = opts.normalized()
	return func(yield func(Violation) bool) {
		var (
			state   ScanState
			pending []Violation
		)
		flush := func(upTo int) bool {
			n := 0
			for ; n < len(pending) && pending[n].Line <= upTo; n++ {
				if !yield(pending[n]) {
					return false
				}
			}
			pending = pending[n:]
			return true
		}

		for idx, line := range lines {
			lineNum := idx + 1
			if !flush(lineNum) {
				return
			}

			isFence := state.Advance(line, opts.FenceMarker)

			if opts.Admonitions {
				if v, ok := checkAdmonition(lines, idx, opts); ok {
					pending = enqueue(pending, v)
				}
			}

			if opts.TabSpacing && (isFence || !state.InCodeBlock()) {
				if v, ok := checkTabSpacing(line, lineNum, opts); ok {
					if !yield(v) {
						return
					}
				}
			}
		}
		flush(math.MaxInt)
	}
}

// enqueue inserts v into pending, which is kept sorted by line. A violation
// for a line that already has one is dropped.
func enqueue(pending []Violation, v Violation) []Violation {
	i, found := slices.BinarySearchFunc(pending, v.Line, func(p Violation, line int) int {
		return cmp.Compare(p.Line, line)
	})
	if found {
		return pending
	}
	return slices.Insert(pending, i, v)
}

// CheckAll collects every violation from Check into a slice.
func CheckAll(lines []string, opts Options) []Violation {
	var out []Violation
	for v := range Check(lines, opts) {
		out = append(out, v)
	}
	return out
}

// SplitLines splits text into newline-stripped lines. A trailing newline does
// not produce a final empty line, and CR before LF is dropped.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
