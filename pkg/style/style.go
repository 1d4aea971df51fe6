// Package style implements the line-based documentation style checker.
//
// The checker scans a document (a slice of newline-stripped lines) once, from
// top to bottom, and yields violations for two checks:
//
//   - admonition: the body of an admonition ("!!! note") must start on the
//     very next line, indented four columns past the marker.
//   - tab-spacing: leading indentation must sit on a strict 4-space boundary,
//     except for lines inside a fenced code block.
//
// The package does no I/O and keeps no state between calls. Fix application
// against byte offsets is the caller's concern; ApplyFixes and FixAll cover
// the simple line-oriented case.
package style

// Check identifiers carried by Violation.Check.
const (
	CheckAdmonition = "admonition"
	CheckTabSpacing = "tab-spacing"
)

// DeleteLine is the Fix.DeleteCount value that removes the whole line.
const DeleteLine = -1

// Violation is a single style problem found on a line.
type Violation struct {
	// Check identifies which check produced the violation.
	Check string

	// Line is the 1-based line number the violation is reported at.
	Line int

	// Detail is the human-readable description.
	Detail string

	// Context is the text of the offending line.
	Context string

	// Fix is the suggested edit, or nil when none is available.
	Fix *Fix
}

// Fix describes an edit to the start of a single line.
type Fix struct {
	// Line is the 1-based line number the edit applies to.
	Line int

	// DeleteCount is DeleteLine to remove the line, 0 to only insert, or the
	// number of leading characters to remove.
	DeleteCount int

	// InsertText is inserted at the start of the line after deletion.
	InsertText string
}

// DeletesLine reports whether the fix removes its whole line.
func (f *Fix) DeletesLine() bool {
	return f != nil && f.DeleteCount == DeleteLine
}

// Options configures a Check run.
type Options struct {
	// Admonitions enables the admonition body check.
	Admonitions bool

	// TabSpacing enables the strict tab-spacing check.
	TabSpacing bool

	// AdmonitionMarker introduces an admonition header.
	AdmonitionMarker string

	// BodyIndent is how far past the marker column the body must start.
	BodyIndent int

	// ReportOffset is added to the 1-based header line number to obtain the
	// line a misindented body is reported at. Must be positive.
	ReportOffset int

	// FenceMarker opens and closes fenced code blocks.
	FenceMarker string

	// TabWidth is the indentation unit lines must align to.
	TabWidth int

	// RoundUpCutoff is the smallest remainder that rounds up to the next
	// boundary instead of down.
	RoundUpCutoff int
}

// Default option values.
const (
	DefaultAdmonitionMarker = "!!!"
	DefaultFenceMarker      = "```"
	DefaultBodyIndent       = 4
	DefaultReportOffset     = 2
	DefaultTabWidth         = 4
	DefaultRoundUpCutoff    = 2
)

// DefaultOptions enables both checks with their standard settings.
func DefaultOptions() Options {
	return Options{
		Admonitions:      true,
		TabSpacing:       true,
		AdmonitionMarker: DefaultAdmonitionMarker,
		BodyIndent:       DefaultBodyIndent,
		ReportOffset:     DefaultReportOffset,
		FenceMarker:      DefaultFenceMarker,
		TabWidth:         DefaultTabWidth,
		RoundUpCutoff:    DefaultRoundUpCutoff,
	}
}

// normalized fills zero-valued settings with defaults so a partially
// populated Options never produces a division by zero or an empty marker.
func (o Options) normalized() Options {
	if o.AdmonitionMarker == "" {
		o.AdmonitionMarker = DefaultAdmonitionMarker
	}
	if o.FenceMarker == "" {
		o.FenceMarker = DefaultFenceMarker
	}
	if o.ReportOffset <= 0 {
		o.ReportOffset = DefaultReportOffset
	}
	if o.BodyIndent <= 0 {
		o.BodyIndent = DefaultBodyIndent
	}
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}
	if o.RoundUpCutoff <= 0 {
		o.RoundUpCutoff = DefaultRoundUpCutoff
	}
	return o
}
