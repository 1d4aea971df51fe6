package mdast

// SourcePosition is a 1-based, inclusive line/column range.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// LinePosition spans columns [startCol, endCol] of one line.
func LinePosition(line, startCol, endCol int) SourcePosition {
	return SourcePosition{
		StartLine:   line,
		StartColumn: startCol,
		EndLine:     line,
		EndColumn:   endCol,
	}
}

// IsValid reports whether every coordinate is positive.
func (sp SourcePosition) IsValid() bool {
	return min(sp.StartLine, sp.StartColumn, sp.EndLine, sp.EndColumn) > 0
}

// IsSingleLine reports whether the range starts and ends on one line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}
