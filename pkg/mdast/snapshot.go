// Package mdast provides the in-memory view of a documentation file that
// rules operate on: the raw bytes plus a line index for converting between
// byte offsets and 1-based line/column positions.
package mdast

// FileSnapshot is an immutable view of a file at a specific time.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a last line without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot and builds its line index.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Texts returns every line as a string without its line ending.
func (f *FileSnapshot) Texts() []string {
	out := make([]string, len(f.Lines))
	for i, line := range f.Lines {
		out[i] = string(f.Content[line.StartOffset:line.NewlineStart])
	}
	return out
}
