package mdast

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. LF and CRLF endings are both
// recognised; a trailing newline ends the last line rather than opening an
// empty one.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)

	start := 0
	for start < len(content) {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			lines = append(lines, LineInfo{
				StartOffset:  start,
				NewlineStart: len(content),
				EndOffset:    len(content),
			})
			break
		}

		end := start + idx
		newline := end
		if newline > start && content[newline-1] == '\r' {
			newline--
		}
		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: newline,
			EndOffset:    end + 1,
		})
		start = end + 1
	}

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset into a 1-based line and byte column.
// Offsets at or past the end of content land on the last line; negative
// offsets, or any offset in an empty file, give (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	idx = min(idx, len(f.Lines)-1)

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// LineContent returns a 1-based line without its line ending, or nil when
// the line does not exist.
func (f *FileSnapshot) LineContent(line int) []byte {
	info, ok := f.Line(line)
	if !ok {
		return nil
	}
	return f.Content[info.StartOffset:info.NewlineStart]
}

// Line returns the LineInfo for a 1-based line number.
func (f *FileSnapshot) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(f.Lines) {
		return LineInfo{}, false
	}
	return f.Lines[line-1], true
}
