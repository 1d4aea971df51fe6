package fix

import "bytes"

// ApplyEdits applies a sorted, non-overlapping slice of edits to content.
// Edits must come from PrepareEdits or PrepareEditsFiltered.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	growth := 0
	for _, e := range edits {
		growth += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(max(len(content)+growth, 0))

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
