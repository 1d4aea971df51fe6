// Package fix provides byte-offset text edits, their validation and
// application, and unified diffs for previewing fixes.
package fix

import "fmt"

// TextEdit represents a single text replacement in a file.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// IsDeletion reports whether the edit only removes bytes.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// String renders the edit for logs and error messages.
func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]->%q", e.StartOffset, e.EndOffset, e.NewText)
}

// EditBuilder accumulates text edits for a file in registration order.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder returns an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
