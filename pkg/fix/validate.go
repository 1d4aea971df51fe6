package fix

import (
	"fmt"
	"slices"
)

// ValidationError describes an invalid edit.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes overlapping edits.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits checks that all edits have valid ranges for the given content length.
// Returns the first validation error encountered.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits sorts edits by start offset, then by end offset. The sort is
// stable, so edits at the same range keep their registration order.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		if a.StartOffset != b.StartOffset {
			return a.StartOffset - b.StartOffset
		}
		return a.EndOffset - b.EndOffset
	})
}

// DedupeEdits removes exact duplicates from a sorted slice, keeping the
// first occurrence. Returns the remaining edits and the number removed.
func DedupeEdits(edits []TextEdit) ([]TextEdit, int) {
	if len(edits) < 2 {
		return edits, 0
	}

	out := make([]TextEdit, 0, len(edits))
	for _, edit := range edits {
		if slices.Contains(out, edit) {
			continue
		}
		out = append(out, edit)
	}
	return out, len(edits) - len(out)
}

// DetectConflicts checks for overlapping edits in a sorted slice.
// Two insertions at the same offset also conflict since their order would
// be ambiguous.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		if overlaps(edits[i-1], edits[i]) {
			return &ConflictError{Edit1: edits[i-1], Edit2: edits[i]}
		}
	}
	return nil
}

func overlaps(prev, curr TextEdit) bool {
	if curr.StartOffset < prev.EndOffset {
		return true
	}
	return curr.StartOffset == prev.StartOffset
}

// PrepareEdits validates, sorts, and rejects any conflict.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	result := slices.Clone(edits)
	SortEdits(result)

	if err := DetectConflicts(result); err != nil {
		return nil, err
	}

	return result, nil
}

// MergeAndFilterConflicts walks a sorted slice, merging overlapping pure
// deletions into one and skipping any other edit that conflicts with the
// edit currently held. The held edit always wins, so among edits starting at
// the same offset the earliest registered one is kept.
//
// Returns the accepted edits, the skipped edits and the number of merges.
func MergeAndFilterConflicts(edits []TextEdit) ([]TextEdit, []TextEdit, int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted := make([]TextEdit, 0, len(edits))
	var skipped []TextEdit
	merged := 0

	held := edits[0]
	for _, edit := range edits[1:] {
		if !overlaps(held, edit) {
			accepted = append(accepted, held)
			held = edit
			continue
		}

		if held.IsDeletion() && edit.IsDeletion() {
			held = TextEdit{
				StartOffset: min(held.StartOffset, edit.StartOffset),
				EndOffset:   max(held.EndOffset, edit.EndOffset),
			}
			merged++
			continue
		}

		skipped = append(skipped, edit)
	}
	accepted = append(accepted, held)

	return accepted, skipped, merged
}

// PrepareEditsFiltered validates, sorts, dedupes, merges and filters edits.
// Unlike PrepareEdits it never fails on conflicts; an error is returned only
// when an edit is out of range.
//
// Returns (accepted edits, skipped edits, merged count, error).
func PrepareEditsFiltered(edits []TextEdit, contentLen int) ([]TextEdit, []TextEdit, int, error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}

	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)
	sorted, _ = DedupeEdits(sorted)

	accepted, skipped, merged := MergeAndFilterConflicts(sorted)
	return accepted, skipped, merged, nil
}
