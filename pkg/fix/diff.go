package fix

import (
	"fmt"
	"slices"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

// Prefix returns the unified diff prefix for the kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// DiffLine is a single line in a diff hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a contiguous group of changes with surrounding context.
// Start fields are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Header returns the "@@ -a,b +c,d @@" line for the hunk.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Diff is a unified diff between the original and fixed content of a file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff creates a unified diff between original and modified content.
// Returns nil if the contents have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	before := splitLines(original)
	after := splitLines(modified)
	if slices.Equal(before, after) {
		return nil
	}

	ops := diffOps(before, after)
	diff := &Diff{Path: path, Hunks: groupHunks(ops)}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			diff.Additions++
		case DiffLineRemove:
			diff.Deletions++
		}
	}
	return diff
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		sb.WriteString(hunk.Header())
		sb.WriteByte('\n')
		for _, line := range hunk.Lines {
			sb.WriteString(line.Kind.Prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

type diffOp struct {
	kind    DiffLineKind
	content string
	// before and after are 0-based positions in each side at this op.
	before int
	after  int
}

// diffOps aligns the two sides with a longest-common-subsequence table and
// emits removals before additions within each changed region.
func diffOps(before, after []string) []diffOp {
	rows, cols := len(before), len(after)

	// suffix[i][j] is the LCS length of before[i:] and after[j:].
	suffix := make([][]int, rows+1)
	for i := range suffix {
		suffix[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if before[i] == after[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	ops := make([]diffOp, 0, max(rows, cols))
	i, j := 0, 0
	for i < rows || j < cols {
		switch {
		case i < rows && j < cols && before[i] == after[j]:
			ops = append(ops, diffOp{kind: DiffLineContext, content: before[i], before: i, after: j})
			i++
			j++
		case j >= cols || (i < rows && suffix[i+1][j] >= suffix[i][j+1]):
			ops = append(ops, diffOp{kind: DiffLineRemove, content: before[i], before: i, after: j})
			i++
		default:
			ops = append(ops, diffOp{kind: DiffLineAdd, content: after[j], before: i, after: j})
			j++
		}
	}
	return ops
}

// groupHunks splits ops into hunks, joining changes separated by no more
// than twice the context size.
func groupHunks(ops []diffOp) []DiffHunk {
	var hunks []DiffHunk

	idx := 0
	for idx < len(ops) {
		for idx < len(ops) && ops[idx].kind == DiffLineContext {
			idx++
		}
		if idx == len(ops) {
			break
		}

		start := max(idx-contextLines, 0)
		end := idx
		for end < len(ops) {
			if ops[end].kind != DiffLineContext {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == DiffLineContext {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				break
			}
			end = run
		}
		stop := min(end+contextLines, len(ops))

		hunks = append(hunks, buildHunk(ops[start:stop]))
		idx = stop
	}
	return hunks
}

func buildHunk(ops []diffOp) DiffHunk {
	hunk := DiffHunk{
		OriginalStart: ops[0].before + 1,
		ModifiedStart: ops[0].after + 1,
		Lines:         make([]DiffLine, 0, len(ops)),
	}
	for _, op := range ops {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: op.kind, Content: op.content})
		if op.kind != DiffLineAdd {
			hunk.OriginalCount++
		}
		if op.kind != DiffLineRemove {
			hunk.ModifiedCount++
		}
	}
	return hunk
}
