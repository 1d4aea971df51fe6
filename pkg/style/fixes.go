package style

import (
	"cmp"
	"slices"
)

// MaxFixPasses bounds FixAll.
const MaxFixPasses = 10

// FixAll checks lines and applies the resulting fixes, repeating until no
// fixable violation remains, a pass changes nothing, or MaxFixPasses passes
// have run. The input is not modified.
func FixAll(lines []string, opts Options) []string {
	out := lines
	for range MaxFixPasses {
		next := ApplyFixes(out, CheckAll(out, opts))
		if slices.Equal(next, out) {
			break
		}
		out = next
	}
	return slices.Clone(out)
}

// ApplyFixes returns a copy of lines with the fixes carried by violations
// applied. Only the first fix targeting a given line is used, so when two
// checks disagree about a line the one reported first wins. Fixes that point
// outside the document are ignored.
//
// A single application is not always enough: a fix that moves an admonition
// header changes the indentation its body needs. FixAll repeats until the
// document is clean.
func ApplyFixes(lines []string, violations []Violation) []string {
	byLine := make(map[int]Fix)
	for _, v := range violations {
		if v.Fix == nil {
			continue
		}
		if v.Fix.Line < 1 || v.Fix.Line > len(lines) {
			continue
		}
		if _, taken := byLine[v.Fix.Line]; taken {
			continue
		}
		byLine[v.Fix.Line] = *v.Fix
	}

	fixes := make([]Fix, 0, len(byLine))
	for _, f := range byLine {
		fixes = append(fixes, f)
	}
	// Bottom-up so line deletions do not shift pending fixes.
	slices.SortFunc(fixes, func(a, b Fix) int {
		return cmp.Compare(b.Line, a.Line)
	})

	out := slices.Clone(lines)
	for _, f := range fixes {
		idx := f.Line - 1
		if f.DeleteCount == DeleteLine {
			out = slices.Delete(out, idx, idx+1)
			continue
		}
		out[idx] = f.InsertText + out[idx][min(max(f.DeleteCount, 0), len(out[idx])):]
	}
	return out
}
