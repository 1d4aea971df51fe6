package reporter

import (
	"bufio"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/docstyle/internal/ui/pretty"
	"github.com/yaklabco/docstyle/pkg/runner"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, fmt.Errorf("report cancelled: %w", err)
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintln(r.bw, r.styles.FormatFileError(path, file.Error))
		return 0
	}

	pr := file.Result
	if pr == nil || pr.FileResult == nil {
		return 0
	}

	if pr.Skipped {
		fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(path),
			r.styles.Warning.Render("fixes not written: "+pr.SkipReason))
	}

	if len(pr.Diagnostics) == 0 && len(pr.RuleErrors) == 0 {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(pr.Diagnostics)))
	for i := range pr.Diagnostics {
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&pr.Diagnostics[i], r.opts.ShowContext, r.opts.RuleFormat))
	}
	for _, id := range slices.Sorted(maps.Keys(pr.RuleErrors)) {
		msg := fmt.Sprintf("rule %s failed: %v", id, pr.RuleErrors[id])
		fmt.Fprintln(r.bw, "  "+r.styles.Error.Render(msg))
	}
	fmt.Fprintln(r.bw)

	return len(pr.Diagnostics)
}
