package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/docstyle/internal/logging"
	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

type job struct {
	index int
	path  string
}

type done struct {
	index   int
	outcome FileOutcome
}

// Run discovers files under opts.Paths and processes them with a bounded
// worker pool. Outcomes are returned in path order regardless of which
// worker finished first. On cancellation the outcomes collected so far are
// returned together with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("processing files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	pipelineOpts := opts.pipelineOptions()
	workCh := make(chan job)
	doneCh := make(chan done)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, doneCh, opts.Config, pipelineOpts)
		}()
	}

	go func() {
		defer close(workCh)
		for i, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- job{index: i, path: path}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(doneCh)
	}()

	outcomes := make([]*FileOutcome, len(files))
	for d := range doneCh {
		outcome := d.outcome
		outcomes[d.index] = &outcome
		switch {
		case outcome.Error != nil:
			logger.Debug("file failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		case outcome.Result.Skipped:
			logger.Warn("fixes not written", logging.FieldPath, outcome.Path, logging.FieldReason, outcome.Result.SkipReason)
		case outcome.Result.EditsHeldBack > 0:
			logger.Info("fixes held back to keep fenced code blocks",
				logging.FieldPath, outcome.Path, logging.FieldEditsHeldBack, outcome.Result.EditsHeldBack)
		}
		if opts.OnFile != nil {
			opts.OnFile(outcome)
		}
	}

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan job,
	doneCh chan<- done,
	cfg *config.Config,
	opts lint.PipelineOptions,
) {
	for j := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome{Path: j.path}
		pr, err := r.Pipeline.ProcessFile(ctx, j.path, cfg, opts)
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Result = pr
		}

		select {
		case <-ctx.Done():
			return
		case doneCh <- done{index: j.index, outcome: outcome}:
		}
	}
}
