package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/fix"
	"github.com/yaklabco/docstyle/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Each pass lints the content
// produced by the previous one, so fixes that expose new issues (deleting a
// blank line after an admonition header reveals the body's indentation)
// converge over a few passes.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the file could not be linted.
	ErrParseFailure = errors.New("parse failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// StructureVerifier checks that fixed content kept the document structure
// of the original. The goldmark fence outliner implements it.
type StructureVerifier interface {
	Verify(ctx context.Context, before, after []byte) error
}

// PipelineResult is the outcome of processing one file.
type PipelineResult struct {
	// FileResult holds diagnostics from the final pass. After fixing this
	// describes the fixed content, so it lists only what remains.
	*FileResult

	// Initial holds the diagnostics of the first pass, before any fix.
	Initial *FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing (nil for in-memory content).
	OriginalInfo *fsutil.FileInfo

	// Modified is true if fixes changed the content.
	Modified bool

	// ModifiedContent is the content after fixes (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff of pending changes in dry-run mode.
	Diff *fix.Diff

	// Skipped is true if fixes were computed but not written.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// FixPasses is the number of passes that applied edits.
	FixPasses int

	// TotalEditsApplied is the number of edits applied across all passes.
	TotalEditsApplied int

	// EditsHeldBack is the number of edits from the last pass that were not
	// applied because they would change fenced code block structure.
	EditsHeldBack int
}

// Summary returns a short human-readable outcome.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// DryRun computes fixes and a diff without writing files.
	DryRun bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes the file before writing instead of only
	// comparing size and mod time.
	StrictRaceDetection bool

	// VerifyStructure runs the pipeline's verifier on fixed content and
	// skips the file if it reports a change.
	VerifyStructure bool

	// MaxFixPasses limits fix iterations. Zero means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns lint-only defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		VerifyStructure:     true,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:    cfg.Fix || cfg.DryRun,
		DryRun: cfg.DryRun,
		Backup: fsutil.BackupConfig{
			Enabled: cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
		StrictRaceDetection: true,
		VerifyStructure:     cfg.FenceVerification(),
	}
}

// Pipeline lints a file, fixes it in memory and writes it back safely.
type Pipeline struct {
	// Engine runs the rules.
	Engine *Engine

	// Verifier checks fixed content when VerifyStructure is set. A nil
	// verifier disables the check.
	Verifier StructureVerifier
}

// NewPipeline creates a pipeline around engine with no verifier.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file:
//
//  1. Read and hash the file.
//  2. Lint and, in fix mode, apply edits pass by pass until stable. Edits
//     that would change fenced code blocks are held back.
//  3. Verify the fixed structure.
//  4. In dry-run mode, return a diff.
//  5. Skip the write if the file changed on disk meanwhile.
//  6. Back up the original, then write atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun {
		return result, nil
	}

	changed, err := fsutil.CheckModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		result.FileResult = result.Initial
		return result, nil
	}

	created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent runs the lint and fix stages on in-memory content without
// touching the file system.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	var holdErr error
	for range maxPasses {
		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("processing cancelled: %w", err)
			}
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		if result.Initial == nil {
			result.Initial = fileResult
		}
		result.FileResult = fileResult

		if !opts.Fix || !fileResult.HasFixes() {
			break
		}

		edits := fileResult.Edits
		next := fix.ApplyEdits(content, edits)
		if p.verifying(opts) {
			edits, next, err = p.holdBackStructuralEdits(ctx, content, edits, next)
			if ctx.Err() != nil {
				return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
			}
			result.EditsHeldBack = len(fileResult.Edits) - len(edits)
			if holdErr == nil {
				holdErr = err
			}
			if len(edits) == 0 {
				break
			}
		}

		content = next
		result.FixPasses++
		result.TotalEditsApplied += len(edits)
		result.Modified = true
	}

	if !result.Modified {
		if holdErr != nil {
			result.Skipped = true
			result.SkipReason = "fixes would change fenced code blocks: " + holdErr.Error()
			result.FileResult = result.Initial
		}
		return result, nil
	}

	// The last pass may have applied edits without re-linting.
	if len(result.Edits) > 0 {
		final, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		result.FileResult = final
	}

	if p.verifying(opts) {
		if err := p.Verifier.Verify(ctx, original, content); err != nil {
			result.Skipped = true
			result.SkipReason = err.Error()
			result.Modified = false
			result.FileResult = result.Initial
			return result, nil
		}
	}

	result.ModifiedContent = content
	if opts.DryRun {
		// Nothing is written, so the file still has its original issues.
		result.Diff = fix.GenerateDiff(path, original, content)
		result.FileResult = result.Initial
	}

	return result, nil
}

func (p *Pipeline) verifying(opts PipelineOptions) bool {
	return opts.VerifyStructure && p.Verifier != nil
}

// holdBackStructuralEdits checks a pass's edits against the verifier. When
// applying all of them changes the structure of content, each edit is tried
// on its own and only those that keep the structure are returned, together
// with the content they produce and the first verification error seen. If
// the kept edits still fail together, none are returned.
func (p *Pipeline) holdBackStructuralEdits(
	ctx context.Context,
	content []byte,
	edits []fix.TextEdit,
	applied []byte,
) ([]fix.TextEdit, []byte, error) {
	firstErr := p.Verifier.Verify(ctx, content, applied)
	if firstErr == nil {
		return edits, applied, nil
	}

	kept := make([]fix.TextEdit, 0, len(edits))
	for _, edit := range edits {
		if ctx.Err() != nil {
			return nil, content, ctx.Err()
		}
		single := []fix.TextEdit{edit}
		if err := p.Verifier.Verify(ctx, content, fix.ApplyEdits(content, single)); err != nil {
			continue
		}
		kept = append(kept, edit)
	}
	if len(kept) == 0 {
		return nil, content, firstErr
	}

	next := fix.ApplyEdits(content, kept)
	if err := p.Verifier.Verify(ctx, content, next); err != nil {
		return nil, content, firstErr
	}
	return kept, next, firstErr
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrWriteFailure)
}
