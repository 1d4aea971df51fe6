// Package runner lints many files concurrently through a lint.Pipeline.
package runner

import (
	"slices"

	"github.com/yaklabco/docstyle/pkg/config"
	"github.com/yaklabco/docstyle/pkg/lint"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the files or directories to process. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions lists the lowercase extensions, with leading dot, treated
	// as Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories. Config.Ignore is
	// appended to these.
	ExcludeGlobs []string

	// FollowSymlinks traverses symlinked directories.
	FollowSymlinks bool

	// Jobs caps concurrent workers. Zero or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Pipeline overrides the pipeline options derived from Config.
	Pipeline *lint.PipelineOptions

	// OnFile, if set, is called once per processed file in completion
	// order, from a single goroutine.
	OnFile func(FileOutcome)
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveExcludes() []string {
	if o.Config == nil || len(o.Config.Ignore) == 0 {
		return o.ExcludeGlobs
	}
	return slices.Concat(o.ExcludeGlobs, o.Config.Ignore)
}

func (o Options) pipelineOptions() lint.PipelineOptions {
	if o.Pipeline != nil {
		return *o.Pipeline
	}
	return lint.PipelineOptionsFromConfig(o.Config)
}
