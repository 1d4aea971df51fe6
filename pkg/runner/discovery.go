package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// ErrPathNotFound is returned when a requested path does not exist.
var ErrPathNotFound = errors.New("path not found")

// Discover finds Markdown files matching opts. It returns sorted,
// de-duplicated absolute paths. Explicitly named files are kept even when
// they are hidden; hidden entries found while walking are skipped.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m := newMatcher(workDir, opts)

	var files []string
	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath, info, err := statInput(workDir, input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if m.matchFile(absPath) {
				files = append(files, absPath)
			}
			continue
		}

		found, err := walkDirectory(ctx, absPath, m, opts.FollowSymlinks, map[string]bool{})
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// statInput resolves input against workDir and stats it.
func statInput(workDir, input string) (string, fs.FileInfo, error) {
	absPath := input
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(workDir, absPath)
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, fmt.Errorf("%w: %s", ErrPathNotFound, input)
	}
	if err != nil {
		return "", nil, fmt.Errorf("stat %s: %w", input, err)
	}
	return absPath, info, nil
}

// walkDirectory walks root and returns matching files. visited holds the
// real paths of directories already walked through symlinks so cycles end.
func walkDirectory(
	ctx context.Context,
	root string,
	m matcher,
	followSymlinks bool,
	visited map[string]bool,
) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || m.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks || visited[realPath] || m.excluded(p) {
					return nil
				}
				visited[realPath] = true
				sub, err := walkDirectory(ctx, realPath, m, followSymlinks, visited)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.matchFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matcher decides which paths discovery keeps. Globs are matched against
// slash-separated paths relative to workDir.
type matcher struct {
	workDir    string
	extensions []string
	include    []string
	exclude    []string
}

func newMatcher(workDir string, opts Options) matcher {
	return matcher{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    opts.IncludeGlobs,
		exclude:    opts.effectiveExcludes(),
	}
}

func (m matcher) rel(p string) string {
	rel, err := filepath.Rel(m.workDir, p)
	if err != nil {
		rel = p
	}
	return filepath.ToSlash(rel)
}

func (m matcher) excluded(p string) bool {
	return matchAny(m.rel(p), m.exclude)
}

func (m matcher) matchFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	if !slices.ContainsFunc(m.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	rel := m.rel(p)
	if matchAny(rel, m.exclude) {
		return false
	}
	return len(m.include) == 0 || matchAny(rel, m.include)
}

func matchAny(rel string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return matchGlob(rel, pattern)
	})
}

// matchGlob matches a slash-separated relative path against pattern.
// "**" spans any number of path segments, including none. A pattern without
// a slash also matches the base name, so "*.tmp.md" works at any depth.
func matchGlob(rel, pattern string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(rel, "/"), strings.Split(strings.TrimSuffix(pattern, "/"), "/"))
}

func matchSegments(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(parts); i++ {
				if matchSegments(parts[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], parts[0]); err != nil || !ok {
			return false
		}
		parts, pattern = parts[1:], pattern[1:]
	}
	return len(parts) == 0
}
