package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/docstyle/pkg/fsutil"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadFile(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "doc.md", "!!! note\n    body\n")

	content, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "!!! note\n    body\n", string(content))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(len(content)), info.Size)
}

func TestReadFile_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	_, _, err := fsutil.ReadFile(ctx, filepath.Join(dir, "missing.md"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)

	_, _, err = fsutil.ReadFile(ctx, dir)
	require.ErrorIs(t, err, fsutil.ErrIsDirectory)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = fsutil.ReadFile(cancelled, dir)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCheckModified(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "doc.md", "one\n")

	_, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	for _, strict := range []bool{true, false} {
		changed, err := fsutil.CheckModified(ctx, info, strict)
		require.NoError(t, err)
		assert.False(t, changed)
	}

	require.NoError(t, os.WriteFile(path, []byte("one two\n"), 0o600))
	changed, err := fsutil.CheckModified(ctx, info, false)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Remove(path))
	changed, err = fsutil.CheckModified(ctx, info, true)
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = fsutil.CheckModified(ctx, nil, true)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
}

func TestCheckModified_SameSizeDifferentContent(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "doc.md", "aaaa\n")

	_, info, err := fsutil.ReadFile(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("bbbb\n"), 0o600))
	stat, err := os.Stat(path)
	require.NoError(t, err)
	info.ModTime = stat.ModTime()

	changed, err := fsutil.CheckModified(ctx, info, true)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestWriteAtomic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.md", "old\n")

	require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new\n"), 0o600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	stat, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	err := fsutil.WriteAtomic(context.Background(), filepath.Join(t.TempDir(), "nope", "doc.md"), []byte("x"), 0)
	require.Error(t, err)
}

func TestCreateBackup(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "doc.md", "original\n")
	cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	created, err := fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backup))

	require.NoError(t, os.WriteFile(path, []byte("changed\n"), 0o600))
	created, err = fsutil.CreateBackup(ctx, path, cfg)
	require.NoError(t, err)
	assert.False(t, created, "existing backup must be kept")

	backup, err = os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(backup))
}

func TestCreateBackup_Disabled(t *testing.T) {
	ctx := context.Background()
	path := writeFile(t, t.TempDir(), "doc.md", "x\n")

	created, err := fsutil.CreateBackup(ctx, path, fsutil.DefaultBackupConfig())
	require.NoError(t, err)
	assert.False(t, created)

	created, err = fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, fsutil.BackupPath(path, fsutil.BackupModeNone))
}
