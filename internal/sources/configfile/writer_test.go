package configfile

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriterCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	require.NoError(t, NewWriter(path).Write([]byte("{}\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())
	assert.Equal(t, []string{"config.json"}, listDir(t, dir))
}

func TestWriterReplacesContentAndKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content\n"), 0o600))

	require.NoError(t, NewWriter(path).Write([]byte("short\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	assert.Equal(t, []string{"config.json"}, listDir(t, dir))
}

func TestWriterFailureLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the final rename fail.
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	err := NewWriter(path).Write([]byte("{}\n"))
	require.Error(t, err)

	assert.Equal(t, []string{"config.json"}, listDir(t, dir))
	info, statErr := os.Stat(path)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestWriterMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.json")

	err := NewWriter(path).Write([]byte("{}\n"))
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestWriterKeepsSymlink(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.json")
	link := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(real, []byte("old\n"), 0o600))
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	require.NoError(t, NewWriter(link).Write([]byte("new\n")))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "config path must stay a symlink")

	data, err := os.ReadFile(real)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
	assert.ElementsMatch(t, []string{"config.json", "real.json"}, listDir(t, dir))
}

func TestWriterFallsBackToInPlaceWrite(t *testing.T) {
	for _, errno := range []syscall.Errno{syscall.EBUSY, syscall.EXDEV} {
		t.Run(errno.Error(), func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.json")
			require.NoError(t, os.WriteFile(path, []byte("a much longer previous content\n"), 0o644))

			w := NewWriter(path)
			w.rename = func(oldpath, newpath string) error {
				return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errno}
			}

			require.NoError(t, w.Write([]byte("short\n")))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "short\n", string(data))
			assert.Equal(t, []string{"config.json"}, listDir(t, dir))
		})
	}
}

func TestWriterRenameFailureLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	w := NewWriter(path)
	w.rename = func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EACCES}
	}

	require.Error(t, w.Write([]byte("new\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
	assert.Equal(t, []string{"config.json"}, listDir(t, dir))
}
