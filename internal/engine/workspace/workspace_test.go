package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	got, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.DirExists(t, dir)

	// Idempotent.
	_, err = EnsureDir(dir)
	assert.NoError(t, err)

	_, err = EnsureDir("  ")
	assert.Error(t, err)
}

func TestSafeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"My Video: Part 1/2?", "My Video Part 12"},
		{"  spaced_name-ok  ", "spaced_name-ok"},
		{"../../etc/passwd", "etcpasswd"},
		{"Привет мир", "Привет мир"},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeFilename(tt.in), "input %q", tt.in)
	}
}

func writeAged(t *testing.T, path string, age time.Duration) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	mt := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mt, mt))
}

func TestCleanupOldFiles(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "old.mp4"), 48*time.Hour)
	writeAged(t, filepath.Join(dir, "older.wav"), 72*time.Hour)
	writeAged(t, filepath.Join(dir, "fresh.mp4"), time.Minute)
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeAged(t, filepath.Join(sub, "nested.mp4"), 72*time.Hour)

	n, err := CleanupOldFiles(dir, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoFileExists(t, filepath.Join(dir, "old.mp4"))
	assert.NoFileExists(t, filepath.Join(dir, "older.wav"))
	assert.FileExists(t, filepath.Join(dir, "fresh.mp4"))
	assert.FileExists(t, filepath.Join(sub, "nested.mp4"))
}

func TestCleanupOldFilesMissingDir(t *testing.T) {
	n, err := CleanupOldFiles(filepath.Join(t.TempDir(), "nope"), time.Hour)
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestJanitorSweep(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeAged(t, filepath.Join(a, "1"), 2*time.Hour)
	writeAged(t, filepath.Join(b, "2"), 2*time.Hour)
	writeAged(t, filepath.Join(b, "3"), time.Second)

	j := &Janitor{Dirs: []string{a, b, filepath.Join(a, "missing")}, MaxAge: time.Hour}
	assert.Equal(t, 2, j.Sweep())
}

func TestJanitorRunStops(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, filepath.Join(dir, "stale"), 2*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	j := &Janitor{Dirs: []string{dir}, MaxAge: time.Hour, Interval: 10 * time.Millisecond}
	go func() {
		j.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "stale"))
		return os.IsNotExist(err)
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancel")
	}
}
