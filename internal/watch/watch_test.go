package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string, calls *atomic.Int32) {
	t.Helper()

	w, err := NewWatcher([]string{dir}, "_fieldupdater.go", func() error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)

	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- w.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestWatcher_RerunsOnSourceChange(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	startWatcher(t, dir, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "account.go"), []byte("package account\n"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestWatcher_IgnoresGeneratedFiles(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	startWatcher(t, dir, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "account_fieldupdater.go"), []byte("package account\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_SkipsUnchangedSources(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "account.go")

	var calls atomic.Int32
	startWatcher(t, dir, &calls)

	require.NoError(t, os.WriteFile(src, []byte("package account\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	settled := calls.Load()

	require.NoError(t, os.WriteFile(src, []byte("package account\n"), 0o644))

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, settled, calls.Load())
}

func TestWatcher_Fingerprint(t *testing.T) {
	dir := t.TempDir()
	w := &Watcher{dirs: []string{dir}, ignore: "_fieldupdater.go"}

	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("account.go", "package account\n")

	first, err := w.fingerprint()
	require.NoError(t, err)

	write("account_fieldupdater.go", "package account\n// generated\n")
	write("account_test.go", "package account\n")

	same, err := w.fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, same)

	write("account.go", "package account\n\ntype Account struct{}\n")

	changed, err := w.fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}

func TestWatcher_Relevant(t *testing.T) {
	w := &Watcher{ignore: "_fieldupdater.go"}

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"write source", fsnotify.Event{Name: "/p/account.go", Op: fsnotify.Write}, true},
		{"create source", fsnotify.Event{Name: "/p/account.go", Op: fsnotify.Create}, true},
		{"remove source", fsnotify.Event{Name: "/p/account.go", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "/p/account.go", Op: fsnotify.Chmod}, false},
		{"generated", fsnotify.Event{Name: "/p/account_fieldupdater.go", Op: fsnotify.Write}, false},
		{"sidecar", fsnotify.Event{Name: "/p/account_fieldupdater.unformatted.go", Op: fsnotify.Write}, false},
		{"test file", fsnotify.Event{Name: "/p/account_test.go", Op: fsnotify.Write}, false},
		{"not go", fsnotify.Event{Name: "/p/README.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.relevant(tt.event))
		})
	}
}

func TestNewWatcher_AbsoluteDirs(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir("models", 0o755))

	w, err := NewWatcher([]string{"models"}, "", func() error { return nil })
	require.NoError(t, err)
	t.Cleanup(func() { w.watcher.Close() })

	// TempDir may sit behind a symlink, so compare against the resolved cwd.
	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(wd, "models")}, w.Dirs())
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing")}, "", func() error { return nil })
	require.Error(t, err)
}
