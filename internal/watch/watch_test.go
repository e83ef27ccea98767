package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNew_NoPaths(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Paths: []string{""}})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Options{Paths: []string{
		filepath.Join(dir, "cv.json"),
		filepath.Join(dir, "config.yaml"),
	}})
	require.NoError(t, err)

	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.Len(t, w.files, 2)
	assert.Equal(t, []string{dir}, w.dirs)
}

func startWatcher(t *testing.T, w *Watcher, action Action) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, action) }()
	return cancel, done
}

func TestRun_RerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := New(Options{Paths: []string{path}, Debounce: 50 * time.Millisecond, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)

	var runs atomic.Int32
	cancel, done := startWatcher(t, w, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// A burst of writes collapses into one run
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"profile":"x"}`), 0644))
	}
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.GreaterOrEqual(t, w.Stats().Events, 1)
	assert.Equal(t, 2, w.Stats().Runs)
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	w, err := New(Options{Paths: []string{path}, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	var runs atomic.Int32
	cancel, done := startWatcher(t, w, func(context.Context) error {
		runs.Add(1)
		return nil
	})
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, 0, w.Stats().Events)
}

func TestRun_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

	failure := errors.New("render failed")
	reported := make(chan error, 1)
	w, err := New(Options{Paths: []string{path}, OnError: func(err error) { reported <- err }})
	require.NoError(t, err)

	cancel, done := startWatcher(t, w, func(context.Context) error { return failure })

	select {
	case err := <-reported:
		assert.ErrorIs(t, err, failure)
	case <-time.After(2 * time.Second):
		t.Fatal("error was not reported")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, w.Stats().Errors)
}

func TestRun_MissingDirectory(t *testing.T) {
	w, err := New(Options{Paths: []string{"/nonexistent/dir/cv.json"}})
	require.NoError(t, err)

	err = w.Run(context.Background(), func(context.Context) error { return nil })
	assert.Error(t, err)
}
