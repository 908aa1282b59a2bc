package watch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/survivorpie/internal/filter"
)

// syncBuffer is a bytes.Buffer safe for the watcher goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

// ---------------------------------------------------------------------------
// Debouncer
// ---------------------------------------------------------------------------

func TestDebouncer_SingleEvent(t *testing.T) {
	var callCount atomic.Int32
	var lastPath atomic.Value

	d := NewDebouncer(50*time.Millisecond, func(path string) {
		callCount.Add(1)
		lastPath.Store(path)
	})
	defer d.Stop()

	d.Trigger("train.csv")
	assert.True(t, d.Pending())

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), callCount.Load())
	assert.Equal(t, "train.csv", lastPath.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_MultipleEventsCoalesced(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(100*time.Millisecond, func(_ string) {
		callCount.Add(1)
	})
	defer d.Stop()

	for range 10 {
		d.Trigger("train.csv")
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestDebouncer_LastEventWins(t *testing.T) {
	var lastPath atomic.Value

	d := NewDebouncer(50*time.Millisecond, func(path string) {
		lastPath.Store(path)
	})
	defer d.Stop()

	d.Trigger("a.csv")
	time.Sleep(10 * time.Millisecond)
	d.Trigger("b.csv")
	time.Sleep(10 * time.Millisecond)
	d.Trigger("c.csv")

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, "c.csv", lastPath.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	var callCount atomic.Int32

	d := NewDebouncer(50*time.Millisecond, func(_ string) {
		callCount.Add(1)
	})

	d.Trigger("a.csv")
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), callCount.Load())
	assert.False(t, d.Pending())
}

func TestDebouncer_RecoversFromPanic(t *testing.T) {
	var calls atomic.Int32

	d := NewDebouncer(20*time.Millisecond, func(_ string) {
		calls.Add(1)
		panic("boom")
	})
	defer d.Stop()

	d.Trigger("a.csv")
	time.Sleep(80 * time.Millisecond)
	d.Trigger("a.csv")
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, int32(2), calls.Load())
}

// ---------------------------------------------------------------------------
// Aggregate changes
// ---------------------------------------------------------------------------

func TestDiffAggregates(t *testing.T) {
	tests := []struct {
		name string
		prev *filter.Aggregate
		curr *filter.Aggregate
		want []Change
	}{
		{
			name: "unchanged",
			prev: &filter.Aggregate{Survived: 3, Died: 7},
			curr: &filter.Aggregate{Survived: 3, Died: 7},
		},
		{
			name: "both moved",
			prev: &filter.Aggregate{Survived: 3, Died: 7},
			curr: &filter.Aggregate{Survived: 4, Died: 6},
			want: []Change{{Label: "Survived", Before: 3, After: 4}, {Label: "Died", Before: 7, After: 6}},
		},
		{
			name: "first load",
			curr: &filter.Aggregate{Survived: 0, Died: 2},
			want: []Change{{Label: "Died", Before: 0, After: 2}},
		},
		{
			name: "unloaded",
			prev: &filter.Aggregate{Survived: 1, Died: 0},
			want: []Change{{Label: "Survived", Before: 1, After: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiffAggregates(tt.prev, tt.curr))
		})
	}
}

func TestChangeSummary(t *testing.T) {
	assert.Equal(t, "no changes", ChangeSummary(nil))
	assert.Equal(t,
		"Survived 342 -> 345 (+3), Died 549 -> 546 (-3)",
		ChangeSummary([]Change{{Label: "Survived", Before: 342, After: 345}, {Label: "Died", Before: 549, After: 546}}),
	)
}

// ---------------------------------------------------------------------------
// isRelevant
// ---------------------------------------------------------------------------

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"csv write", "train.csv", fsnotify.Write, true},
		{"create event", "train.csv", fsnotify.Create, true},
		{"remove event", "train.csv", fsnotify.Remove, true},
		{"rename event", "train.csv", fsnotify.Rename, true},
		{"hidden file", ".train.csv", fsnotify.Write, false},
		{"swap file", "train.csv.swp", fsnotify.Write, false},
		{"backup tilde", "train.csv~", fsnotify.Write, false},
		{"emacs hash", "#train.csv#", fsnotify.Write, false},
		{"zero op", "train.csv", 0, false},
		{"chmod only", "train.csv", fsnotify.Chmod, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := fsnotify.Event{Name: tt.path, Op: tt.op}
			assert.Equal(t, tt.want, isRelevant(event))
		})
	}
}

// ---------------------------------------------------------------------------
// addFiles
// ---------------------------------------------------------------------------

func TestAddFiles_WatchesParentDirsOnce(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("x"), 0o644))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	targets, err := addFiles(watcher, []string{a, b})
	require.NoError(t, err)

	assert.Equal(t, map[string]bool{a: true, b: true}, targets)
	assert.Equal(t, []string{dir}, watcher.WatchList())
}

func TestAddFiles_MissingFile(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer watcher.Close()

	_, err = addFiles(watcher, []string{"/nonexistent/dir/train.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching dataset file")
}

// ---------------------------------------------------------------------------
// Run (integration)
// ---------------------------------------------------------------------------

func writeDataset(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("Sex,Age,Embarked,Pclass,Survived\n"), 0o644))

	return path
}

func TestRun_GracefulShutdown(t *testing.T) {
	path := writeDataset(t)

	ctx, cancel := context.WithCancel(context.Background())

	var runCount atomic.Int32

	opts := DefaultOptions()
	opts.Files = []string{path}
	opts.Debounce = 50 * time.Millisecond
	opts.Out = io.Discard

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, opts, func(_ context.Context) (*RunResult, error) {
			runCount.Add(1)
			return &RunResult{Rows: 1, Aggregate: &filter.Aggregate{Survived: 1}}, nil
		})
	}()

	time.Sleep(200 * time.Millisecond)
	assert.GreaterOrEqual(t, runCount.Load(), int32(1))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not shut down in time")
	}
}

func TestRun_FileChangeTriggersReload(t *testing.T) {
	path := writeDataset(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runCount atomic.Int32

	out := &syncBuffer{}
	opts := DefaultOptions()
	opts.Files = []string{path}
	opts.Debounce = 50 * time.Millisecond
	opts.Out = out

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, opts, func(_ context.Context) (*RunResult, error) {
			n := int(runCount.Add(1))
			return &RunResult{Rows: n, Aggregate: &filter.Aggregate{Survived: n, Died: 1}}, nil
		})
	}()

	time.Sleep(200 * time.Millisecond)
	initialRuns := runCount.Load()

	require.NoError(t, os.WriteFile(path, []byte("Sex,Age,Embarked,Pclass,Survived\nmale,22,S,3,0\n"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Greater(t, runCount.Load(), initialRuns, "file change should trigger reload")

	cancel()
	<-done

	assert.Contains(t, out.String(), "(initial) → OK (1 rows, survived 1, died 1)")
	assert.Contains(t, out.String(), "changes: Survived 1 -> 2 (+1)")
}

func TestRun_IgnoresUnrelatedFiles(t *testing.T) {
	path := writeDataset(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runCount atomic.Int32

	opts := DefaultOptions()
	opts.Files = []string{path}
	opts.Debounce = 50 * time.Millisecond
	opts.Out = io.Discard

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, opts, func(_ context.Context) (*RunResult, error) {
			runCount.Add(1)
			return &RunResult{}, nil
		})
	}()

	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "notes.txt"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), runCount.Load())

	cancel()
	<-done
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, 500*time.Millisecond, opts.Debounce)
	assert.Empty(t, opts.Files)
	assert.NotNil(t, opts.Logger)
	assert.NotNil(t, opts.Out)
}

func TestRun_NoFiles(t *testing.T) {
	err := Run(context.Background(), DefaultOptions(), func(_ context.Context) (*RunResult, error) {
		return &RunResult{}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files to watch")
}

func TestRun_MissingFile(t *testing.T) {
	opts := DefaultOptions()
	opts.Files = []string{"/nonexistent/train.csv"}
	opts.Out = io.Discard

	err := Run(context.Background(), opts, func(_ context.Context) (*RunResult, error) {
		return &RunResult{}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching dataset file")
}

func TestRun_RunFuncError(t *testing.T) {
	path := writeDataset(t)

	ctx, cancel := context.WithCancel(context.Background())

	out := &syncBuffer{}
	opts := DefaultOptions()
	opts.Files = []string{path}
	opts.Debounce = 50 * time.Millisecond
	opts.Out = out

	var callCount atomic.Int32

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, opts, func(_ context.Context) (*RunResult, error) {
			callCount.Add(1)
			return nil, fmt.Errorf("missing required column: Age")
		})
	}()

	time.Sleep(200 * time.Millisecond)
	assert.GreaterOrEqual(t, callCount.Load(), int32(1))

	cancel()
	<-done

	assert.Contains(t, out.String(), "ERROR: missing required column: Age")
}
