package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hupe1980/survivorpie/internal/filter"
)

// RunFunc is called each time the watcher triggers a reload. It returns the
// result of recomputing the aggregate over the reloaded dataset.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult holds the output of one reload so the watcher can report how
// the aggregate moved.
type RunResult struct {
	// Rows is the number of rows loaded.
	Rows int
	// Skipped is the number of malformed records dropped while loading.
	Skipped int
	// Aggregate is the survival split of the active selection.
	Aggregate *filter.Aggregate
}

// Options configures the watch behaviour.
type Options struct {
	// Files are the dataset files to watch.
	Files []string

	// Debounce is the quiet period before triggering a reload.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run starts the file watcher and blocks until the context is cancelled
// or a SIGINT/SIGTERM signal is received.
//
// Files are watched through their parent directories so that editors which
// save by rename keep triggering events.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	if len(opts.Files) == 0 {
		return fmt.Errorf("no files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	targets, err := addFiles(watcher, opts.Files)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", strings.Join(opts.Files, ", "), opts.Debounce)

	r := &runner{opts: opts, runFn: runFn}
	r.run(sigCtx, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(path string) {
		r.run(sigCtx, path)
	}, opts.Logger)
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event) || !targets[filepath.Clean(event.Name)] {
				continue
			}

			opts.Logger.Debug("dataset file changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// runner serialises reloads and remembers the last aggregate.
type runner struct {
	mu    sync.Mutex
	opts  Options
	runFn RunFunc
	prev  *filter.Aggregate
}

// run executes a single reload and prints the status line.
func (r *runner) run(ctx context.Context, trigger string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Format("15:04:05")

	result, err := r.runFn(ctx)
	if err != nil {
		fmt.Fprintf(r.opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	status := "no data loaded"
	if agg := result.Aggregate; agg != nil {
		status = fmt.Sprintf("survived %d, died %d", agg.Survived, agg.Died)
	}

	fmt.Fprintf(r.opts.Out, "[%s] %s → OK (%d rows, %s)\n", now, trigger, result.Rows, status)

	if result.Skipped > 0 {
		fmt.Fprintf(r.opts.Out, "  skipped: %d malformed records\n", result.Skipped)
	}

	if r.prev != nil {
		if changes := DiffAggregates(r.prev, result.Aggregate); len(changes) > 0 {
			fmt.Fprintf(r.opts.Out, "  changes: %s\n", ChangeSummary(changes))
		}
	}

	r.prev = result.Aggregate
}

// addFiles watches the parent directory of every file and returns the set
// of cleaned absolute file paths to react to.
func addFiles(watcher *fsnotify.Watcher, files []string) (map[string]bool, error) {
	targets := make(map[string]bool, len(files))
	dirs := make(map[string]bool)

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving dataset file %q: %w", f, err)
		}

		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("watching dataset file %q: %w", f, err)
		}

		targets[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}

		if err := watcher.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %q: %w", dir, err)
		}

		dirs[dir] = true
	}

	return targets, nil
}

// isRelevant filters out events that cannot change file content.
func isRelevant(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)

	// Ignore editor temporary files and hidden files.
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".swp") || strings.HasPrefix(name, "#") {
		return false
	}

	return true
}
