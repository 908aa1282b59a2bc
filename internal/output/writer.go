package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer sends an encoded report or chart image to its destination.
type Writer interface {
	Write(data []byte) error
}

// NewWriter returns a FileWriter for path, or a StdoutWriter on out when
// path is empty or "-".
func NewWriter(out io.Writer, path string, opts ...FileWriterOption) Writer {
	if path == "" || path == "-" {
		return NewStdoutWriter(out)
	}

	return NewFileWriter(path, opts...)
}

// StdoutWriter writes to an io.Writer, os.Stdout when none is given.
type StdoutWriter struct {
	out io.Writer
}

// NewStdoutWriter creates a StdoutWriter on w.
func NewStdoutWriter(w io.Writer) *StdoutWriter {
	if w == nil {
		w = os.Stdout
	}

	return &StdoutWriter{out: w}
}

func (sw *StdoutWriter) Write(data []byte) error {
	if _, err := sw.out.Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// FileWriter replaces a file atomically: data goes to a temporary file in
// the target directory which is then renamed over the target. A failed
// render never leaves a truncated image behind.
type FileWriter struct {
	path   string
	logger *slog.Logger
}

// filePerm is the mode of written files.
const filePerm os.FileMode = 0o644

// FileWriterOption configures a FileWriter.
type FileWriterOption func(*FileWriter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FileWriterOption {
	return func(fw *FileWriter) { fw.logger = logger }
}

// NewFileWriter creates a FileWriter for path.
func NewFileWriter(path string, opts ...FileWriterOption) *FileWriter {
	fw := &FileWriter{
		path:   path,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(fw)
	}

	return fw
}

func (fw *FileWriter) Write(data []byte) error {
	dir := filepath.Dir(fw.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fw.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file for %s: %w", fw.path, err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing file %s: %w", fw.path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing file %s: %w", fw.path, err)
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", fw.path, err)
	}

	_, statErr := os.Stat(fw.path)
	replaced := statErr == nil

	if err := os.Rename(tmpName, fw.path); err != nil {
		return fmt.Errorf("replacing %s: %w", fw.path, err)
	}

	fw.logger.Debug("output written",
		slog.String("path", fw.path),
		slog.Int("bytes", len(data)),
		slog.Bool("replaced", replaced),
	)

	return nil
}
