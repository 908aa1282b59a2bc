package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("empty dataset")

const utf8BOM = "\ufeff"

// ctxCheckInterval is the number of records parsed between context checks.
const ctxCheckInterval = 1024

// Source describes one parsed input.
type Source struct {
	// Path is the file the rows came from ("-" for a reader).
	Path string `json:"path"`
	// Rows is the number of rows kept.
	Rows int `json:"rows"`
	// Skipped is the number of malformed records dropped.
	Skipped int `json:"skipped"`
}

// Parse reads a CSV document with a header row from r. Records whose field
// count differs from the header, or that fail to parse, are skipped and
// counted in the returned Source.
func Parse(ctx context.Context, r io.Reader, logger *slog.Logger) ([]passenger.Row, Source, error) {
	if logger == nil {
		logger = slog.Default()
	}

	src := Source{Path: "-"}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, src, ErrEmptyFile
	}

	if err != nil {
		return nil, src, fmt.Errorf("reading header: %w", err)
	}

	cols, err := indexHeader(header)
	if err != nil {
		return nil, src, err
	}

	var rows []passenger.Row

	for line := 0; ; line++ {
		if line%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, src, err
			}
		}

		rec, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(readErr, &parseErr) {
			src.Skipped++
			logger.Warn("skipping malformed record", slog.Int("line", parseErr.Line), slog.String("error", parseErr.Err.Error()))

			continue
		}

		if readErr != nil {
			return nil, src, fmt.Errorf("reading record: %w", readErr)
		}

		if len(rec) != len(cols.names) {
			src.Skipped++
			recLine, _ := reader.FieldPos(0)
			logger.Warn("skipping record with wrong field count",
				slog.Int("line", recLine),
				slog.Int("fields", len(rec)),
				slog.Int("expected", len(cols.names)),
			)

			continue
		}

		rows = append(rows, cols.row(rec))
	}

	src.Rows = len(rows)

	return rows, src, nil
}

// columns maps header positions to row fields.
type columns struct {
	names    []string
	sex      int
	age      int
	embarked int
	pclass   int
	survived int
}

func indexHeader(header []string) (*columns, error) {
	cols := &columns{names: make([]string, len(header))}
	pos := make(map[string]int, len(header))

	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		cols.names[i] = name
		pos[strings.ToLower(name)] = i
	}

	var missing []string

	lookup := func(name string) int {
		i, ok := pos[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}

		return i
	}

	cols.sex = lookup(passenger.ColumnSex)
	cols.age = lookup(passenger.ColumnAge)
	cols.embarked = lookup(passenger.ColumnEmbarked)
	cols.pclass = lookup(passenger.ColumnPclass)
	cols.survived = lookup(passenger.ColumnSurvived)

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return cols, nil
}

// row copies rec into a Row. rec is reused by the reader, so every cell is
// copied out.
func (c *columns) row(rec []string) passenger.Row {
	r := passenger.Row{
		Sex:      strings.Clone(rec[c.sex]),
		Age:      strings.Clone(rec[c.age]),
		Embarked: strings.Clone(rec[c.embarked]),
		Pclass:   strings.Clone(rec[c.pclass]),
		Survived: strings.Clone(rec[c.survived]),
	}

	for i, name := range c.names {
		switch i {
		case c.sex, c.age, c.embarked, c.pclass, c.survived:
			continue
		}

		if r.Extra == nil {
			r.Extra = make(map[string]string, len(c.names)-len(passenger.RequiredColumns))
		}

		r.Extra[name] = strings.Clone(rec[i])
	}

	return r
}
