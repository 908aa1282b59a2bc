package dataset

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/survivorpie/internal/passenger"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// ---------------------------------------------------------------------------
// Parse
// ---------------------------------------------------------------------------

func TestParse_KeepsRequiredAndExtraColumns(t *testing.T) {
	in := "PassengerId,Survived,Pclass,Name,Sex,Age,Embarked\n" +
		`1,0,3,"Braund, Mr. Owen Harris",male,22,S` + "\n" +
		`2,1,1,"Cumings, Mrs. John Bradley",female,,C` + "\n"

	rows, src, err := Parse(context.Background(), strings.NewReader(in), discardLogger())
	require.NoError(t, err)
	assert.Equal(t, 2, src.Rows)
	assert.Equal(t, 0, src.Skipped)

	want := []passenger.Row{
		{
			Sex: "male", Age: "22", Embarked: "S", Pclass: "3", Survived: "0",
			Extra: map[string]string{"PassengerId": "1", "Name": "Braund, Mr. Owen Harris"},
		},
		{
			Sex: "female", Age: "", Embarked: "C", Pclass: "1", Survived: "1",
			Extra: map[string]string{"PassengerId": "2", "Name": "Cumings, Mrs. John Bradley"},
		},
	}

	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HeaderIsCaseInsensitiveAndBOMTolerant(t *testing.T) {
	in := "\ufeffsurvived, PCLASS ,sex,age,embarked\n1,1,female,38,C\n"

	rows, _, err := Parse(context.Background(), strings.NewReader(in), discardLogger())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "female", rows[0].Sex)
	assert.Equal(t, "1", rows[0].Pclass)
	assert.Nil(t, rows[0].Extra)
}

func TestParse_MissingColumn(t *testing.T) {
	_, _, err := Parse(context.Background(), strings.NewReader("Sex,Pclass\nmale,3\n"), discardLogger())
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "Age, Embarked, Survived")
}

func TestParse_Empty(t *testing.T) {
	_, _, err := Parse(context.Background(), strings.NewReader(""), discardLogger())
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, src, err := Parse(context.Background(), strings.NewReader("Sex,Age,Embarked,Pclass,Survived\n"), discardLogger())
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0, src.Rows)
}

func TestParse_SkipsMalformedRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	f, err := os.Open(filepath.Join("testdata", "malformed.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, src, err := Parse(context.Background(), f, logger)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 2, src.Skipped)
	assert.Contains(t, buf.String(), "skipping record with wrong field count")
}

func TestParse_BadQuoteIsSkipped(t *testing.T) {
	in := "Sex,Age,Embarked,Pclass,Survived\n" +
		"male,2\"2,S,3,0\n" +
		"female,30,C,1,1\n"

	rows, src, err := Parse(context.Background(), strings.NewReader(in), discardLogger())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, src.Skipped)
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Parse(ctx, strings.NewReader("Sex,Age,Embarked,Pclass,Survived\nmale,1,S,3,0\n"), discardLogger())
	assert.ErrorIs(t, err, context.Canceled)
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

func TestLoad_SingleFile(t *testing.T) {
	ds, err := Load(context.Background(), []string{filepath.Join("testdata", "passengers.csv")}, WithLogger(discardLogger()))
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 10)
	require.Len(t, ds.Sources, 1)
	assert.Equal(t, 10, ds.Sources[0].Rows)
	assert.Equal(t, 0, ds.Skipped())
	assert.Equal(t, "Braund, Mr. Owen Harris", ds.Rows[0].Extra["Name"])
}

func TestLoad_MultipleFilesPreserveOrder(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "more.csv"),
		filepath.Join("testdata", "passengers.csv"),
		filepath.Join("testdata", "malformed.csv"),
	}

	for _, parallel := range []int{1, 3} {
		ds, err := Load(context.Background(), paths, WithParallel(parallel), WithLogger(discardLogger()))
		require.NoError(t, err)
		require.Len(t, ds.Rows, 14)

		assert.Equal(t, "11", ds.Rows[0].Extra["PassengerId"])
		assert.Equal(t, "12", ds.Rows[1].Extra["PassengerId"])
		assert.Equal(t, "1", ds.Rows[2].Extra["PassengerId"])
		assert.Equal(t, "10", ds.Rows[11].Extra["PassengerId"])
		assert.Equal(t, "38", ds.Rows[12].Age)
		assert.Equal(t, 2, ds.Skipped())

		require.Len(t, ds.Sources, 3)
		assert.Equal(t, paths[1], ds.Sources[1].Path)
	}
}

func TestLoad_MissingFileFailsWholeLoad(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "passengers.csv"),
		filepath.Join("testdata", "does-not-exist.csv"),
	}

	ds, err := Load(context.Background(), paths, WithLogger(discardLogger()))
	require.Error(t, err)
	assert.Nil(t, ds)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "opening dataset")
}

func TestLoad_MissingColumnWrapsPath(t *testing.T) {
	p := filepath.Join("testdata", "missing_column.csv")

	_, err := Load(context.Background(), []string{p}, WithLogger(discardLogger()))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), p)
}

func TestLoad_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", "more.csv"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultPath), data, 0o600))

	t.Chdir(dir)

	ds, err := Load(context.Background(), nil, WithLogger(discardLogger()))
	require.NoError(t, err)
	assert.Len(t, ds.Rows, 2)
	assert.Equal(t, DefaultPath, ds.Sources[0].Path)
}
