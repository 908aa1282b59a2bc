package filter

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_StartsUnloaded(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, StateUnloaded, e.State())
	assert.False(t, e.Loaded())
	assert.Nil(t, e.Aggregate())
	assert.Equal(t, 0, e.Len())
}

func TestEngine_FiltersBeforeLoadStillYieldNil(t *testing.T) {
	e := NewEngine()
	e.SetFilter(FieldSex, "female")
	assert.Nil(t, e.Aggregate())
	assert.Equal(t, "female", e.Selection().Sex())
}

func TestEngine_LoadTransitionsOnce(t *testing.T) {
	e := NewEngine()
	e.Load(exampleRows())
	assert.Equal(t, StateLoaded, e.State())
	assert.Equal(t, 2, e.Len())

	// Reloading with an empty snapshot keeps the engine loaded, but there is
	// nothing to aggregate.
	e.Load(nil)
	assert.Equal(t, StateLoaded, e.State())
	assert.Nil(t, e.Aggregate())
}

func TestEngine_SetFilterAndAggregate(t *testing.T) {
	e := NewEngine()
	e.Load(exampleRows())

	assert.Equal(t, &Aggregate{Survived: 1, Died: 1}, e.Aggregate())

	sel := e.SetFilter(FieldSex, "female")
	assert.Equal(t, "female", sel.Sex())
	assert.Equal(t, &Aggregate{Survived: 1, Died: 0}, e.Aggregate())

	e.SetFilter(FieldSex, "")
	e.SetFilter(FieldAge, "5")
	assert.Equal(t, &Aggregate{Survived: 1, Died: 0}, e.Aggregate())

	e.SetFilter(FieldPclass, "2")
	assert.Equal(t, &Aggregate{Survived: 0, Died: 0}, e.Aggregate())
}

func TestEngine_SelectionSnapshotIsIndependent(t *testing.T) {
	e := NewEngine()
	e.SetFilter(FieldEmbarked, "C")

	snap := e.Selection()
	e.SetFilter(FieldEmbarked, "Q")

	assert.Equal(t, []string{"C"}, snap.Embarked())
	assert.Equal(t, []string{"C", "Q"}, e.Selection().Embarked())
}

func TestEngine_WithSelection(t *testing.T) {
	sel := Selection{}.Set(FieldPclass, "1")
	e := NewEngine(WithSelection(sel))
	e.Load(sampleRows())

	assert.Equal(t, &Aggregate{Survived: 4, Died: 2}, e.Aggregate())

	e.SetSelection(Selection{})
	assert.Equal(t, &Aggregate{Survived: 10, Died: 9}, e.Aggregate())
}

func TestEngine_AgeRanges(t *testing.T) {
	assert.Equal(t, AgeRanges(), NewEngine().AgeRanges())
}

func TestEngine_LogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := NewEngine(WithLogger(logger))
	e.Load(exampleRows())
	e.SetFilter(FieldSex, "male")

	out := buf.String()
	assert.Contains(t, out, "dataset installed")
	assert.Contains(t, out, "previousState=unloaded")
	assert.Contains(t, out, "filter updated")
}

func TestEngine_ConcurrentAccess(t *testing.T) {
	e := NewEngine()
	rows := sampleRows()

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(3)

		go func() {
			defer wg.Done()
			e.Load(rows)
		}()

		go func() {
			defer wg.Done()
			e.SetFilter(FieldEmbarked, "S")
		}()

		go func() {
			defer wg.Done()
			if agg := e.Aggregate(); agg != nil {
				assert.LessOrEqual(t, agg.Total(), len(rows))
			}
		}()
	}

	wg.Wait()
	require.True(t, e.Loaded())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "unloaded", StateUnloaded.String())
	assert.Equal(t, "loaded", StateLoaded.String())
}
