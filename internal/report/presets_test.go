package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/survivorpie/internal/filter"
)

func TestBuildPresetList_Builtins(t *testing.T) {
	l, err := BuildPresetList(nil)
	require.NoError(t, err)
	require.Len(t, l.Presets, len(filter.BuiltinPresetNames()))

	byName := make(map[string]PresetRow)
	for _, p := range l.Presets {
		byName[p.Name] = p
		assert.Equal(t, SourceBuiltin, p.Source)
	}

	assert.Equal(t, "sex=female pclass=1", byName["women-first-class"].Filter)
}

func TestBuildPresetList_CustomShadowsBuiltin(t *testing.T) {
	custom := map[string]filter.PresetConfig{
		"children": {Description: "Girls only", Extends: "children", Sex: "female"},
		"queens":   {Embarked: []string{"Q"}},
	}

	l, err := BuildPresetList(custom)
	require.NoError(t, err)

	byName := make(map[string]PresetRow)
	for _, p := range l.Presets {
		byName[p.Name] = p
	}

	assert.Equal(t, SourceCustom, byName["children"].Source)
	assert.Equal(t, "Girls only", byName["children"].Description)
	assert.Equal(t, SourceCustom, byName["queens"].Source)
	assert.Equal(t, SourceBuiltin, byName["elderly"].Source)

	out := l.Table(ASCII)
	assert.Contains(t, out, "queens")
	assert.Contains(t, out, "Girls only")
}

func TestBuildPresetList_BrokenExtends(t *testing.T) {
	_, err := BuildPresetList(map[string]filter.PresetConfig{"x": {Extends: "nobody"}})
	require.Error(t, err)
}
