package filter

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// PresetConfig describes a reusable selection that can be applied by name
// via --preset.
type PresetConfig struct {
	// Description is shown by the presets command.
	Description string `yaml:"description,omitempty" mapstructure:"description" json:"description,omitempty"`
	// Sex selects a single sex.
	Sex string `yaml:"sex,omitempty" mapstructure:"sex" json:"sex,omitempty"`
	// Age lists age bins by index, key or label.
	Age []string `yaml:"age,omitempty" mapstructure:"age" json:"age,omitempty"`
	// Embarked lists port codes.
	Embarked []string `yaml:"embarked,omitempty" mapstructure:"embarked" json:"embarked,omitempty"`
	// Pclass selects a single passenger class.
	Pclass string `yaml:"pclass,omitempty" mapstructure:"pclass" json:"pclass,omitempty"`
	// Extends names a built-in preset to extend.
	Extends string `yaml:"extends,omitempty" mapstructure:"extends" json:"extends,omitempty"`
}

// builtinPresets contains the built-in preset definitions.
var builtinPresets = map[string]PresetConfig{
	"women-first-class": {
		Description: "Female passengers travelling first class",
		Sex:         "female",
		Pclass:      "1",
	},
	"men-third-class": {
		Description: "Male passengers travelling third class",
		Sex:         "male",
		Pclass:      "3",
	},
	"children": {
		Description: "Passengers under 16",
		Age:         []string{"under-16"},
	},
	"elderly": {
		Description: "Passengers aged 60 and over",
		Age:         []string{"over-60"},
	},
	"age-unknown": {
		Description: "Passengers without a recorded age",
		Age:         []string{"unknown"},
	},
	"southampton-third": {
		Description: "Third class passengers who boarded at Southampton",
		Embarked:    []string{"S"},
		Pclass:      "3",
	},
}

// BuiltinPresetNames returns the sorted names of all built-in presets.
func BuiltinPresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// BuiltinPresets returns a copy of the built-in preset table.
func BuiltinPresets() map[string]PresetConfig {
	out := make(map[string]PresetConfig, len(builtinPresets))
	for k, v := range builtinPresets {
		out[k] = v
	}

	return out
}

// ResolvePreset resolves a preset name by checking custom presets first,
// then built-ins. A custom preset may extend a built-in one.
func ResolvePreset(name string, custom map[string]PresetConfig) (PresetConfig, error) {
	if p, ok := custom[name]; ok {
		if p.Extends == "" {
			return p, nil
		}

		base, ok := builtinPresets[p.Extends]
		if !ok {
			return PresetConfig{}, fmt.Errorf("preset %q extends unknown preset %q", name, p.Extends)
		}

		return mergePresets(base, p), nil
	}

	if p, ok := builtinPresets[name]; ok {
		return p, nil
	}

	return PresetConfig{}, fmt.Errorf("unknown preset %q", name)
}

// mergePresets lays ext over base. Single-select fields in ext win when set;
// multi-select fields are concatenated.
func mergePresets(base, ext PresetConfig) PresetConfig {
	merged := PresetConfig{
		Description: base.Description,
		Sex:         base.Sex,
		Pclass:      base.Pclass,
		Age:         append(append([]string{}, base.Age...), ext.Age...),
		Embarked:    append(append([]string{}, base.Embarked...), ext.Embarked...),
	}

	if ext.Description != "" {
		merged.Description = ext.Description
	}

	if ext.Sex != "" {
		merged.Sex = ext.Sex
	}

	if ext.Pclass != "" {
		merged.Pclass = ext.Pclass
	}

	return merged
}

// Selection builds the selection described by the preset. Values repeated
// in a multi-select list are collapsed rather than toggled off.
func (p PresetConfig) Selection() Selection {
	return Selection{}.Apply(Values{
		Sex:      p.Sex,
		Age:      p.Age,
		Embarked: p.Embarked,
		Pclass:   p.Pclass,
	})
}

// LoadPresetFile loads custom preset definitions from a YAML file with a
// top-level "presets" key.
func LoadPresetFile(path string) (map[string]PresetConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-provided preset file
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}

	return ParsePresets(data)
}

// ParsePresets parses preset definitions from YAML bytes.
func ParsePresets(data []byte) (map[string]PresetConfig, error) {
	var raw struct {
		Presets map[string]PresetConfig `yaml:"presets"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing presets: %w", err)
	}

	if raw.Presets == nil {
		return map[string]PresetConfig{}, nil
	}

	return raw.Presets, nil
}
