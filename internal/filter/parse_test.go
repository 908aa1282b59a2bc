package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValues_Normalize(t *testing.T) {
	v := Values{Sex: " Female ", Pclass: " 1", Age: []string{" 0", ""}, Embarked: []string{"c", " q ", ""}}.Normalize()

	assert.Equal(t, Values{Sex: "female", Pclass: "1", Age: []string{"0"}, Embarked: []string{"C", "Q"}}, v)
	assert.False(t, v.IsEmpty())
	assert.True(t, Values{}.IsEmpty())
}

func TestValues_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  Values
		wantErr []string
	}{
		{name: "empty", values: Values{}},
		{name: "valid", values: Values{Sex: "male", Pclass: "3", Embarked: []string{"S"}, Age: []string{"0", "over-60", "Unknown"}}},
		{name: "bad sex", values: Values{Sex: "other"}, wantErr: []string{`invalid sex "other"`}},
		{name: "bad class", values: Values{Pclass: "4"}, wantErr: []string{`invalid pclass "4"`}},
		{name: "bad port", values: Values{Embarked: []string{"X"}}, wantErr: []string{`invalid port "X"`}},
		{name: "bad age", values: Values{Age: []string{"6"}}, wantErr: []string{`invalid age range "6"`}},
		{
			name:    "all errors reported",
			values:  Values{Sex: "x", Pclass: "0"},
			wantErr: []string{"invalid sex", "invalid pclass"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.values.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)

			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestParseValues(t *testing.T) {
	v, err := ParseValues("sex=Female class=1 embarked=c,q age=0 age=unknown")
	require.NoError(t, err)

	assert.Equal(t, Values{
		Sex:      "female",
		Pclass:   "1",
		Embarked: []string{"C", "Q"},
		Age:      []string{"0", "unknown"},
	}, v)
}

func TestParseValues_Errors(t *testing.T) {
	_, err := ParseValues("female")
	assert.ErrorContains(t, err, "expected field=value")

	_, err = ParseValues("deck=B")
	assert.ErrorContains(t, err, `unknown field "deck"`)

	_, err = ParseValues("pclass=9")
	assert.ErrorContains(t, err, "invalid pclass")
}

func TestResolveSelection(t *testing.T) {
	sel, err := ResolveSelection("all", nil)
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())

	sel, err = ResolveSelection("", nil)
	require.NoError(t, err)
	assert.True(t, sel.IsEmpty())

	sel, err = ResolveSelection("sex=female pclass=1", nil)
	require.NoError(t, err)
	assert.Equal(t, "female", sel.Sex())
	assert.Equal(t, "1", sel.Pclass())

	sel, err = ResolveSelection("women-first-class", nil)
	require.NoError(t, err)
	assert.True(t, sel.Equal(Selection{}.Set(FieldSex, "female").Set(FieldPclass, "1")))

	custom := map[string]PresetConfig{"queenstown": {Embarked: []string{"Q"}}}
	sel, err = ResolveSelection("queenstown", custom)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q"}, sel.Embarked())

	_, err = ResolveSelection("nobody", nil)
	assert.ErrorContains(t, err, "unknown preset")
}
