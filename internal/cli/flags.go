package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/filter"
)

// selectionOptions holds the filter flags shared by the reporting commands.
type selectionOptions struct {
	sex      string
	age      []string
	embarked []string
	pclass   string
}

func (o *selectionOptions) values() filter.Values {
	return filter.Values{
		Sex:      o.sex,
		Age:      o.age,
		Embarked: o.embarked,
		Pclass:   o.pclass,
	}.Normalize()
}

// registerSelectionFlags adds the filter flags to a cobra command. The
// preset flags are read back through the configuration, which binds them.
func registerSelectionFlags(cmd *cobra.Command, opts *selectionOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.sex, "sex", "", "filter by sex: male, female")
	f.StringSliceVar(&opts.age, "age", nil, "filter by age range index, key or label (repeatable, OR-ed)")
	f.StringSliceVar(&opts.embarked, "embarked", nil, "filter by port of embarkation: C, Q, S (repeatable, OR-ed)")
	f.StringVar(&opts.pclass, "pclass", "", "filter by passenger class: 1, 2, 3")
	f.String("preset", "", "start from a named preset (see the presets command)")
	f.String("preset-file", "", "YAML file with additional presets")

	_ = cmd.RegisterFlagCompletionFunc("sex", cobra.FixedCompletions(
		[]string{"male", "female"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("embarked", cobra.FixedCompletions(
		[]string{"C", "Q", "S"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("pclass", cobra.FixedCompletions(
		[]string{"1", "2", "3"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("age", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var keys []string
		for _, r := range filter.AgeRanges() {
			keys = append(keys, r.Key+"\t"+r.Label)
		}

		return keys, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return filter.BuiltinPresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

// registerFormatFlags adds --format and --output.
func registerFormatFlags(cmd *cobra.Command, format, output *string) {
	f := cmd.Flags()
	f.StringVar(format, "format", "table", "output format: table, markdown, json, yaml")
	f.StringVarP(output, "output", "o", "", "output file path (default: stdout)")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"table", "markdown", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))
}
