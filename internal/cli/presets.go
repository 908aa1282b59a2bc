package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/config"
	"github.com/hupe1980/survivorpie/internal/filter"
	"github.com/hupe1980/survivorpie/internal/report"
)

type presetsOptions struct {
	format string
	output string
}

// presetView is the resolved form of a single preset.
type presetView struct {
	Name      string              `json:"name"`
	Source    string              `json:"source"`
	Filter    string              `json:"filter"`
	Selection filter.Description  `json:"selection"`
	Preset    filter.PresetConfig `json:"preset"`
}

func (v presetView) Table(m report.Mode) string {
	list := report.PresetList{Presets: []report.PresetRow{{
		Name:        v.Name,
		Source:      v.Source,
		Description: v.Preset.Description,
		Filter:      v.Filter,
	}}}

	return list.Table(m)
}

func newPresetsCommand() *cobra.Command {
	opts := &presetsOptions{}

	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List the named selections",
		Long: `Presets lists the built-in named selections together with the custom
presets of the config file and --preset-file. Custom presets shadow
built-ins of the same name and may extend another preset.

With a name, the fully resolved preset is printed instead.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			return filter.BuiltinPresetNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(cmd, args, opts)
		},
	}

	registerFormatFlags(cmd, &opts.format, &opts.output)
	cmd.Flags().String("preset-file", "", "YAML file with additional presets")

	return cmd
}

func runPresets(cmd *cobra.Command, args []string, opts *presetsOptions) error {
	cfg := config.FromContext(cmd.Context())

	if len(args) == 1 {
		p, err := filter.ResolvePreset(args[0], cfg.Presets)
		if err != nil {
			return usageError(err)
		}

		sel := p.Selection()

		source := report.SourceBuiltin
		if _, ok := cfg.Presets[args[0]]; ok {
			source = report.SourceCustom
		}

		format := opts.format
		if !cmd.Flags().Changed("format") {
			format = "yaml"
		}

		return writeFormatted(cmd, format, presetView{
			Name:      args[0],
			Source:    source,
			Filter:    sel.String(),
			Selection: sel.Describe(),
			Preset:    p,
		}, opts.output)
	}

	list, err := report.BuildPresetList(cfg.Presets)
	if err != nil {
		return usageError(err)
	}

	return writeFormatted(cmd, opts.format, list, opts.output)
}
