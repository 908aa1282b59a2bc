package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/survivorpie/internal/output"
	"github.com/hupe1980/survivorpie/internal/version"
)

func newVersionCommand() *cobra.Command {
	var (
		format     string
		constraint string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Display the version, git commit, build date, Go version, and platform.

With --check the command fails unless the binary satisfies the given
semver constraint, the same check applied by "required-version" in the
config file.`,
		Args: cobra.NoArgs,
		// Override parent PersistentPreRunE: version needs no config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if constraint != "" {
				if err := version.Check(constraint); err != nil {
					return runtimeError(err)
				}
			}

			info := version.GetInfo()

			if format == "" || format == "text" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return err
			}

			data, err := output.DefaultRegistry().Encode(format, info)
			if err != nil {
				return usageError(err)
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&format, "format", "text", "output format: text, json, yaml")
	f.StringVar(&constraint, "check", "", "fail unless the version satisfies this semver constraint")

	return cmd
}
