package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkutils/toolkit/internal/config"
)

func newValidateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check an override file against the schema",
		Long: `Load the configuration with the given override file, or with the
configured one, and report the first error found. The file is taken
relative to the project root unless it is absolute.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if len(args) == 1 {
				opts = append(opts, config.WithConfigFile(args[0]))
			}
			cfg, err := a.load(opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ok: %s\n", cfg.OverridePath())
			return nil
		},
	}
}
