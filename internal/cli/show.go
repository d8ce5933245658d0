package cli

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/tkutils/toolkit/internal/config/layer"
	"github.com/tkutils/toolkit/internal/pp"
)

func newRootDirCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the project root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, cfg.Root())
			return nil
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "show [section]",
		Short: "Print the resolved configuration or one section of it",
		Long: `Print the resolved configuration. A dotted section name such as
pycharm.paths selects a nested table. Output uses the pp settings of the
configuration unless --toml is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			}
			v, err := cfg.Section(name)
			if err != nil {
				return err
			}

			if asTOML {
				data, err := toml.Marshal(nest(name, layer.Raw(v)))
				if err != nil {
					return fmt.Errorf("encoding %s: %w", name, err)
				}
				_, err = a.out.Write(data)
				return err
			}

			f := pp.New(cfg.PP())
			if name != "" {
				fmt.Fprintln(a.out, pp.Header(name, cfg.PP().Width))
			}
			return f.Fprint(a.out, layer.Raw(v))
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "Print as TOML")
	return cmd
}

// nest places v under the tables named by a dotted path, so pycharm.paths
// renders as [pycharm.paths] rather than a quoted key.
func nest(name string, v any) any {
	if name == "" {
		return v
	}
	parts := strings.Split(name, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		v = map[string]any{parts[i]: v}
	}
	return v
}
