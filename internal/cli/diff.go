package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/config/layer"
)

func newDiffCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show the values the override file changes",
		Long: `Compare the resolved configuration with the packaged defaults
resolved against the same root. Lines start with + for added values,
~ for changed values and - for removed ones.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			defaults, err := config.Defaults()
			if err != nil {
				return err
			}
			base, err := config.Validate(defaults, cfg.Root())
			if err != nil {
				return err
			}

			old, cur := base.Mapping(), cfg.Mapping()
			added, modified, removed := layer.Diff(old, cur)
			if len(added)+len(modified)+len(removed) == 0 {
				fmt.Fprintln(a.out, "no changes")
				return nil
			}
			for _, p := range added {
				v, _ := cur.Get(p)
				fmt.Fprintf(a.out, "+ %s = %v\n", p, layer.Raw(v))
			}
			for _, p := range modified {
				was, _ := old.Get(p)
				now, _ := cur.Get(p)
				fmt.Fprintf(a.out, "~ %s: %v -> %v\n", p, layer.Raw(was), layer.Raw(now))
			}
			for _, p := range removed {
				fmt.Fprintf(a.out, "- %s\n", p)
			}
			return nil
		},
	}
}
