package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newPathsCommand(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the resolved project paths",
		Long: `List every pycharm.paths entry resolved against the project root.
With --check each path is stat'ed; when pycharm.validate_paths is set a
missing path makes the command fail.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			statuses, checkErr := cfg.CheckPaths()
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, st := range statuses {
				if !check {
					fmt.Fprintf(tw, "%s\t%s\n", st.Field, st.Path)
					continue
				}
				mark := "ok"
				if !st.Exists {
					mark = "missing"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Field, st.Path, mark)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			venv := cfg.Paths().VenvPaths()
			a.log.Debug().Str("python", venv.Python).Str("pip", venv.Pip).Msg("virtual environment")

			if check {
				return checkErr
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "Report whether each path exists")
	return cmd
}
