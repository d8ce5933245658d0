package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tkutils/toolkit/internal/fetch"
)

func newFetchCommand(a *app) *cobra.Command {
	var (
		dest    string
		replace bool
		timeout time.Duration
		mirror  string
	)

	cmd := &cobra.Command{
		Use:   "fetch <source>",
		Short: "Download the modules of a github source",
		Long: `Download every module listed under github.<source> into --dest,
which defaults to <project root>/<source>. Existing files are kept
unless --replace is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}
			src, err := cfg.GithubSource(args[0])
			if err != nil {
				return err
			}
			if dest == "" {
				dest = filepath.Join(cfg.Root(), args[0])
			}

			opts := []fetch.Option{fetch.WithTimeout(timeout), fetch.WithLogger(a.log)}
			if mirror != "" {
				opts = append(opts, fetch.WithRawBase(mirror))
			}
			client := fetch.New(opts...)
			stop := startSpinner(a.errOut, "fetching "+args[0])
			written, err := client.Fetch(cmd.Context(), src, dest, replace)
			stop()
			for _, p := range written {
				fmt.Fprintln(a.out, p)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dest, "dest", "", "Destination directory")
	cmd.Flags().BoolVar(&replace, "replace", false, "Overwrite existing files")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Per-request timeout")
	cmd.Flags().StringVar(&mirror, "mirror", "", "Raw contents host to use instead of GitHub")
	return cmd
}
