package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/config/watcher"
	"github.com/tkutils/toolkit/internal/pp"
)

func newWatchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the configuration whenever the override file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load()
			if err != nil {
				return err
			}

			// Reloads reuse the discovered root.
			reload := func() (*config.Config, error) {
				opts := []config.Option{config.WithRoot(cfg.Root()), config.WithLogger(a.log)}
				if a.configFile != "" {
					opts = append(opts, config.WithConfigFile(a.configFile))
				}
				return config.Load(opts...)
			}

			w, err := watcher.New(cfg.OverridePath(), reload, watcher.WithLogger(a.log))
			if err != nil {
				return err
			}
			sub := w.Subscribe(func(c watcher.Change) {
				printChange(a, c)
			})
			defer sub.Unsubscribe()

			fmt.Fprintf(a.out, "watching %s\n", w.Path())
			return w.Run(cmd.Context())
		},
	}
}

func printChange(a *app, c watcher.Change) {
	switch c.Type {
	case watcher.ChangeReload:
		fmt.Fprintln(a.out, "reloaded")
	case watcher.ChangeInvalid:
		fmt.Fprintln(a.errOut, pp.FormatError(c.Err, a.pretty()))
	case watcher.ChangeAdd:
		fmt.Fprintf(a.out, "+ %s = %v\n", c.Path, c.NewValue)
	case watcher.ChangeModify:
		fmt.Fprintf(a.out, "~ %s: %v -> %v\n", c.Path, c.OldValue, c.NewValue)
	case watcher.ChangeRemove:
		fmt.Fprintf(a.out, "- %s\n", c.Path)
	}
}
