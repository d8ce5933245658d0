// Package cli implements the tkconfig command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tkutils/toolkit/internal/config"
	"github.com/tkutils/toolkit/internal/logger"
	"github.com/tkutils/toolkit/internal/pp"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitError  = 1
	ExitConfig = 2
)

// Version is reported by --version.
var Version = "dev"

// fallbackPretty renders errors raised before any configuration loaded.
var fallbackPretty = config.PrettyErrors{PrettyErrors: true, LineNumberFirst: true}

// app holds the state shared by every subcommand of one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	rootDir    string
	configFile string
	verbose    bool
	jsonLogs   bool

	log *logger.Logger
	cfg *config.Config
}

// NewRootCommand builds the tkconfig command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	return newApp(out, errOut).command()
}

func newApp(out, errOut io.Writer) *app {
	return &app{out: out, errOut: errOut, log: logger.Nop()}
}

func (a *app) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "tkconfig",
		Short: "Inspect and check the course toolkit configuration",
		Long: `tkconfig loads the toolkit configuration the same way course code does:
packaged defaults, overridden by <project root>/toolkit_config.toml, with
every path resolved against the project root.

The project root is the nearest directory holding a .idea folder, unless
--root or TK_PROJECT_ROOT names it.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.rootDir, "root", "", "Project root (skips discovery)")
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Override file (relative to the project root)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	root.PersistentFlags().BoolVar(&a.jsonLogs, "json", false, "Output logs in JSON format")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newRootDirCommand(a),
		newShowCommand(a),
		newPathsCommand(a),
		newValidateCommand(a),
		newDiffCommand(a),
		newFetchCommand(a),
		newWatchCommand(a),
	)
	return root
}

// Execute runs tkconfig with args and returns the process exit code.
func Execute(ctx context.Context, args []string, out, errOut io.Writer) int {
	a := newApp(out, errOut)
	cmd := a.command()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.log.Debug().Err(err).Msg("command failed")
		fmt.Fprintln(errOut, pp.FormatError(err, a.pretty()))
		return exitCode(err)
	}
	return ExitOK
}

// pretty returns the error layout of the loaded configuration, or the
// fallback when loading itself failed.
func (a *app) pretty() config.PrettyErrors {
	if a.cfg != nil {
		return a.cfg.PrettyErrors()
	}
	return fallbackPretty
}

func (a *app) setupLogging() {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	if a.jsonLogs {
		a.log = logger.New("tkconfig", level, a.errOut)
	} else {
		a.log = logger.NewConsole("tkconfig", level, a.errOut)
	}
}

// load returns the configuration for this invocation, loading it once.
// Without flags the process-wide configuration is used.
func (a *app) load(opts ...config.Option) (*config.Config, error) {
	if a.cfg != nil && len(opts) == 0 {
		return a.cfg, nil
	}

	var (
		cfg *config.Config
		err error
	)
	if a.rootDir == "" && a.configFile == "" && len(opts) == 0 {
		cfg, err = config.Default()
	} else {
		all := []config.Option{config.WithLogger(a.log)}
		if a.rootDir != "" {
			all = append(all, config.WithRoot(a.rootDir))
		}
		if a.configFile != "" {
			all = append(all, config.WithConfigFile(a.configFile))
		}
		cfg, err = config.Load(append(all, opts...)...)
	}
	if err != nil {
		return nil, err
	}
	if len(opts) == 0 {
		a.cfg = cfg
	}
	return cfg, nil
}

func exitCode(err error) int {
	for _, target := range []error{
		config.ErrParse,
		config.ErrProjectNotFound,
		config.ErrPathResolution,
		config.ErrMissingField,
		config.ErrTypeValidation,
		config.ErrUnknownField,
	} {
		if errors.Is(err, target) {
			return ExitConfig
		}
	}
	return ExitError
}
