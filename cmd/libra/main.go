package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/libra/cmd/ui"
	liberr "github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/config"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

// globalOptions carries the persistent flags and the configuration they resolve to
type globalOptions struct {
	logLevel   string
	logFormat  string
	configFile string
	verbose    bool

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if code := liberr.CodeOf(err); code != "" {
			logger.Debug("command failed", "code", code)
		}
		fmt.Fprintln(os.Stderr, ui.ErrorMessage(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "libra",
		Short:         "libra - a Git-compatible object store and ref engine",
		Long:          getBanner(),
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default .libra/config.yaml, then ~/.libra/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output (sets log level to debug)")

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newHashObjectCmd(opts))
	rootCmd.AddCommand(newCatFileCmd(opts))
	rootCmd.AddCommand(newRevParseCmd(opts))
	rootCmd.AddCommand(newLsFilesCmd(opts))
	rootCmd.AddCommand(newLsObjectsCmd(opts))
	rootCmd.AddCommand(newUpdateRefCmd(opts))
	rootCmd.AddCommand(newShowRefCmd(opts))
	rootCmd.AddCommand(newMRCmd(opts))

	return rootCmd
}

func getBanner() string {
	return `
  ██╗     ██╗██████╗ ██████╗  █████╗
  ██║     ██║██╔══██╗██╔══██╗██╔══██╗
  ██║     ██║██████╔╝██████╔╝███████║
  ██║     ██║██╔══██╗██╔══██╗██╔══██║
  ███████╗██║██████╔╝██║  ██║██║  ██║
  ╚══════╝╚═╝╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝

  Content-addressed objects, refs and merge requests.

  Get started with: libra init
  Need help? Run:   libra --help
`
}

// setup loads configuration and installs the logger. Flags given on the
// command line win over config values.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	var controlDir scpath.SourcePath
	if ctx, err := librarepo.NewLocator().Locate(); err == nil {
		controlDir = ctx.ControlDir()
	}

	cfg, err := config.Load(config.LoadOptions{File: o.configFile, ControlDir: controlDir})
	if err != nil {
		return err
	}
	o.cfg = cfg

	level := logger.ParseLevel(cfg.Log.Level)
	if cmd.Flags().Changed("log-level") {
		level = logger.ParseLevel(o.logLevel)
	}
	if o.verbose {
		level = logger.LevelDebug
	}

	format := logger.ParseFormat(cfg.Log.Format)
	if cmd.Flags().Changed("log-format") {
		format = logger.ParseFormat(o.logFormat)
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})

	if cfg.FileUsed != "" {
		logger.Debug("using config file", "path", cfg.FileUsed)
	}
	return nil
}

// config returns the loaded configuration, or defaults when setup has not run
func (o *globalOptions) config() *config.Config {
	if o.cfg == nil {
		return config.Default()
	}
	return o.cfg
}
