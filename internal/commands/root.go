// Package commands implements the orgtree command line.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgtree/internal/config"
	"github.com/gerunddev/orgtree/internal/logger"
	"github.com/gerunddev/orgtree/parser"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	idMapPath  string
	logLevel   string

	cfg     *config.Config
	parser  *parser.Config
	log     *logger.Logger
	cleanup func()
}

// NewRootCmd builds the orgtree command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "orgtree",
		Short:         "Parse org-mode files into element trees and export them",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", fmt.Sprintf("config file (default %s)", config.ConfigPath()))
	flags.StringVar(&a.idMapPath, "id-map", "", "JSON file mapping org-roam ids to note names")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newTreeCmd(a))
	rootCmd.AddCommand(newHTMLCmd(a))
	rootCmd.AddCommand(newOrgCmd(a))
	rootCmd.AddCommand(newMarkdownCmd(a))
	rootCmd.AddCommand(newClockCmd(a))
	rootCmd.AddCommand(newDiffCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newBrowseCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newVersionCmd(version))

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.ConfigPath()
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	if a.idMapPath != "" {
		cfg.IDMapFile = a.idMapPath
	}

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}

	if cfg.LogFile != "" {
		// An explicit --log-level also logs to stderr.
		var also []io.Writer
		if a.logLevel != "" {
			also = append(also, cmd.ErrOrStderr())
		}
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(level), also...)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		a.log, a.cleanup = l, cleanup
	} else {
		a.log = logger.NewWithLevel(cmd.ErrOrStderr(), logger.ParseLevel(level))
	}

	pc, err := cfg.ParserConfig()
	if err != nil {
		return err
	}

	a.cfg, a.parser = cfg, pc
	a.log.ConfigLoaded(path, cfg.MaxDepth, cfg.Disabled)
	return nil
}

func (a *app) close() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}
