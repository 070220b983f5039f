package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wintag/internal/config"
	"github.com/jmylchreest/wintag/internal/logger"
	"github.com/jmylchreest/wintag/internal/search"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	log        *slog.Logger
	closeLog   func() error
	globalOpts struct {
		verbose    bool
		configPath string
		logFile    string
	}
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wintag",
	Short: "Tag on-screen windows with overlay panels",
	Long: `wintag polls the window server for on-screen windows matching a title
or application name and draws a floating overlay panel on top of each match.

Running 'wintag scan' performs a one-shot query; 'wintag watch' keeps the
overlays reconciled against the live window set on a polling interval.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := setupLogger(); err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeLog != nil {
			return closeLog()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/wintag/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Path to log file (default: ~/.local/state/wintag/wintag.log)")
}

// setupLogger configures the global slog logger from config and flags.
func setupLogger() error {
	logFile := globalOpts.logFile
	if logFile == "" {
		logFile = cfg.Logging.File
	}
	if logFile == "" {
		logFile = config.DefaultLogPath()
	}

	l, closeFn, err := logger.New(logger.Options{
		Verbose:    globalOpts.verbose || cfg.Logging.Verbose,
		FilePath:   logFile,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	if err != nil {
		return err
	}

	log = l
	closeLog = closeFn
	slog.SetDefault(log)
	return nil
}

// resolveCriteria combines command flags with the loaded config. Flags that
// were set explicitly win over the config file.
func resolveCriteria(cmd *cobra.Command, title, app string) search.Criteria {
	if !cmd.Flags().Changed("title") {
		title = cfg.Match.Title
	}
	if !cmd.Flags().Changed("app") {
		app = cfg.Match.App
	}
	return search.BuildCriteria(title, app, cfg.Match.Ignore)
}
