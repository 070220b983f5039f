package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wintag/internal/appkit"
	"github.com/jmylchreest/wintag/internal/config"
	"github.com/jmylchreest/wintag/internal/overlay"
	"github.com/jmylchreest/wintag/internal/poller"
	"github.com/jmylchreest/wintag/internal/winsys"
)

var watchOpts struct {
	title    string
	app      string
	interval time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep overlay panels reconciled against the live window set",
	Long: `Poll the window server on a fixed interval and reconcile overlay panels
against the matched windows: overlays appear when a matching window shows up
and disappear when it goes away.

The config file is watched while running; criteria, overlay appearance, and
the poll interval from a changed file apply on the next tick.

Examples:
  # Track every window titled "Open", polling every 2s
  wintag watch --title Open

  # Faster polling
  wintag watch --title Open --interval 500ms`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchOpts.title, "title", "t", "",
		"Match windows with this exact title")
	watchCmd.Flags().StringVarP(&watchOpts.app, "app", "a", "",
		"Match windows owned by this exact application name")
	watchCmd.Flags().DurationVarP(&watchOpts.interval, "interval", "i", 0,
		"Poll interval (default: from config, 2s)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	criteria := resolveCriteria(cmd, watchOpts.title, watchOpts.app)

	interval := watchOpts.interval
	if interval <= 0 {
		interval = cfg.Poll.Interval.Duration()
	}

	manager := overlay.NewManager(overlay.Options{
		Renderer:     overlay.NewRenderer(),
		ScreenHeight: appkit.MainScreenHeight,
		Appearance:   cfg.Overlay,
		Logger:       log,
	})

	pol := poller.New(poller.Options{
		Provider: winsys.NewProvider(),
		Manager:  manager,
		Criteria: criteria,
		Interval: interval,
		Post:     appkit.Post,
		Logger:   log,
	})

	// Hot-reload the config file while watching. A reloaded file wins over
	// the flags the run started with.
	watcher, err := config.NewWatcher(globalOpts.configPath, log)
	if err != nil {
		log.Warn("config watcher unavailable", "error", err)
	} else {
		watcher.SetReloadCallback(func(newCfg *config.Config) {
			cfg = newCfg
			pol.Apply(newCfg)
		})
		watcher.SetErrorCallback(func(err error) {
			log.Warn("ignoring invalid config change", "error", err)
		})
		if err := watcher.Start(); err != nil {
			log.Warn("failed to start config watcher", "error", err)
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", "signal", sig)

		cancel()
		pol.Stop()
		if watcher != nil {
			_ = watcher.Stop()
		}
		appkit.Post(manager.CloseAll)
		appkit.Stop()
	}()

	return appkit.Run(func() {
		if err := pol.Start(ctx); err != nil {
			log.Error("failed to start poller", "error", err)
			appkit.Stop()
		}
	})
}
