package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/wintag/internal/appkit"
	"github.com/jmylchreest/wintag/internal/output"
	"github.com/jmylchreest/wintag/internal/overlay"
	"github.com/jmylchreest/wintag/internal/search"
	"github.com/jmylchreest/wintag/internal/winsys"
)

var scanOpts struct {
	title   string
	app     string
	format  string
	overlay bool
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Query on-screen windows once and print the matches",
	Long: `Query the window server's on-screen window list once, apply the match
criteria, and print the results.

With --overlay, an overlay panel is additionally created for each match and
the process parks in the GUI run loop until interrupted.

Examples:
  # List every window titled "Open"
  wintag scan --title Open

  # Machine-readable output
  wintag scan --title Open --format json

  # Draw overlays over the matches until Ctrl+C
  wintag scan --title Open --overlay`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanOpts.title, "title", "t", "",
		"Match windows with this exact title")
	scanCmd.Flags().StringVarP(&scanOpts.app, "app", "a", "",
		"Match windows owned by this exact application name")
	scanCmd.Flags().StringVarP(&scanOpts.format, "format", "f", "plain",
		"Output format (plain, json, yaml)")
	scanCmd.Flags().BoolVar(&scanOpts.overlay, "overlay", false,
		"Create overlay panels for the matches and keep running")
}

func runScan(cmd *cobra.Command, args []string) error {
	criteria := resolveCriteria(cmd, scanOpts.title, scanOpts.app)
	provider := winsys.NewProvider()

	results, err := search.Find(cmd.Context(), provider, criteria)
	if err != nil {
		return fmt.Errorf("window query failed: %w", err)
	}

	formatter := output.NewFormatter(output.FormatType(scanOpts.format))
	if err := formatter.Format(os.Stdout, results); err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if !scanOpts.overlay || len(results.Matched) == 0 {
		return nil
	}

	manager := overlay.NewManager(overlay.Options{
		Renderer:     overlay.NewRenderer(),
		ScreenHeight: appkit.MainScreenHeight,
		Appearance:   cfg.Overlay,
		Logger:       log,
	})

	// Tear the panels down on Ctrl+C and leave the run loop.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, shutting down", "signal", sig)
		appkit.Post(manager.CloseAll)
		appkit.Stop()
	}()

	log.Info("creating overlay panels, press Ctrl+C to exit",
		"matches", len(results.Matched),
	)

	return appkit.Run(func() {
		manager.Sync(results.Matched)
	})
}
