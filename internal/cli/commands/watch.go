package commands

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"psr/internal/bridge"
	"psr/internal/config"
	"psr/internal/domain"
	"psr/internal/watch"
)

// WatchCommand handles the watch command
type WatchCommand struct {
	config *config.Config
	bridge *bridge.Bridge
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, b *bridge.Bridge) *WatchCommand {
	return &WatchCommand{
		config: cfg,
		bridge: b,
	}
}

// Execute renders the report once if it exists, then again after every change until interrupted
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rawPath := wc.config.GetRawReportPath(argOrEmpty(args))
	if _, err := os.Stat(rawPath); err == nil {
		wc.generate(ctx, rawPath)
	} else if errors.Is(err, fs.ErrNotExist) {
		color.Yellow("Waiting for %s ...", rawPath)
	}

	color.Cyan("Watching %s (Ctrl+C to stop)", rawPath)
	return watch.NewWatcher(rawPath, wc.generate).Run(ctx)
}

// generate renders one report; failures are shown and watching continues
func (wc *WatchCommand) generate(ctx context.Context, rawPath string) {
	job := domain.RenderJob{
		RawPath:  rawPath,
		Output:   wc.config.GetOutputPath(),
		DataPath: wc.config.GetDataPath(),
	}

	stamp := time.Now().Format("15:04:05")
	doc, err := wc.bridge.Generate(ctx, job)
	if err != nil {
		color.Red("[%s] ❌ Failed to generate Smart Report: %v", stamp, err)
		return
	}
	s := doc.Summarize()
	color.Green("[%s] 📊 Smart Report generated: %s (%d passed, %d failed, %d skipped)",
		stamp, job.Output, s.Passed, s.Failed, s.Skipped)
}
