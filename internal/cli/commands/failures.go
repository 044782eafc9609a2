package commands

import (
	"github.com/spf13/cobra"

	"psr/internal/bridge"
	"psr/internal/config"
	"psr/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	config *config.Config
	bridge *bridge.Bridge
	viewer *ui.ErrorViewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(cfg *config.Config, b *bridge.Bridge, viewer *ui.ErrorViewer) *FailuresCommand {
	return &FailuresCommand{
		config: cfg,
		bridge: b,
		viewer: viewer,
	}
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	rawPath := fc.config.GetRawReportPath(argOrEmpty(args))
	doc, err := fc.bridge.Convert(rawPath)
	if err != nil {
		return err
	}

	fc.viewer.SetSource(rawPath)
	return fc.viewer.View(doc)
}
