package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"psr/internal/bridge"
	"psr/internal/config"
	"psr/internal/domain"
	"psr/internal/ui"
)

// RenderCommand handles the render command
type RenderCommand struct {
	config    *config.Config
	bridge    *bridge.Bridge
	formatter *ui.Formatter
}

// NewRenderCommand creates a new RenderCommand
func NewRenderCommand(cfg *config.Config, b *bridge.Bridge, formatter *ui.Formatter) *RenderCommand {
	return &RenderCommand{
		config:    cfg,
		bridge:    b,
		formatter: formatter,
	}
}

// Execute runs the command
func (rc *RenderCommand) Execute(cmd *cobra.Command, args []string) error {
	job := domain.RenderJob{
		RawPath:  rc.config.GetRawReportPath(argOrEmpty(args)),
		Output:   rc.config.GetOutputPath(),
		DataPath: rc.config.GetDataPath(),
	}

	doc, err := rc.bridge.Generate(cmd.Context(), job)
	if err != nil {
		return err
	}

	rc.formatter.PrintSummary(doc, job.Output)
	color.Green("\n📊 Smart Report generated: %s", job.Output)
	return nil
}
