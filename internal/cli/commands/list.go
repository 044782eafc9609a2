package commands

import (
	"github.com/spf13/cobra"

	"psr/internal/bridge"
	"psr/internal/config"
	"psr/internal/discovery"
	"psr/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	bridge    *bridge.Bridge
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	b *bridge.Bridge,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		bridge:    b,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	doc, err := lc.bridge.Convert(lc.config.GetRawReportPath(argOrEmpty(args)))
	if err != nil {
		return err
	}

	results := lc.filter.FilterByName(doc.Results, lc.config.Flags.NameFilter)
	if lc.config.Flags.OnlyFailed {
		results = lc.filter.FilterFailed(results)
	}

	lc.formatter.PrintResultList(results)
	return nil
}
