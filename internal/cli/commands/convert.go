package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"psr/internal/bridge"
	"psr/internal/config"
	"psr/internal/storage"
)

// ConvertCommand handles the convert command
type ConvertCommand struct {
	config  *config.Config
	bridge  *bridge.Bridge
	storage storage.Storage
}

// NewConvertCommand creates a new ConvertCommand
func NewConvertCommand(cfg *config.Config, b *bridge.Bridge, st storage.Storage) *ConvertCommand {
	return &ConvertCommand{
		config:  cfg,
		bridge:  b,
		storage: st,
	}
}

// Execute runs the command
func (cc *ConvertCommand) Execute(cmd *cobra.Command, args []string) error {
	doc, err := cc.bridge.Convert(cc.config.GetRawReportPath(argOrEmpty(args)))
	if err != nil {
		return err
	}

	if cc.config.Flags.DataPath != "" {
		dataPath := cc.config.GetDataPath()
		if err := cc.storage.SaveDocument(dataPath, doc); err != nil {
			return fmt.Errorf("failed to save canonical document: %w", err)
		}
		color.Green("✓ Converted %d test(s) to %s", len(doc.Results), dataPath)
		return nil
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func argOrEmpty(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
