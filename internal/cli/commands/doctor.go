package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"psr/internal/config"
	"psr/internal/discovery"
	"psr/internal/execution"
)

// nodeCheckTimeout bounds the node --version probe
const nodeCheckTimeout = 10 * time.Second

// DoctorCommand handles the doctor command
type DoctorCommand struct {
	config *config.Config
}

// NewDoctorCommand creates a new DoctorCommand
func NewDoctorCommand(cfg *config.Config) *DoctorCommand {
	return &DoctorCommand{config: cfg}
}

// Execute runs the command
func (dc *DoctorCommand) Execute(cmd *cobra.Command, args []string) error {
	var problems int

	color.Cyan("Renderer")
	locator := discovery.NewLocator(dc.config.GetRendererDir())
	rendererDir := ""
	for _, p := range locator.Probe() {
		if p.Found {
			color.Green("  ✓ %-22s %s", p.Name, p.Dir)
			rendererDir = p.Dir
			continue
		}
		color.Yellow("  - %-22s %s", p.Name, p.Reason)
		if p.Hint != "" {
			fmt.Printf("    %s\n", p.Hint)
		}
	}
	if rendererDir == "" {
		color.Red("  ✗ renderer not found")
		problems++
	} else if missing := discovery.MissingAssets(rendererDir); len(missing) > 0 {
		color.Red("  ✗ missing renderer assets:")
		for _, m := range missing {
			fmt.Printf("      %s\n", m)
		}
		problems++
	}

	fmt.Println()
	color.Cyan("Node.js")
	ctx, cancel := context.WithTimeout(cmd.Context(), nodeCheckTimeout)
	defer cancel()
	node := dc.config.GetNodeBinary()
	version, err := execution.NodeVersion(ctx, node)
	switch {
	case err == nil:
		color.Green("  ✓ %s %s", node, version)
	case errors.Is(err, execution.ErrNodeTooOld):
		color.Red("  ✗ %s %s: Node.js 18+ required", node, version)
		problems++
	default:
		color.Red("  ✗ %v", err)
		problems++
	}

	if scripts, err := execution.PendingScripts(""); err == nil && len(scripts) > 0 {
		fmt.Println()
		color.Yellow("%d leftover generator script(s) in the temp directory", len(scripts))
	}

	fmt.Println()
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	color.Green("✓ Ready to generate Smart Reports")
	return nil
}
