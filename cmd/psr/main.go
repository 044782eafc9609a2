package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"psr/internal/cli"
	"psr/internal/cli/commands"
	"psr/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "psr",
		Short: "Smart Reports for pytest",
		Long: `Convert pytest-json-report output into the Playwright Smart Reporter format and render it as an interactive HTML report.
Run your tests through "psr run -- pytest" or render an existing report with "psr render".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Replaced by the project configuration once flags are parsed
	cfg := config.New()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var exitErr *commands.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
