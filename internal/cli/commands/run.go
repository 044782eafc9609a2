package commands

import (
	"github.com/spf13/cobra"

	"psr/internal/config"
	"psr/internal/execution"
	"psr/internal/hook"
	"psr/internal/logger"
)

// RunCommand handles the run command
type RunCommand struct {
	config *config.Config
	runner *execution.Runner
	hook   *hook.Hook
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, runner *execution.Runner, sessionHook *hook.Hook) *RunCommand {
	return &RunCommand{
		config: cfg,
		runner: runner,
		hook:   sessionHook,
	}
}

// Execute runs the test session, then generates the report. The session's
// exit code is returned as an *ExitCodeError.
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	code, err := rc.runner.Run(cmd.Context(), args)
	if err != nil {
		return err
	}

	status := rc.hook.AfterSession(cmd.Context())
	logger.Debug("session finished", "exit_code", code, "report", status.String())

	if code != 0 {
		return &ExitCodeError{Code: code}
	}
	return nil
}
