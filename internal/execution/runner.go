package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"psr/internal/config"
)

// JSONReportFlag enables the pytest-json-report plugin
const JSONReportFlag = "--json-report"

// Runner executes a pytest session command
type Runner struct {
	config *config.Config
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a new Runner attached to the process terminal
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{config: cfg, stdout: os.Stdout, stderr: os.Stderr}
}

// SetOutput redirects the session's stdout and stderr
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Args returns the session command with the JSON report flags appended when
// injection is enabled and the command does not already ask for a report.
func (r *Runner) Args(args []string) []string {
	out := append([]string(nil), args...)
	if !r.config.InjectJSONReport {
		return out
	}
	for _, arg := range args {
		if arg == JSONReportFlag || strings.HasPrefix(arg, JSONReportFlag+"-file") {
			return out
		}
	}
	return append(out, JSONReportFlag, "--json-report-file="+r.config.GetRawReportPath(""))
}

// Run executes the session command in the project directory and returns its exit code.
// A command that cannot be started is an error.
func (r *Runner) Run(ctx context.Context, args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("no test command given")
	}
	args = r.Args(args)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = os.Environ()
	cmd.Dir = r.config.GetWorkDir()
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("run %s: %w", args[0], err)
}
