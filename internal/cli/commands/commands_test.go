package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/cobra"

	"psr/internal/cli"
	"psr/internal/config"
	"psr/internal/domain"
)

const rawReport = `{"created": 1700000000, "tests": [
	{"nodeid": "tests/test_a.py::test_ok", "outcome": "passed", "duration": 0.5},
	{"nodeid": "tests/test_a.py::test_bad", "outcome": "failed", "call": {"longrepr": "assert 1 == 2"}}
]}`

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "psr", SilenceUsage: true, SilenceErrors: true}
	cfg := config.New()
	var flags cli.Flags
	NewCommands(cfg).Register(root, &flags, cfg)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.DefaultRawReportFile), []byte(rawReport), 0644); err != nil {
		t.Fatalf("failed to write raw report: %v", err)
	}
	return dir
}

func TestConvertCommand(t *testing.T) {
	t.Run("prints canonical document", func(t *testing.T) {
		project := writeProject(t)
		root, out := newRoot(t)
		root.SetArgs([]string{"convert", "-C", project})

		if err := root.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var doc domain.Document
		if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out.String(), err)
		}
		if len(doc.Results) != 2 || doc.StartTime != 1700000000000 {
			t.Errorf("unexpected document %+v", doc)
		}
	})

	t.Run("writes data file", func(t *testing.T) {
		project := writeProject(t)
		dataPath := filepath.Join(t.TempDir(), "out", "data.json")
		root, _ := newRoot(t)
		root.SetArgs([]string{"convert", "-C", project, "--data", dataPath})

		if err := root.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(dataPath); err != nil {
			t.Errorf("expected data file: %v", err)
		}
	})

	t.Run("invalid report", func(t *testing.T) {
		project := t.TempDir()
		os.WriteFile(filepath.Join(project, "bad.json"), []byte(`[]`), 0644)
		root, _ := newRoot(t)
		root.SetArgs([]string{"convert", "-C", project, filepath.Join(project, "bad.json")})

		if err := root.Execute(); !errors.Is(err, domain.ErrInputFormat) {
			t.Errorf("expected input format error, got %v", err)
		}
	})
}

func TestRunCommand_ExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	project := t.TempDir()
	root, _ := newRoot(t)
	root.SetArgs([]string{"run", "-C", project, "--no-report", "--no-inject", "--", "sh", "-c", "exit 2"})

	err := root.Execute()
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitCodeError, got %v", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("expected exit code 2, got %d", exitErr.Code)
	}
}

func TestRunCommand_ReportFailureKeepsExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	project := writeProject(t)
	root, _ := newRoot(t)
	// no renderer can be found under an empty renderer dir
	root.SetArgs([]string{"run", "-C", project, "--no-inject", "--renderer-dir", t.TempDir(), "--", "sh", "-c", "exit 0"})

	if err := root.Execute(); err != nil {
		t.Errorf("expected report failure not to fail the session, got %v", err)
	}
}

func TestJobs(t *testing.T) {
	cfg := config.New()
	cfg.OutputHTML = "reports/smart.html"

	jobs := Jobs(cfg, []string{filepath.Join("/ci", "a", ".pytest-report.json")})
	if len(jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(jobs))
	}
	if jobs[0].Output != filepath.Join("/ci", "a", "smart.html") {
		t.Errorf("unexpected output %s", jobs[0].Output)
	}
	if jobs[0].DataPath != filepath.Join("/ci", "a", config.DefaultDataFile) {
		t.Errorf("unexpected data path %s", jobs[0].DataPath)
	}
}

func TestExitCodeError(t *testing.T) {
	err := &ExitCodeError{Code: 5}
	if err.Error() != "test command exited with status 5" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
