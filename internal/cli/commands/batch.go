package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"psr/internal/config"
	"psr/internal/discovery"
	"psr/internal/domain"
	"psr/internal/execution"
	"psr/internal/ui"
)

// BatchCommand handles the batch command
type BatchCommand struct {
	config    *config.Config
	executor  *execution.WorkerPool
	formatter *ui.Formatter
}

// NewBatchCommand creates a new BatchCommand
func NewBatchCommand(cfg *config.Config, executor *execution.WorkerPool, formatter *ui.Formatter) *BatchCommand {
	return &BatchCommand{
		config:    cfg,
		executor:  executor,
		formatter: formatter,
	}
}

// Execute runs the command
func (bc *BatchCommand) Execute(cmd *cobra.Command, args []string) error {
	root := bc.config.GetWorkDir()
	if len(args) > 0 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		root = abs
	}

	scanner := discovery.NewScanner(bc.config.PathsToIgnore, filepath.Base(bc.config.RawReportFile))
	reports, err := scanner.Scan(root)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		color.Yellow("No %s files found under %s", filepath.Base(bc.config.RawReportFile), root)
		return nil
	}

	jobs := Jobs(bc.config, reports)

	bc.executor.SetProgress(ui.NewProgressBar(len(jobs)))
	outcomes, duration, err := bc.executor.Execute(cmd.Context(), jobs)
	if err != nil {
		return err
	}

	bc.formatter.PrintBatchSummary(outcomes, duration)

	var failed int
	for _, o := range outcomes {
		if !o.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d report(s) failed", failed, len(outcomes))
	}
	return nil
}

// Jobs places each report's HTML and data file next to its raw report
func Jobs(cfg *config.Config, reports []string) []domain.RenderJob {
	jobs := make([]domain.RenderJob, 0, len(reports))
	for _, raw := range reports {
		dir := filepath.Dir(raw)
		jobs = append(jobs, domain.RenderJob{
			RawPath:  raw,
			Output:   filepath.Join(dir, filepath.Base(cfg.OutputHTML)),
			DataPath: filepath.Join(dir, filepath.Base(cfg.DataFile)),
		})
	}
	return jobs
}
