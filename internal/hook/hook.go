package hook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"

	"psr/internal/config"
	"psr/internal/domain"
	"psr/internal/execution"
	"psr/internal/logger"
)

// Status is what the hook did after a session
type Status int

const (
	StatusDisabled Status = iota
	StatusSkipped
	StatusGenerated
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusSkipped:
		return "skipped"
	case StatusGenerated:
		return "generated"
	default:
		return "failed"
	}
}

// Hook generates the Smart Report after a test session. It never fails the session.
type Hook struct {
	config    *config.Config
	generator execution.Generator
	out       io.Writer
}

// New creates a new Hook writing notices to stdout
func New(cfg *config.Config, generator execution.Generator) *Hook {
	return &Hook{config: cfg, generator: generator, out: os.Stdout}
}

// SetOutput redirects user notices
func (h *Hook) SetOutput(w io.Writer) {
	h.out = w
}

// AfterSession renders the raw report left by the session. Every failure is
// reported to the user and swallowed.
func (h *Hook) AfterSession(ctx context.Context) Status {
	if !h.config.Enabled {
		logger.Debug("smart report disabled")
		return StatusDisabled
	}

	rawPath := h.config.GetRawReportPath("")
	if _, err := os.Stat(rawPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("cannot stat raw report", "path", rawPath, "error", err)
		}
		color.New(color.FgYellow).Fprintln(h.out, "⚠️  pytest-json-report file not found, skipping Smart Report")
		return StatusSkipped
	}

	job := domain.RenderJob{
		RawPath:  rawPath,
		Output:   h.config.GetOutputPath(),
		DataPath: h.config.GetDataPath(),
	}
	if _, err := h.generate(ctx, job); err != nil {
		color.New(color.FgRed).Fprintf(h.out, "❌ Failed to generate Smart Report: %v\n", err)
		return StatusFailed
	}

	color.New(color.FgGreen).Fprintf(h.out, "\n📊 Smart Report generated: %s\n", job.Output)
	return StatusGenerated
}

// generate shields the session from panics in the pipeline
func (h *Hook) generate(ctx context.Context, job domain.RenderJob) (doc *domain.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("smart report panicked", "panic", r)
			err = fmt.Errorf("internal error: %v", r)
		}
	}()
	return h.generator.Generate(ctx, job)
}
