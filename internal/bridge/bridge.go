package bridge

import (
	"context"
	"errors"
	"fmt"

	"psr/internal/domain"
	"psr/internal/execution"
	"psr/internal/report"
	"psr/internal/storage"
)

// Bridge runs the pipeline from a raw pytest report to an HTML report
type Bridge struct {
	storage   storage.Storage
	converter *report.Converter
	renderer  execution.Renderer
}

var _ execution.Generator = (*Bridge)(nil)

// New creates a new Bridge
func New(st storage.Storage, converter *report.Converter, renderer execution.Renderer) *Bridge {
	return &Bridge{
		storage:   st,
		converter: converter,
		renderer:  renderer,
	}
}

// Convert loads and converts the raw report at rawPath.
func (b *Bridge) Convert(rawPath string) (*domain.Document, error) {
	raw, err := b.storage.LoadRawReport(rawPath)
	if err != nil {
		return nil, err
	}
	doc, err := b.converter.Convert(raw)
	if err != nil {
		return nil, withPath(err, rawPath)
	}
	return doc, nil
}

// Generate converts job.RawPath and renders it to job.Output. The document is
// returned even when rendering fails.
func (b *Bridge) Generate(ctx context.Context, job domain.RenderJob) (*domain.Document, error) {
	doc, err := b.Convert(job.RawPath)
	if err != nil {
		return nil, err
	}
	opts := execution.RenderOptions{Output: job.Output, DataPath: job.DataPath}
	if err := b.renderer.Render(ctx, doc, opts); err != nil {
		return doc, fmt.Errorf("render %s: %w", job.RawPath, err)
	}
	return doc, nil
}

func withPath(err error, path string) error {
	var inputErr *domain.InputFormatError
	if errors.As(err, &inputErr) && inputErr.Path == "" {
		return &domain.InputFormatError{Path: path, Err: inputErr.Err}
	}
	return err
}
