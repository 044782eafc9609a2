package execution

import (
	"context"
	"time"

	"psr/internal/domain"
)

// Renderer turns a canonical document into an HTML report
type Renderer interface {
	Render(ctx context.Context, doc *domain.Document, opts RenderOptions) error
}

// RenderOptions selects where a render writes. Empty fields fall back to configuration.
type RenderOptions struct {
	Output   string
	DataPath string
}

// Locator finds the renderer directory
type Locator interface {
	Locate() (string, error)
}

// Generator converts and renders one raw report
type Generator interface {
	Generate(ctx context.Context, job domain.RenderJob) (*domain.Document, error)
}

// Executor renders a set of jobs and returns their outcomes
type Executor interface {
	Execute(ctx context.Context, jobs []domain.RenderJob) ([]domain.RenderOutcome, time.Duration, error)
}
