package execution

import (
	"context"
	"sync"
	"time"

	"psr/internal/config"
	"psr/internal/domain"
	"psr/internal/ui"
)

// WorkerPool renders raw reports in parallel
type WorkerPool struct {
	config    *config.Config
	generator Generator
	progress  *ui.ProgressBar
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, generator Generator) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		generator: generator,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute renders every job (no fail-fast). Outcomes keep the order of jobs.
func (wp *WorkerPool) Execute(ctx context.Context, jobs []domain.RenderJob) ([]domain.RenderOutcome, time.Duration, error) {
	if len(jobs) == 0 {
		return nil, 0, nil
	}

	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	outcomes := make([]domain.RenderOutcome, len(jobs))
	var mu sync.Mutex
	var succeeded, failed int
	startTime := time.Now()

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				outcome := wp.run(ctx, jobs[i])
				outcomes[i] = outcome

				mu.Lock()
				if outcome.Success {
					succeeded++
				} else {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(succeeded, failed)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return outcomes, time.Since(startTime), ctx.Err()
}

func (wp *WorkerPool) run(ctx context.Context, job domain.RenderJob) domain.RenderOutcome {
	start := time.Now()
	outcome := domain.RenderOutcome{Job: job}

	if err := ctx.Err(); err != nil {
		outcome.Error = err
		return outcome
	}

	doc, err := wp.generator.Generate(ctx, job)
	if doc != nil {
		outcome.Summary = doc.Summarize()
	}
	outcome.Error = err
	outcome.Success = err == nil
	outcome.Duration = time.Since(start)
	return outcome
}
