package execution

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"psr/internal/config"
	"psr/internal/domain"
)

type fakeGenerator struct {
	calls atomic.Int32
	fail  map[string]bool
}

func (g *fakeGenerator) Generate(ctx context.Context, job domain.RenderJob) (*domain.Document, error) {
	g.calls.Add(1)
	if g.fail[job.RawPath] {
		return nil, errors.New("boom")
	}
	return &domain.Document{Results: []domain.Result{
		{Status: domain.StatusPassed},
		{Status: domain.StatusFailed},
	}}, nil
}

func TestWorkerPool_Execute(t *testing.T) {
	cfg := config.New()
	cfg.Processors = 3

	jobs := []domain.RenderJob{
		{RawPath: "a.json"}, {RawPath: "b.json"}, {RawPath: "c.json"},
		{RawPath: "d.json"}, {RawPath: "e.json"},
	}
	gen := &fakeGenerator{fail: map[string]bool{"c.json": true}}

	outcomes, _, err := NewWorkerPool(cfg, gen).Execute(context.Background(), jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcomes) != len(jobs) {
		t.Fatalf("expected %d outcomes, got %d", len(jobs), len(outcomes))
	}
	if gen.calls.Load() != int32(len(jobs)) {
		t.Errorf("expected every job to run, got %d", gen.calls.Load())
	}

	for i, o := range outcomes {
		if o.Job.RawPath != jobs[i].RawPath {
			t.Errorf("outcome %d: expected job %s, got %s", i, jobs[i].RawPath, o.Job.RawPath)
		}
		wantSuccess := jobs[i].RawPath != "c.json"
		if o.Success != wantSuccess {
			t.Errorf("outcome %d: expected success=%v", i, wantSuccess)
		}
		if wantSuccess && (o.Summary.Passed != 1 || o.Summary.Failed != 1) {
			t.Errorf("outcome %d: unexpected summary %+v", i, o.Summary)
		}
	}
}

func TestWorkerPool_Empty(t *testing.T) {
	outcomes, _, err := NewWorkerPool(config.New(), &fakeGenerator{}).Execute(context.Background(), nil)
	if err != nil || outcomes != nil {
		t.Errorf("expected no outcomes, got %v %v", outcomes, err)
	}
}

func TestWorkerPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &fakeGenerator{}
	outcomes, _, err := NewWorkerPool(config.New(), gen).Execute(ctx, []domain.RenderJob{{RawPath: "a.json"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if gen.calls.Load() != 0 || outcomes[0].Success {
		t.Error("expected cancelled jobs not to run")
	}
}
