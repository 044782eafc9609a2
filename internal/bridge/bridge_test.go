package bridge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"psr/internal/domain"
	"psr/internal/execution"
	"psr/internal/parser"
	"psr/internal/report"
	"psr/internal/storage"
)

type recordingRenderer struct {
	docs []*domain.Document
	opts []execution.RenderOptions
	err  error
}

func (r *recordingRenderer) Render(ctx context.Context, doc *domain.Document, opts execution.RenderOptions) error {
	r.docs = append(r.docs, doc)
	r.opts = append(r.opts, opts)
	return r.err
}

func newBridge(renderer execution.Renderer) *Bridge {
	return New(storage.NewJSONStorage(), report.NewConverter(parser.NewPytestParser()), renderer)
}

func writeRaw(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pytest-report.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write raw report: %v", err)
	}
	return path
}

const rawReport = `{"created": 1700000000, "tests": [
	{"nodeid": "tests/test_a.py::test_ok", "outcome": "passed", "duration": 0.25},
	{"nodeid": "tests/test_a.py::test_bad", "outcome": "failed", "call": {"longrepr": "assert False"}}
]}`

func TestBridge_Generate(t *testing.T) {
	renderer := &recordingRenderer{}
	job := domain.RenderJob{RawPath: writeRaw(t, rawReport), Output: "out.html", DataPath: "data.json"}

	doc, err := newBridge(renderer).Generate(context.Background(), job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(renderer.docs) != 1 || renderer.docs[0] != doc {
		t.Fatal("expected the converted document to be rendered once")
	}
	if renderer.opts[0].Output != "out.html" || renderer.opts[0].DataPath != "data.json" {
		t.Errorf("unexpected render options %+v", renderer.opts[0])
	}
	if s := doc.Summarize(); s.Passed != 1 || s.Failed != 1 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestBridge_GenerateErrors(t *testing.T) {
	t.Run("invalid raw report is not rendered", func(t *testing.T) {
		renderer := &recordingRenderer{}
		path := writeRaw(t, `{"tests": {}}`)

		_, err := newBridge(renderer).Generate(context.Background(), domain.RenderJob{RawPath: path})
		if !errors.Is(err, domain.ErrInputFormat) {
			t.Fatalf("expected input format error, got %v", err)
		}
		if !strings.Contains(err.Error(), path) {
			t.Errorf("expected path in error, got %q", err.Error())
		}
		if len(renderer.docs) != 0 {
			t.Error("expected renderer not to run")
		}
	})

	t.Run("render failure keeps document", func(t *testing.T) {
		renderer := &recordingRenderer{err: &domain.RenderProcessError{ExitCode: 1, Stderr: "boom"}}

		doc, err := newBridge(renderer).Generate(context.Background(), domain.RenderJob{RawPath: writeRaw(t, rawReport)})
		if !errors.Is(err, domain.ErrRenderProcess) {
			t.Fatalf("expected render process error, got %v", err)
		}
		if doc == nil || len(doc.Results) != 2 {
			t.Error("expected converted document alongside the error")
		}
	})
}

func TestBridge_Convert(t *testing.T) {
	doc, err := newBridge(&recordingRenderer{}).Convert(writeRaw(t, rawReport))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.StartTime != 1700000000000 {
		t.Errorf("unexpected start time %d", doc.StartTime)
	}
	if doc.Results[1].ErrorText() != "assert False" {
		t.Errorf("unexpected error text %q", doc.Results[1].ErrorText())
	}
}
