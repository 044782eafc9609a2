package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestRawReport_UnmarshalJSON(t *testing.T) {
	t.Run("missing tests yields empty report", func(t *testing.T) {
		var r RawReport
		if err := json.Unmarshal([]byte(`{"created": 1700000000.5}`), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Tests) != 0 {
			t.Errorf("expected no tests, got %d", len(r.Tests))
		}
		if string(r.Created) != "1700000000.5" {
			t.Errorf("expected created to be kept, got %s", r.Created)
		}
	})

	invalid := []struct {
		name string
		doc  string
	}{
		{"not json", `not json`},
		{"array document", `[1, 2]`},
		{"null document", `null`},
		{"tests not array", `{"tests": {"a": 1}}`},
		{"tests null", `{"tests": null}`},
		{"test entry not object", `{"tests": ["x"]}`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			var r RawReport
			if err := json.Unmarshal([]byte(tt.doc), &r); err == nil {
				t.Errorf("expected error for %s", tt.doc)
			}
		})
	}

	t.Run("loose test fields", func(t *testing.T) {
		doc := `{"tests": [
			{"outcome": 3, "nodeid": null},
			{"nodeid": "a.py::t", "outcome": "passed", "setup": "bogus", "call": {"longrepr": "boom"}}
		]}`
		var r RawReport
		if err := json.Unmarshal([]byte(doc), &r); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Tests[0].NodeID != DefaultNodeID {
			t.Errorf("expected default nodeid, got %q", r.Tests[0].NodeID)
		}
		if r.Tests[0].Outcome != nil {
			t.Errorf("expected nil outcome for non-string token")
		}
		if r.Tests[1].Setup != nil {
			t.Errorf("expected non-object phase to be dropped")
		}
		if r.Tests[1].Call == nil || r.Tests[1].Call.LongRepr.Text != "boom" {
			t.Errorf("expected call longrepr to be decoded")
		}
	})
}

func TestParseLongRepr(t *testing.T) {
	tests := []struct {
		raw  string
		kind LongReprKind
	}{
		{``, LongReprNone},
		{`null`, LongReprNone},
		{`""`, LongReprNone},
		{`{}`, LongReprNone},
		{`[]`, LongReprNone},
		{`0`, LongReprNone},
		{`false`, LongReprNone},
		{`"AssertionError"`, LongReprText},
		{`{"message": "x"}`, LongReprMapping},
		{`{"chain": []}`, LongReprMapping},
		{`["a", "b"]`, LongReprOther},
		{`42`, LongReprOther},
		{`true`, LongReprOther},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseLongRepr(json.RawMessage(tt.raw))
			if got.Kind != tt.kind {
				t.Errorf("expected kind %d, got %d", tt.kind, got.Kind)
			}
		})
	}

	t.Run("mapping is compacted", func(t *testing.T) {
		got := ParseLongRepr(json.RawMessage("{ \"chain\" : [ 1 ] }"))
		if string(got.Raw) != `{"chain":[1]}` {
			t.Errorf("expected compact JSON, got %s", got.Raw)
		}
	})
}

func TestErrorTaxonomy(t *testing.T) {
	errs := []struct {
		err    error
		target error
	}{
		{&InputFormatError{Path: "r.json", Err: errors.New("bad")}, ErrInputFormat},
		{&RendererNotFoundError{Hint: "build"}, ErrRendererNotFound},
		{&RenderProcessError{ExitCode: 1, Stderr: "boom"}, ErrRenderProcess},
		{&TransientIOError{Op: "remove", Path: "x", Err: errors.New("busy")}, ErrTransientIO},
	}
	for _, tt := range errs {
		if !errors.Is(tt.err, tt.target) {
			t.Errorf("expected %T to match %v", tt.err, tt.target)
		}
	}

	t.Run("diagnostics fall back to stdout", func(t *testing.T) {
		err := &RenderProcessError{ExitCode: 2, Stdout: "only stdout\n"}
		if err.Diagnostics() != "only stdout" {
			t.Errorf("unexpected diagnostics %q", err.Diagnostics())
		}
	})
}
