package domain

import "encoding/json"

// Status is the closed three-state test status understood by the renderer.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Outcome classifies a result against its expected status.
type Outcome string

const (
	OutcomeExpected   Outcome = "expected"
	OutcomeUnexpected Outcome = "unexpected"
	OutcomeSkipped    Outcome = "skipped"
)

// ExpectedStatus is the fixed expectedStatus of every converted result
const ExpectedStatus = StatusPassed

// Result is one canonical test result.
type Result struct {
	TestID         string            `json:"testId"`
	Title          string            `json:"title"`
	File           string            `json:"file"`
	Status         Status            `json:"status"`
	Duration       int64             `json:"duration"` // milliseconds
	Error          *string           `json:"error"`
	Retry          int               `json:"retry"`
	Outcome        Outcome           `json:"outcome"`
	ExpectedStatus Status            `json:"expectedStatus"`
	Steps          []json.RawMessage `json:"steps"`
	History        []json.RawMessage `json:"history"`
	Tags           []string          `json:"tags"`
	Attachments    Attachments       `json:"attachments"`
}

// Attachments groups per-result artifacts. Always empty for pytest input.
type Attachments struct {
	Screenshots []json.RawMessage `json:"screenshots"`
	Videos      []json.RawMessage `json:"videos"`
	Traces      []json.RawMessage `json:"traces"`
	Custom      []json.RawMessage `json:"custom"`
}

// History is the longitudinal aggregate. The converter only emits the empty skeleton.
type History struct {
	Runs      []json.RawMessage            `json:"runs"`
	Tests     map[string][]json.RawMessage `json:"tests"`
	Summaries []json.RawMessage            `json:"summaries"`
}

// Options are the feature flags the renderer interprets.
type Options struct {
	EnableTraceViewer       bool `json:"enableTraceViewer"`
	EnableNetworkLogs       bool `json:"enableNetworkLogs"`
	EnableGalleryView       bool `json:"enableGalleryView"`
	EnableComparison        bool `json:"enableComparison"`
	EnableHistoryDrilldown  bool `json:"enableHistoryDrilldown"`
	EnableAIRecommendations bool `json:"enableAIRecommendations"`
	EnableTrendsView        bool `json:"enableTrendsView"`
	EnableStabilityScore    bool `json:"enableStabilityScore"`
	EnableFailureClustering bool `json:"enableFailureClustering"`
	EnableRetryAnalysis     bool `json:"enableRetryAnalysis"`
}

// Document is the canonical report handed to the renderer.
type Document struct {
	Results   []Result `json:"results"`
	History   History  `json:"history"`
	StartTime int64    `json:"startTime"` // milliseconds since epoch
	Options   Options  `json:"options"`
}

// DefaultOptions returns the feature flags used for pytest reports.
func DefaultOptions() Options {
	return Options{
		EnableAIRecommendations: true,
		EnableTrendsView:        true,
		EnableStabilityScore:    true,
		EnableFailureClustering: true,
	}
}

// EmptyHistory returns a history skeleton whose collections encode as [] and {}.
func EmptyHistory() History {
	return History{
		Runs:      []json.RawMessage{},
		Tests:     map[string][]json.RawMessage{},
		Summaries: []json.RawMessage{},
	}
}

// EmptyAttachments returns attachments whose buckets encode as [].
func EmptyAttachments() Attachments {
	return Attachments{
		Screenshots: []json.RawMessage{},
		Videos:      []json.RawMessage{},
		Traces:      []json.RawMessage{},
		Custom:      []json.RawMessage{},
	}
}

// ErrorText returns the result's error or "" when it has none.
func (r Result) ErrorText() string {
	if r.Error == nil {
		return ""
	}
	return *r.Error
}

// Summary counts results by status.
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int
	Duration int64 // sum of result durations in milliseconds
}

// Summarize counts the document's results by status.
func (d *Document) Summarize() Summary {
	s := Summary{Total: len(d.Results)}
	for _, r := range d.Results {
		switch r.Status {
		case StatusPassed:
			s.Passed++
		case StatusSkipped:
			s.Skipped++
		default:
			s.Failed++
		}
		s.Duration += r.Duration
	}
	return s
}

// Failures returns the failed results in document order.
func (d *Document) Failures() []Result {
	var failed []Result
	for _, r := range d.Results {
		if r.Status == StatusFailed {
			failed = append(failed, r)
		}
	}
	return failed
}
