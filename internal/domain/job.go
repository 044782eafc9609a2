package domain

import "time"

// RenderJob is one raw report to turn into an HTML report
type RenderJob struct {
	RawPath  string // pytest-json-report input
	Output   string // destination HTML
	DataPath string // transient canonical document
}

// RenderOutcome is the result of executing a RenderJob
type RenderOutcome struct {
	Job      RenderJob
	Success  bool
	Summary  Summary       // counts of the converted document, when conversion succeeded
	Error    error         // conversion or rendering failure
	Duration time.Duration // time taken to convert and render
}
