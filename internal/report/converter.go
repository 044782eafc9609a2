package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"psr/internal/domain"
	"psr/internal/parser"
)

// Converter assembles canonical documents from raw pytest reports
type Converter struct {
	parser parser.Parser
	now    func() time.Time
}

// NewConverter creates a new Converter using the given test parser
func NewConverter(p parser.Parser) *Converter {
	return &Converter{parser: p, now: time.Now}
}

// WithClock returns a copy of the converter that reads the current time from now.
func (c *Converter) WithClock(now func() time.Time) *Converter {
	cp := *c
	cp.now = now
	return &cp
}

// Convert builds the canonical document. Results keep input order; history is
// the empty skeleton and options are the fixed defaults. The raw report is
// not modified.
func (c *Converter) Convert(raw *domain.RawReport) (*domain.Document, error) {
	if raw == nil {
		return nil, &domain.InputFormatError{Err: fmt.Errorf("no report")}
	}

	startTime, err := c.startTime(raw.Created)
	if err != nil {
		return nil, &domain.InputFormatError{Err: err}
	}

	results := make([]domain.Result, 0, len(raw.Tests))
	for _, test := range raw.Tests {
		results = append(results, c.parser.ParseTest(test))
	}

	return &domain.Document{
		Results:   results,
		History:   domain.EmptyHistory(),
		StartTime: startTime,
		Options:   domain.DefaultOptions(),
	}, nil
}

// ConvertBytes decodes a raw report and converts it.
func (c *Converter) ConvertBytes(data []byte) (*domain.Document, error) {
	var raw domain.RawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.InputFormatError{Err: err}
	}
	return c.Convert(&raw)
}

// startTime converts "created" to epoch milliseconds. A missing or zero value
// falls back to the clock; a value that is not a number is rejected.
func (c *Converter) startTime(created json.RawMessage) (int64, error) {
	seconds, err := createdSeconds(created)
	if err != nil {
		return 0, err
	}
	if seconds == 0 {
		return c.now().UnixMilli(), nil
	}
	return parser.SecondsToMillis(seconds), nil
}

func createdSeconds(created json.RawMessage) (float64, error) {
	if len(created) == 0 {
		return 0, nil
	}
	switch strings.TrimSpace(string(created)) {
	case "false", `""`:
		return 0, nil
	}

	var seconds float64
	if err := json.Unmarshal(created, &seconds); err == nil {
		return seconds, nil
	}
	var s string
	if err := json.Unmarshal(created, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, nil
		}
	}
	return 0, fmt.Errorf(`"created" is not a timestamp: %s`, created)
}
