package parser

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"psr/internal/domain"
)

// NodeIDSeparator joins the file and case segments of a pytest nodeid
const NodeIDSeparator = "::"

// UnknownFile is the file of a result whose nodeid has no separator
const UnknownFile = "unknown"

// PytestParser normalizes pytest-json-report test entries
type PytestParser struct{}

// NewPytestParser creates a new PytestParser
func NewPytestParser() *PytestParser {
	return &PytestParser{}
}

// ParseTest maps one raw test entry to a canonical result. It never fails.
func (p *PytestParser) ParseTest(test domain.RawTest) domain.Result {
	file, title := SplitNodeID(test.NodeID)

	var outcome string
	if test.Outcome != nil {
		outcome = *test.Outcome
	}

	result := domain.Result{
		TestID:         test.NodeID,
		Title:          title,
		File:           file,
		Status:         StatusFromOutcome(outcome),
		Duration:       DurationMillis(test.Duration),
		Retry:          0,
		Outcome:        OutcomeFromOutcome(outcome),
		ExpectedStatus: domain.ExpectedStatus,
		Steps:          []json.RawMessage{},
		History:        []json.RawMessage{},
		Tags:           Tags(test.Keywords),
		Attachments:    domain.EmptyAttachments(),
	}
	if msg, ok := ExtractError(test); ok {
		result.Error = &msg
	}
	return result
}

// SplitNodeID splits "file::Class::case" into the file and the rest.
func SplitNodeID(nodeID string) (file, title string) {
	parts := strings.Split(nodeID, NodeIDSeparator)
	if len(parts) < 2 {
		return UnknownFile, nodeID
	}
	return parts[0], strings.Join(parts[1:], NodeIDSeparator)
}

// StatusFromOutcome maps a pytest outcome token to a status.
// Anything other than passed or skipped is failed.
func StatusFromOutcome(outcome string) domain.Status {
	switch outcome {
	case "passed":
		return domain.StatusPassed
	case "skipped":
		return domain.StatusSkipped
	default:
		return domain.StatusFailed
	}
}

// OutcomeFromOutcome maps a pytest outcome token to an expectation outcome.
func OutcomeFromOutcome(outcome string) domain.Outcome {
	switch outcome {
	case "passed":
		return domain.OutcomeExpected
	case "skipped":
		return domain.OutcomeSkipped
	default:
		return domain.OutcomeUnexpected
	}
}

// DurationMillis converts a loosely typed seconds value to whole milliseconds.
// Numbers and numeric strings are accepted; anything else, negative values
// and non-finite values give 0.
func DurationMillis(raw json.RawMessage) int64 {
	seconds, ok := numberValue(raw)
	if !ok {
		return 0
	}
	ms := math.Trunc(seconds * 1000)
	if math.IsNaN(ms) || math.IsInf(ms, 0) || ms <= 0 || ms > math.MaxInt64 {
		return 0
	}
	return int64(ms)
}

// SecondsToMillis truncates epoch seconds to whole milliseconds.
func SecondsToMillis(seconds float64) int64 {
	return int64(math.Trunc(seconds * 1000))
}

// ExtractError returns the first phase error in call, setup, teardown order.
func ExtractError(test domain.RawTest) (string, bool) {
	for _, phase := range test.Phases() {
		if phase == nil {
			continue
		}
		if msg, ok := LongReprText(phase.LongRepr); ok {
			return msg, true
		}
	}
	return "", false
}

// LongReprText renders a longrepr variant as display text.
// Mappings prefer their "message" member and fall back to the whole object.
func LongReprText(l domain.LongRepr) (string, bool) {
	switch l.Kind {
	case domain.LongReprText:
		return l.Text, true
	case domain.LongReprMapping:
		msg := domain.ParseLongRepr(l.Message)
		switch msg.Kind {
		case domain.LongReprText:
			return msg.Text, true
		case domain.LongReprMapping, domain.LongReprOther:
			return string(msg.Raw), true
		}
		return string(l.Raw), true
	case domain.LongReprOther:
		return string(l.Raw), true
	default:
		return "", false
	}
}

// Tags returns the keywords when they form an array, otherwise an empty list.
// Non-string entries are kept as their JSON text.
func Tags(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return []string{}
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil && string(item) != "null" {
			tags = append(tags, s)
			continue
		}
		tags = append(tags, string(item))
	}
	return tags
}

func numberValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
