package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// DefaultNodeID is used when a test entry carries no usable nodeid
const DefaultNodeID = "unknown::test"

// RawReport is the pytest-json-report document produced by the test session.
// Only the fields the converter reads are decoded; everything else is ignored.
type RawReport struct {
	Created json.RawMessage // epoch seconds; nil when absent
	Tests   []RawTest
}

// RawTest is one entry of the report's "tests" array.
type RawTest struct {
	NodeID   string          // "<file>::<case>"; DefaultNodeID when absent
	Outcome  *string         // nil when absent or not a string
	Duration json.RawMessage // seconds, loosely typed
	Keywords json.RawMessage // expected to be an array of tags
	Setup    *RawPhase
	Call     *RawPhase
	Teardown *RawPhase
}

// RawPhase is the setup/call/teardown sub-record of a test.
type RawPhase struct {
	Outcome  string
	LongRepr LongRepr
}

// LongReprKind tags the variant held by a LongRepr.
type LongReprKind int

const (
	// LongReprNone means no error: absent, null or an empty value
	LongReprNone LongReprKind = iota
	// LongReprText is a plain string error
	LongReprText
	// LongReprMapping is a JSON object error
	LongReprMapping
	// LongReprOther is any other non-empty JSON value (array, number, true)
	LongReprOther
)

// LongRepr is the error representation pytest attaches to a phase.
type LongRepr struct {
	Kind    LongReprKind
	Text    string          // LongReprText
	Message json.RawMessage // LongReprMapping: the "message" member, nil if absent
	Raw     json.RawMessage // LongReprMapping, LongReprOther: compacted source JSON
}

// UnmarshalJSON decodes the report envelope. A non-object document or a
// "tests" member that is not an array is rejected; a missing "tests" member
// yields an empty report.
func (r *RawReport) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("report is not a JSON object: %w", err)
	}
	if fields == nil {
		return errors.New("report is not a JSON object")
	}

	r.Created = nil
	if created, ok := fields["created"]; ok && !isNull(created) {
		r.Created = created
	}

	r.Tests = []RawTest{}
	rawTests, ok := fields["tests"]
	if !ok {
		return nil
	}

	var entries []json.RawMessage
	if isNull(rawTests) {
		return errors.New(`"tests" is null`)
	}
	if err := json.Unmarshal(rawTests, &entries); err != nil {
		return errors.New(`"tests" is not an array`)
	}

	r.Tests = make([]RawTest, 0, len(entries))
	for i, entry := range entries {
		var test RawTest
		if err := json.Unmarshal(entry, &test); err != nil {
			return fmt.Errorf("tests[%d]: %w", i, err)
		}
		r.Tests = append(r.Tests, test)
	}
	return nil
}

// UnmarshalJSON decodes a single test entry, tolerating loosely typed members.
func (t *RawTest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return errors.New("test entry is not a JSON object")
	}

	*t = RawTest{NodeID: DefaultNodeID}
	if id, ok := stringValue(fields["nodeid"]); ok {
		t.NodeID = id
	}
	if outcome, ok := stringValue(fields["outcome"]); ok {
		t.Outcome = &outcome
	}
	t.Duration = fields["duration"]
	t.Keywords = fields["keywords"]
	t.Setup = decodePhase(fields["setup"])
	t.Call = decodePhase(fields["call"])
	t.Teardown = decodePhase(fields["teardown"])
	return nil
}

// Phases returns the phases in error-priority order: call, setup, teardown.
func (t RawTest) Phases() []*RawPhase {
	return []*RawPhase{t.Call, t.Setup, t.Teardown}
}

// ParseLongRepr classifies a raw longrepr value into its variant.
// Empty values (null, "", {}, [], 0, false) are LongReprNone.
func ParseLongRepr(raw json.RawMessage) LongRepr {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || isNull(raw) {
		return LongRepr{Kind: LongReprNone}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			return LongRepr{Kind: LongReprNone}
		}
		return LongRepr{Kind: LongReprText, Text: s}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
			return LongRepr{Kind: LongReprNone}
		}
		return LongRepr{Kind: LongReprMapping, Message: fields["message"], Raw: compact(raw)}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return LongRepr{Kind: LongReprNone}
		}
	case 'f':
		return LongRepr{Kind: LongReprNone}
	case 't':
	default:
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil && f == 0 {
			return LongRepr{Kind: LongReprNone}
		}
	}
	return LongRepr{Kind: LongReprOther, Raw: compact(raw)}
}

func decodePhase(raw json.RawMessage) *RawPhase {
	if len(raw) == 0 {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil
	}
	phase := &RawPhase{LongRepr: ParseLongRepr(fields["longrepr"])}
	if outcome, ok := stringValue(fields["outcome"]); ok {
		phase.Outcome = outcome
	}
	return phase
}

func stringValue(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
