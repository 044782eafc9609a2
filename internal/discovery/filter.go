package discovery

import (
	"path"
	"strings"

	"psr/internal/domain"
)

// Filter filters canonical results by name pattern and status
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps results whose title or test id matches the pattern.
// Supports patterns like "*login*" or "tests/test_api.py::*"
func (f *Filter) FilterByName(results []domain.Result, pattern string) []domain.Result {
	if pattern == "" {
		return results
	}

	var filtered []domain.Result
	for _, r := range results {
		if matchName(pattern, r.Title) || matchName(pattern, r.TestID) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterFailed keeps only failed results
func (f *Filter) FilterFailed(results []domain.Result) []domain.Result {
	var filtered []domain.Result
	for _, r := range results {
		if r.Status == domain.StatusFailed {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchName(pattern, name string) bool {
	// Try to match using path.Match (supports * and ? wildcards)
	if matched, err := path.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but path.Match didn't match,
	// try a more flexible match: every non-empty part must appear in the name
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
