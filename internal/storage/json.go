package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"psr/internal/domain"
)

// LoadRawReport reads a pytest-json-report file. Read and decode failures are
// returned as *domain.InputFormatError.
func (s *JSONStorage) LoadRawReport(path string) (*domain.RawReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.InputFormatError{Path: path, Err: fmt.Errorf("read report: %w", err)}
	}
	var raw domain.RawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.InputFormatError{Path: path, Err: err}
	}
	return &raw, nil
}

// SaveDocument writes the canonical document as indented JSON, creating parent
// directories as needed.
func (s *JSONStorage) SaveDocument(path string, doc *domain.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &domain.TransientIOError{Op: "create dir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &domain.TransientIOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// LoadDocument reads a canonical document written by SaveDocument.
func (s *JSONStorage) LoadDocument(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.TransientIOError{Op: "read", Path: path, Err: err}
	}
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return &doc, nil
}
