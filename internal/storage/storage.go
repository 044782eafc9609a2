package storage

import "psr/internal/domain"

// Storage loads raw pytest reports and persists canonical documents.
type Storage interface {
	LoadRawReport(path string) (*domain.RawReport, error)
	SaveDocument(path string, doc *domain.Document) error
	LoadDocument(path string) (*domain.Document, error)
}

// JSONStorage reads and writes reports as JSON files.
type JSONStorage struct{}

// NewJSONStorage returns a Storage backed by JSON files
func NewJSONStorage() *JSONStorage {
	return &JSONStorage{}
}
