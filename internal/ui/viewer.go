package ui

import "psr/internal/domain"

// Viewer displays a converted report in an interactive TUI
type Viewer interface {
	View(doc *domain.Document) error
}
