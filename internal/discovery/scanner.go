package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans a directory tree for raw pytest reports
type Scanner struct {
	skipDirs map[string]bool
	fileName string
}

// NewScanner creates a new Scanner looking for fileName and skipping the given directories
func NewScanner(skipDirs []string, fileName string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, fileName: fileName}
}

// Scan finds all report files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var reports []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("report path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("report path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (.git, .venv, .tox, ...)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}

			if s.skipDirs[name] {
				return filepath.SkipDir
			}

			return nil
		}

		if d.Name() == s.fileName {
			reports = append(reports, path)
		}

		return nil
	})

	return reports, err
}
