package execution

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestNodeVersion(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		version string
		tooOld  bool
		wantErr bool
	}{
		{"supported", "#!/bin/sh\necho v20.11.1\n", "v20.11.1", false, false},
		{"minimum", "#!/bin/sh\necho v18.0.0\n", "v18.0.0", false, false},
		{"too old", "#!/bin/sh\necho v16.20.2\n", "v16.20.2", true, true},
		{"garbage", "#!/bin/sh\necho nope\n", "nope", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := writeFakeNode(t, tt.script)
			version, err := NodeVersion(context.Background(), node)
			if version != tt.version {
				t.Errorf("expected version %q, got %q", tt.version, version)
			}
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if errors.Is(err, ErrNodeTooOld) != tt.tooOld {
				t.Errorf("expected too-old=%v, got %v", tt.tooOld, err)
			}
		})
	}
}

func TestNodeVersion_Missing(t *testing.T) {
	_, err := NodeVersion(context.Background(), filepath.Join(t.TempDir(), "node"))
	if err == nil || !strings.Contains(err.Error(), "Node.js 18+ required") {
		t.Errorf("expected Node.js requirement error, got %v", err)
	}
}
