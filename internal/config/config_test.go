package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.RawReportFile != ".pytest-report.json" {
		t.Errorf("expected raw report .pytest-report.json, got %s", cfg.RawReportFile)
	}

	if cfg.DataFile != ".smart-reporter-data.json" {
		t.Errorf("expected data file .smart-reporter-data.json, got %s", cfg.DataFile)
	}

	if cfg.RenderTimeout != DefaultRenderTimeout {
		t.Errorf("expected timeout %s, got %s", DefaultRenderTimeout, cfg.RenderTimeout)
	}

	if !cfg.Enabled || !cfg.InjectJSONReport {
		t.Error("expected hook and JSON report injection to be enabled by default")
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestConfig_Paths(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		get      func(c *Config) string
		expected string
	}{
		{
			name:     "output relative to project",
			config:   &Config{ProjectPath: "/project", OutputHTML: "reports/smart.html"},
			get:      (*Config).GetOutputPath,
			expected: "/project/reports/smart.html",
		},
		{
			name:     "absolute output",
			config:   &Config{ProjectPath: "/project", OutputHTML: "/tmp/out.html"},
			get:      (*Config).GetOutputPath,
			expected: "/tmp/out.html",
		},
		{
			name:     "data file under project",
			config:   &Config{ProjectPath: "/project", DataFile: DefaultDataFile},
			get:      (*Config).GetDataPath,
			expected: "/project/.smart-reporter-data.json",
		},
		{
			name:     "raw report from config",
			config:   &Config{ProjectPath: "/project", RawReportFile: DefaultRawReportFile},
			get:      func(c *Config) string { return c.GetRawReportPath("") },
			expected: "/project/.pytest-report.json",
		},
		{
			name:     "raw report argument wins",
			config:   &Config{ProjectPath: "/project", RawReportFile: DefaultRawReportFile},
			get:      func(c *Config) string { return c.GetRawReportPath("/data/r.json") },
			expected: "/data/r.json",
		},
		{
			name:     "renderer dir unset",
			config:   &Config{ProjectPath: "/project"},
			get:      (*Config).GetRendererDir,
			expected: "",
		},
		{
			name:     "renderer dir relative",
			config:   &Config{ProjectPath: "/project", RendererDir: "vendor/dist"},
			get:      (*Config).GetRendererDir,
			expected: "/project/vendor/dist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filepath.ToSlash(tt.get(tt.config))
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_ApplyFlags(t *testing.T) {
	t.Run("given flags override", func(t *testing.T) {
		cfg := New()
		cfg.ApplyFlags(Flags{
			Output:     "out.html",
			Processors: 8,
			Timeout:    0,
			Disabled:   true,
			NoInject:   true,
		})
		if cfg.OutputHTML != "out.html" || cfg.Processors != 8 {
			t.Errorf("unexpected output/processors %s/%d", cfg.OutputHTML, cfg.Processors)
		}
		if cfg.RenderTimeout != 0 {
			t.Errorf("expected timeout disabled, got %s", cfg.RenderTimeout)
		}
		if cfg.Enabled || cfg.InjectJSONReport {
			t.Error("expected hook and injection to be disabled")
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		cfg := New()
		cfg.OutputHTML = "from-file.html"
		cfg.ApplyFlags(Flags{Timeout: -1})
		if cfg.OutputHTML != "from-file.html" {
			t.Errorf("expected file value to be kept, got %s", cfg.OutputHTML)
		}
		if cfg.RenderTimeout != DefaultRenderTimeout {
			t.Errorf("expected default timeout, got %s", cfg.RenderTimeout)
		}
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlContent := `output: reports/smart.html
render_timeout: 30s
processors: 2
enabled: false
`
	if err := os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PSR_NODE=/opt/node/bin/node\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	t.Setenv("PSR_PROCESSORS", "6")
	// godotenv sets PSR_NODE in the process; make sure it is cleaned up
	t.Setenv("PSR_NODE", "")
	os.Unsetenv("PSR_NODE")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputHTML != "reports/smart.html" {
		t.Errorf("expected output from YAML, got %s", cfg.OutputHTML)
	}
	if cfg.RenderTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.RenderTimeout)
	}
	if cfg.Enabled {
		t.Error("expected hook disabled from YAML")
	}
	if cfg.Processors != 6 {
		t.Errorf("expected environment to override YAML, got %d", cfg.Processors)
	}
	if cfg.NodeBinary != "/opt/node/bin/node" {
		t.Errorf("expected node from .env, got %s", cfg.NodeBinary)
	}
	if cfg.DataFile != DefaultDataFile {
		t.Errorf("expected default data file, got %s", cfg.DataFile)
	}
}

func TestLoad_MissingFiles(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputHTML != DefaultOutputHTML {
		t.Errorf("expected default output, got %s", cfg.OutputHTML)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("processors: [oops"), 0644)
	if _, err := Load(dir); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
