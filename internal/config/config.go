package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath   string `yaml:"project_path" env:"PSR_PROJECT_PATH"`
	RawReportFile string `yaml:"raw_report" env:"PSR_RAW_REPORT"`

	// Output settings
	OutputHTML string `yaml:"output" env:"PSR_OUTPUT"`
	DataFile   string `yaml:"data_file" env:"PSR_DATA_FILE"`

	// Renderer settings
	NodeBinary    string        `yaml:"node" env:"PSR_NODE"`
	RendererDir   string        `yaml:"renderer_dir" env:"PSR_RENDERER_DIR"`
	RenderTimeout time.Duration `yaml:"render_timeout" env:"PSR_RENDER_TIMEOUT"`

	// Session hook settings
	Enabled          bool `yaml:"enabled" env:"PSR_ENABLED"`
	InjectJSONReport bool `yaml:"inject_json_report" env:"PSR_INJECT_JSON_REPORT"`

	// Batch settings
	Processors    int      `yaml:"processors" env:"PSR_PROCESSORS"`
	PathsToIgnore []string `yaml:"ignore" env:"PSR_IGNORE" envSeparator:","`

	LogLevel string `yaml:"log_level" env:"PSR_LOG_LEVEL"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	RawReport   string
	Output      string
	DataPath    string
	NodeBinary  string
	RendererDir string
	Timeout     time.Duration // negative when not given
	Processors  int
	NameFilter  string
	OnlyFailed  bool
	Disabled    bool
	NoInject    bool
	LogLevel    string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:      DefaultProjectPath,
		RawReportFile:    DefaultRawReportFile,
		OutputHTML:       DefaultOutputHTML,
		DataFile:         DefaultDataFile,
		NodeBinary:       DefaultNodeBinary,
		RenderTimeout:    DefaultRenderTimeout,
		Enabled:          true,
		InjectJSONReport: true,
		Processors:       DefaultProcessors,
		LogLevel:         DefaultLogLevel,
		Flags:            Flags{Timeout: -1},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config for the project at projectPath (the default when
// empty): defaults, then <project>/.env, then <project>/.smart-reporter.yaml,
// then PSR_* environment variables.
func Load(projectPath string) (*Config, error) {
	cfg := New()
	if projectPath != "" {
		cfg.ProjectPath = projectPath
	}

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(filepath.Join(cfg.ProjectPath, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.loadFile(filepath.Join(cfg.ProjectPath, DefaultConfigFile)); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// loadFile merges the YAML project file into the config. A missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	projectPath := c.ProjectPath
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	// project_path inside the project file is relative to that project
	if c.ProjectPath != projectPath && !filepath.IsAbs(c.ProjectPath) {
		c.ProjectPath = filepath.Join(projectPath, c.ProjectPath)
	}
	return nil
}

// ApplyFlags stores the flags and applies the ones that were given
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags

	if flags.ProjectPath != "" {
		c.ProjectPath = flags.ProjectPath
	}
	if flags.RawReport != "" {
		c.RawReportFile = flags.RawReport
	}
	if flags.Output != "" {
		c.OutputHTML = flags.Output
	}
	if flags.DataPath != "" {
		c.DataFile = flags.DataPath
	}
	if flags.NodeBinary != "" {
		c.NodeBinary = flags.NodeBinary
	}
	if flags.RendererDir != "" {
		c.RendererDir = flags.RendererDir
	}
	if flags.Timeout >= 0 {
		c.RenderTimeout = flags.Timeout
	}
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
	if flags.Disabled {
		c.Enabled = false
	}
	if flags.NoInject {
		c.InjectJSONReport = false
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}
}

// resolve makes path absolute, relative to the project path
func (c *Config) resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.ProjectPath, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// GetRawReportPath returns the raw report to read; arg wins over configuration.
// An explicit argument is taken relative to the working directory.
func (c *Config) GetRawReportPath(arg string) string {
	if arg != "" {
		if abs, err := filepath.Abs(arg); err == nil {
			return abs
		}
		return arg
	}
	return c.resolve(c.RawReportFile)
}

// GetOutputPath returns the absolute path of the HTML report.
func (c *Config) GetOutputPath() string {
	return c.resolve(c.OutputHTML)
}

// GetDataPath returns the absolute path of the transient canonical document.
func (c *Config) GetDataPath() string {
	return c.resolve(c.DataFile)
}

// GetRendererDir returns the explicit renderer directory, or "" when not configured.
func (c *Config) GetRendererDir() string {
	if c.RendererDir == "" {
		return ""
	}
	return c.resolve(c.RendererDir)
}

// GetNodeBinary returns the Node.js executable, adding .exe on Windows.
func (c *Config) GetNodeBinary() string {
	node := c.NodeBinary
	if node == "" {
		node = DefaultNodeBinary
	}
	if runtime.GOOS == "windows" && filepath.Ext(node) == "" {
		node += ".exe"
	}
	return node
}

// GetWorkDir returns the absolute project path.
func (c *Config) GetWorkDir() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return abs
	}
	return c.ProjectPath
}
