package cli

import (
	"time"

	"psr/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	RawReport   string
	Output      string
	DataPath    string
	NodeBinary  string
	RendererDir string
	Timeout     time.Duration
	Processors  int
	NameFilter  string
	OnlyFailed  bool
	Disabled    bool
	NoInject    bool
	LogLevel    string

	// TimeoutSet is true when --timeout was given
	TimeoutSet bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	timeout := time.Duration(-1)
	if f.TimeoutSet {
		timeout = f.Timeout
	}
	return config.Flags{
		ProjectPath: f.ProjectPath,
		RawReport:   f.RawReport,
		Output:      f.Output,
		DataPath:    f.DataPath,
		NodeBinary:  f.NodeBinary,
		RendererDir: f.RendererDir,
		Timeout:     timeout,
		Processors:  f.Processors,
		NameFilter:  f.NameFilter,
		OnlyFailed:  f.OnlyFailed,
		Disabled:    f.Disabled,
		NoInject:    f.NoInject,
		LogLevel:    f.LogLevel,
	}
}
