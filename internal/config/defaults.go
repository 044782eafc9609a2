package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultRawReportFile is where pytest-json-report writes the session report
	DefaultRawReportFile = ".pytest-report.json"
	// DefaultOutputHTML is the default report destination
	DefaultOutputHTML = "smart-report.html"
	// DefaultDataFile is the transient canonical document handed to the renderer
	DefaultDataFile = ".smart-reporter-data.json"
	// DefaultConfigFile is the optional YAML project file
	DefaultConfigFile = ".smart-reporter.yaml"
	// DefaultNodeBinary is the Node.js executable used to run the renderer
	DefaultNodeBinary = "node"
	// DefaultRenderTimeout bounds a single renderer invocation
	DefaultRenderTimeout = 2 * time.Minute
	// DefaultProcessors is the default number of parallel renders in batch mode
	DefaultProcessors = 4
	// DefaultLogLevel is the default diagnostic log level
	DefaultLogLevel = "warn"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for reports
var DefaultPathsToIgnore = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"__pycache__",
	"site-packages",
}
