package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"psr/internal/bridge"
	"psr/internal/cli"
	"psr/internal/config"
	"psr/internal/discovery"
	"psr/internal/execution"
	"psr/internal/hook"
	"psr/internal/logger"
	"psr/internal/parser"
	"psr/internal/report"
	"psr/internal/storage"
	"psr/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Convert  *ConvertCommand
	Render   *RenderCommand
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
	Watch    *WatchCommand
	Batch    *BatchCommand
	Doctor   *DoctorCommand
}

// ExitCodeError carries the exit code of the wrapped test command
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("test command exited with status %d", e.Code)
}

// rendererLocator resolves the renderer with the directory configured after flag parsing
type rendererLocator struct {
	config *config.Config
}

func (l rendererLocator) Locate() (string, error) {
	return discovery.NewLocator(l.config.GetRendererDir()).Locate()
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	jsonStorage := storage.NewJSONStorage()
	converter := report.NewConverter(parser.NewPytestParser())
	renderer := execution.NewNodeRenderer(cfg, rendererLocator{config: cfg}, jsonStorage)
	pipeline := bridge.New(jsonStorage, converter, renderer)
	filter := discovery.NewFilter()
	runner := execution.NewRunner(cfg)
	executor := execution.NewWorkerPool(cfg, pipeline)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer()
	sessionHook := hook.New(cfg, pipeline)

	return &Commands{
		Convert:  NewConvertCommand(cfg, pipeline, jsonStorage),
		Render:   NewRenderCommand(cfg, pipeline, formatter),
		Run:      NewRunCommand(cfg, runner, sessionHook),
		List:     NewListCommand(cfg, pipeline, filter, formatter),
		Failures: NewFailuresCommand(cfg, pipeline, errorViewer),
		Watch:    NewWatchCommand(cfg, pipeline),
		Batch:    NewBatchCommand(cfg, executor, formatter),
		Doctor:   NewDoctorCommand(cfg),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")

	// Load configuration for the chosen project, then apply the flags on top
	prepare := func(cmd *cobra.Command, args []string) error {
		flags.TimeoutSet = cmd.Flags().Changed("timeout")
		loaded, err := config.Load(flags.ProjectPath)
		if err != nil {
			return err
		}
		*cfg = *loaded
		cfg.ApplyFlags(flags.ToConfigFlags())
		logger.SetLevel(cfg.LogLevel)
		return nil
	}

	renderFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "HTML report path (default: smart-report.html)")
		cmd.Flags().StringVar(&flags.DataPath, "data", "", "Path of the canonical data file handed to the renderer")
		cmd.Flags().StringVar(&flags.NodeBinary, "node", "", "Node.js executable (default: node)")
		cmd.Flags().StringVar(&flags.RendererDir, "renderer-dir", "", "Renderer directory containing generators/html-generator.js")
		cmd.Flags().DurationVar(&flags.Timeout, "timeout", config.DefaultRenderTimeout, "Renderer timeout (0 disables)")
	}

	// Convert command
	convertCmd := &cobra.Command{
		Use:     "convert [raw-report.json]",
		Short:   "Convert a pytest JSON report to the Smart Report data format",
		Long:    "Normalize a pytest-json-report file and print the canonical document, or write it to --data",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Convert.Execute,
		PreRunE: prepare,
	}
	convertCmd.Flags().StringVar(&flags.DataPath, "data", "", "Write the canonical document to this path instead of stdout")
	rootCmd.AddCommand(convertCmd)

	// Render command
	renderCmd := &cobra.Command{
		Use:     "render [raw-report.json]",
		Short:   "Generate the Smart Report HTML from a pytest JSON report",
		Long:    "Convert a pytest-json-report file and render it with the Smart Reporter HTML generator",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Render.Execute,
		PreRunE: prepare,
	}
	renderFlags(renderCmd)
	rootCmd.AddCommand(renderCmd)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run -- <test command...>",
		Short: "Run a pytest session and generate the Smart Report afterwards",
		Long: "Run the test command with pytest-json-report enabled, then generate the Smart Report. " +
			"Report generation never changes the exit status of the test command.",
		Example: "  psr run -- pytest -q tests/",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Run.Execute,
		PreRunE: prepare,
	}
	renderFlags(runCmd)
	runCmd.Flags().StringVar(&flags.RawReport, "raw", "", "Path the JSON report is written to (default: .pytest-report.json)")
	runCmd.Flags().BoolVar(&flags.Disabled, "no-report", false, "Skip Smart Report generation")
	runCmd.Flags().BoolVar(&flags.NoInject, "no-inject", false, "Do not append --json-report flags to the test command")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list [raw-report.json]",
		Short:   "List tests from a pytest JSON report",
		Long:    "Show the normalized results of a pytest-json-report file grouped by file",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.List.Execute,
		PreRunE: prepare,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*login*' or 'tests/api/*')")
	listCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Show only failed tests")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures [raw-report.json]",
		Short:   "View test failures interactively",
		Long:    "Display the failed tests of a pytest JSON report in an interactive viewer",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Failures.Execute,
		PreRunE: prepare,
	}
	rootCmd.AddCommand(failuresCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:     "watch [raw-report.json]",
		Short:   "Regenerate the Smart Report whenever the JSON report changes",
		Long:    "Watch the pytest JSON report and re-render the Smart Report after every test session until interrupted",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Watch.Execute,
		PreRunE: prepare,
	}
	renderFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)

	// Batch command
	batchCmd := &cobra.Command{
		Use:     "batch [dir]",
		Short:   "Render every pytest JSON report under a directory",
		Long:    "Scan for pytest JSON reports and render each one next to its source in parallel",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Batch.Execute,
		PreRunE: prepare,
	}
	batchCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of reports rendered in parallel (default: 4)")
	batchCmd.Flags().StringVar(&flags.NodeBinary, "node", "", "Node.js executable (default: node)")
	batchCmd.Flags().StringVar(&flags.RendererDir, "renderer-dir", "", "Renderer directory containing generators/html-generator.js")
	batchCmd.Flags().DurationVar(&flags.Timeout, "timeout", config.DefaultRenderTimeout, "Renderer timeout per report (0 disables)")
	rootCmd.AddCommand(batchCmd)

	// Doctor command
	doctorCmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Check the renderer and Node.js installation",
		Long:    "Show how the Smart Reporter renderer is resolved, which bundled assets are missing, and the Node.js version",
		Args:    cobra.NoArgs,
		RunE:    c.Doctor.Execute,
		PreRunE: prepare,
	}
	doctorCmd.Flags().StringVar(&flags.NodeBinary, "node", "", "Node.js executable (default: node)")
	doctorCmd.Flags().StringVar(&flags.RendererDir, "renderer-dir", "", "Renderer directory containing generators/html-generator.js")
	rootCmd.AddCommand(doctorCmd)
}
