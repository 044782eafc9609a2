package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"psr/internal/config"
	"psr/internal/domain"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	white  = color.New(color.FgWhite)
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	out    io.Writer
}

// NewFormatter creates a new Formatter writing to stdout
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{
		config: cfg,
		out:    os.Stdout,
	}
}

// SetOutput redirects the formatter
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintSummary displays the statistics of a converted report and the tree of
// failed tests. reportPath is shown when not empty.
func (f *Formatter) PrintSummary(doc *domain.Document, reportPath string) {
	s := doc.Summarize()

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                     Smart Report Summary                      ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Total Tests", white, fmt.Sprintf("%d", s.Total))
	f.separator()
	f.row("Passed", green, fmt.Sprintf("%d", s.Passed))
	f.separator()
	f.row("Failed", red, fmt.Sprintf("%d", s.Failed))
	f.separator()
	f.row("Skipped", yellow, fmt.Sprintf("%d", s.Skipped))
	f.separator()
	f.row("Duration", white, fmt.Sprintf("%.2fs", float64(s.Duration)/1000))
	f.separator()
	f.row("Started", white, time.UnixMilli(doc.StartTime).Format("2006-01-02 15:04:05"))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	if reportPath != "" {
		fmt.Fprintf(f.out, "Report: %s\n", reportPath)
	}

	fmt.Fprintln(f.out)
	if s.Failed == 0 {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	red.Fprintf(f.out, "✗ %d test(s) failed\n", s.Failed)
	fmt.Fprintln(f.out)
	f.printFailedTestsTree(doc.Failures())
}

func (f *Formatter) row(label string, c *color.Color, value string) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	c.Fprintf(f.out, "%-27s", value)
	fmt.Fprintln(f.out, " │")
}

func (f *Formatter) separator() {
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
}

// TreeNode is a directory or test file in the failure tree
type TreeNode struct {
	Name     string
	Children map[string]*TreeNode
	Failures []domain.Result
	IsFile   bool
}

// buildTree groups results by file path into a directory tree
func buildTree(results []domain.Result) *TreeNode {
	root := &TreeNode{Children: make(map[string]*TreeNode)}

	for _, r := range results {
		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(r.File), "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
			if i == len(parts)-1 {
				current.Failures = append(current.Failures, r)
			}
		}
	}
	return root
}

// printFailedTestsTree prints failed tests grouped by directory and file
func (f *Formatter) printFailedTestsTree(failures []domain.Result) {
	if len(failures) == 0 {
		return
	}
	f.printTreeNode(buildTree(failures), "")
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string) {
	keys := make([]string, 0, len(node.Children))
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.Children[key]
		last := i == len(keys)-1

		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}

		if child.IsFile {
			yellow.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
			for j, failure := range child.Failures {
				caseConnector := "├── "
				if j == len(child.Failures)-1 {
					caseConnector = "└── "
				}
				red.Fprintf(f.out, "%s%s%s%s\n", prefix, childPrefix, caseConnector, failure.Title)
				if msg := firstLine(failure.ErrorText()); msg != "" {
					fmt.Fprintf(f.out, "%s%s    %s\n", prefix, childPrefix, msg)
				}
			}
		} else {
			cyan.Fprintf(f.out, "%s%s%s\n", prefix, connector, child.Name)
		}

		f.printTreeNode(child, prefix+childPrefix)
	}
}

// PrintResultList prints results grouped by file with a status marker per test
func (f *Formatter) PrintResultList(results []domain.Result) {
	if len(results) == 0 {
		yellow.Fprintln(f.out, "No matching tests")
		return
	}
	green.Fprintf(f.out, "Found %d test(s):\n\n", len(results))

	var files []string
	byFile := make(map[string][]domain.Result)
	for _, r := range results {
		if _, ok := byFile[r.File]; !ok {
			files = append(files, r.File)
		}
		byFile[r.File] = append(byFile[r.File], r)
	}

	for i, file := range files {
		lastFile := i == len(files)-1
		connector, childPrefix := "├── ", "│   "
		if lastFile {
			connector, childPrefix = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s\n", connector, file)

		cases := byFile[file]
		for j, r := range cases {
			caseConnector := "├── "
			if j == len(cases)-1 {
				caseConnector = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s %s\n", childPrefix, caseConnector, statusMarker(r.Status), r.Title)
		}
	}
}

// PrintBatchSummary prints one line per rendered report and the totals
func (f *Formatter) PrintBatchSummary(outcomes []domain.RenderOutcome, elapsed time.Duration) {
	var failed int
	for _, o := range outcomes {
		rel := o.Job.RawPath
		if r, err := filepath.Rel(f.config.GetWorkDir(), o.Job.RawPath); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
		if o.Success {
			green.Fprintf(f.out, "✓ %s", rel)
			fmt.Fprintf(f.out, " -> %s (%d passed, %d failed, %d skipped)\n", o.Job.Output, o.Summary.Passed, o.Summary.Failed, o.Summary.Skipped)
			continue
		}
		failed++
		red.Fprintf(f.out, "✗ %s: %v\n", rel, o.Error)
	}

	fmt.Fprintln(f.out)
	if failed == 0 {
		green.Fprintf(f.out, "Rendered %d report(s) in %.2fs\n", len(outcomes), elapsed.Seconds())
		return
	}
	red.Fprintf(f.out, "%d of %d report(s) failed in %.2fs\n", failed, len(outcomes), elapsed.Seconds())
}

func statusMarker(status domain.Status) string {
	switch status {
	case domain.StatusPassed:
		return color.GreenString("[P]")
	case domain.StatusSkipped:
		return color.YellowString("[S]")
	default:
		return color.RedString("[F]")
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
