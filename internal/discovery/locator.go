package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"psr/internal/domain"
	"psr/internal/logger"
)

const (
	// RendererPackageName is the package.json name of the renderer project
	RendererPackageName = "playwright-smart-reporter"
	// EntryAsset is the renderer entry point, relative to the renderer directory
	EntryAsset = "generators/html-generator.js"
	// BundledDirName is the renderer bundle shipped next to the psr binary
	BundledDirName = "_bundled_dist"
	// ProjectDistDir is the build output directory of the renderer project
	ProjectDistDir = "dist"
	// ProjectDescriptor is the file that names the renderer project
	ProjectDescriptor = "package.json"
	// DefaultMaxLevels is how many directories are checked when walking upwards
	DefaultMaxLevels = 5
)

// RequiredAssets are the renderer files html-generator.js depends on
var RequiredAssets = []string{
	"generators/html-generator.js",
	"generators/card-generator.js",
	"generators/chart-generator.js",
	"generators/comparison-generator.js",
	"generators/gallery-generator.js",
	"generators/trace-viewer-generator.js",
	"utils/index.js",
	"utils/formatters.js",
	"utils/markdown-lite.js",
	"utils/sanitizers.js",
	"vendors/jszip-source.js",
}

// Probe is the outcome of checking one install topology
type Probe struct {
	Name   string
	Dir    string // renderer directory when Found
	Found  bool
	Reason string // why the topology did not resolve
	Hint   string // remediation when the topology was present but unusable
}

// Locator finds the renderer directory: an explicit override, the bundle next
// to the binary, a renderer project above the binary, then a renderer
// project above the working directory.
type Locator struct {
	explicitDir string
	anchorDir   string
	workDir     string
	maxLevels   int
}

// NewLocator creates a Locator anchored at the running executable and the
// process working directory.
func NewLocator(explicitDir string) *Locator {
	anchor := ""
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		anchor = filepath.Dir(exe)
	}
	wd, _ := os.Getwd()
	return NewLocatorAt(explicitDir, anchor, wd)
}

// NewLocatorAt creates a Locator with explicit anchor and working directories
func NewLocatorAt(explicitDir, anchorDir, workDir string) *Locator {
	return &Locator{
		explicitDir: explicitDir,
		anchorDir:   anchorDir,
		workDir:     workDir,
		maxLevels:   DefaultMaxLevels,
	}
}

// Locate returns the absolute renderer directory of the first topology that
// resolves, or a *domain.RendererNotFoundError listing every miss.
func (l *Locator) Locate() (string, error) {
	probes := l.Probe()
	for _, p := range probes {
		if p.Found {
			return p.Dir, nil
		}
	}

	notFound := &domain.RendererNotFoundError{}
	for _, p := range probes {
		notFound.Reasons = append(notFound.Reasons, fmt.Sprintf("%s: %s", p.Name, p.Reason))
		if notFound.Hint == "" && p.Hint != "" {
			notFound.Hint = p.Hint
		}
	}
	if notFound.Hint == "" {
		notFound.Hint = "install the renderer bundle (" + BundledDirName + ") next to the psr binary, " +
			"run psr inside a " + RendererPackageName + " checkout after `npm run build`, or set PSR_RENDERER_DIR"
	}
	return "", notFound
}

// Probe checks the topologies in priority order, stopping at the first match.
func (l *Locator) Probe() []Probe {
	var probes []Probe
	for _, resolve := range l.resolvers() {
		p := resolve()
		probes = append(probes, p)
		if p.Found {
			logger.Debug("renderer resolved", "candidate", p.Name, "dir", p.Dir)
			break
		}
		logger.Debug("renderer candidate skipped", "candidate", p.Name, "reason", p.Reason)
	}
	return probes
}

func (l *Locator) resolvers() []func() Probe {
	var chain []func() Probe
	if l.explicitDir != "" {
		chain = append(chain, l.explicit)
	}
	chain = append(chain,
		l.bundled,
		func() Probe { return l.project("project (binary)", l.anchorDir) },
		func() Probe { return l.project("project (working dir)", l.workDir) },
	)
	return chain
}

func (l *Locator) explicit() Probe {
	p := Probe{Name: "renderer_dir"}
	for _, dir := range []string{l.explicitDir, filepath.Join(l.explicitDir, ProjectDistDir)} {
		if hasEntry(dir) {
			p.Found, p.Dir = true, absolute(dir)
			return p
		}
	}
	p.Reason = fmt.Sprintf("%s does not contain %s", l.explicitDir, EntryAsset)
	p.Hint = fmt.Sprintf("renderer_dir %s is not a renderer build; point it at the renderer's dist directory", l.explicitDir)
	return p
}

func (l *Locator) bundled() Probe {
	p := Probe{Name: "bundled"}
	if l.anchorDir == "" {
		p.Reason = "executable location unknown"
		return p
	}
	dir := filepath.Join(l.anchorDir, BundledDirName)
	if hasEntry(dir) {
		p.Found, p.Dir = true, absolute(dir)
		return p
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		p.Reason = fmt.Sprintf("%s exists but %s is missing", dir, EntryAsset)
		p.Hint = fmt.Sprintf("corrupted installation: the bundled renderer in %s is incomplete (missing %v); reinstall psr",
			dir, MissingAssets(dir))
		return p
	}
	p.Reason = fmt.Sprintf("no %s next to %s", BundledDirName, l.anchorDir)
	return p
}

func (l *Locator) project(name, start string) Probe {
	p := Probe{Name: name}
	if start == "" {
		p.Reason = "no start directory"
		return p
	}
	root, ok := FindProjectRoot(start, l.maxLevels)
	if !ok {
		p.Reason = fmt.Sprintf("no %s named %q within %d levels of %s", ProjectDescriptor, RendererPackageName, l.maxLevels, start)
		return p
	}
	dir := filepath.Join(root, ProjectDistDir)
	if hasEntry(dir) {
		p.Found, p.Dir = true, absolute(dir)
		return p
	}
	p.Reason = fmt.Sprintf("project root %s has no %s/%s", root, ProjectDistDir, EntryAsset)
	p.Hint = fmt.Sprintf("build step not run: run `npm run build` in %s", root)
	return p
}

// FindProjectRoot walks up from start, checking at most maxLevels directories,
// for a package.json naming the renderer project.
func FindProjectRoot(start string, maxLevels int) (string, bool) {
	current := absolute(start)
	for i := 0; i < maxLevels; i++ {
		if IsProjectRoot(current) {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", false
}

// IsProjectRoot reports whether dir holds the renderer project's package.json.
func IsProjectRoot(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, ProjectDescriptor))
	if err != nil {
		return false
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return false
	}
	return pkg.Name == RendererPackageName
}

// MissingAssets lists the RequiredAssets absent from dir.
func MissingAssets(dir string) []string {
	var missing []string
	for _, rel := range RequiredAssets {
		if !isFile(filepath.Join(dir, filepath.FromSlash(rel))) {
			missing = append(missing, rel)
		}
	}
	return missing
}

func hasEntry(dir string) bool {
	return isFile(filepath.Join(dir, filepath.FromSlash(EntryAsset)))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
