package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"psr/internal/config"
	"psr/internal/domain"
	"psr/internal/logger"
	"psr/internal/storage"
)

// waitDelay bounds how long Wait blocks on renderer pipes after the process is killed
const waitDelay = 5 * time.Second

// NodeRenderer renders reports by running the renderer's html-generator
// through a transient Node.js script.
type NodeRenderer struct {
	config    *config.Config
	locator   Locator
	storage   storage.Storage
	scriptDir string

	mu          sync.Mutex
	rendererDir string
}

var _ Renderer = (*NodeRenderer)(nil)

// NewNodeRenderer creates a new NodeRenderer
func NewNodeRenderer(cfg *config.Config, locator Locator, st storage.Storage) *NodeRenderer {
	return &NodeRenderer{
		config:  cfg,
		locator: locator,
		storage: st,
	}
}

// SetScriptDir sets where transient scripts are written ("" is the system temp dir)
func (r *NodeRenderer) SetScriptDir(dir string) {
	r.scriptDir = dir
}

// RendererDir locates the renderer once; failures are retried on the next call.
func (r *NodeRenderer) RendererDir() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rendererDir != "" {
		return r.rendererDir, nil
	}
	dir, err := r.locator.Locate()
	if err != nil {
		return "", err
	}
	r.rendererDir = dir
	return dir, nil
}

// Render persists doc to the data path and runs the renderer to produce the HTML output.
// The data file is kept; the generator script is always removed.
func (r *NodeRenderer) Render(ctx context.Context, doc *domain.Document, opts RenderOptions) error {
	rendererDir, err := r.RendererDir()
	if err != nil {
		return err
	}

	dataPath := r.config.GetDataPath()
	if opts.DataPath != "" {
		dataPath = absolute(opts.DataPath)
	}
	output := r.config.GetOutputPath()
	if opts.Output != "" {
		output = absolute(opts.Output)
	}

	if err := r.storage.SaveDocument(dataPath, doc); err != nil {
		return err
	}

	script, err := writeScript(r.scriptDir, rendererDir)
	if err != nil {
		return err
	}
	defer removeScript(script)

	logger.Debug("rendering report", "renderer", rendererDir, "data", dataPath, "output", output)
	return r.run(ctx, script, dataPath, output)
}

func (r *NodeRenderer) run(ctx context.Context, script, dataPath, output string) error {
	timeout := r.config.RenderTimeout
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	node := r.config.GetNodeBinary()
	cmd := exec.CommandContext(ctx, node, script, dataPath, output)
	cmd.Env = os.Environ()
	cmd.Dir = r.config.GetWorkDir()
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		logger.Debug("renderer finished", "stdout", stdout.String())
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("Node.js 18+ required: %s not found (install it from https://nodejs.org): %w", node, err)
	}

	procErr := &domain.RenderProcessError{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		procErr.ExitCode = exitErr.ExitCode()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("renderer timed out after %s: %w", timeout, procErr)
	}
	return procErr
}

// PendingScripts lists generator scripts left in dir ("" is the system temp dir).
func PendingScripts(dir string) ([]string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var scripts []string
	for _, e := range entries {
		if !e.IsDir() && isScript(e.Name()) {
			scripts = append(scripts, filepath.Join(dir, e.Name()))
		}
	}
	return scripts, nil
}

func removeScript(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to remove generator script",
			"error", &domain.TransientIOError{Op: "remove", Path: path, Err: err})
	}
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
