package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInputFormat matches any *InputFormatError
	ErrInputFormat = errors.New("invalid test report")
	// ErrRendererNotFound matches any *RendererNotFoundError
	ErrRendererNotFound = errors.New("renderer not found")
	// ErrRenderProcess matches any *RenderProcessError
	ErrRenderProcess = errors.New("report generation failed")
	// ErrTransientIO matches any *TransientIOError
	ErrTransientIO = errors.New("transient file error")
)

// InputFormatError reports a raw test report that cannot be parsed or has no
// enumerable tests.
type InputFormatError struct {
	Path string
	Err  error
}

func (e *InputFormatError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrInputFormat, e.Err)
	}
	return fmt.Sprintf("%v %s: %v", ErrInputFormat, e.Path, e.Err)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

func (e *InputFormatError) Is(target error) bool { return target == ErrInputFormat }

// RendererNotFoundError reports that no install topology yields the renderer.
type RendererNotFoundError struct {
	Reasons []string // one line per candidate tried
	Hint    string   // remediation text
}

func (e *RendererNotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("Cannot find the Smart Reporter renderer (generators/html-generator.js)")
	if e.Hint != "" {
		b.WriteString(": ")
		b.WriteString(e.Hint)
	}
	for _, reason := range e.Reasons {
		b.WriteString("\n  - ")
		b.WriteString(reason)
	}
	return b.String()
}

func (e *RendererNotFoundError) Is(target error) bool { return target == ErrRendererNotFound }

// RenderProcessError reports a renderer subprocess that failed.
type RenderProcessError struct {
	ExitCode int
	Stderr   string
	Stdout   string
	Err      error // underlying wait/start error, if any
}

// Diagnostics returns the renderer's complaint: stderr, or stdout when stderr is empty.
func (e *RenderProcessError) Diagnostics() string {
	if s := strings.TrimSpace(e.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(e.Stdout)
}

func (e *RenderProcessError) Error() string {
	diag := e.Diagnostics()
	switch {
	case diag != "":
		return fmt.Sprintf("%v: %s", ErrRenderProcess, diag)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", ErrRenderProcess, e.Err)
	default:
		return fmt.Sprintf("%v: exit status %d", ErrRenderProcess, e.ExitCode)
	}
}

func (e *RenderProcessError) Unwrap() error { return e.Err }

func (e *RenderProcessError) Is(target error) bool { return target == ErrRenderProcess }

// TransientIOError reports a failure handling the transient data file or script.
type TransientIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *TransientIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransientIOError) Unwrap() error { return e.Err }

func (e *TransientIOError) Is(target error) bool { return target == ErrTransientIO }
