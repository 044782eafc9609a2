package execution

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
)

// MinNodeMajor is the oldest Node.js major version the renderer supports
const MinNodeMajor = 18

// ErrNodeTooOld is returned by NodeVersion for Node.js older than MinNodeMajor
var ErrNodeTooOld = errors.New("Node.js version too old")

// NodeVersion runs `node --version` and returns the reported version.
// The version is returned alongside ErrNodeTooOld.
func NodeVersion(ctx context.Context, node string) (string, error) {
	out, err := exec.CommandContext(ctx, node, "--version").Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("Node.js 18+ required: %s not found (install it from https://nodejs.org): %w", node, err)
		}
		return "", fmt.Errorf("%s --version: %w", node, err)
	}

	version := strings.TrimSpace(string(out))
	major, ok := nodeMajor(version)
	if !ok {
		return version, fmt.Errorf("unrecognized Node.js version %q", version)
	}
	if major < MinNodeMajor {
		return version, ErrNodeTooOld
	}
	return version, nil
}

// nodeMajor parses the major component of a version like "v20.11.1"
func nodeMajor(version string) (int, bool) {
	v := strings.TrimPrefix(version, "v")
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	major, err := strconv.Atoi(v)
	return major, err == nil
}
