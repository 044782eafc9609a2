package execution

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"psr/internal/domain"
)

// generatorScript is the transient Node entry point. The single %s is the
// JSON-quoted absolute path of the renderer's html-generator module.
const generatorScript = `const fs = require('fs');
const path = require('path');
const { generateHtml } = require(%s);

const inputPath = process.argv[2];
const outputPath = process.argv[3] || 'smart-report.html';

if (!inputPath) {
  console.error('Usage: node generate-report.js <data.json> [output.html]');
  process.exit(1);
}

const data = JSON.parse(fs.readFileSync(inputPath, 'utf8'));
const html = generateHtml(data);

const outDir = path.dirname(outputPath);
if (outDir && outDir !== '.') {
  fs.mkdirSync(outDir, { recursive: true });
}

fs.writeFileSync(outputPath, html, 'utf8');
console.log('Smart Report generated: ' + outputPath);
`

// GeneratorModule returns the require() path of the renderer entry point:
// absolute, forward slashes, without the .js extension.
func GeneratorModule(rendererDir string) string {
	abs, err := filepath.Abs(rendererDir)
	if err != nil {
		abs = rendererDir
	}
	module := filepath.Join(abs, "generators", "html-generator")
	return filepath.ToSlash(module)
}

// GeneratorScript renders the Node script bound to rendererDir.
func GeneratorScript(rendererDir string) string {
	quoted, _ := json.Marshal(GeneratorModule(rendererDir))
	return fmt.Sprintf(generatorScript, quoted)
}

// writeScript writes a uniquely named generator script into dir ("" means
// the system temp dir). The caller owns removal.
func writeScript(dir, rendererDir string) (string, error) {
	f, err := os.CreateTemp(dir, "psr-generate-report-*.js")
	if err != nil {
		return "", &domain.TransientIOError{Op: "create", Path: filepath.Join(dir, "psr-generate-report-*.js"), Err: err}
	}
	path := f.Name()

	_, writeErr := f.WriteString(GeneratorScript(rendererDir))
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(path)
		err := writeErr
		if err == nil {
			err = closeErr
		}
		return "", &domain.TransientIOError{Op: "write", Path: path, Err: err}
	}
	return path, nil
}

func isScript(name string) bool {
	return strings.HasPrefix(name, "psr-generate-report-") && strings.HasSuffix(name, ".js")
}
