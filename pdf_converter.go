package mdtranslate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// sofficeBinary is the LibreOffice CLI entry point used for PDF conversion.
const sofficeBinary = "soffice"

// CommandRunner abstracts command execution to enable testing without real
// subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// SofficeConverter converts DOCX files to PDF by invoking LibreOffice in
// headless mode. LibreOffice is optional tooling: when the binary is not on
// PATH the converter reports itself unavailable and PDF output is skipped.
type SofficeConverter struct {
	Runner CommandRunner
	lookup func(string) (string, error)
}

// NewSofficeConverter creates a converter with a real command runner.
func NewSofficeConverter() *SofficeConverter {
	return &SofficeConverter{Runner: &ExecRunner{}, lookup: exec.LookPath}
}

// Available reports whether the LibreOffice binary exists on PATH.
func (c *SofficeConverter) Available() bool {
	lookup := c.lookup
	if lookup == nil {
		lookup = exec.LookPath
	}
	_, err := lookup(sofficeBinary)
	return err == nil
}

// Convert renders docPath to PDF in outDir and returns the PDF path.
func (c *SofficeConverter) Convert(ctx context.Context, docPath, outDir string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("%w: %s not found on PATH", ErrConverterUnavailable, sofficeBinary)
	}

	_, stderr, err := c.Runner.Run(ctx, sofficeBinary,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, docPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPDFConversion, strings.TrimSpace(stderr), err)
	}

	base := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	pdfPath := filepath.Join(outDir, base+".pdf")
	if _, statErr := os.Stat(pdfPath); statErr != nil {
		// soffice sometimes exits zero without producing output.
		return "", fmt.Errorf("%w: no output at %s", ErrPDFConversion, pdfPath)
	}
	return pdfPath, nil
}
