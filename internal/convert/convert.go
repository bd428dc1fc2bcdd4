// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert composes the conversion pipeline: notebook loading,
// parameter extraction, cell filtering, and script generation. Convert
// is a pure function of its inputs; the file-writing entry points around
// it implement the overwrite and batch policies of the CLI.
package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/mlvtool/internal/filter"
	"github.com/pdiddy/mlvtool/internal/gen"
	"github.com/pdiddy/mlvtool/internal/ledger"
	"github.com/pdiddy/mlvtool/internal/notebook"
	"github.com/pdiddy/mlvtool/internal/params"
	"github.com/pdiddy/mlvtool/pkg/types"
)

// Convert turns the notebook at notebookPath into script text. It either
// returns the complete script or an error; there is no partial output.
// The result depends only on the notebook content and the policy, so
// converting the same notebook twice yields byte-identical text.
func Convert(notebookPath string, policy types.FilterPolicy) (string, error) {
	data, err := os.ReadFile(notebookPath)
	if err != nil {
		return "", &types.MalformedNotebookError{Path: notebookPath, Err: err}
	}
	return ConvertData(notebookPath, data, policy)
}

// ConvertData is Convert for callers that already hold the notebook
// bytes (batch and watch runs, which digest the bytes anyway).
func ConvertData(notebookPath string, data []byte, policy types.FilterPolicy) (string, error) {
	cells, err := notebook.Parse(notebookPath, data)
	if err != nil {
		return "", err
	}

	entry, err := gen.EntryName(notebookPath)
	if err != nil {
		return "", err
	}

	var spec *types.ParameterSpec
	body := cells
	if len(cells) > 0 {
		spec, err = params.Extract(notebookPath, cells[0])
		if err != nil {
			return "", err
		}
		if spec != nil {
			// The parameters cell never reaches the generated body.
			spec.EntryName = entry
			body = cells[1:]
		}
	}

	return gen.Script(entry, spec, filter.Apply(body, policy)), nil
}

// Options configures a single file conversion.
type Options struct {
	NotebookPath string
	// OutputPath is the script destination. Empty means "derive from the
	// notebook name under OutputDir".
	OutputPath string
	OutputDir  string
	Policy     types.FilterPolicy
	// Force overwrites an existing output file.
	Force bool
}

// ResolveOutputPath returns the script path the options describe.
func (o Options) ResolveOutputPath() (string, error) {
	if o.OutputPath != "" {
		return o.OutputPath, nil
	}
	name, err := gen.DefaultScriptName(o.NotebookPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(o.OutputDir, name), nil
}

// ConvertFile converts one notebook and writes the script to disk,
// creating the output directory as needed. It refuses to overwrite an
// existing file unless Force is set, and writes nothing on any failure.
func ConvertFile(opts Options) (string, error) {
	outPath, err := opts.ResolveOutputPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(outPath); err == nil && !opts.Force {
		return "", fmt.Errorf("output %s already exists (use --force to overwrite)", outPath)
	}

	script, err := Convert(opts.NotebookPath, opts.Policy)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("writing script: %w", err)
	}
	return outPath, nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of notebooks processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any notebooks failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts every notebook in notebooks, printing per-file
// status to w and returning a summary. When led is non-nil, notebooks
// whose content digest matches their ledger entry are skipped, and
// successful conversions are recorded.
func ConvertBatch(notebooks []string, outDir string, policy types.FilterPolicy, led *ledger.Ledger, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, nb := range notebooks {
		switch convertOne(nb, outDir, policy, led, force, w) {
		case statusConverted:
			result.Converted++
		case statusSkipped:
			result.Skipped++
		case statusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// ListNotebooks returns the .ipynb files directly under dir. Checkpoint
// files never appear because os.ReadDir does not recurse into the
// .ipynb_checkpoints directory.
func ListNotebooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading notebook directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".ipynb") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

type status int

const (
	statusConverted status = iota
	statusSkipped
	statusFailed
)

func convertOne(nbPath, outDir string, policy types.FilterPolicy, led *ledger.Ledger, force bool, w io.Writer) status {
	base := filepath.Base(nbPath)

	data, err := os.ReadFile(nbPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}
	digest := Digest(data)

	opts := Options{NotebookPath: nbPath, OutputDir: outDir, Policy: policy}
	outPath, err := opts.ResolveOutputPath()
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}

	if led != nil && !force {
		entry, lookupErr := led.Lookup(nbPath)
		if lookupErr == nil && entry != nil && entry.Digest == digest {
			if _, statErr := os.Stat(outPath); statErr == nil {
				fmt.Fprintf(w, "skipped: %s (unchanged)\n", base)
				return statusSkipped
			}
		}
	}

	script, err := ConvertData(nbPath, data, policy)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}
	if err := os.WriteFile(outPath, []byte(script), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return statusFailed
	}

	if led != nil {
		entryName, _ := gen.EntryName(nbPath)
		if err := led.Record(ledger.Entry{
			Notebook:    nbPath,
			Digest:      digest,
			Script:      outPath,
			EntryName:   entryName,
			ConvertedAt: time.Now().UTC(),
		}); err != nil {
			fmt.Fprintf(w, "warning: %s (ledger: %v)\n", base, err)
		}
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", base, outPath)
	return statusConverted
}

// Digest returns the hex-encoded SHA-256 of a notebook's raw bytes. The
// ledger keys skip decisions on it.
func Digest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
