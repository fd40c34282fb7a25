package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
)

// Writer persists a curation result as an indented JSON artifact. The
// write is atomic (temp file then rename) so readers never observe a
// partially written digest.
type Writer struct {
	path string
}

var _ ports.ResultWriter = (*Writer)(nil)

// NewWriter targets the curated output path.
func NewWriter(path string) *Writer {
	return &Writer{path: path}
}

// Write serializes the result.
func (w *Writer) Write(result domain.CurationResult) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal curated output: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".curated-*.json")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}

	// CreateTemp defaults to 0600; the published artifact should be
	// readable like any other generated file.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod curated output: %w", err)
	}

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write curated output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close curated output: %w", err)
	}

	if err := os.Rename(tmp.Name(), w.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename curated output to %s: %w", w.path, err)
	}

	return nil
}
