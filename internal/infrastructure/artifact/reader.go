package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"GrainIntel/internal/domain"
	"GrainIntel/internal/ports"
)

// FileSource reads a previously collected raw-intel JSON artifact and
// serves it as the pipeline's input batch. A missing or unparsable file
// is fatal for the run; the error names the path.
type FileSource struct {
	path string
}

var _ ports.ItemSource = (*FileSource)(nil)

// NewFileSource points the source at a raw-intel file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch loads and decodes the artifact.
func (f *FileSource) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read raw intel %s: %w", f.path, err)
	}

	var payload struct {
		Articles []domain.RawItem `json:"articles"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("decode raw intel %s: %w", f.path, err)
	}

	return payload.Articles, nil
}
