package generate

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputFileName is the combined document's fixed file name.
const OutputFileName = "katla-macros.tex"

// WriteDocument writes the combined document into dir, creating the
// directory (including parents) if needed and overwriting any previous
// file. Returns the written path.
func WriteDocument(dir, document string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, OutputFileName)
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		return "", fmt.Errorf("writing combined macro file: %w", err)
	}
	return path, nil
}
