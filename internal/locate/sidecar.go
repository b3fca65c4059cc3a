// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juris-curador/pkg/types"
)

const sidecarSuffix = ".highlights.yaml"

// SidecarPath returns where the highlights for pdfPath live inside dir.
func SidecarPath(dir, pdfPath string) string {
	base := filepath.Base(pdfPath)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+sidecarSuffix)
}

// WriteSidecar stores set as YAML in dir, merging with highlights already
// recorded for the same PDF. It returns the file path.
func WriteSidecar(dir string, set types.HighlightSet) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	path := SidecarPath(dir, set.Source)

	sets, err := ReadSidecar(path)
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	sets = append(sets, set)

	data, err := yaml.Marshal(sets)
	if err != nil {
		return "", fmt.Errorf("marshaling highlights: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing highlights: %w", err)
	}
	return path, nil
}

// ReadSidecar loads every highlight set recorded at path.
func ReadSidecar(path string) ([]types.HighlightSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sets []types.HighlightSet
	if err := yaml.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return sets, nil
}
