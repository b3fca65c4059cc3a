// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog reads item metadata files and prepares them for
// formatting: IDs are filled in, fields are validated, and authors that
// cannot be cited are reported.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/juris-curador/pkg/types"
)

// Format is a catalog file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported catalog extension %q (want .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// document is the wrapped form of a catalog file.
type document struct {
	Items []types.Item `json:"items" yaml:"items"`
}

// Load reads and prepares the items in path.
func Load(path string) ([]types.Item, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	items, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes a catalog. Both a bare list of items and a document with
// an "items" key are accepted. Items without an ID get a random one, and
// every item is validated.
func Parse(data []byte, format Format) ([]types.Item, error) {
	items, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if err := Prepare(items); err != nil {
		return nil, err
	}
	return items, nil
}

func decode(data []byte, format Format) ([]types.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch format {
	case FormatJSON:
		if trimmed[0] == '[' {
			var items []types.Item
			if err := json.Unmarshal(trimmed, &items); err != nil {
				return nil, fmt.Errorf("decoding JSON items: %w", err)
			}
			return items, nil
		}
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decoding JSON document: %w", err)
		}
		return doc.Items, nil

	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			var items []types.Item
			if err := node.Decode(&items); err != nil {
				return nil, fmt.Errorf("decoding YAML items: %w", err)
			}
			return items, nil
		}
		var doc document
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding YAML document: %w", err)
		}
		return doc.Items, nil

	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Prepare assigns IDs to items that lack one and validates every item.
// Duplicate IDs are rejected. All problems are joined into one error.
func Prepare(items []types.Item) error {
	var errs []error
	seen := make(map[string]int, len(items))
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if j, dup := seen[items[i].ID]; dup {
			errs = append(errs, fmt.Errorf("item %d: duplicate id %q (first used by item %d)", i, items[i].ID, j))
		} else {
			seen[items[i].ID] = i
		}
		if err := ValidateItem(items[i]); err != nil {
			errs = append(errs, fmt.Errorf("item %d (%s): %w", i, items[i].ID, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateItem checks the field constraints of one item.
func ValidateItem(item types.Item) error {
	err := validate.Struct(item)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag())
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Issue is a non-fatal problem found while auditing a catalog.
type Issue struct {
	ItemID  string
	Message string
}

func (i Issue) String() string {
	return i.ItemID + ": " + i.Message
}
