package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/pipeline"
)

// WriteDesign encodes d in the given encoding and writes it to w.
// The output can be re-read with [ReadDesign].
func WriteDesign(w io.Writer, d *Design, format string) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(d); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown design encoding %q", format)
	}
	return nil
}

// ExportDesign writes d to path, choosing the encoding by extension.
func ExportDesign(d *Design, path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDesign(f, d, format)
}

// ArtifactPath returns the file name for format next to base. A base that
// already carries an extension has it replaced.
func ArtifactPath(base, format string) string {
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}

// ExportArtifacts writes each artifact to ArtifactPath(base, format) in
// render order and returns the paths written. With a single artifact and
// a base carrying an extension, base is used as given.
func ExportArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	if err := errors.ValidateOutputPath(base); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	single := len(artifacts) == 1 && filepath.Ext(base) != ""
	var paths []string
	for _, format := range pipeline.FormatOrder {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := ArtifactPath(base, format)
		if single {
			path = base
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
