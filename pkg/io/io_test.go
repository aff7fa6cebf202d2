package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/pipeline"
)

const tomlDesign = `
title = "Anti-alias"
family = "bessel"
order = 4
frequency = "10k"
gain = 2
r1 = "4.7k"

[drawing]
page = "A3"
box = true
seed = 42

[simulation]
enabled = true
supply_voltage = 15

[output]
formats = ["sch", "pdf"]
`

const yamlDesign = `
title: Anti-alias
family: bessel
order: 4
frequency: 10k
gain: 2
r1: 4.7k
drawing:
  page: A3
  box: true
  seed: 42
simulation:
  enabled: true
  supply_voltage: 15
output:
  formats: [sch, pdf]
`

const jsonDesign = `{
  "title": "Anti-alias",
  "family": "bessel",
  "order": 4,
  "frequency": "10k",
  "gain": 2,
  "r1": 4700,
  "drawing": {"page": "A3", "box": true, "seed": 42},
  "simulation": {"enabled": true, "supply_voltage": "15"},
  "output": {"formats": ["sch", "pdf"]}
}`

func TestReadDesign(t *testing.T) {
	inputs := map[string]string{
		FormatTOML: tomlDesign,
		FormatYAML: yamlDesign,
		FormatJSON: jsonDesign,
	}

	for format, input := range inputs {
		t.Run(format, func(t *testing.T) {
			d, err := ReadDesign(strings.NewReader(input), format)
			require.NoError(t, err)

			opts := d.Options()
			assert.Equal(t, "Anti-alias", opts.Title)
			assert.Equal(t, "bessel", opts.Family)
			assert.Equal(t, 4, opts.Order)
			assert.InDelta(t, 10000, opts.Frequency, 1e-9)
			assert.InDelta(t, 2, opts.Gain, 1e-12)
			assert.InDelta(t, 4700, opts.R1, 1e-9)
			assert.Equal(t, "A3", opts.Page)
			assert.True(t, opts.Box)
			assert.Equal(t, uint32(42), opts.Seed)
			assert.True(t, opts.Sim)
			assert.InDelta(t, 15, opts.SupplyVoltage, 1e-12)
			assert.Equal(t, []string{"sch", "pdf"}, opts.Formats)

			require.NoError(t, opts.ValidateAndSetDefaults())
			assert.Equal(t, pipeline.ModeCascade, opts.Mode)
		})
	}
}

func TestReadDesignUnknownKeys(t *testing.T) {
	inputs := map[string]string{
		FormatTOML: "frequency = 1000\nfrequncy = 2000\n",
		FormatYAML: "frequency: 1000\nfrequncy: 2000\n",
		FormatJSON: `{"frequency": 1000, "frequncy": 2000}`,
	}
	for format, input := range inputs {
		_, err := ReadDesign(strings.NewReader(input), format)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidDesign), "%s: %v", format, err)
	}
}

func TestReadDesignR1(t *testing.T) {
	for format, input := range map[string]string{
		FormatTOML: "frequency = 1000\ngain = 1\nq = 0.7\n",
		FormatYAML: "frequency: 1000\ngain: 1\nq: 0.7\n",
		FormatJSON: `{"frequency": 1000, "gain": 1, "q": 0.7}`,
	} {
		d, err := ReadDesign(strings.NewReader(input), format)
		require.NoError(t, err)
		assert.Equal(t, 1000.0, d.Options().R1, "%s: absent r1 takes the default", format)
	}

	for format, input := range map[string]string{
		FormatTOML: "frequency = 1000\ngain = 1\nq = 0.7\nr1 = 0\n",
		FormatYAML: "frequency: 1000\ngain: 1\nq: 0.7\nr1: 0\n",
		FormatJSON: `{"frequency": 1000, "gain": 1, "q": 0.7, "r1": 0}`,
	} {
		d, err := ReadDesign(strings.NewReader(input), format)
		require.NoError(t, err)
		opts := d.Options()
		assert.Zero(t, opts.R1, format)
		assert.True(t, errors.Is(opts.ValidateAndSetDefaults(), errors.ErrCodeInvalidParameter), format)
	}
}

func TestReadDesignBadValue(t *testing.T) {
	_, err := ReadDesign(strings.NewReader(`frequency = "ten"`), FormatTOML)
	assert.Error(t, err)

	_, err = ReadDesign(strings.NewReader(`frequency: [1, 2]`), FormatYAML)
	assert.Error(t, err)

	_, err = ReadDesign(strings.NewReader(`{"frequency": true}`), FormatJSON)
	assert.Error(t, err)

	_, err = ReadDesign(strings.NewReader(``), "ini")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"dir/a.YAML", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", FormatJSON, false},
		{"a.ini", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatOf(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestDesignRoundTrip(t *testing.T) {
	opts := pipeline.Options{
		Title:     "Round trip",
		Frequency: 1591.5,
		Gain:      1,
		Q:         0.5412,
		R1:        10000,
		Page:      "A4",
		Seed:      7,
		Formats:   []string{"sch", "json"},
	}
	dir := t.TempDir()

	for _, format := range []string{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "design."+format)
			require.NoError(t, ExportDesign(DesignFromOptions(opts), path))

			d, err := ImportDesign(path)
			require.NoError(t, err)
			assert.Equal(t, opts, d.Options())
		})
	}
}

func TestImportDesignMissing(t *testing.T) {
	_, err := ImportDesign(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestWriteDesignTOML(t *testing.T) {
	var buf bytes.Buffer
	d := &Design{Frequency: 1000, Gain: 2, Drawing: Drawing{Page: "A4"}}
	require.NoError(t, WriteDesign(&buf, d, FormatTOML))
	assert.Contains(t, buf.String(), "[drawing]")
	assert.Contains(t, buf.String(), `page = "A4"`)
}

func TestArtifactPath(t *testing.T) {
	assert.Equal(t, "out.sch", ArtifactPath("out", "sch"))
	assert.Equal(t, "dir/out.pdf", ArtifactPath("dir/out.sch", "pdf"))
}

func TestExportArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"pdf": []byte("%PDF-"),
		"sch": []byte("EESchema"),
	}

	paths, err := ExportArtifacts(artifacts, filepath.Join(dir, "sub", "lowpass"))
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "sub", "lowpass.sch"),
		filepath.Join(dir, "sub", "lowpass.pdf"),
	}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "EESchema", string(data))

	single := filepath.Join(dir, "one.kicad")
	paths, err = ExportArtifacts(map[string][]byte{"sch": []byte("x")}, single)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, paths)
}

func TestExportArtifactsBadPath(t *testing.T) {
	_, err := ExportArtifacts(map[string][]byte{"sch": nil}, "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))

	_, err = ExportArtifacts(map[string][]byte{"sch": nil}, "../escape")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}
