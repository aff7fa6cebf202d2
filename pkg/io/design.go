package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/pipeline"
	"github.com/bson/filtergen/pkg/siunit"
)

// Design file encodings.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Design is the contents of a design file.
type Design struct {
	Title string `toml:"title,omitempty" yaml:"title,omitempty" json:"title,omitempty"`
	Mode  string `toml:"mode,omitempty" yaml:"mode,omitempty" json:"mode,omitempty"`

	Frequency Value `toml:"frequency" yaml:"frequency" json:"frequency"`
	Gain      Value `toml:"gain" yaml:"gain" json:"gain"`
	Q         Value `toml:"q,omitempty" yaml:"q,omitempty" json:"q,omitempty"`
	R1        Value `toml:"r1,omitempty" yaml:"r1,omitempty" json:"r1,omitempty"`

	Family     string  `toml:"family,omitempty" yaml:"family,omitempty" json:"family,omitempty"`
	Order      int     `toml:"order,omitempty" yaml:"order,omitempty" json:"order,omitempty"`
	RippleDB   float64 `toml:"ripple_db,omitempty" yaml:"ripple_db,omitempty" json:"ripple_db,omitempty"`
	GainPolicy string  `toml:"gain_policy,omitempty" yaml:"gain_policy,omitempty" json:"gain_policy,omitempty"`

	Drawing    Drawing    `toml:"drawing" yaml:"drawing,omitempty" json:"drawing,omitempty"`
	Simulation Simulation `toml:"simulation" yaml:"simulation,omitempty" json:"simulation,omitempty"`
	Output     Output     `toml:"output" yaml:"output,omitempty" json:"output,omitempty"`
}

// Drawing holds sheet options.
type Drawing struct {
	Page       string `toml:"page,omitempty" yaml:"page,omitempty" json:"page,omitempty"`
	Portrait   bool   `toml:"portrait,omitempty" yaml:"portrait,omitempty" json:"portrait,omitempty"`
	OpAmp      string `toml:"opamp,omitempty" yaml:"opamp,omitempty" json:"opamp,omitempty"`
	Box        bool   `toml:"box,omitempty" yaml:"box,omitempty" json:"box,omitempty"`
	Note       bool   `toml:"note,omitempty" yaml:"note,omitempty" json:"note,omitempty"`
	NoAnnotate bool   `toml:"no_annotate,omitempty" yaml:"no_annotate,omitempty" json:"no_annotate,omitempty"`
	Seed       uint32 `toml:"seed,omitempty" yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Simulation holds the simulation scaffolding options.
type Simulation struct {
	Enabled       bool   `toml:"enabled,omitempty" yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Library       string `toml:"library,omitempty" yaml:"library,omitempty" json:"library,omitempty"`
	SupplyVoltage Value  `toml:"supply_voltage,omitempty" yaml:"supply_voltage,omitempty" json:"supply_voltage,omitempty"`
}

// Output holds render options.
type Output struct {
	Formats  []string `toml:"formats,omitempty" yaml:"formats,omitempty" json:"formats,omitempty"`
	Detailed bool     `toml:"detailed,omitempty" yaml:"detailed,omitempty" json:"detailed,omitempty"`
}

// Value is a number that may be written with an SI suffix.
type Value float64

// UnmarshalTOML accepts TOML integers, floats and suffixed strings.
func (v *Value) UnmarshalTOML(data any) error {
	switch x := data.(type) {
	case int64:
		*v = Value(x)
	case float64:
		*v = Value(x)
	case string:
		return v.parse(x)
	default:
		return fmt.Errorf("expected number or string, got %T", data)
	}
	return nil
}

// UnmarshalYAML accepts scalar numbers and suffixed strings.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	return v.parse(node.Value)
}

// UnmarshalJSON accepts JSON numbers and suffixed strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return v.parse(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected number or string: %w", err)
	}
	*v = Value(f)
	return nil
}

func (v *Value) parse(s string) error {
	f, err := siunit.Parse(s)
	if err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

// FormatOf returns the design encoding for path's extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported design file %q (must be .toml, .yaml, .yml or .json)", path)
}

// ReadDesign decodes a design in the given encoding from r. Unknown keys
// are an error. ReadDesign does not close r.
func ReadDesign(r io.Reader, format string) (*Design, error) {
	d := Design{R1: Value(pipeline.NewOptions().R1)}
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&d)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return nil, errors.New(errors.ErrCodeInvalidDesign, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDesign, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown design encoding %q", format)
	}
	return &d, nil
}

// ImportDesign reads the design file at path, choosing the decoder by
// extension.
func ImportDesign(path string) (*Design, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "design file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := ReadDesign(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Options converts the design to pipeline options. The result is not yet
// validated.
func (d *Design) Options() pipeline.Options {
	return pipeline.Options{
		Mode:          d.Mode,
		Frequency:     float64(d.Frequency),
		Gain:          float64(d.Gain),
		Q:             float64(d.Q),
		R1:            float64(d.R1),
		Family:        d.Family,
		Order:         d.Order,
		RippleDB:      d.RippleDB,
		GainPolicy:    d.GainPolicy,
		Page:          d.Drawing.Page,
		Portrait:      d.Drawing.Portrait,
		OpAmp:         d.Drawing.OpAmp,
		Box:           d.Drawing.Box,
		Note:          d.Drawing.Note,
		NoAnnotate:    d.Drawing.NoAnnotate,
		Seed:          d.Drawing.Seed,
		Sim:           d.Simulation.Enabled,
		SimLibrary:    d.Simulation.Library,
		SupplyVoltage: float64(d.Simulation.SupplyVoltage),
		Title:         d.Title,
		Formats:       d.Output.Formats,
		Detailed:      d.Output.Detailed,
	}
}

// DesignFromOptions is the inverse of [Design.Options].
func DesignFromOptions(o pipeline.Options) *Design {
	return &Design{
		Title:      o.Title,
		Mode:       o.Mode,
		Frequency:  Value(o.Frequency),
		Gain:       Value(o.Gain),
		Q:          Value(o.Q),
		R1:         Value(o.R1),
		Family:     o.Family,
		Order:      o.Order,
		RippleDB:   o.RippleDB,
		GainPolicy: o.GainPolicy,
		Drawing: Drawing{
			Page:       o.Page,
			Portrait:   o.Portrait,
			OpAmp:      o.OpAmp,
			Box:        o.Box,
			Note:       o.Note,
			NoAnnotate: o.NoAnnotate,
			Seed:       o.Seed,
		},
		Simulation: Simulation{
			Enabled:       o.Sim,
			Library:       o.SimLibrary,
			SupplyVoltage: Value(o.SupplyVoltage),
		},
		Output: Output{
			Formats:  o.Formats,
			Detailed: o.Detailed,
		},
	}
}
