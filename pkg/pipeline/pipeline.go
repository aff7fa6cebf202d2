// Package pipeline provides the design pipeline shared by the CLI and the
// HTTP server.
//
// This package implements the complete validate → assemble → render flow
// so that every entry point produces the same sheet for the same options.
//
// # Architecture
//
// The pipeline consists of three steps:
//
//  1. Validate: check the options and fill in defaults
//  2. Assemble: synthesize the stage or cascade and lay out the sheet
//     (signal labels, optional simulation scaffolding, page selection)
//  3. Render: produce the requested artifacts (sch, json, pdf, dot, svg)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.NewOptions() // R1 = 1k
//	opts.Frequency, opts.Gain, opts.Q = 1000, 2, 0.7071
//	opts.Formats = []string{"sch", "pdf"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sheet := result.Artifacts["sch"]
//
// Run the steps individually:
//
//	sheet, err := pipeline.Assemble(opts)
//	artifacts, err := pipeline.Render(ctx, sheet, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bson/filtergen/pkg/errors"
	"github.com/bson/filtergen/pkg/filter"
	"github.com/bson/filtergen/pkg/filter/pole"
	"github.com/bson/filtergen/pkg/schematic"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFamily is the approximation used for cascades when none is named.
	DefaultFamily = pole.NameButterworth

	// DefaultSupplyVoltage is the rail voltage of the simulation sources.
	DefaultSupplyVoltage = 12.0

	// PageAuto selects the smallest page that holds the drawing.
	PageAuto = "auto"
)

// Design modes.
const (
	ModeStage   = "stage"
	ModeCascade = "cascade"
)

// Format constants for output formats.
const (
	FormatSch  = "sch"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSch:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// FormatOrder lists the formats in the order they are rendered.
var FormatOrder = []string{FormatSch, FormatJSON, FormatPDF, FormatDOT, FormatSVG}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the design pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Mode is "stage" or "cascade". Empty selects cascade when Order or
	// Family is set, stage otherwise.
	Mode string `json:"mode,omitempty"`

	// Response targets
	Frequency float64 `json:"frequency"`
	Gain      float64 `json:"gain"`
	Q         float64 `json:"q,omitempty"` // stage mode only
	R1        float64 `json:"r1"` // see NewOptions

	// Cascade options
	Family     string  `json:"family,omitempty"`
	Order      int     `json:"order,omitempty"`
	RippleDB   float64 `json:"ripple_db,omitempty"`
	GainPolicy string  `json:"gain_policy,omitempty"`

	// Drawing options
	Page          string  `json:"page,omitempty"`
	Portrait      bool    `json:"portrait,omitempty"`
	OpAmp         string  `json:"opamp,omitempty"`
	Box           bool    `json:"box,omitempty"`
	Note          bool    `json:"note,omitempty"`        // annotation text on each stage
	NoAnnotate    bool    `json:"no_annotate,omitempty"` // keep "R?" style references
	Sim           bool    `json:"sim,omitempty"`
	SimLibrary    string  `json:"sim_library,omitempty"`
	SupplyVoltage float64 `json:"supply_voltage,omitempty"`
	Title         string  `json:"title,omitempty"`
	Seed          uint32  `json:"seed,omitempty"` // zero seeds from the clock

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // component values in the block diagram
	Refresh  bool     `json:"refresh,omitempty"`  // ignore cached results

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run.
	ID string

	// Seed is the first unique ID used in the sheet.
	Seed uint32

	// Page is the sheet size the drawing was placed on.
	Page schematic.Page

	// Summary describes the synthesized stages.
	Summary filter.Summary

	// Parts maps references to values.
	Parts schematic.Parts

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the result came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stages       int
	Components   int
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache use.
type CacheInfo struct {
	Key string // empty when the run was not cacheable
	Hit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatOrder, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a mode is valid.
func ValidateMode(mode string) error {
	if mode != ModeStage && mode != ModeCascade {
		return errors.New(errors.ErrCodeInvalidParameter, "invalid mode: %q (must be one of: stage, cascade)", mode)
	}
	return nil
}

// ValidatePage checks that a page name is "auto" or a known size.
func ValidatePage(name string) error {
	if name == PageAuto {
		return nil
	}
	_, err := schematic.LookupPage(name, schematic.Landscape)
	return err
}

// NewOptions returns Options carrying the defaults of fields whose zero
// value is invalid rather than unset, so that decoding a request or design
// file over it keeps the default only when the field is absent.
func NewOptions() Options {
	return Options{R1: filter.DefaultR1}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.validateDesign(); err != nil {
		return err
	}
	if err := o.validateDrawing(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

func (o *Options) validateDesign() error {
	if o.Mode == "" {
		o.Mode = ModeStage
		if o.Order != 0 || o.Family != "" {
			o.Mode = ModeCascade
		}
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if err := errors.ValidatePositive("frequency", o.Frequency); err != nil {
		return err
	}
	if err := errors.ValidatePositive("gain", o.Gain); err != nil {
		return err
	}
	if err := errors.ValidatePositive("R1", o.R1); err != nil {
		return err
	}

	if o.IsStage() {
		return errors.ValidatePositive("Q", o.Q)
	}

	if o.Family == "" {
		o.Family = DefaultFamily
	}
	fam, err := pole.Lookup(o.Family, o.RippleDB)
	if err != nil {
		return err
	}
	o.Family = fam.Name()
	if c, ok := fam.(pole.Chebyshev); ok {
		o.RippleDB = c.RippleDB
	}
	if err := errors.ValidateOrder(o.Order, fam.MaxOrder()); err != nil {
		return err
	}
	policy, err := filter.ParseGainPolicy(o.GainPolicy)
	if err != nil {
		return err
	}
	o.GainPolicy = string(policy)
	return nil
}

func (o *Options) validateDrawing() error {
	if o.Page == "" {
		o.Page = schematic.DefaultPage
		if o.IsCascade() {
			o.Page = PageAuto
		}
	}
	if err := ValidatePage(o.Page); err != nil {
		return err
	}
	if o.OpAmp == "" {
		o.OpAmp = filter.DefaultOpAmp
	}
	if o.SupplyVoltage == 0 {
		o.SupplyVoltage = DefaultSupplyVoltage
	}
	if err := errors.ValidatePositive("supply voltage", o.SupplyVoltage); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSch}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsStage returns true if a single stage is requested.
func (o *Options) IsStage() bool {
	return o.Mode == ModeStage
}

// IsCascade returns true if a pole-table cascade is requested.
func (o *Options) IsCascade() bool {
	return o.Mode == ModeCascade
}

// Cacheable reports whether results for these options may be cached.
// Clock-seeded runs are not: their unique IDs differ every time.
func (o *Options) Cacheable() bool {
	return o.Seed != 0
}

// HasFormat reports whether format was requested.
func (o *Options) HasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Params returns the stage parameters for stage mode.
func (o *Options) Params() filter.Params {
	return filter.Params{Frequency: o.Frequency, Gain: o.Gain, Q: o.Q, R1: o.R1}
}

// Design returns the cascade description for cascade mode.
func (o *Options) Design() (filter.Design, error) {
	fam, err := pole.Lookup(o.Family, o.RippleDB)
	if err != nil {
		return filter.Design{}, err
	}
	return filter.Design{
		Family:     fam,
		Order:      o.Order,
		Frequency:  o.Frequency,
		Gain:       o.Gain,
		R1:         o.R1,
		GainPolicy: filter.GainPolicy(o.GainPolicy),
		Annotate:   o.Note,
	}, nil
}

// StageOptions returns the drawing options passed to every stage.
func (o *Options) StageOptions() filter.StageOptions {
	opts := filter.StageOptions{
		Box:        o.Box,
		OpAmp:      o.OpAmp,
		Sim:        o.Sim,
		SimLibrary: o.SimLibrary,
	}
	if o.Note && o.IsStage() {
		opts.Annotation = o.Params().Annotation()
	}
	return opts
}

// KeySpec returns the values that determine the rendered output, for
// cache key derivation. Runtime-only fields are excluded.
func (o *Options) KeySpec() Options {
	spec := *o
	spec.Logger = nil
	spec.Refresh = false
	spec.validated = false
	return spec
}
