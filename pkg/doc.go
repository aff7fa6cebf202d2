// Package pkg provides the core libraries for filtergen, a generator of
// multiple-feedback active low-pass filters drawn as EESchema sheets.
//
// # Overview
//
// A design starts from a corner frequency, passband gain and Q for a
// single stage, or from a filter family and order for a cascade. The pkg
// directory is organized into four main areas:
//
//  1. [filter] - Component derivation, pole tables and cascades
//  2. [schematic] - The EESchema document model and its writer
//  3. [pipeline] - Orchestration (validate → assemble → render)
//  4. [cache], [io], [server] - Caching, design files and the HTTP API
//
// # Architecture
//
// The typical data flow through filtergen:
//
//	Design file / CLI arguments / API request
//	         ↓
//	    [filter] package (pole table → stage values)
//	         ↓
//	    [schematic] package (placed components, wires, labels)
//	         ↓
//	    [pipeline] package (render requested formats)
//	         ↓
//	    SCH/JSON/DOT/SVG/PDF output
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Mode:      pipeline.ModeCascade,
//	    Family:    "butterworth",
//	    Order:     4,
//	    Frequency: 1000,
//	    Gain:      1,
//	    R1:        1000,
//	})
//	os.WriteFile("lowpass.sch", res.Artifacts[pipeline.FormatSch], 0o644)
//
// [filter]: github.com/bson/filtergen/pkg/filter
// [schematic]: github.com/bson/filtergen/pkg/schematic
// [pipeline]: github.com/bson/filtergen/pkg/pipeline
// [cache]: github.com/bson/filtergen/pkg/cache
// [io]: github.com/bson/filtergen/pkg/io
// [server]: github.com/bson/filtergen/pkg/server
package pkg
