// Package io reads design files and writes pipeline artifacts.
//
// # Design Files
//
// A design file describes one stage or cascade together with its drawing,
// simulation and output options. Three encodings are accepted, chosen by
// file extension: TOML (.toml), YAML (.yaml, .yml) and JSON (.json).
//
//	title  = "Anti-alias"
//	family = "bessel"
//	order  = 4
//	frequency = "10k"
//	gain   = 2
//	r1     = "4.7k"
//
//	[drawing]
//	page = "A3"
//	box  = true
//	seed = 42
//
//	[simulation]
//	enabled = true
//	supply_voltage = 15
//
//	[output]
//	formats = ["sch", "pdf"]
//
// Numeric values may be plain numbers or strings with an SI suffix
// ("10k", "4.7n"). Unknown keys are rejected so that typos do not silently
// fall back to defaults.
//
// Use [ImportDesign] to read a file, or [ReadDesign] to read from any
// io.Reader, then [Design.Options] to obtain pipeline options:
//
//	d, err := io.ImportDesign("antialias.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, d.Options())
//
// # Export
//
// [ExportArtifacts] writes every rendered artifact next to a base path,
// one file per format ("out.sch", "out.pdf", ...). [ExportDesign] saves a
// design back to a file in any of the three encodings.
package io
