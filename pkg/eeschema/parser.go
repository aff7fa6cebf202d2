// Package eeschema reads legacy EESchema sheets back into a syntax tree.
//
// The reader accepts the subset of the format the schematic package
// writes: the header, the page description and title block, component
// blocks, wires, junctions and text records. It is used to inspect
// generated sheets and to check that rendering round-trips.
package eeschema

import (
	"io"
	"os"

	"github.com/alecthomas/participle/v2"

	"github.com/bson/filtergen/pkg/errors"
)

// Parser reads schematic files.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser builds a parser.
func NewParser() (*Parser, error) {
	p, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build schematic parser")
	}
	return &Parser{parser: p}, nil
}

// Parse reads a sheet from r.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	f, err := p.parser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse schematic")
	}
	return f, nil
}

// ParseString reads a sheet from s.
func (p *Parser) ParseString(s string) (*File, error) {
	f, err := p.parser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse schematic")
	}
	return f, nil
}

// ParseFile reads the sheet at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer fh.Close()
	return p.Parse(fh)
}
