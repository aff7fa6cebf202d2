package eeschema

import "github.com/alecthomas/participle/v2/lexer"

// Lexer tokenizes the legacy schematic format. The format is line
// oriented, so line ends are tokens. A text record spans its header line
// and the line that follows, and is lexed as a single TextBlock so the
// free text keeps its spacing.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "TextBlock", Pattern: `Text[ \t][^\r\n]*\r?\n[^\r\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "EOL", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Word", Pattern: `[^\s"]+`},
})
