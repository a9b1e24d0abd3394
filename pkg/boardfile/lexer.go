package boardfile

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// BoardLexer defines the lexical structure for board description files.
// The format is keyword-driven with braces for nesting and hash comments.
var BoardLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Top-level sections
	{Name: "KwBoard", Pattern: `\bboard\b`},
	{Name: "KwOutline", Pattern: `\boutline\b`},
	{Name: "KwMinTrack", Pattern: `\bmin_track\b`},
	{Name: "KwMinDrill", Pattern: `\bmin_drill\b`},
	{Name: "KwLayers", Pattern: `\blayers\b`},
	{Name: "KwLayer", Pattern: `\blayer\b`},
	{Name: "KwFootprint", Pattern: `\bfootprint\b`},
	{Name: "KwNet", Pattern: `\bnet\b`},
	{Name: "KwVia", Pattern: `\bvia\b`},

	// Layer properties
	{Name: "KwSignal", Pattern: `\bsignal\b`},
	{Name: "KwPower", Pattern: `\bpower\b`},
	{Name: "KwGround", Pattern: `\bground\b`},
	{Name: "KwMixed", Pattern: `\bmixed\b`},
	{Name: "KwMaterial", Pattern: `\bmaterial\b`},
	{Name: "KwImpedance", Pattern: `\bimpedance\b`},
	{Name: "KwDiffImpedance", Pattern: `\bdiff_impedance\b`},
	{Name: "KwCopper", Pattern: `\bcopper\b`},

	// Footprint and pad properties
	{Name: "KwAt", Pattern: `\bat\b`},
	{Name: "KwRotate", Pattern: `\brotate\b`},
	{Name: "KwSide", Pattern: `\bside\b`},
	{Name: "KwTop", Pattern: `\btop\b`},
	{Name: "KwBottom", Pattern: `\bbottom\b`},
	{Name: "KwDescription", Pattern: `\bdescription\b`},
	{Name: "KwManufacturer", Pattern: `\bmanufacturer\b`},
	{Name: "KwPads", Pattern: `\bpads\b`},
	{Name: "KwPad", Pattern: `\bpad\b`},
	{Name: "KwCircle", Pattern: `\bcircle\b`},
	{Name: "KwRect", Pattern: `\brect\b`},
	{Name: "KwOval", Pattern: `\boval\b`},
	{Name: "KwDrill", Pattern: `\bdrill\b`},

	// Net and via properties
	{Name: "KwWidth", Pattern: `\bwidth\b`},
	{Name: "KwClearance", Pattern: `\bclearance\b`},
	{Name: "KwPlated", Pattern: `\bplated\b`},
	{Name: "KwNonplated", Pattern: `\bnonplated\b`},
	{Name: "KwSpan", Pattern: `\bspan\b`},

	// Punctuation
	{Name: "LBrace", Pattern: `\{`},
	{Name: "RBrace", Pattern: `\}`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Dot", Pattern: `\.`},

	// Literals
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?[0-9]+(\.[0-9]+)?`},

	// Identifiers (must come after keywords)
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9_]*`},
})
