package pinspec

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// layoutLexer tokenizes compact pin layouts such as "L4 R4 T2 B0" or
// "left=3, right=3".
var layoutLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// Long names first so "left" is not read as "l" followed by garbage
	{Name: "Side", Pattern: `(?i)(left|right|top|bottom|l|r|t|b)`},

	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Assign", Pattern: `[=:]`},
	{Name: "Comma", Pattern: `,`},
})
