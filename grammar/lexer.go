package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PragmaLexer tokenizes the expression that follows "pragma solidity".
var PragmaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Or", Pattern: `\|\|`},

	// Comparison operators (longest first)
	{Name: "Operator", Pattern: `>=|<=|\^|~|>|<|=`},

	// Versions, including wildcards like 0.8.x or 0.*
	{Name: "Version", Pattern: `[vV]?[0-9xX*]+(?:\.[0-9xX*]+)*`},

	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
