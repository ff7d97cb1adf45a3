package grammar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
)

var versionParser = participle.MustBuild[VersionExpr](
	participle.Lexer(PragmaLexer),
	participle.Elide("Whitespace"),
)

// ParseVersion parses a pragma version expression.
func ParseVersion(expr string) (*VersionExpr, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty version expression")
	}

	parsed, err := versionParser.ParseString("pragma", expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse version %q: %w", expr, err)
	}
	return parsed, nil
}

// Describe renders a parse error as "line:column: message" when position
// information is available.
func Describe(err error) string {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return err.Error()
	}
	pos := pe.Position()
	return fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, pe.Message())
}
