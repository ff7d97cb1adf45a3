package lsp

import (
	"sort"
	"unicode/utf8"

	"contractlens/internal/analyzer"
	"contractlens/internal/errors"
	"contractlens/internal/model"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int // index into SemanticTokenTypes
	TokenModifiers int // bitmask

	offset int
}

// collectSemanticTokens marks every declared name of a source document.
// Interface lists are JSON and get no tokens.
func collectSemanticTokens(a *analyzer.Analysis) []SemanticToken {
	var tokens []SemanticToken

	if a == nil || a.Declarations.Mode != model.ModeSource {
		return tokens
	}

	decls := a.Declarations
	declaration := modifierMask("declaration")
	readonly := modifierMask("readonly")

	if decls.Contract != nil {
		tokens = append(tokens, makeToken(decls.Text, decls.Contract.NameOffset, decls.Contract.Name, "namespace", declaration))
	}
	for _, v := range decls.StateVariables {
		mods := declaration
		if v.IsConstant {
			mods |= readonly
		}
		tokens = append(tokens, makeToken(decls.Text, v.NameOffset, v.Name, "property", mods))
	}
	for _, m := range decls.Modifiers {
		tokens = append(tokens, makeToken(decls.Text, m.NameOffset, m.Name, "modifier", declaration))
	}
	for _, f := range decls.Functions {
		tokens = append(tokens, makeToken(decls.Text, f.NameOffset, f.Name, "function", declaration))
	}
	for _, e := range decls.Events {
		tokens = append(tokens, makeToken(decls.Text, e.NameOffset, e.Name, "event", declaration))
	}

	// the wire encoding is relative to the previous token
	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].offset < tokens[j].offset })
	return tokens
}

func makeToken(text string, offset int, value, tokenType string, modifiers int) SemanticToken {
	pos := errors.PositionAt(text, offset)
	return SemanticToken{
		Line:           uint32(pos.Line - 1),
		StartChar:      uint32(pos.Column - 1),
		Length:         uint32(utf8.RuneCountInString(value)),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
		offset:         offset,
	}
}

func modifierMask(name string) int {
	i := indexOf(name, SemanticTokenModifiers)
	if i < 0 {
		return 0
	}
	return 1 << i
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
