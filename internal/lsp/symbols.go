package lsp

import (
	"strings"
	"unicode/utf8"

	"contractlens/internal/analyzer"
	"contractlens/internal/errors"
	"contractlens/internal/extractor"
	"contractlens/internal/model"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func completionItems(a *analyzer.Analysis) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	if a == nil {
		return items
	}

	seen := map[string]bool{}
	add := func(label string, kind protocol.CompletionItemKind, detail string) {
		if label == "" || seen[label] {
			return
		}
		seen[label] = true
		items = append(items, protocol.CompletionItem{
			Label:  label,
			Kind:   &kind,
			Detail: ptrString(detail),
		})
	}

	c := a.Contract
	add(c.Name, protocol.CompletionItemKindClass, "contract")
	for _, v := range c.StateVariables {
		kind := protocol.CompletionItemKindVariable
		if v.IsConstant {
			kind = protocol.CompletionItemKindConstant
		}
		add(v.Name, kind, v.Type)
	}
	for _, m := range c.Modifiers {
		add(m, protocol.CompletionItemKindKeyword, "modifier")
	}
	for _, f := range c.Functions {
		add(f.Name, protocol.CompletionItemKindFunction, signatureDetail(f.Name, f.Inputs, f.Selector))
	}
	for _, e := range c.Events {
		add(e.Name, protocol.CompletionItemKindEvent, signatureDetail(e.Name, e.Inputs, e.Topic))
	}
	return items
}

// documentSymbols nests the declarations under the contract when there is one.
func documentSymbols(a *analyzer.Analysis) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	if a == nil {
		return symbols
	}

	decls := a.Declarations
	text := decls.Text

	for _, v := range decls.StateVariables {
		kind := protocol.SymbolKindField
		if v.IsConstant {
			kind = protocol.SymbolKindConstant
		}
		symbols = append(symbols, symbol(text, v.Span, v.Name, v.Type, kind))
	}
	for _, m := range decls.Modifiers {
		symbols = append(symbols, symbol(text, m.Span, m.Name, "modifier", protocol.SymbolKindMethod))
	}
	for _, f := range decls.Functions {
		symbols = append(symbols, symbol(text, f.Span, f.Name, string(f.Visibility)+" "+string(f.Mutability), protocol.SymbolKindFunction))
	}
	for _, e := range decls.Events {
		symbols = append(symbols, symbol(text, e.Span, e.Name, "event", protocol.SymbolKindEvent))
	}

	if decls.Contract == nil {
		return symbols
	}

	root := symbol(text, decls.Contract.Span, decls.Contract.Name, strings.Join(decls.Contract.InheritsFrom, ", "), protocol.SymbolKindClass)
	root.Range.End = toPosition(errors.PositionAt(text, len(text)))
	root.Children = symbols
	return []protocol.DocumentSymbol{root}
}

// symbol spans from the start of the declaration to the end of its name.
func symbol(text string, span extractor.Span, name, detail string, kind protocol.SymbolKind) protocol.DocumentSymbol {
	nameStart := toPosition(errors.PositionAt(text, span.NameOffset))
	nameEnd := nameStart
	nameEnd.Character += uint32(utf8.RuneCountInString(name))

	s := protocol.DocumentSymbol{
		Name: name,
		Kind: kind,
		Range: protocol.Range{
			Start: toPosition(errors.PositionAt(text, span.Offset)),
			End:   nameEnd,
		},
		SelectionRange: protocol.Range{Start: nameStart, End: nameEnd},
	}
	if detail = strings.TrimSpace(detail); detail != "" {
		s.Detail = ptrString(detail)
	}
	return s
}

func signatureDetail(name string, inputs []model.Parameter, hash string) string {
	types := make([]string, 0, len(inputs))
	for _, p := range inputs {
		types = append(types, p.Type)
	}
	detail := name + "(" + strings.Join(types, ",") + ")"
	if hash != "" {
		detail += " " + hash
	}
	return detail
}

func toPosition(p errors.Position) protocol.Position {
	return protocol.Position{Line: uint32(p.Line - 1), Character: uint32(p.Column - 1)}
}
