package extractor

import (
	"encoding/json"
	"regexp"
	"strings"

	"contractlens/internal/errors"
	"contractlens/internal/model"
)

// Entry is one decoded interface-list item: either *FunctionEntry or *EventEntry.
type Entry interface {
	entryName() string
}

// FunctionEntry is a "function" item of an interface list. Optional fields are
// nil when absent from the input.
type FunctionEntry struct {
	Name            string
	Inputs          []model.Parameter
	Outputs         []model.Parameter
	StateMutability *string
	Visibility      *string
	Constant        *bool // pre-0.5 interface lists
	Payable         *bool // pre-0.5 interface lists
}

func (e *FunctionEntry) entryName() string { return e.Name }

// Mutability applies the defaulting rules for a function entry.
func (e *FunctionEntry) Mutability() model.Mutability {
	switch {
	case e.StateMutability != nil:
		return model.ParseMutability(*e.StateMutability)
	case e.Payable != nil && *e.Payable:
		return model.Payable
	case e.Constant != nil && *e.Constant:
		return model.View
	default:
		return model.NonPayable
	}
}

// EventEntry is an "event" item of an interface list.
type EventEntry struct {
	Name      string
	Inputs    []model.Parameter
	Anonymous *bool
}

func (e *EventEntry) entryName() string { return e.Name }

type abiParam struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Indexed    bool       `json:"indexed"`
	Components []abiParam `json:"components"`
}

type abiEntry struct {
	Type            *string    `json:"type"`
	Name            string     `json:"name"`
	Inputs          []abiParam `json:"inputs"`
	Outputs         []abiParam `json:"outputs"`
	StateMutability *string    `json:"stateMutability"`
	Visibility      *string    `json:"visibility"`
	Anonymous       *bool      `json:"anonymous"`
	Constant        *bool      `json:"constant"`
	Payable         *bool      `json:"payable"`
}

// DecodeEntry converts one raw interface item into its tagged variant.
// Items that are malformed, unnamed, or of another kind (constructor,
// fallback, receive, error) yield nil.
func DecodeEntry(raw json.RawMessage) Entry {
	var e abiEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil
	}
	if e.Name == "" {
		return nil
	}

	kind := "function"
	if e.Type != nil {
		kind = *e.Type
	}

	switch kind {
	case "function":
		return &FunctionEntry{
			Name:            e.Name,
			Inputs:          convertParams(e.Inputs, false),
			Outputs:         convertParams(e.Outputs, false),
			StateMutability: e.StateMutability,
			Visibility:      e.Visibility,
			Constant:        e.Constant,
			Payable:         e.Payable,
		}
	case "event":
		return &EventEntry{
			Name:      e.Name,
			Inputs:    convertParams(e.Inputs, true),
			Anonymous: e.Anonymous,
		}
	default:
		return nil
	}
}

func convertParams(params []abiParam, event bool) []model.Parameter {
	out := make([]model.Parameter, 0, len(params))
	for _, p := range params {
		param := model.Parameter{Name: p.Name, Type: canonicalType(p)}
		if event {
			param.Indexed = p.Indexed
		}
		out = append(out, param)
	}
	return out
}

// canonicalType expands tuple types into their component list.
// Example: {type: "tuple[]", components: [uint256, address]} -> "(uint256,address)[]"
func canonicalType(p abiParam) string {
	if !strings.HasPrefix(p.Type, "tuple") || len(p.Components) == 0 {
		return p.Type
	}
	parts := make([]string, 0, len(p.Components))
	for _, c := range p.Components {
		parts = append(parts, canonicalType(c))
	}
	return "(" + strings.Join(parts, ",") + ")" + strings.TrimPrefix(p.Type, "tuple")
}

// ExtractInterface extracts declarations from an interface list. Each entry's
// scope is its own raw JSON text.
func ExtractInterface(text string) (*Declarations, error) {
	decls := &Declarations{Mode: model.ModeInterface, Text: text}

	dec := json.NewDecoder(strings.NewReader(text))
	tok, err := dec.Token()
	if err != nil {
		return nil, errors.NotInterfaceList(text, "invalid JSON")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, errors.NotInterfaceList(text, jsonKind(text))
	}

	for dec.More() {
		start := skipSeparators(text, int(dec.InputOffset()))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			break
		}
		scope := string(raw)
		entry := DecodeEntry(raw)
		if entry == nil {
			continue
		}
		nameOffset := start + nameIndex(scope, entry.entryName())

		switch entry := entry.(type) {
		case *FunctionEntry:
			visibility := model.Public
			if entry.Visibility != nil {
				visibility = model.ParseVisibility(*entry.Visibility)
			}
			decls.Functions = append(decls.Functions, FunctionDecl{
				Span:       Span{Offset: start, NameOffset: nameOffset},
				Name:       entry.Name,
				Inputs:     entry.Inputs,
				Outputs:    entry.Outputs,
				Visibility: visibility,
				Mutability: entry.Mutability(),
				Modifiers:  []string{},
				Scope:      scope,
			})
		case *EventEntry:
			decls.Events = append(decls.Events, EventDecl{
				Span:      Span{Offset: start, NameOffset: nameOffset},
				Name:      entry.Name,
				Inputs:    entry.Inputs,
				Anonymous: entry.Anonymous != nil && *entry.Anonymous,
				Scope:     scope,
			})
		}
	}

	return decls, nil
}

// skipSeparators advances past whitespace and commas between array elements.
func skipSeparators(text string, i int) int {
	for i < len(text) && strings.IndexByte(" \t\r\n,", text[i]) >= 0 {
		i++
	}
	return i
}

// nameIndex finds the position of the entry's name value in its raw JSON,
// or 0 when it cannot be located.
func nameIndex(raw, name string) int {
	pattern := regexp.MustCompile(`"name"\s*:\s*"(` + regexp.QuoteMeta(name) + `)"`)
	loc := pattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return 0
	}
	return loc[2]
}
