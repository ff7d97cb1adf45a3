// Package extractor recognizes declarations in contract text without parsing it.
//
// Two input shapes are supported: an interface list (a JSON array of function
// and event entries) and source text, which is scanned with independent
// structural patterns. Every declaration records the offset at which it starts;
// its scope is the text from that offset to the end of the document.
package extractor

import (
	"encoding/json"
	"strings"

	"contractlens/internal/errors"
	"contractlens/internal/model"
)

// Span locates a declaration in the analyzed text.
type Span struct {
	Offset     int // start of the declaration
	NameOffset int // start of the declared name
}

// ContractDecl represents the contract header
// Example: "contract Vault is Ownable, Pausable"
type ContractDecl struct {
	Span
	Name         string
	InheritsFrom []string
}

// PragmaDecl represents the version pragma
// Example: "pragma solidity ^0.8.0;"
type PragmaDecl struct {
	Span
	Expr string
}

// ModifierDecl represents a modifier definition
// Example: "modifier onlyRole(bytes32 role) {"
type ModifierDecl struct {
	Span
	Name   string
	Params []model.Parameter
}

// FunctionDecl represents a function declaration together with its scope slice
// Example: "function withdraw(uint256 amount) external onlyOwner {"
type FunctionDecl struct {
	Span
	Name       string
	Inputs     []model.Parameter
	Outputs    []model.Parameter
	Visibility model.Visibility
	Mutability model.Mutability
	Modifiers  []string
	Scope      string
}

// EventDecl represents an event declaration
// Example: "event Deposit(address indexed from, uint256 amount);"
type EventDecl struct {
	Span
	Name      string
	Inputs    []model.Parameter
	Anonymous bool
	Scope     string
}

// StateVarDecl represents a contract-level variable declaration
// Example: "uint256 public constant MAX_SUPPLY = 1000;"
type StateVarDecl struct {
	Span
	Name         string
	Type         string
	Visibility   string
	IsConstant   bool
	InitialValue string
}

// Declarations is everything the extractor found in one input.
type Declarations struct {
	Mode           string
	Text           string
	Contract       *ContractDecl
	Pragma         *PragmaDecl
	License        string
	Modifiers      []ModifierDecl
	Functions      []FunctionDecl
	Events         []EventDecl
	StateVariables []StateVarDecl
}

// Empty reports whether no declaration of any shape was found.
func (d *Declarations) Empty() bool {
	return d.Contract == nil &&
		d.Pragma == nil &&
		d.License == "" &&
		len(d.Modifiers) == 0 &&
		len(d.Functions) == 0 &&
		len(d.Events) == 0 &&
		len(d.StateVariables) == 0
}

// FunctionNames returns the names of all extracted functions in order.
func (d *Declarations) FunctionNames() []string {
	names := make([]string, 0, len(d.Functions))
	for _, f := range d.Functions {
		names = append(names, f.Name)
	}
	return names
}

// Extract chooses the input mode and extracts declarations.
// It fails with *errors.FormatError when the text is blank, is JSON other than
// an array, or is source text without a single recognizable declaration.
func Extract(text string) (*Declarations, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.EmptyInput()
	}

	if json.Valid([]byte(text)) {
		kind := jsonKind(text)
		if kind != "array" {
			return nil, errors.NotInterfaceList(text, kind)
		}
		return ExtractInterface(text)
	}

	decls := ExtractSource(text)
	if decls.Empty() {
		return nil, errors.NoDeclarations(text)
	}
	return decls, nil
}

// jsonKind names the top-level JSON value of valid JSON text.
func jsonKind(text string) string {
	switch strings.TrimSpace(text)[0] {
	case '[':
		return "array"
	case '{':
		return "object"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
