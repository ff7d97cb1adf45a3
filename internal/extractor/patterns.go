package extractor

import "regexp"

// Structural patterns for source mode. Each shape is recognized on its own,
// with no awareness of nesting, comments or string literals.
var (
	// contract Vault is Ownable, Pausable {
	contractPattern = regexp.MustCompile(`\bcontract\s+(\w+)(?:\s+is\s+([\w,\s]+))?`)

	// pragma solidity ^0.8.0;
	pragmaPattern = regexp.MustCompile(`pragma\s+solidity\s+([^;]+)`)

	// // SPDX-License-Identifier: MIT
	licensePattern = regexp.MustCompile(`//\s*SPDX-License-Identifier:\s*(.+)`)

	// modifier onlyOwner() {
	modifierPattern = regexp.MustCompile(`\bmodifier\s+(\w+)\s*(?:\(([^)]*)\))?\s*(?:(?:virtual|override)\s*)*\{`)

	// function withdraw(uint256 amount) external onlyOwner returns (bool) {
	// Group 3 holds every specifier between the parameter list and "returns".
	functionPattern = regexp.MustCompile(`\bfunction\s+(\w+)\s*\(([^)]*)\)((?:\s+\w+(?:\s*\([^)]*\))?)*?)\s*(?:returns\s*\(([^)]*)\))?\s*[{;]`)

	// A single specifier, with optional arguments: onlyRole(MINTER_ROLE)
	specifierPattern = regexp.MustCompile(`(\w+)(?:\s*\([^)]*\))?`)

	// event Transfer(address indexed from, address indexed to, uint256 value);
	eventPattern = regexp.MustCompile(`\bevent\s+(\w+)\s*\(([^)]*)\)(\s+anonymous)?\s*;`)

	// uint256 public constant MAX_SUPPLY = 1000;
	// mapping(address => uint256) private balances;
	// The trailing ";" is checked by the caller so that it remains available
	// as the boundary of the next declaration.
	stateVarPattern = regexp.MustCompile(`(?:^|[;{}\n])\s*((?:mapping\s*\([^;{}]*?\)|[A-Za-z_][\w.]*(?:\s+payable)?)(?:\s*\[\w*\])*)\s+((?:(?:public|private|internal|constant|immutable|override)\s+)+)([A-Za-z_]\w*)\s*(?:=\s*([^;]+))?`)

	// public constant uint256 MAX_SUPPLY = 1000;
	stateVarLegacyPattern = regexp.MustCompile(`(?:^|[;{}\n])\s*(public|private|internal)\s+(constant\s+)?([A-Za-z_][\w.]*)\s+([A-Za-z_]\w*)\s*(?:=\s*([^;]+))?`)
)

var visibilityWords = map[string]bool{
	"public":   true,
	"private":  true,
	"internal": true,
	"external": true,
}

var mutabilityWords = map[string]bool{
	"pure":    true,
	"view":    true,
	"payable": true,
}

// Specifiers that are neither visibility, mutability nor modifier invocations.
var ignoredSpecifiers = map[string]bool{
	"virtual":  true,
	"override": true,
	"returns":  true,
}
