// Package security scans contract text for a fixed catalog of risky patterns.
package security

import (
	"fmt"
	"strings"

	"contractlens/internal/errors"
	"contractlens/internal/model"
)

// Function is the view of a function the scanner needs.
type Function struct {
	Name       string
	Mutability model.Mutability
	Scope      string
}

// Rule is one entry of the catalog. Check receives the whole text and every
// function, and returns the findings of this rule alone.
type Rule struct {
	Code   string
	Tokens []string // text that triggers the rule, if any
	Check  func(text string, functions []Function) []model.SecurityFinding
}

// Catalog lists the rules in the order they are applied. New rules are appended.
var Catalog = []Rule{
	{
		Code:  errors.SecurityPayable,
		Check: payableFunctions,
	},
	{
		Code:   errors.SecuritySelfDestruct,
		Tokens: []string{"selfdestruct", "suicide"},
		Check: tokenRule(
			[]string{"selfdestruct", "suicide"},
			"Contract uses selfdestruct/suicide",
			"Avoid using selfdestruct as it can be dangerous and is deprecated.",
		),
	},
	{
		Code:   errors.SecurityTxOrigin,
		Tokens: []string{"tx.origin"},
		Check: tokenRule(
			[]string{"tx.origin"},
			"Usage of tx.origin found",
			"Use msg.sender instead of tx.origin for authentication.",
		),
	},
}

// Finding couples a finding with the code of the rule that produced it.
type Finding struct {
	Code string
	model.SecurityFinding
}

// Scan applies every rule of the catalog in order.
func Scan(text string, functions []Function) []Finding {
	findings := []Finding{}
	for _, rule := range Catalog {
		for _, f := range rule.Check(text, functions) {
			findings = append(findings, Finding{Code: rule.Code, SecurityFinding: f})
		}
	}
	return findings
}

// Findings strips the rule codes.
func Findings(scanned []Finding) []model.SecurityFinding {
	out := make([]model.SecurityFinding, 0, len(scanned))
	for _, f := range scanned {
		out = append(out, f.SecurityFinding)
	}
	return out
}

// RuleFor returns the catalog rule with the given code.
func RuleFor(code string) (Rule, bool) {
	for _, r := range Catalog {
		if r.Code == code {
			return r, true
		}
	}
	return Rule{}, false
}

func payableFunctions(_ string, functions []Function) []model.SecurityFinding {
	var findings []model.SecurityFinding
	for _, f := range functions {
		if f.Mutability != model.Payable {
			continue
		}
		findings = append(findings, model.SecurityFinding{
			Severity:          model.Medium,
			Description:       fmt.Sprintf("Payable function '%s' found", f.Name),
			Location:          "Function: " + f.Name,
			Recommendation:    "Ensure proper access controls and value validation are in place.",
			AffectedFunctions: []string{f.Name},
		})
	}
	return findings
}

// tokenRule reports one High finding when any token occurs in the text,
// attributed to every function whose scope contains one.
func tokenRule(tokens []string, description, recommendation string) func(string, []Function) []model.SecurityFinding {
	return func(text string, functions []Function) []model.SecurityFinding {
		if !containsAny(text, tokens) {
			return nil
		}
		affected := []string{}
		seen := map[string]bool{}
		for _, f := range functions {
			if !seen[f.Name] && containsAny(f.Scope, tokens) {
				affected = append(affected, f.Name)
				seen[f.Name] = true
			}
		}
		return []model.SecurityFinding{{
			Severity:          model.High,
			Description:       description,
			Location:          "Contract",
			Recommendation:    recommendation,
			AffectedFunctions: affected,
		}}
	}
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
