package analyzer

import (
	"strings"
	"unicode/utf8"

	"contractlens/internal/errors"
	"contractlens/internal/extractor"
	"contractlens/internal/security"
)

// Diagnostics locates every finding in the analyzed text. A finding whose rule
// is triggered by a token is anchored at the first occurrence of that token;
// any other finding is anchored at the name of each affected function.
func (a *Analysis) Diagnostics() []errors.Diagnostic {
	diagnostics := []errors.Diagnostic{}
	for _, f := range a.Findings {
		diagnostics = append(diagnostics, locate(a.Declarations, f)...)
	}
	return diagnostics
}

func locate(decls *extractor.Declarations, finding security.Finding) []errors.Diagnostic {
	text := decls.Text
	at := func(offset, length int) errors.Diagnostic {
		return errors.FromFinding(finding.Code, finding.SecurityFinding, errors.PositionAt(text, offset), length)
	}

	if rule, ok := security.RuleFor(finding.Code); ok && len(rule.Tokens) > 0 {
		offset, token := firstToken(text, rule.Tokens)
		if offset < 0 {
			return []errors.Diagnostic{at(0, 1)}
		}
		return []errors.Diagnostic{at(offset, len(token))}
	}

	var out []errors.Diagnostic
	for _, name := range finding.AffectedFunctions {
		if fn := functionNamed(decls, name); fn != nil {
			out = append(out, at(fn.NameOffset, utf8.RuneCountInString(name)))
		}
	}
	if len(out) == 0 {
		out = append(out, at(0, 1))
	}
	return out
}

func firstToken(text string, tokens []string) (int, string) {
	best, found := -1, ""
	for _, t := range tokens {
		if i := strings.Index(text, t); i >= 0 && (best < 0 || i < best) {
			best, found = i, t
		}
	}
	return best, found
}

// functionNamed returns the first function with the given name.
func functionNamed(decls *extractor.Declarations, name string) *extractor.FunctionDecl {
	for i := range decls.Functions {
		if decls.Functions[i].Name == name {
			return &decls.Functions[i]
		}
	}
	return nil
}
