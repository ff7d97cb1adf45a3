package extractor

import (
	"sort"
	"strings"

	"contractlens/internal/model"
)

// ExtractSource scans source text for every structural shape. It never fails;
// an input without matches yields empty Declarations.
func ExtractSource(text string) *Declarations {
	decls := &Declarations{Mode: model.ModeSource, Text: text}

	decls.Contract = extractContract(text)
	decls.Pragma = extractPragma(text)
	if m := licensePattern.FindStringSubmatch(text); m != nil {
		decls.License = strings.TrimSpace(m[1])
	}
	decls.Modifiers = extractModifiers(text)
	decls.Functions = extractFunctions(text)
	decls.Events = extractEvents(text)
	decls.StateVariables = extractStateVariables(text)

	return decls
}

func extractContract(text string) *ContractDecl {
	m := contractPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return nil
	}
	c := &ContractDecl{
		Span:         Span{Offset: m[0], NameOffset: m[2]},
		Name:         text[m[2]:m[3]],
		InheritsFrom: []string{},
	}
	if m[4] >= 0 {
		c.InheritsFrom = splitInheritance(text[m[4]:m[5]])
	}
	return c
}

func extractPragma(text string) *PragmaDecl {
	m := pragmaPattern.FindStringSubmatchIndex(text)
	if m == nil {
		return nil
	}
	return &PragmaDecl{
		Span: Span{Offset: m[0], NameOffset: m[2]},
		Expr: strings.TrimSpace(text[m[2]:m[3]]),
	}
}

func extractModifiers(text string) []ModifierDecl {
	var modifiers []ModifierDecl
	for _, m := range modifierPattern.FindAllStringSubmatchIndex(text, -1) {
		d := ModifierDecl{
			Span:   Span{Offset: m[0], NameOffset: m[2]},
			Name:   text[m[2]:m[3]],
			Params: []model.Parameter{},
		}
		if m[4] >= 0 {
			d.Params = parseParams(text[m[4]:m[5]])
		}
		modifiers = append(modifiers, d)
	}
	return modifiers
}

func extractFunctions(text string) []FunctionDecl {
	var functions []FunctionDecl
	for _, m := range functionPattern.FindAllStringSubmatchIndex(text, -1) {
		f := FunctionDecl{
			Span:       Span{Offset: m[0], NameOffset: m[2]},
			Name:       text[m[2]:m[3]],
			Inputs:     parseParams(text[m[4]:m[5]]),
			Outputs:    []model.Parameter{},
			Visibility: model.Public,
			Mutability: model.NonPayable,
			Modifiers:  []string{},
			Scope:      text[m[0]:],
		}
		if m[8] >= 0 {
			f.Outputs = parseParams(text[m[8]:m[9]])
		}
		applySpecifiers(&f, text[m[6]:m[7]])
		functions = append(functions, f)
	}
	return functions
}

// applySpecifiers sorts the words between a parameter list and the body into
// visibility, mutability and modifier invocations. The first visibility and
// mutability keyword win.
func applySpecifiers(f *FunctionDecl, specifiers string) {
	seenVisibility, seenMutability := false, false
	for _, s := range specifierPattern.FindAllStringSubmatch(specifiers, -1) {
		word := s[1]
		switch {
		case visibilityWords[word]:
			if !seenVisibility {
				f.Visibility = model.ParseVisibility(word)
				seenVisibility = true
			}
		case mutabilityWords[word]:
			if !seenMutability {
				f.Mutability = model.ParseMutability(word)
				seenMutability = true
			}
		case ignoredSpecifiers[word]:
		default:
			f.Modifiers = append(f.Modifiers, word)
		}
	}
}

func extractEvents(text string) []EventDecl {
	var events []EventDecl
	for _, m := range eventPattern.FindAllStringSubmatchIndex(text, -1) {
		events = append(events, EventDecl{
			Span:      Span{Offset: m[0], NameOffset: m[2]},
			Name:      text[m[2]:m[3]],
			Inputs:    parseEventParams(text[m[4]:m[5]]),
			Anonymous: m[6] >= 0,
			Scope:     text[m[0]:],
		})
	}
	return events
}

func extractStateVariables(text string) []StateVarDecl {
	byOffset := map[int]StateVarDecl{}

	for _, m := range stateVarPattern.FindAllStringSubmatchIndex(text, -1) {
		if !terminated(text, m[1]) {
			continue
		}
		v := StateVarDecl{
			Span:       Span{Offset: m[2], NameOffset: m[6]},
			Type:       strings.Join(strings.Fields(text[m[2]:m[3]]), " "),
			Name:       text[m[6]:m[7]],
			Visibility: string(model.Internal),
		}
		seenVisibility := false
		for _, word := range strings.Fields(text[m[4]:m[5]]) {
			switch word {
			case "public", "private", "internal":
				if !seenVisibility {
					v.Visibility = word
					seenVisibility = true
				}
			case "constant":
				v.IsConstant = true
			}
		}
		if m[8] >= 0 {
			v.InitialValue = strings.TrimSpace(text[m[8]:m[9]])
		}
		byOffset[v.NameOffset] = v
	}

	for _, m := range stateVarLegacyPattern.FindAllStringSubmatchIndex(text, -1) {
		if !terminated(text, m[1]) {
			continue
		}
		v := StateVarDecl{
			Span:       Span{Offset: m[2], NameOffset: m[8]},
			Visibility: text[m[2]:m[3]],
			IsConstant: m[4] >= 0,
			Type:       text[m[6]:m[7]],
			Name:       text[m[8]:m[9]],
		}
		if m[10] >= 0 {
			v.InitialValue = strings.TrimSpace(text[m[10]:m[11]])
		}
		if _, ok := byOffset[v.NameOffset]; !ok {
			byOffset[v.NameOffset] = v
		}
	}

	vars := make([]StateVarDecl, 0, len(byOffset))
	for _, v := range byOffset {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Offset < vars[j].Offset })
	return vars
}

// terminated reports whether a statement that ends at end is followed by ";".
func terminated(text string, end int) bool {
	return end < len(text) && text[end] == ';'
}
