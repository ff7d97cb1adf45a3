// Package analyzer turns contract text into an AnalyzedContract.
//
// The pipeline is extract -> resolve, classify and scan -> assemble. Each call
// works only on its own input and returns a fresh model, so independent inputs
// can be analyzed in parallel (see AnalyzeBatch).
package analyzer

import (
	"strings"

	"contractlens/grammar"
	"contractlens/internal/errors"
	"contractlens/internal/extractor"
	"contractlens/internal/model"
	"contractlens/internal/resolver"
	"contractlens/internal/roles"
	"contractlens/internal/security"
	"contractlens/internal/selector"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("contractlens.analyzer")

const (
	DefaultContractName = "Contract"
	UnknownVersion      = "Unknown"
)

// Options configures an Analyzer.
type Options struct {
	// MaxInputBytes rejects larger inputs with a FormatError. Zero means no limit.
	MaxInputBytes int
}

// Analyzer runs the analysis pipeline.
type Analyzer struct {
	opts Options
}

// New creates an analyzer.
func New(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// Analysis is the result of one run: the model plus the facts it was built
// from, which editors use to locate declarations and findings in the text.
type Analysis struct {
	Contract     *model.AnalyzedContract
	Declarations *extractor.Declarations
	Findings     []security.Finding
}

// Analyze runs the pipeline with default options.
func Analyze(text string) (*model.AnalyzedContract, error) {
	return New(Options{}).Analyze(text)
}

// Analyze detects the input mode and returns the assembled model.
func (a *Analyzer) Analyze(text string) (*model.AnalyzedContract, error) {
	result, err := a.Run(text)
	if err != nil {
		return nil, err
	}
	return result.Contract, nil
}

// Run is Analyze, keeping the intermediate declarations and coded findings.
func (a *Analyzer) Run(text string) (*Analysis, error) {
	if err := a.checkSize(text); err != nil {
		return nil, err
	}
	decls, err := extractor.Extract(text)
	if err != nil {
		log.Debugf("rejected input: %s", err)
		return nil, err
	}
	return Assemble(decls), nil
}

// AnalyzeInterface analyzes text that must be an interface list.
func (a *Analyzer) AnalyzeInterface(text string) (*model.AnalyzedContract, error) {
	if err := a.checkSize(text); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.EmptyInput()
	}
	decls, err := extractor.ExtractInterface(text)
	if err != nil {
		return nil, err
	}
	return Assemble(decls).Contract, nil
}

// AnalyzeSource analyzes text as source, even if it happens to be valid JSON.
func (a *Analyzer) AnalyzeSource(text string) (*model.AnalyzedContract, error) {
	if err := a.checkSize(text); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.EmptyInput()
	}
	decls := extractor.ExtractSource(text)
	if decls.Empty() {
		return nil, errors.NoDeclarations(text)
	}
	return Assemble(decls).Contract, nil
}

func (a *Analyzer) checkSize(text string) error {
	if a.opts.MaxInputBytes > 0 && len(text) > a.opts.MaxInputBytes {
		return errors.InputTooLarge(text, a.opts.MaxInputBytes)
	}
	return nil
}

// Assemble combines declarations, edges, roles and findings into one model.
// The role table lives only for the duration of the call.
func Assemble(decls *extractor.Declarations) *Analysis {
	edges := resolver.Resolve(decls)
	table := roles.NewTable()

	contract := &model.AnalyzedContract{
		Name:             DefaultContractName,
		Mode:             decls.Mode,
		Version:          UnknownVersion,
		License:          decls.License,
		InheritsFrom:     []string{},
		Modifiers:        []string{},
		Functions:        make([]model.FunctionRecord, 0, len(decls.Functions)),
		Events:           make([]model.EventRecord, 0, len(decls.Events)),
		StateVariables:   make([]model.StateVariableRecord, 0, len(decls.StateVariables)),
		SecurityFindings: []model.SecurityFinding{},
	}

	if decls.Contract != nil {
		contract.Name = decls.Contract.Name
		contract.InheritsFrom = append(contract.InheritsFrom, decls.Contract.InheritsFrom...)
	}
	if decls.Pragma != nil {
		contract.Version = decls.Pragma.Expr
		if expr, err := grammar.ParseVersion(decls.Pragma.Expr); err == nil {
			contract.VersionConstraints = expr.ToModel()
		} else {
			log.Debugf("unparsed pragma %q: %s", decls.Pragma.Expr, grammar.Describe(err))
		}
	}
	for _, m := range decls.Modifiers {
		contract.Modifiers = append(contract.Modifiers, m.Name)
	}

	scanned := make([]security.Function, 0, len(decls.Functions))
	for i, f := range decls.Functions {
		functionRoles := roles.Classify(f.Name, f.Scope)
		table.Add(f.Name, functionRoles)

		contract.Functions = append(contract.Functions, model.FunctionRecord{
			Name:         f.Name,
			Kind:         model.FunctionKind,
			Selector:     selector.FunctionSelector(f.Name, f.Inputs),
			Inputs:       f.Inputs,
			Outputs:      f.Outputs,
			Mutability:   f.Mutability,
			Visibility:   f.Visibility,
			Modifiers:    f.Modifiers,
			IsPayable:    f.Mutability == model.Payable,
			Roles:        functionRoles,
			FlowCategory: model.DeriveFlowCategory(functionRoles, f.Mutability),
			Calls:        edges.Calls[i],
		})
		scanned = append(scanned, security.Function{Name: f.Name, Mutability: f.Mutability, Scope: f.Scope})
	}

	for i, e := range decls.Events {
		contract.Events = append(contract.Events, model.EventRecord{
			Name:      e.Name,
			Topic:     selector.EventTopic(e.Name, e.Inputs, e.Anonymous),
			Inputs:    e.Inputs,
			Anonymous: e.Anonymous,
			EmittedBy: edges.EmittedBy[i],
		})
	}

	for i, v := range decls.StateVariables {
		contract.StateVariables = append(contract.StateVariables, model.StateVariableRecord{
			Name:         v.Name,
			Type:         v.Type,
			Visibility:   v.Visibility,
			IsConstant:   v.IsConstant,
			InitialValue: v.InitialValue,
			ReadBy:       edges.ReadBy[i],
			WrittenBy:    edges.WrittenBy[i],
		})
	}

	findings := security.Scan(decls.Text, scanned)
	contract.SecurityFindings = security.Findings(findings)
	contract.Roles = table.Records()
	contract.HasOwnership = model.AnyFunctionHasRole(contract.Functions, model.RoleOwner)
	contract.HasAccessControl = model.AnyFunctionHasRole(contract.Functions, model.RoleAdmin)

	log.Debugf("analyzed %s (%s mode): %d functions, %d events, %d state variables, %d findings",
		contract.Name, contract.Mode, len(contract.Functions), len(contract.Events),
		len(contract.StateVariables), len(contract.SecurityFindings))

	return &Analysis{Contract: contract, Declarations: decls, Findings: findings}
}
