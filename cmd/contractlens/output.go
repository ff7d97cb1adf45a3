package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"contractlens/internal/analyzer"
	"contractlens/internal/config"
	"contractlens/internal/diagram"
	"contractlens/internal/errors"
	"contractlens/internal/model"
	"github.com/fatih/color"
)

type printer struct {
	w        io.Writer
	cfg      *config.AppConfig
	function int
}

// jsonOutput is one line of -format json output
type jsonOutput struct {
	File     string                  `json:"file"`
	Contract *model.AnalyzedContract `json:"contract"`
	Diagram  diagram.Graph           `json:"diagram"`
}

func (p *printer) print(path string, result analyzer.Result) error {
	switch p.cfg.Output.Format {
	case "json":
		return p.printJSON(path, result.Contract)
	case "mermaid":
		return p.printMermaid(path, result.Contract)
	default:
		return p.printText(path, result)
	}
}

// graph is the function sub-flow when -function is set, else the configured diagram
func (p *printer) graph(c *model.AnalyzedContract) (diagram.Graph, error) {
	if p.function >= 0 {
		fn, _, err := diagram.ResolveFunction(c, fmt.Sprintf("%s-%d", diagram.KindFunction, p.function))
		if err != nil {
			return diagram.Graph{}, err
		}
		return diagram.BuildFunctionFlow(*fn), nil
	}
	return diagram.Build(c, p.cfg.Diagram.Mode)
}

func (p *printer) printJSON(path string, c *model.AnalyzedContract) error {
	g, err := p.graph(c)
	if err != nil {
		return err
	}
	data, err := json.Marshal(jsonOutput{File: path, Contract: c, Diagram: g})
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	_, err = fmt.Fprintln(p.w, string(data))
	return err
}

func (p *printer) printMermaid(path string, c *model.AnalyzedContract) error {
	g, err := p.graph(c)
	if err != nil {
		return err
	}
	rendered := diagram.RenderMermaid(g)
	if p.cfg.Output.Mermaid == "markdown" {
		_, err = fmt.Fprintf(p.w, "## %s\n\n%s\n", c.Name, diagram.MarkdownBlock(rendered))
		return err
	}
	_, err = fmt.Fprintf(p.w, "%%%% %s\n%s", path, rendered)
	return err
}

func (p *printer) printText(path string, result analyzer.Result) error {
	c := result.Contract
	if p.function >= len(c.Functions) {
		return errors.UnknownNode(fmt.Sprintf("%s-%d", diagram.KindFunction, p.function), len(c.Functions))
	}

	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	heading := color.New(color.FgCyan, color.Bold).SprintFunc()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", heading(c.Name), dim("("+path+", "+c.Mode+" mode)")))
	sb.WriteString(fmt.Sprintf("  version:  %s\n", c.Version))
	if c.License != "" {
		sb.WriteString(fmt.Sprintf("  license:  %s\n", c.License))
	}
	if len(c.InheritsFrom) > 0 {
		sb.WriteString(fmt.Sprintf("  inherits: %s\n", strings.Join(c.InheritsFrom, ", ")))
	}
	sb.WriteString(fmt.Sprintf("  ownable:  %t  access control: %t\n", c.HasOwnership, c.HasAccessControl))

	if len(c.StateVariables) > 0 {
		sb.WriteString(bold("State variables") + "\n")
		for _, v := range c.StateVariables {
			constant := ""
			if v.IsConstant {
				constant = " constant"
			}
			sb.WriteString(fmt.Sprintf("  %s %s%s %s\n", v.Type, v.Visibility, constant, v.Name))
		}
	}

	if len(c.Functions) > 0 {
		sb.WriteString(bold("Functions") + "\n")
		for i, f := range c.Functions {
			if p.function >= 0 && i != p.function {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %-3d %s %s %s %s %s\n", i, f.Selector, f.Name,
				f.Visibility, f.Mutability, dim("["+strings.Join(f.Roles, ", ")+"]")))
			if len(f.Modifiers) > 0 {
				sb.WriteString(fmt.Sprintf("        modifiers: %s\n", strings.Join(f.Modifiers, ", ")))
			}
			if len(f.Calls) > 0 {
				sb.WriteString(fmt.Sprintf("        calls:     %s\n", strings.Join(f.Calls, ", ")))
			}
		}
	}

	if len(c.Events) > 0 {
		sb.WriteString(bold("Events") + "\n")
		for _, e := range c.Events {
			emitted := ""
			if len(e.EmittedBy) > 0 {
				emitted = " " + dim("emitted by "+strings.Join(e.EmittedBy, ", "))
			}
			sb.WriteString(fmt.Sprintf("  %s%s\n", e.Name, emitted))
		}
	}

	if len(c.Roles) > 0 {
		sb.WriteString(bold("Roles") + "\n")
		for _, r := range c.Roles {
			sb.WriteString(fmt.Sprintf("  %-6s %s\n", r.Name, strings.Join(r.Functions, ", ")))
		}
	}

	flow := diagram.BuildFlowGraph(c)
	if cycles := diagram.CallCycles(&flow); len(cycles) > 0 {
		sb.WriteString(bold("Call cycles") + "\n")
		for _, cycle := range cycles {
			names := make([]string, 0, len(cycle))
			for _, id := range cycle {
				if fn, _, err := diagram.ResolveFunction(c, id); err == nil {
					names = append(names, fn.Name)
				}
			}
			sb.WriteString(fmt.Sprintf("  %s\n", strings.Join(names, ", ")))
		}
	}
	sb.WriteString("\n")

	reporter := errors.NewErrorReporter(path, result.Analysis.Declarations.Text)
	for _, d := range result.Analysis.Diagnostics() {
		sb.WriteString(reporter.FormatError(d))
	}

	_, err := io.WriteString(p.w, sb.String())
	return err
}
