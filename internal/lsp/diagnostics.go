package lsp

import (
	stderrors "errors"

	"contractlens/internal/errors"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// collectDiagnostics turns the findings of a document into LSP diagnostics.
// A rejected document yields one diagnostic at the start of the file, except
// for blank text, which yields none.
func collectDiagnostics(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	if doc.err != nil {
		var formatErr *errors.FormatError
		if stderrors.As(doc.err, &formatErr) && formatErr.Code != errors.ErrorEmptyInput {
			diagnostics = append(diagnostics, formatErrorDiagnostic(formatErr))
		}
		return diagnostics
	}

	for _, d := range doc.analysis.Diagnostics() {
		diagnostics = append(diagnostics, ConvertDiagnostic(d))
	}
	return diagnostics
}

// ConvertDiagnostic maps a reporter diagnostic onto the LSP wire type.
// Notes and help text are appended to the message.
func ConvertDiagnostic(d errors.Diagnostic) protocol.Diagnostic {
	line := uint32(max(0, d.Position.Line-1))
	start := uint32(max(0, d.Position.Column-1))
	length := uint32(max(1, d.Length))

	message := d.Message
	for _, note := range d.Notes {
		message += "\nnote: " + note
	}
	if d.HelpText != "" {
		message += "\nhelp: " + d.HelpText
	}

	diagnostic := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: ptrSeverity(severityFor(d.Level)),
		Source:   ptrString(serverName),
		Message:  message,
	}
	if d.Code != "" {
		diagnostic.Code = &protocol.IntegerOrString{Value: d.Code}
	}
	return diagnostic
}

func formatErrorDiagnostic(err *errors.FormatError) protocol.Diagnostic {
	d := errors.NewDiagnostic(errors.Error, err.Code, err.Message, errors.Position{Line: 1, Column: 1}).
		WithHelp(errors.GetErrorDescription(err.Code)).
		Build()
	return ConvertDiagnostic(d)
}

func severityFor(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Error:
		return protocol.DiagnosticSeverityError
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}
