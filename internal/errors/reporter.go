package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"contractlens/internal/model"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Position is a location in the analyzed text. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

// PositionAt converts a byte offset into a line/column position.
// Columns count runes, not bytes.
func PositionAt(source string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line, column := 1, 1
	for _, r := range source[:offset] {
		if r == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return Position{Offset: offset, Line: line, Column: column}
}

// Diagnostic is a structured message with source context
type Diagnostic struct {
	Level    ErrorLevel
	Code     string   // Code like E0100 or S0002
	Message  string   // Primary message
	Position Position // Location in source
	Length   int      // Length of the highlighted region
	Notes    []string // Additional context notes
	HelpText string   // Help text for the diagnostic
}

// DiagnosticBuilder provides a fluent interface for creating diagnostics
type DiagnosticBuilder struct {
	d Diagnostic
}

// NewDiagnostic creates a new diagnostic builder
func NewDiagnostic(level ErrorLevel, code, message string, pos Position) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		d: Diagnostic{
			Level:    level,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the highlighted span
func (b *DiagnosticBuilder) WithLength(length int) *DiagnosticBuilder {
	b.d.Length = length
	return b
}

// WithNote adds a note
func (b *DiagnosticBuilder) WithNote(note string) *DiagnosticBuilder {
	b.d.Notes = append(b.d.Notes, note)
	return b
}

// WithHelp sets the help text
func (b *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	b.d.HelpText = help
	return b
}

// Build returns the completed diagnostic
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.d
}

// LevelForSeverity maps a finding severity onto a diagnostic level
func LevelForSeverity(s model.Severity) ErrorLevel {
	switch s {
	case model.High:
		return Error
	case model.Medium:
		return Warning
	case model.Low:
		return Note
	default:
		return Help
	}
}

// FromFinding turns a security finding into a diagnostic anchored at pos
func FromFinding(code string, f model.SecurityFinding, pos Position, length int) Diagnostic {
	b := NewDiagnostic(LevelForSeverity(f.Severity), code, f.Description, pos).
		WithLength(length).
		WithHelp(f.Recommendation)
	if len(f.AffectedFunctions) > 0 {
		b.WithNote("affected functions: " + strings.Join(f.AffectedFunctions, ", "))
	}
	return b.Build()
}

// ErrorReporter handles consistent diagnostic formatting
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatFormatError renders a FormatError, which has no position in the text
func (er *ErrorReporter) FormatFormatError(err *FormatError) string {
	levelColor := er.getLevelColor(Error)
	dim := color.New(color.Faint).SprintFunc()
	helpColor := color.New(color.FgGreen).SprintFunc()

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(Error)), err.Code, err.Message))
	result.WriteString(fmt.Sprintf("    %s %s\n", dim("-->"), er.filename))
	result.WriteString(fmt.Sprintf("    %s %s\n", dim("│"), err.Summary))
	result.WriteString(fmt.Sprintf("    %s %s %s\n\n", dim("│"), helpColor("help:"), GetErrorDescription(err.Code)))
	return result.String()
}

// FormatError formats a diagnostic with rustc-like styling
func (er *ErrorReporter) FormatError(err Diagnostic) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[S0002]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))

	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	// Line before, if any
	if err.Position.Line > 1 && err.Position.Line-1 < len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line-1)),
			dim("│"),
			er.lines[err.Position.Line-2]))
	}

	if err.Position.Line <= len(er.lines) && err.Position.Line > 0 {
		lineContent := er.lines[err.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
			dim("│"),
			lineContent))

		marker := er.createMarker(err.Position.Column, err.Length, err.Level)
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), marker))
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n",
			indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// getLevelColor returns the color function for a level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}

	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := er.getLevelColor(level)

	return spaces + markerColor(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
