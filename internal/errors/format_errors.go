package errors

import (
	"fmt"
	"strings"
)

const summaryLength = 60

// FormatError is returned when an input is neither an interface list nor
// source text with at least one recognizable declaration. No partial model
// accompanies it.
type FormatError struct {
	Code    string
	Message string
	Summary string // one-line excerpt of the offending text
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s (input: %s)", e.Code, e.Message, e.Summary)
}

// EmptyInput creates the error for blank input
func EmptyInput() *FormatError {
	return &FormatError{
		Code:    ErrorEmptyInput,
		Message: "invalid contract format: input is empty",
		Summary: "<empty>",
	}
}

// NotInterfaceList creates the error for JSON that is not an array of entries
func NotInterfaceList(text string, found string) *FormatError {
	return &FormatError{
		Code:    ErrorNotInterfaceList,
		Message: fmt.Sprintf("invalid contract format: expected a JSON array of interface entries, found %s", found),
		Summary: Summarize(text),
	}
}

// NoDeclarations creates the error for source text without any declaration
func NoDeclarations(text string) *FormatError {
	return &FormatError{
		Code:    ErrorNoDeclarations,
		Message: "invalid contract format: no contract, pragma, function, event, modifier or state variable found",
		Summary: Summarize(text),
	}
}

// InputTooLarge creates the error for inputs over the configured limit
func InputTooLarge(text string, limit int) *FormatError {
	return &FormatError{
		Code:    ErrorInputTooLarge,
		Message: fmt.Sprintf("input of %d bytes exceeds the limit of %d bytes", len(text), limit),
		Summary: Summarize(text),
	}
}

// Summarize collapses whitespace and truncates text for error messages
func Summarize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	if collapsed == "" {
		return "<empty>"
	}
	runes := []rune(collapsed)
	if len(runes) > summaryLength {
		return string(runes[:summaryLength]) + "..."
	}
	return collapsed
}

// InputFailure records why one named input of a batch failed
type InputFailure struct {
	Name string
	Err  error
}

// BatchError combines the failures of a batch in which no input succeeded
type BatchError struct {
	Code     string
	Failures []InputFailure
}

func (e *BatchError) Error() string {
	if e.Code == ErrorNothingToAnalyze {
		return "No contracts to analyze. Please add contract source code."
	}
	return CombineFailures(e.Failures)
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// CombineFailures renders one line per failed input
func CombineFailures(failures []InputFailure) string {
	var sb strings.Builder
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("Error analyzing %s: %s\n", f.Name, f.Err))
	}
	return sb.String()
}

// NothingToAnalyze creates the error for a batch without any non-empty input
func NothingToAnalyze() *BatchError {
	return &BatchError{Code: ErrorNothingToAnalyze}
}

// AllFailed creates the error for a batch in which every input failed
func AllFailed(failures []InputFailure) *BatchError {
	return &BatchError{Code: ErrorBatchFailed, Failures: failures}
}
