package errors

import "fmt"

// SelectionError is returned when a diagram or node selection cannot be resolved
type SelectionError struct {
	Code    string
	Message string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// UnknownDiagram creates the error for an unsupported diagram mode
func UnknownDiagram(mode string) *SelectionError {
	return &SelectionError{
		Code:    ErrorUnknownDiagram,
		Message: fmt.Sprintf("unknown diagram mode %q (expected flow, class or state)", mode),
	}
}

// UnknownNode creates the error for a node id that names no function
func UnknownNode(id string, functions int) *SelectionError {
	return &SelectionError{
		Code:    ErrorUnknownNode,
		Message: fmt.Sprintf("node %q does not refer to one of %d functions", id, functions),
	}
}
