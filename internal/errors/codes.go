package errors

// Error codes for contractlens
// These codes appear in CLI output and LSP diagnostics.
//
// Error code ranges:
// E0100-E0199: Input format errors
// E0200-E0299: Batch analysis errors
// E0300-E0399: Diagram selection errors
// S0001-S0099: Security heuristics

const (
	// E0100: Input is empty or whitespace only
	ErrorEmptyInput = "E0100"

	// E0101: Input is JSON but not a list of interface entries
	ErrorNotInterfaceList = "E0101"

	// E0102: Source text contains no recognizable declaration
	ErrorNoDeclarations = "E0102"

	// E0103: Input exceeds the configured size limit
	ErrorInputTooLarge = "E0103"

	// E0200: Every input of a batch failed
	ErrorBatchFailed = "E0200"

	// E0201: Batch contained no non-empty input
	ErrorNothingToAnalyze = "E0201"

	// E0300: Unknown diagram mode
	ErrorUnknownDiagram = "E0300"

	// E0301: Node id does not name a function
	ErrorUnknownNode = "E0301"

	// S0001: Payable function
	SecurityPayable = "S0001"

	// S0002: selfdestruct / suicide
	SecuritySelfDestruct = "S0002"

	// S0003: tx.origin authentication
	SecurityTxOrigin = "S0003"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorEmptyInput:
		return "Input is empty"
	case ErrorNotInterfaceList:
		return "JSON input must be an array of function and event entries"
	case ErrorNoDeclarations:
		return "Input is neither an interface list nor source text with declarations"
	case ErrorInputTooLarge:
		return "Input is larger than the configured limit"
	case ErrorBatchFailed:
		return "No input of the batch could be analyzed"
	case ErrorNothingToAnalyze:
		return "Batch contains no contract source"
	case ErrorUnknownDiagram:
		return "Diagram mode must be one of flow, class or state"
	case ErrorUnknownNode:
		return "Node id does not refer to a function of the contract"
	case SecurityPayable:
		return "Function accepts ether"
	case SecuritySelfDestruct:
		return "Contract can be destroyed"
	case SecurityTxOrigin:
		return "Authentication relies on tx.origin"
	default:
		return "Unknown error code"
	}
}
