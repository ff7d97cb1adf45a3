package model

// AnalyzedContract is the aggregate produced by one analysis run.
// It is built once from a single text input and never updated afterwards.
type AnalyzedContract struct {
	Name               string                `json:"name"`
	Mode               string                `json:"mode"`
	Version            string                `json:"version"`
	VersionConstraints []VersionRange        `json:"versionConstraints,omitempty"`
	License            string                `json:"license,omitempty"`
	InheritsFrom       []string              `json:"inheritsFrom"`
	Modifiers          []string              `json:"modifiers"`
	Functions          []FunctionRecord      `json:"functions"`
	Events             []EventRecord         `json:"events"`
	StateVariables     []StateVariableRecord `json:"stateVariables"`
	Roles              []RoleRecord          `json:"roles"`
	SecurityFindings   []SecurityFinding     `json:"securityFindings"`
	HasOwnership       bool                  `json:"hasOwnership"`
	HasAccessControl   bool                  `json:"hasAccessControl"`
}

// Parameter represents a typed name pair in a parameter or return list
// Example: "address indexed from", "uint256 amount", "uint256"
type Parameter struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed,omitempty"`
}

// FunctionRecord represents a function declaration and everything derived from it
// Example: "function withdraw(uint256 amount) external onlyOwner { ... }"
type FunctionRecord struct {
	Name         string       `json:"name"`
	Kind         string       `json:"kind"`
	Selector     string       `json:"selector,omitempty"`
	Inputs       []Parameter  `json:"inputs"`
	Outputs      []Parameter  `json:"outputs"`
	Mutability   Mutability   `json:"mutability"`
	Visibility   Visibility   `json:"visibility"`
	Modifiers    []string     `json:"modifiers"`
	IsPayable    bool         `json:"isPayable"`
	Roles        []string     `json:"roles"`
	FlowCategory FlowCategory `json:"flowCategory"`
	Calls        []string     `json:"calls"`
}

// EventRecord represents an event declaration
// Example: "event Transfer(address indexed from, address indexed to, uint256 value);"
type EventRecord struct {
	Name      string      `json:"name"`
	Topic     string      `json:"topic,omitempty"`
	Inputs    []Parameter `json:"inputs"`
	Anonymous bool        `json:"anonymous"`
	EmittedBy []string    `json:"emittedBy"`
}

// StateVariableRecord represents a contract-level storage declaration
// Example: "uint256 public constant MAX_SUPPLY = 1000;"
type StateVariableRecord struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Visibility   string   `json:"visibility"`
	IsConstant   bool     `json:"isConstant"`
	InitialValue string   `json:"initialValue,omitempty"`
	ReadBy       []string `json:"readBy"`
	WrittenBy    []string `json:"writtenBy"`
}

// SecurityFinding is a single heuristic observation.
type SecurityFinding struct {
	Severity          Severity `json:"severity"`
	Description       string   `json:"description"`
	Location          string   `json:"location"`
	Recommendation    string   `json:"recommendation"`
	AffectedFunctions []string `json:"affectedFunctions"`
}

// RoleRecord groups functions by access-control role.
// Permissions is reserved and always empty.
type RoleRecord struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	Functions   []string `json:"functions"`
}

// VersionRange is one alternative of a compiler version requirement.
// Example: ">=0.7.0 <0.9.0" has two comparators
type VersionRange struct {
	Comparators []VersionComparator `json:"comparators"`
}

// VersionComparator pairs an operator with a version.
// An empty operator means an exact match.
type VersionComparator struct {
	Operator string `json:"operator,omitempty"`
	Version  string `json:"version"`
}
