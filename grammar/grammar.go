package grammar

// VersionExpr represents a full compiler version requirement
// Example: "^0.8.0", ">=0.7.0 <0.9.0", "0.8.19 || ^0.8.20"
type VersionExpr struct {
	Ranges []*VersionRange `parser:"@@ ( Or @@ )*"`
}

// VersionRange represents one alternative of a requirement; every comparator must hold
// Example: ">=0.7.0 <0.9.0"
type VersionRange struct {
	Comparators []*Comparator `parser:"@@+"`
}

// Comparator represents an optional operator applied to a version
// Example: "^0.8.0", "0.8.19"
type Comparator struct {
	Operator string `parser:"@Operator?"`
	Version  string `parser:"@Version"`
}
