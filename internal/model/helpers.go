package model

import "slices"

// HasRole reports whether the function carries the given role.
func (f *FunctionRecord) HasRole(role string) bool {
	return slices.Contains(f.Roles, role)
}

// DeriveFlowCategory computes the visual grouping of a function from its roles
// and mutability. Owner wins over admin; view functions without either are system.
func DeriveFlowCategory(roles []string, mutability Mutability) FlowCategory {
	switch {
	case slices.Contains(roles, RoleOwner):
		return FlowOwner
	case slices.Contains(roles, RoleAdmin):
		return FlowAdmin
	case mutability == View:
		return FlowSystem
	default:
		return FlowUser
	}
}

// FunctionIndex returns the index of the first function with the given name, or -1.
func (c *AnalyzedContract) FunctionIndex(name string) int {
	for i := range c.Functions {
		if c.Functions[i].Name == name {
			return i
		}
	}
	return -1
}

// FunctionNames returns the names of all functions in declaration order.
func (c *AnalyzedContract) FunctionNames() []string {
	names := make([]string, 0, len(c.Functions))
	for _, f := range c.Functions {
		names = append(names, f.Name)
	}
	return names
}

// AnyFunctionHasRole backs the HasOwnership and HasAccessControl flags.
func AnyFunctionHasRole(functions []FunctionRecord, role string) bool {
	for i := range functions {
		if functions[i].HasRole(role) {
			return true
		}
	}
	return false
}

// IsWriter reports whether the named function writes at least one state variable.
func (c *AnalyzedContract) IsWriter(name string) bool {
	for _, v := range c.StateVariables {
		if slices.Contains(v.WrittenBy, name) {
			return true
		}
	}
	return false
}
