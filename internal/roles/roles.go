// Package roles assigns coarse access-control roles to functions.
package roles

import (
	"strings"

	"contractlens/internal/model"
)

// Guard tokens that mark owner-only and admin-only access.
const (
	OwnerGuard = "onlyOwner"
	AdminGuard = "onlyAdmin"
)

// Classify returns the roles of a function, given its name and scope text.
// Every rule is evaluated in order and may add one role; the result is never empty.
func Classify(name, scope string) []string {
	lower := strings.ToLower(name)
	roles := []string{}

	if strings.Contains(scope, OwnerGuard) || strings.Contains(lower, "owner") {
		roles = append(roles, model.RoleOwner)
	}
	if strings.Contains(scope, AdminGuard) || strings.Contains(lower, "admin") {
		roles = append(roles, model.RoleAdmin)
	}
	if strings.Contains(lower, "user") || strings.Contains(scope, "view") || strings.Contains(scope, "pure") {
		roles = append(roles, model.RoleUser)
	}

	if len(roles) == 0 {
		return []string{model.RoleUser}
	}
	return roles
}

// Table accumulates functions per role in first-seen order.
// A Table belongs to a single analysis run.
type Table struct {
	order  []string
	byRole map[string][]string
}

// NewTable creates an empty role table.
func NewTable() *Table {
	return &Table{byRole: map[string][]string{}}
}

// Add records function under each of its roles.
func (t *Table) Add(function string, roles []string) {
	for _, role := range roles {
		if _, ok := t.byRole[role]; !ok {
			t.order = append(t.order, role)
		}
		t.byRole[role] = append(t.byRole[role], function)
	}
}

// Records returns one RoleRecord per role seen so far.
func (t *Table) Records() []model.RoleRecord {
	records := make([]model.RoleRecord, 0, len(t.order))
	for _, role := range t.order {
		records = append(records, model.RoleRecord{
			Name:        role,
			Permissions: []string{},
			Functions:   append([]string(nil), t.byRole[role]...),
		})
	}
	return records
}
