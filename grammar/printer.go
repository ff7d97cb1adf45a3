package grammar

import (
	"strings"

	"contractlens/internal/model"
)

func (v *VersionExpr) String() string {
	parts := make([]string, 0, len(v.Ranges))
	for _, r := range v.Ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " || ")
}

func (r *VersionRange) String() string {
	parts := make([]string, 0, len(r.Comparators))
	for _, c := range r.Comparators {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

func (c *Comparator) String() string {
	return c.Operator + c.Version
}

// Exact reports whether the comparator names a single concrete version.
func (c *Comparator) Exact() bool {
	if c.Operator != "" && c.Operator != "=" {
		return false
	}
	return !strings.ContainsAny(c.Version, "xX*")
}

// Pinned reports whether every comparator of every range is exact.
func (v *VersionExpr) Pinned() bool {
	for _, r := range v.Ranges {
		for _, c := range r.Comparators {
			if !c.Exact() {
				return false
			}
		}
	}
	return len(v.Ranges) > 0
}

// ToModel converts the parsed expression into the model representation.
func (v *VersionExpr) ToModel() []model.VersionRange {
	ranges := make([]model.VersionRange, 0, len(v.Ranges))
	for _, r := range v.Ranges {
		mr := model.VersionRange{Comparators: make([]model.VersionComparator, 0, len(r.Comparators))}
		for _, c := range r.Comparators {
			mr.Comparators = append(mr.Comparators, model.VersionComparator{
				Operator: c.Operator,
				Version:  c.Version,
			})
		}
		ranges = append(ranges, mr)
	}
	return ranges
}
