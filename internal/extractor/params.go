package extractor

import (
	"strings"

	"contractlens/internal/model"
)

// parseParams splits a parameter list on commas, then on whitespace. The first
// token is the type and the last token the name; a lone type has an empty name.
// Data location keywords in between are dropped.
func parseParams(list string) []model.Parameter {
	params := []model.Parameter{}
	for _, raw := range strings.Split(list, ",") {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		p := model.Parameter{Type: fields[0]}
		if len(fields) > 1 {
			p.Name = fields[len(fields)-1]
		}
		params = append(params, p)
	}
	return params
}

// parseEventParams is parseParams with support for the "indexed" keyword.
func parseEventParams(list string) []model.Parameter {
	params := []model.Parameter{}
	for _, raw := range strings.Split(list, ",") {
		fields := strings.Fields(raw)
		indexed := false
		kept := fields[:0]
		for _, f := range fields {
			if f == "indexed" {
				indexed = true
				continue
			}
			kept = append(kept, f)
		}
		if len(kept) == 0 {
			continue
		}
		p := model.Parameter{Type: kept[0], Indexed: indexed}
		if len(kept) > 1 {
			p.Name = kept[len(kept)-1]
		}
		params = append(params, p)
	}
	return params
}

// splitInheritance turns "A, B,C " into [A B C].
func splitInheritance(list string) []string {
	parents := []string{}
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			parents = append(parents, p)
		}
	}
	return parents
}
