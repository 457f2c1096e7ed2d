package filter

import "github.com/five82/lair/internal/catalog"

// Types returns the distinct item types in first-seen order.
func Types(items []catalog.Item) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		if it.Type == "" {
			continue
		}
		if _, ok := seen[it.Type]; ok {
			continue
		}
		seen[it.Type] = struct{}{}
		out = append(out, it.Type)
	}
	return out
}

// Abilities returns the distinct abilities across items in first-seen order.
func Abilities(items []catalog.Item) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range items {
		for _, a := range it.Abilities {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}

// Next returns the value after current in the cycle All, values[0], ...,
// values[n-1], All. Unknown values restart the cycle.
func Next(current string, values []string) string {
	if current == All {
		if len(values) == 0 {
			return All
		}
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i+1 < len(values) {
				return values[i+1]
			}
			return All
		}
	}
	return All
}
