package perfume

import "strings"

// Filter returns the subset of perfumes matching both the category selection
// and the search term. Category "All" (or empty) matches every category. The
// search term matches case-insensitively against name or description. The
// input slice is never mutated, so the filter can be reapplied on every
// keystroke with the same result.
func Filter(perfumes []Perfume, category, search string) []Perfume {
	search = strings.ToLower(search)
	out := make([]Perfume, 0, len(perfumes))
	for _, p := range perfumes {
		if !matchesCategory(p, category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesCategory(p Perfume, category string) bool {
	return category == "" || category == CategoryAll || p.Category == category
}
