package catalog

import "strings"

// FilterAll matches every media type.
const FilterAll = "all"

// ApplyFilters returns the subsequence of cat.Items matching the type filter
// and free-text query, preserving original order. The query matches when the
// item's index entry contains it as a lowercased substring; there is no
// tokenization or ranking. Index must be the slice BuildIndex produced for
// this catalog; the function re-derives nothing, so it is cheap enough to run
// on every keystroke.
func ApplyFilters(cat *Catalog, index []string, typeFilter, query string) []Item {
	if cat == nil {
		return nil
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matched := make([]Item, 0, len(cat.Items))
	for i, item := range cat.Items {
		if typeFilter != FilterAll && typeFilter != "" && item.Type != typeFilter {
			continue
		}
		if needle != "" {
			if i >= len(index) || !strings.Contains(index[i], needle) {
				continue
			}
		}
		matched = append(matched, item)
	}
	return matched
}
