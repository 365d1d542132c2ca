package catalog

import (
	"strconv"
	"strings"
)

// BuildIndex derives one lowercased search string per item, order-aligned
// with cat.Items. Entries concatenate the raw and enriched titles, filename,
// overview, genres, and years, plus every episode filename and friendly name
// for packs, joined by single spaces with empty fields dropped. The result is
// purely derived; the catalog is never mutated.
func BuildIndex(cat *Catalog) []string {
	if cat == nil {
		return nil
	}
	index := make([]string, len(cat.Items))
	for i := range cat.Items {
		index[i] = indexEntry(&cat.Items[i])
	}
	return index
}

func indexEntry(item *Item) string {
	fields := make([]string, 0, 8+2*len(item.Episodes))
	fields = append(fields, item.Title, item.Filename)

	if item.TMDB != nil {
		fields = append(fields, item.TMDB.Title, item.TMDB.Overview)
		fields = append(fields, item.TMDB.Genres...)
	}
	if item.Year > 0 {
		fields = append(fields, strconv.Itoa(item.Year))
	}
	if item.TMDB != nil && item.TMDB.Year != "" {
		fields = append(fields, item.TMDB.Year)
	}
	if item.IsPack {
		for _, ep := range item.Episodes {
			fields = append(fields, ep.Filename, ep.FriendlyName)
		}
	}

	nonEmpty := fields[:0]
	for _, f := range fields {
		if f != "" {
			nonEmpty = append(nonEmpty, f)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}
