package catalog

import (
	"fmt"
	"strings"
)

// DisplayTitle composes a human-readable label for an item: the enriched
// title when available, falling back to the parsed title and then the raw
// filename, with a year in parentheses and an S01E02 or Season suffix for TV
// entries.
func DisplayTitle(item *Item) string {
	title := item.Title
	if item.TMDB != nil && item.TMDB.Title != "" {
		title = item.TMDB.Title
	}
	if title == "" {
		title = item.Filename
	}

	var b strings.Builder
	b.WriteString(title)

	year := ""
	if item.TMDB != nil && item.TMDB.Year != "" {
		year = item.TMDB.Year
	} else if item.Year > 0 {
		year = fmt.Sprintf("%d", item.Year)
	}
	if year != "" {
		fmt.Fprintf(&b, " (%s)", year)
	}

	if item.Type == TypeTV {
		switch {
		case item.Season > 0 && item.Episode > 0:
			fmt.Fprintf(&b, " S%02dE%02d", item.Season, item.Episode)
		case item.Season > 0:
			fmt.Fprintf(&b, " Season %d", item.Season)
		}
	}
	return b.String()
}

// EpisodeLabel composes a label for one pack episode: "S01E02" when the
// season is known, "Episode 2" otherwise, followed by the friendly name or
// filename.
func EpisodeLabel(ep *Episode) string {
	var prefix string
	switch {
	case ep.Season > 0 && ep.Episode > 0:
		prefix = fmt.Sprintf("S%02dE%02d", ep.Season, ep.Episode)
	case ep.Episode > 0:
		prefix = fmt.Sprintf("Episode %d", ep.Episode)
	}

	name := ep.FriendlyName
	if name == "" {
		name = ep.Filename
	}

	if prefix == "" {
		return name
	}
	if name == "" {
		return prefix
	}
	return prefix + " - " + name
}
