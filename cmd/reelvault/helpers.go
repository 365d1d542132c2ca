package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"reelvault/internal/catalog"
	"reelvault/internal/library"
)

// findItem locates a catalog item by exact torrent ID, then by the same
// matching rule the search command uses, taking the first hit.
func findItem(lib *library.Session, ref string) (*catalog.Item, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("item reference is required")
	}

	cat := lib.Catalog()
	for i := range cat.Items {
		if cat.Items[i].ID == ref {
			return &cat.Items[i], nil
		}
	}

	matches, err := lib.Search(catalog.FilterAll, ref)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no catalog item matches %q", ref)
	}
	return &matches[0], nil
}

var episodeRef = regexp.MustCompile(`(?i)^(?:s(\d{1,2})e(\d{1,3})|(\d{1,2})x(\d{1,3})|e?(\d{1,3}))$`)

// parseEpisodeRef accepts S01E02, 1x02, E2, or a bare episode number.
// A zero season means "any season".
func parseEpisodeRef(ref string) (season, episode int, err error) {
	m := episodeRef.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return 0, 0, fmt.Errorf("invalid episode reference %q (use S01E02, 1x02, or an episode number)", ref)
	}
	switch {
	case m[1] != "":
		season, _ = strconv.Atoi(m[1])
		episode, _ = strconv.Atoi(m[2])
	case m[3] != "":
		season, _ = strconv.Atoi(m[3])
		episode, _ = strconv.Atoi(m[4])
	default:
		episode, _ = strconv.Atoi(m[5])
	}
	return season, episode, nil
}

// findEpisode returns the index of the referenced episode within a pack.
func findEpisode(item *catalog.Item, ref string) (int, error) {
	season, episode, err := parseEpisodeRef(ref)
	if err != nil {
		return 0, err
	}
	for i := range item.Episodes {
		ep := &item.Episodes[i]
		if ep.Episode != episode {
			continue
		}
		if season != 0 && ep.Season != season {
			continue
		}
		return i, nil
	}
	return 0, fmt.Errorf("no episode %s in %s", ref, catalog.DisplayTitle(item))
}

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB"}

func formatSize(bytes int64) string {
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, sizeUnits[0])
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}
