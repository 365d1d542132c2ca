package nameparse

import (
	"path"
	"sort"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"reelvault/internal/catalog"
)

// TorrentFile is the subset of the provider's file listing the episode parser
// needs.
type TorrentFile struct {
	Path     string
	Bytes    int64
	Selected bool
}

var titleCaser = cases.Title(language.Und)

// ParseEpisodes extracts episode entries from a torrent's selected video
// files, sorted by season then episode. Non-video files are skipped.
func ParseEpisodes(files []TorrentFile) []catalog.Episode {
	episodes := make([]catalog.Episode, 0, len(files))
	for _, f := range files {
		name := path.Base(f.Path)
		if !IsVideoFile(name) {
			continue
		}

		ep := catalog.Episode{
			Filename: name,
			Path:     f.Path,
			Size:     f.Bytes,
		}

		if m := episodePattern.FindStringSubmatch(name); m != nil {
			switch {
			case m[1] != "" && m[2] != "":
				ep.Season, _ = strconv.Atoi(m[1])
				ep.Episode, _ = strconv.Atoi(m[2])
			case m[3] != "" && m[4] != "":
				ep.Season, _ = strconv.Atoi(m[3])
				ep.Episode, _ = strconv.Atoi(m[4])
			case m[5] != "":
				ep.Episode, _ = strconv.Atoi(m[5])
			}
		}

		if title := ParseName(name).Title; title != "" {
			ep.FriendlyName = titleCaser.String(title)
		}

		episodes = append(episodes, ep)
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		if episodes[i].Season != episodes[j].Season {
			return episodes[i].Season < episodes[j].Season
		}
		return episodes[i].Episode < episodes[j].Episode
	})
	return episodes
}
