package nameparse

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedName is the structured result of parsing a release name.
type ParsedName struct {
	Original string
	Title    string
	Type     string // "movie" or "tv"
	Year     int
	Season   int
	Episode  int
}

var (
	qualityTags = regexp.MustCompile(`(?i)[\.\s\-\[]*(720p|1080p|2160p|4k|HDRip|BRRip|BluRay|BDRip|WEB-?DL|` +
		`WEB-?Rip|HDTV|DVDRip|DVDScr|CAM|TS|REMUX|x264|x265|h\.?264|h\.?265|` +
		`HEVC|AAC|AC3|DTS|FLAC|ATMOS|10bit|HDR|DV|Dual[\.\s]?Audio|Multi|` +
		`REPACK|PROPER|EXTENDED|UNRATED|Directors[\.\s]?Cut)[\.\s\-\]]*`)

	// Alternatives ordered most to least specific: S01E01, 1x01, S01, Season 1.
	seasonEpisode = regexp.MustCompile(`[Ss](\d{1,2})[Ee](\d{1,3})` +
		`|(\d{1,2})x(\d{1,3})` +
		`|[Ss](\d{1,2})` +
		`|[Ss]eason[\.\s]?(\d{1,2})`)

	episodePattern = regexp.MustCompile(`[Ss](\d{1,2})[Ee](\d{1,3})` +
		`|(\d{1,2})x(\d{1,3})` +
		`|[Ee](?:pisode)?[\.\s]?(\d{1,3})`)

	yearPattern = regexp.MustCompile(`[\.\s\(]*((?:19|20)\d{2})[\.\s\)]*`)

	separators   = regexp.MustCompile(`[\.\-_]`)
	trailingJunk = regexp.MustCompile(`[\s\-]+$`)
)

var videoExtensions = map[string]struct{}{
	".mkv": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".flv": {},
	".webm": {}, ".m4v": {}, ".ts": {}, ".mpg": {}, ".mpeg": {},
}

// IsVideoFile reports whether the filename carries a known video extension.
func IsVideoFile(name string) bool {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return false
	}
	_, ok := videoExtensions[strings.ToLower(name[dot:])]
	return ok
}

// ParseName extracts title, media type, year, and season/episode numbers from
// a release name. Anything with a season or episode marker is TV; everything
// else is a movie.
func ParseName(name string) ParsedName {
	result := ParsedName{Original: name, Type: "movie"}

	if m := yearPattern.FindStringSubmatch(name); m != nil {
		result.Year, _ = strconv.Atoi(m[1])
	}

	if m := seasonEpisode.FindStringSubmatch(name); m != nil {
		result.Type = "tv"
		switch {
		case m[1] != "" && m[2] != "":
			result.Season, _ = strconv.Atoi(m[1])
			result.Episode, _ = strconv.Atoi(m[2])
		case m[3] != "" && m[4] != "":
			result.Season, _ = strconv.Atoi(m[3])
			result.Episode, _ = strconv.Atoi(m[4])
		case m[5] != "":
			result.Season, _ = strconv.Atoi(m[5])
		case m[6] != "":
			result.Season, _ = strconv.Atoi(m[6])
		}
	}

	result.Title = cleanTitle(name)
	return result
}

// cleanTitle keeps everything before the earliest quality tag, season marker,
// or year, then normalizes separators to spaces.
func cleanTitle(name string) string {
	clean := stripVideoExtension(name)

	cut := -1
	for _, pattern := range []*regexp.Regexp{qualityTags, seasonEpisode, yearPattern} {
		if loc := pattern.FindStringIndex(clean); loc != nil && loc[0] > 0 {
			if cut < 0 || loc[0] < cut {
				cut = loc[0]
			}
		}
	}
	if cut > 0 {
		clean = clean[:cut]
	}

	clean = separators.ReplaceAllString(clean, " ")
	clean = strings.TrimSpace(clean)
	return trailingJunk.ReplaceAllString(clean, "")
}

func stripVideoExtension(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot < 0 {
		return name
	}
	if _, ok := videoExtensions[strings.ToLower(name[dot:])]; ok {
		return name[:dot]
	}
	return name
}
