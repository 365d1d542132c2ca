package nameparse

import "testing"

func TestParseNameMovie(t *testing.T) {
	got := ParseName("Blade.Runner.1982.2160p.REMUX.mkv")

	if got.Type != "movie" {
		t.Errorf("Type = %q, want movie", got.Type)
	}
	if got.Title != "Blade Runner" {
		t.Errorf("Title = %q, want %q", got.Title, "Blade Runner")
	}
	if got.Year != 1982 {
		t.Errorf("Year = %d, want 1982", got.Year)
	}
	if got.Season != 0 || got.Episode != 0 {
		t.Errorf("movie parsed season/episode: %d/%d", got.Season, got.Episode)
	}
}

func TestParseNameEpisode(t *testing.T) {
	got := ParseName("Severance.S02E03.1080p.WEB-DL.mkv")

	if got.Type != "tv" {
		t.Errorf("Type = %q, want tv", got.Type)
	}
	if got.Title != "Severance" {
		t.Errorf("Title = %q, want Severance", got.Title)
	}
	if got.Season != 2 || got.Episode != 3 {
		t.Errorf("season/episode = %d/%d, want 2/3", got.Season, got.Episode)
	}
}

func TestParseNameCrossNotation(t *testing.T) {
	got := ParseName("The.Wire.3x08.HDTV.avi")

	if got.Type != "tv" || got.Season != 3 || got.Episode != 8 {
		t.Errorf("parsed %+v, want tv S3E8", got)
	}
	if got.Title != "The Wire" {
		t.Errorf("Title = %q, want The Wire", got.Title)
	}
}

func TestParseNameSeasonPack(t *testing.T) {
	got := ParseName("Severance.S01.2160p.WEB-DL")

	if got.Type != "tv" || got.Season != 1 || got.Episode != 0 {
		t.Errorf("parsed %+v, want tv season 1 without episode", got)
	}
}

func TestParseNameSeasonWord(t *testing.T) {
	got := ParseName("The Bear Season 2 COMPLETE")

	if got.Type != "tv" || got.Season != 2 {
		t.Errorf("parsed %+v, want tv season 2", got)
	}
	if got.Title != "The Bear" {
		t.Errorf("Title = %q, want The Bear", got.Title)
	}
}

func TestParseNameUnderscoresAndDashes(t *testing.T) {
	got := ParseName("Some_Movie-Name.2019.BluRay.x264")

	if got.Title != "Some Movie Name" {
		t.Errorf("Title = %q, want Some Movie Name", got.Title)
	}
	if got.Year != 2019 {
		t.Errorf("Year = %d, want 2019", got.Year)
	}
}

func TestIsVideoFile(t *testing.T) {
	cases := map[string]bool{
		"a.mkv":       true,
		"b.MP4":       true,
		"c.srt":       false,
		"noextension": false,
		"d.sample.ts": true,
	}
	for name, want := range cases {
		if got := IsVideoFile(name); got != want {
			t.Errorf("IsVideoFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestParseEpisodes(t *testing.T) {
	files := []TorrentFile{
		{Path: "Show/Show.S01E02.1080p.mkv", Bytes: 200},
		{Path: "Show/Show.S01E01.1080p.mkv", Bytes: 100},
		{Path: "Show/sample.srt", Bytes: 1},
		{Path: "Show/Episode.5.mkv", Bytes: 50},
	}

	eps := ParseEpisodes(files)
	if len(eps) != 3 {
		t.Fatalf("parsed %d episodes, want 3", len(eps))
	}

	// Episode without a season number sorts ahead of S01.
	if eps[0].Episode != 5 || eps[0].Season != 0 {
		t.Errorf("eps[0] = %+v, want episode 5 without season", eps[0])
	}
	if eps[1].Season != 1 || eps[1].Episode != 1 {
		t.Errorf("eps[1] = %+v, want S01E01", eps[1])
	}
	if eps[2].Season != 1 || eps[2].Episode != 2 {
		t.Errorf("eps[2] = %+v, want S01E02", eps[2])
	}

	if eps[1].FriendlyName != "Show" {
		t.Errorf("FriendlyName = %q, want Show", eps[1].FriendlyName)
	}
	if eps[1].Size != 100 {
		t.Errorf("Size = %d, want 100", eps[1].Size)
	}
}
