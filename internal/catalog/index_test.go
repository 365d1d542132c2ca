package catalog

import (
	"strings"
	"testing"
)

func sampleCatalog() *Catalog {
	return &Catalog{
		Version: 1,
		Updated: "2026-01-02T03:04:05Z",
		RDKey:   "token",
		Items: []Item{
			{
				Type:     TypeMovie,
				Title:    "Blade Runner",
				Filename: "Blade.Runner.1982.2160p.REMUX.mkv",
				Year:     1982,
				TMDB: &Metadata{
					Title:    "Blade Runner",
					Overview: "A blade runner must pursue replicants.",
					Genres:   []string{"Sci-Fi", "Thriller"},
					Year:     "1982",
				},
			},
			{
				Type:     TypeTV,
				Title:    "Severance",
				Filename: "Severance.S01.1080p.WEB-DL",
				Season:   1,
				IsPack:   true,
				Episodes: []Episode{
					{Filename: "Severance.S01E01.mkv", FriendlyName: "Severance", Season: 1, Episode: 1},
					{Filename: "Severance.S01E02.mkv", FriendlyName: "Severance", Season: 1, Episode: 2},
				},
			},
			{
				Type:     TypeMovie,
				Title:    "Heat",
				Filename: "Heat.1995.1080p.BluRay.mkv",
				Year:     1995,
			},
		},
	}
}

func TestBuildIndexAlignedAndLowercased(t *testing.T) {
	cat := sampleCatalog()
	index := BuildIndex(cat)

	if len(index) != len(cat.Items) {
		t.Fatalf("index length = %d, want %d", len(index), len(cat.Items))
	}
	for i, entry := range index {
		if entry != strings.ToLower(entry) {
			t.Errorf("entry %d is not lowercased: %q", i, entry)
		}
	}

	if !strings.Contains(index[0], "blade runner") {
		t.Errorf("entry 0 missing title: %q", index[0])
	}
	if !strings.Contains(index[0], "sci-fi") {
		t.Errorf("entry 0 missing genre: %q", index[0])
	}
	if !strings.Contains(index[0], "1982") {
		t.Errorf("entry 0 missing year: %q", index[0])
	}
	if !strings.Contains(index[1], "severance.s01e02.mkv") {
		t.Errorf("pack entry missing episode filename: %q", index[1])
	}
}

func TestBuildIndexDeterministic(t *testing.T) {
	cat := sampleCatalog()
	first := BuildIndex(cat)
	second := BuildIndex(cat)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs between builds:\n%q\n%q", i, first[i], second[i])
		}
	}
}

func TestBuildIndexDropsEmptyFields(t *testing.T) {
	cat := &Catalog{Items: []Item{{Type: TypeMovie, Title: "Solo"}}}
	index := BuildIndex(cat)

	if index[0] != "solo" {
		t.Errorf("entry = %q, want %q", index[0], "solo")
	}
}

func TestBuildIndexDoesNotMutateCatalog(t *testing.T) {
	cat := sampleCatalog()
	before := cat.Items[0].Title
	BuildIndex(cat)
	if cat.Items[0].Title != before {
		t.Error("BuildIndex mutated the source catalog")
	}
}
