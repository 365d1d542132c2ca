package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Blade Runner" {
			t.Errorf("query = %q", q.Get("query"))
		}
		if q.Get("year") != "1982" {
			t.Errorf("year = %q", q.Get("year"))
		}
		if q.Get("api_key") == "" {
			t.Error("api_key missing")
		}
		_ = json.NewEncoder(w).Encode(Response{
			Page: 1,
			Results: []Result{{
				ID:           78,
				Title:        "Blade Runner",
				Overview:     "A blade runner must pursue replicants.",
				ReleaseDate:  "1982-06-25",
				PosterPath:   "/poster.jpg",
				BackdropPath: "/backdrop.jpg",
				VoteAverage:  7.9,
				GenreIDs:     []int{878, 53, 12345},
			}},
			TotalResults: 1,
		})
	}))
	defer server.Close()

	client, err := New("key", server.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resp, err := client.SearchMovie(context.Background(), "Blade Runner", 1982)
	if err != nil {
		t.Fatalf("SearchMovie failed: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}

	r := resp.Results[0]
	if r.DisplayTitle() != "Blade Runner" {
		t.Errorf("DisplayTitle = %q", r.DisplayTitle())
	}
	if r.Year() != "1982" {
		t.Errorf("Year = %q, want 1982", r.Year())
	}
	if r.PosterURL() != posterBase+"/poster.jpg" {
		t.Errorf("PosterURL = %q", r.PosterURL())
	}
	if got := GenreNames(r.GenreIDs); len(got) != 2 || got[0] != "Sci-Fi" || got[1] != "Thriller" {
		t.Errorf("GenreNames = %v, want [Sci-Fi Thriller]", got)
	}
}

func TestSearchTVYearParameter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("first_air_date_year"); got != "2022" {
			t.Errorf("first_air_date_year = %q", got)
		}
		_ = json.NewEncoder(w).Encode(Response{Results: []Result{{Name: "Severance", FirstAirDate: "2022-02-18"}}})
	}))
	defer server.Close()

	client, err := New("key", server.URL)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	resp, err := client.SearchTV(context.Background(), "Severance", 2022)
	if err != nil {
		t.Fatalf("SearchTV failed: %v", err)
	}
	if resp.Results[0].DisplayTitle() != "Severance" {
		t.Errorf("DisplayTitle = %q", resp.Results[0].DisplayTitle())
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("", ""); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client, err := New("key", "http://unused.invalid")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := client.SearchMovie(context.Background(), "  ", 0); err == nil {
		t.Fatal("expected error for empty query")
	}
}
