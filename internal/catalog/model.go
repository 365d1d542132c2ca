package catalog

import (
	"encoding/json"
	"fmt"
)

// Metadata holds optional TMDB enrichment for a catalog item.
type Metadata struct {
	Title    string   `json:"title,omitempty"`
	Overview string   `json:"overview,omitempty"`
	Poster   string   `json:"poster,omitempty"`
	Backdrop string   `json:"backdrop,omitempty"`
	Rating   float64  `json:"rating,omitempty"`
	Year     string   `json:"year,omitempty"`
	Genres   []string `json:"genres,omitempty"`
}

// Episode describes one video file inside a season pack.
type Episode struct {
	Filename     string `json:"filename"`
	Path         string `json:"path,omitempty"`
	Size         int64  `json:"size"`
	Season       int    `json:"season,omitempty"`
	Episode      int    `json:"episode,omitempty"`
	FriendlyName string `json:"friendly_name,omitempty"`
	StreamURL    string `json:"stream_url,omitempty"`
}

// Item is one catalog entry: a movie, a single TV episode, or a season pack.
// Links carries the opaque provider links in a stable order; their position is
// the identity used when resolving stream URLs.
type Item struct {
	ID       string    `json:"id,omitempty"`
	Filename string    `json:"filename"`
	Title    string    `json:"title"`
	Type     string    `json:"type"`
	Year     int       `json:"year,omitempty"`
	Season   int       `json:"season,omitempty"`
	Episode  int       `json:"episode,omitempty"`
	Size     int64     `json:"size"`
	Added    string    `json:"added,omitempty"`
	Links    []string  `json:"links,omitempty"`
	IsPack   bool      `json:"is_pack,omitempty"`
	Episodes []Episode `json:"episodes,omitempty"`
	TMDB     *Metadata `json:"tmdb,omitempty"`
}

// Media type values carried by Item.Type.
const (
	TypeMovie = "movie"
	TypeTV    = "tv"
)

// Catalog is the decrypted library document. RDKey is the provider credential
// the resolver uses for unrestriction; it may be absent in older blobs.
type Catalog struct {
	Version int    `json:"version"`
	Updated string `json:"updated"`
	RDKey   string `json:"rd_key,omitempty"`
	Items   []Item `json:"items"`
}

// Decode parses a decrypted catalog document.
func Decode(plaintext []byte) (*Catalog, error) {
	var cat Catalog
	if err := json.Unmarshal(plaintext, &cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &cat, nil
}
