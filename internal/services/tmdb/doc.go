// Package tmdb provides the small slice of The Movie Database API the
// builder needs: movie and TV title search with year hints, plus genre and
// image URL helpers for composing catalog metadata.
package tmdb
