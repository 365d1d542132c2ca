// Package nameparse turns release names into structured media metadata:
// title, movie/TV classification, year, and season/episode numbers.
//
// Parsing is pattern based and deliberately forgiving. A name is TV when any
// season or episode marker appears (S01E01, 1x01, S01, Season 1); the clean
// title is everything before the first quality tag, season marker, or year.
package nameparse
