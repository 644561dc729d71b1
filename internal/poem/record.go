// Package poem defines the canonical record type shared by the merge
// and validation pipeline.
package poem

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/ruspoetry/poemset/internal/normalize"
)

// Record is a single poem entry in its normalized form. Records are
// immutable once constructed; the pipeline never mutates them in place.
type Record struct {
	Author string `json:"author" parquet:"author"`
	Title  string `json:"title" parquet:"title"`
	Text   string `json:"text" parquet:"text"`
}

// Key is the uniqueness key for duplicate detection: the folded
// (author, title, text) triple.
type Key struct {
	Author string
	Title  string
	Text   string
}

// Key returns the record's uniqueness key.
func (r Record) Key() Key {
	return Key{
		Author: normalize.Fold(r.Author),
		Title:  normalize.Fold(r.Title),
		Text:   normalize.Fold(r.Text),
	}
}

// Hash returns the SHA-1 of the folded triple, used as the fixed-size
// key for persistent dedup indexes.
func (r Record) Hash() string {
	k := r.Key()
	sum := sha1.Sum([]byte(strings.Join([]string{k.Author, k.Title, k.Text}, "\n")))
	return hex.EncodeToString(sum[:])
}

// Complete reports whether all three fields are non-blank.
func (r Record) Complete() bool {
	return !normalize.IsBlank(r.Author) && !normalize.IsBlank(r.Title) && !normalize.IsBlank(r.Text)
}

// Dataset is an ordered sequence of unique records, the sole artifact
// handed from the merger to the validator and then to output.
type Dataset struct {
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// UniqueAuthors returns the number of distinct author strings.
func (d *Dataset) UniqueAuthors() int {
	seen := make(map[string]struct{}, len(d.Records))
	for _, r := range d.Records {
		seen[r.Author] = struct{}{}
	}
	return len(seen)
}
