// Package merge combines raw poem sources into one deduplicated,
// normalized dataset.
package merge

import (
	"fmt"
	"log/slog"

	"github.com/ruspoetry/poemset/internal/authors"
	"github.com/ruspoetry/poemset/internal/dedup"
	"github.com/ruspoetry/poemset/internal/normalize"
	"github.com/ruspoetry/poemset/internal/poem"
	"github.com/ruspoetry/poemset/internal/source"
)

// DefaultReportEvery is the default progress-log interval, in rows read.
const DefaultReportEvery = 200_000

// Counts are the per-source row outcomes of one merge pass.
type Counts struct {
	Read               int
	Accepted           int
	RejectedIncomplete int
	RejectedDuplicate  int
}

// SourceStats pairs a source name with its counts.
type SourceStats struct {
	Name string
	Counts
}

// Stats aggregates the outcome of a merge, one entry per source in
// merge order.
type Stats struct {
	Sources []SourceStats
}

// Totals sums counts across all sources.
func (s *Stats) Totals() Counts {
	var t Counts
	for _, src := range s.Sources {
		t.Read += src.Read
		t.Accepted += src.Accepted
		t.RejectedIncomplete += src.RejectedIncomplete
		t.RejectedDuplicate += src.RejectedDuplicate
	}
	return t
}

// Merger normalizes and deduplicates rows from raw sources. The dedup
// index is owned by the caller and passed in, so two merges in one
// process never share seen-hash state.
type Merger struct {
	aliases *authors.Table
	index   dedup.Index

	// ReportEvery logs merge progress every N rows read. Zero disables.
	ReportEvery int
}

// New creates a merger over the given alias table and dedup index.
func New(aliases *authors.Table, index dedup.Index) *Merger {
	return &Merger{
		aliases:     aliases,
		index:       index,
		ReportEvery: DefaultReportEvery,
	}
}

// Merge processes the sources in order, fully draining each before the
// next, so retained records keep source order and earlier sources win
// duplicate collisions. Row-level defects (incomplete after
// normalization, duplicate key) are counted and skipped, never fatal.
func (m *Merger) Merge(sources ...*source.Rows) (*poem.Dataset, *Stats, error) {
	ds := &poem.Dataset{}
	stats := &Stats{}
	readTotal := 0

	for _, src := range sources {
		counts := Counts{}
		for _, row := range src.Rows {
			counts.Read++
			readTotal++

			rec := poem.Record{
				Author: m.aliases.Canonical(row.Author),
				Title:  normalize.Title(row.Title),
				Text:   normalize.Text(row.Text),
			}

			if !row.ValidUTF8() || !rec.Complete() {
				// Un-decodable rows are a row-level defect, same as
				// empty fields: counted and skipped, never fatal.
				counts.RejectedIncomplete++
			} else {
				fresh, err := m.index.Add(rec.Hash())
				if err != nil {
					return nil, nil, fmt.Errorf("dedup index failed on source %s: %w", src.Mapping.Name, err)
				}
				if fresh {
					ds.Records = append(ds.Records, rec)
					counts.Accepted++
				} else {
					counts.RejectedDuplicate++
				}
			}

			if m.ReportEvery > 0 && readTotal%m.ReportEvery == 0 {
				slog.Info("Merging",
					"source", src.Mapping.Name,
					"read", readTotal,
					"accepted", len(ds.Records),
					"duplicates", counts.RejectedDuplicate,
					"incomplete", counts.RejectedIncomplete)
			}
		}
		stats.Sources = append(stats.Sources, SourceStats{Name: src.Mapping.Name, Counts: counts})
	}

	return ds, stats, nil
}
