package merge

import (
	"testing"

	"github.com/ruspoetry/poemset/internal/authors"
	"github.com/ruspoetry/poemset/internal/dedup"
	"github.com/ruspoetry/poemset/internal/source"
)

func newMerger() *Merger {
	m := New(authors.Default(), dedup.NewMemory())
	m.ReportEvery = 0
	return m
}

func src(m source.Mapping, rows ...source.Row) *source.Rows {
	return &source.Rows{Mapping: m, Rows: rows}
}

func TestMergeDropsCrossSourceDuplicate(t *testing.T) {
	// The same poem under two author spellings that canonicalize to one
	// name, with incidentally different whitespace in the text.
	poems := src(source.PoemsLayout,
		source.Row{Author: "Pushkin A. S.", Title: "Зимнее утро", Text: "Мороз и солнце; день чудесный!"},
	)
	themed := src(source.ThemedLayout,
		source.Row{Author: "Пушкин Александр Сергеевич", Title: "Зимнее  утро", Text: "Мороз и солнце;  день чудесный!"},
	)

	ds, stats, err := newMerger().Merge(poems, themed)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}

	if ds.Len() != 1 {
		t.Fatalf("Expected 1 record, got %d", ds.Len())
	}
	if ds.Records[0].Author != "Пушкин Александр Сергеевич" {
		t.Errorf("Expected canonical author, got %q", ds.Records[0].Author)
	}
	if stats.Sources[1].RejectedDuplicate != 1 {
		t.Errorf("Expected 1 duplicate in themed source, got %d", stats.Sources[1].RejectedDuplicate)
	}
	if got := stats.Totals().Accepted; got != 1 {
		t.Errorf("Expected 1 accepted total, got %d", got)
	}
}

func TestMergePreservesSourceOrder(t *testing.T) {
	poems := src(source.PoemsLayout,
		source.Row{Author: "Фет А. А.", Title: "Ласточки", Text: "а"},
		source.Row{Author: "Фет А. А.", Title: "Бабочка", Text: "б"},
	)
	themed := src(source.ThemedLayout,
		source.Row{Author: "Анна Ахматова", Title: "Мужество", Text: "в"},
	)

	ds, _, err := newMerger().Merge(poems, themed)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}

	titles := []string{"Ласточки", "Бабочка", "Мужество"}
	if ds.Len() != len(titles) {
		t.Fatalf("Expected %d records, got %d", len(titles), ds.Len())
	}
	for i, title := range titles {
		if ds.Records[i].Title != title {
			t.Errorf("Record %d: expected title %q, got %q", i, title, ds.Records[i].Title)
		}
	}
}

func TestMergeRejectsIncompleteRows(t *testing.T) {
	tests := []struct {
		name string
		row  source.Row
	}{
		{
			name: "blank text",
			row:  source.Row{Author: "Блок А. А.", Title: "Ночь", Text: "  \n "},
		},
		{
			name: "missing author",
			row:  source.Row{Title: "Ночь", Text: "Ночь, улица, фонарь, аптека"},
		},
		{
			name: "missing title",
			row:  source.Row{Author: "Блок А. А.", Text: "Ночь, улица, фонарь, аптека"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, stats, err := newMerger().Merge(src(source.PoemsLayout, tt.row))
			if err != nil {
				t.Fatalf("Merge returned error: %v", err)
			}
			if ds.Len() != 0 {
				t.Errorf("Expected 0 records, got %d", ds.Len())
			}
			if stats.Sources[0].RejectedIncomplete != 1 {
				t.Errorf("Expected 1 incomplete rejection, got %d", stats.Sources[0].RejectedIncomplete)
			}
		})
	}
}

func TestMergeRejectsUndecodableRow(t *testing.T) {
	poems := src(source.PoemsLayout,
		source.Row{Author: "Тютчев Ф. И.", Title: string([]byte{0xff, 0xfe}), Text: "Люблю грозу"},
	)

	ds, stats, err := newMerger().Merge(poems)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if ds.Len() != 0 {
		t.Errorf("Expected 0 records, got %d", ds.Len())
	}
	if stats.Sources[0].RejectedIncomplete != 1 {
		t.Errorf("Expected un-decodable row counted as incomplete, got %d", stats.Sources[0].RejectedIncomplete)
	}
}

func TestMergeDropsDuplicateWithinSource(t *testing.T) {
	poems := src(source.PoemsLayout,
		source.Row{Author: "Есенин С. А.", Title: "Берёза", Text: "Белая берёза"},
		source.Row{Author: "Есенин С. А.", Title: "Берёза", Text: "Белая берёза"},
	)

	ds, stats, err := newMerger().Merge(poems)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if ds.Len() != 1 {
		t.Errorf("Expected 1 record, got %d", ds.Len())
	}
	if stats.Sources[0].RejectedDuplicate != 1 {
		t.Errorf("Expected 1 duplicate rejection, got %d", stats.Sources[0].RejectedDuplicate)
	}
}

// Two merges with separate indexes must not share seen-hash state.
func TestMergeRunsAreIndependent(t *testing.T) {
	row := source.Row{Author: "Бунин И. А.", Title: "Листопад", Text: "Лес, точно терем расписной"}

	for run := 0; run < 2; run++ {
		ds, _, err := newMerger().Merge(src(source.PoemsLayout, row))
		if err != nil {
			t.Fatalf("Merge returned error: %v", err)
		}
		if ds.Len() != 1 {
			t.Errorf("Run %d: expected 1 record, got %d", run, ds.Len())
		}
	}
}

func TestMergeNormalizesFields(t *testing.T) {
	poems := src(source.PoemsLayout,
		source.Row{
			Author: "  Михаил   Лермонтов ",
			Title:  " Парус\n",
			Text:   "\nБелеет парус одинокой  \nВ тумане моря голубом!..\n\n",
		},
	)

	ds, _, err := newMerger().Merge(poems)
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("Expected 1 record, got %d", ds.Len())
	}

	rec := ds.Records[0]
	if rec.Author != "Лермонтов Михаил Юрьевич" {
		t.Errorf("Expected canonical author, got %q", rec.Author)
	}
	if rec.Title != "Парус" {
		t.Errorf("Expected trimmed title, got %q", rec.Title)
	}
	if rec.Text != "Белеет парус одинокой\nВ тумане моря голубом!.." {
		t.Errorf("Expected trimmed text with line structure, got %q", rec.Text)
	}
}
