// Package source reads the two raw poem collections and the merged
// dataset file. Each raw source declares a fixed column mapping; the
// mapping is configuration, never inferred from the data.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrSchema is returned when a source header does not carry the columns
// its mapping declares. The merge fails closed for that source rather
// than guessing.
var ErrSchema = errors.New("source schema mismatch")

// Mapping declares which source columns carry the author, title and
// text fields.
type Mapping struct {
	Name   string // source label, used in counters and logs
	Author string
	Title  string
	Text   string
}

// The two known source layouts.
var (
	PoemsLayout  = Mapping{Name: "poems", Author: "writer", Title: "poem", Text: "text"}
	ThemedLayout = Mapping{Name: "themed", Author: "author", Title: "name", Text: "text"}
)

// Row is one raw record extracted through a source's column mapping,
// before any normalization. A cell missing from a ragged row extracts
// as the empty string and is rejected downstream as incomplete.
type Row struct {
	Author string
	Title  string
	Text   string
}

// ValidUTF8 reports whether all three raw cells decode as UTF-8.
// Checked before normalization, which would otherwise paper over bad
// bytes with replacement characters.
func (r Row) ValidUTF8() bool {
	return utf8.ValidString(r.Author) && utf8.ValidString(r.Title) && utf8.ValidString(r.Text)
}

// Rows is a raw source: its rows in original file order, tagged with
// the mapping they were extracted through.
type Rows struct {
	Mapping Mapping
	Rows    []Row
}

// ReadCSV reads an entire source CSV through its column mapping.
func ReadCSV(path string, m Mapping) (*Rows, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source %s: %w", m.Name, err)
	}
	defer f.Close()

	rows, err := readCSV(f, m)
	if err != nil {
		return nil, fmt.Errorf("source %s (%s): %w", m.Name, path, err)
	}

	slog.Debug("Source loaded", "source", m.Name, "path", path, "rows", len(rows.Rows))
	return rows, nil
}

func readCSV(r io.Reader, m Mapping) (*Rows, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are a row-level defect, not fatal

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file has no header", ErrSchema)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		// Files exported with a UTF-8 BOM carry it on the first cell.
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	authorIdx, title, text, err := resolve(cols, m)
	if err != nil {
		return nil, err
	}

	out := &Rows{Mapping: m}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Unparsable row: reject it, keep reading.
			out.Rows = append(out.Rows, Row{})
			continue
		}
		if err != nil {
			// A non-parse error (disk read failure) is sticky in the
			// underlying reader; bail out instead of spinning on it.
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
		out.Rows = append(out.Rows, Row{
			Author: cell(rec, authorIdx),
			Title:  cell(rec, title),
			Text:   cell(rec, text),
		})
	}
	return out, nil
}

func resolve(cols map[string]int, m Mapping) (author, title, text int, err error) {
	var ok bool
	if author, ok = cols[m.Author]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing column %q", ErrSchema, m.Author)
	}
	if title, ok = cols[m.Title]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing column %q", ErrSchema, m.Title)
	}
	if text, ok = cols[m.Text]; !ok {
		return 0, 0, 0, fmt.Errorf("%w: missing column %q", ErrSchema, m.Text)
	}
	return author, title, text, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
