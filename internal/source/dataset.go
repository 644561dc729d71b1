package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/ruspoetry/poemset/internal/poem"
)

// Merged dataset column order, shared by CSV and Parquet.
var datasetColumns = []string{"author", "title", "text"}

// LoadDataset reads a merged dataset file (CSV or Parquet, dispatched
// on extension) back into memory, e.g. for validate-only runs.
func LoadDataset(path string) (*poem.Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return loadDatasetCSV(path)
	case ".parquet":
		return loadDatasetParquet(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s (supported: .csv, .parquet)", ext)
	}
}

// SaveDataset writes a merged dataset to path, as CSV or Parquet
// depending on the extension.
func SaveDataset(ds *poem.Dataset, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return saveDatasetCSV(ds, path)
	case ".parquet":
		return saveDatasetParquet(ds, path)
	default:
		return fmt.Errorf("unsupported dataset format: %s (supported: .csv, .parquet)", ext)
	}
}

func loadDatasetCSV(path string) (*poem.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	m := Mapping{Name: "dataset", Author: "author", Title: "title", Text: "text"}
	rows, err := readCSV(f, m)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	ds := &poem.Dataset{Records: make([]poem.Record, 0, len(rows.Rows))}
	for _, row := range rows.Rows {
		ds.Records = append(ds.Records, poem.Record{
			Author: row.Author,
			Title:  row.Title,
			Text:   row.Text,
		})
	}

	slog.Debug("Dataset loaded", "path", path, "records", ds.Len())
	return ds, nil
}

func loadDatasetParquet(path string) (*poem.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[poem.Record](pf)
	defer reader.Close()

	ds := &poem.Dataset{}
	batch := make([]poem.Record, 128)
	for {
		n, err := reader.Read(batch)
		if n > 0 {
			ds.Records = append(ds.Records, batch[:n]...)
		}
		if err != nil {
			if err != io.EOF {
				return nil, fmt.Errorf("failed to read parquet rows: %w", err)
			}
			break
		}
	}

	slog.Debug("Dataset loaded", "path", path, "records", ds.Len())
	return ds, nil
}

func saveDatasetCSV(ds *poem.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(datasetColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range ds.Records {
		if err := w.Write([]string{r.Author, r.Title, r.Text}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

func saveDatasetParquet(ds *poem.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[poem.Record](f)
	if _, err := w.Write(ds.Records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
