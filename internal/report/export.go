package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// WriteCSV writes a header row followed by one row per time step
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}

	record := make([]string, len(Columns))
	for _, row := range r.Rows {
		for i, v := range row.Values() {
			record[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteParquet writes the rows as a snappy-compressed parquet file
func (r *Report) WriteParquet(w io.Writer) error {
	pw := parquet.NewGenericWriter[Row](w, parquet.Compression(&parquet.Snappy))
	if _, err := pw.Write(r.Rows); err != nil {
		return fmt.Errorf("parquet write: %w", err)
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("parquet close: %w", err)
	}
	return nil
}

// Save writes the report to path, choosing the format from the extension:
// .csv, .parquet, or .db/.sqlite. A path without an extension gets .csv.
// runID tags the SQLite run row. The path actually written is returned.
func (r *Report) Save(ctx context.Context, path, runID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = ".csv"
		path += ext
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	var err error
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		err = r.SaveSQLite(ctx, path, runID)
	case ".parquet":
		err = writeFile(path, r.WriteParquet)
	case ".csv":
		err = writeFile(path, r.WriteCSV)
	default:
		return "", fmt.Errorf("unsupported output format %q (use .csv, .parquet or .db)", ext)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
