// Package importer handles local CSV preparation for the sample
// import workflow: preview/validation of CSV files and a directory
// watcher that feeds auto-import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true, ".tiff": true, ".tif": true,
}

var annotationExtensions = map[string]bool{
	".xml": true,
}

const previewRows = 5

// RowError is a non-fatal problem with one CSV row.
type RowError struct {
	Line int
	Msg  string
}

func (e RowError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Preview summarizes a CSV file before import. RowErrors collects
// per-row validation problems; they do not fail the preview.
type Preview struct {
	TotalRows       int
	Columns         []string
	SampleRows      []map[string]string
	HasTagsColumn   bool
	ImageCount      int
	AnnotationCount int
	RowErrors       []RowError
}

// PreviewFile reads and previews a CSV file from disk.
func PreviewFile(path string) (*Preview, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return PreviewCSV(f)
}

// PreviewCSV parses CSV content and summarizes it for the import
// workflow. The object_key column is required; rows with an empty
// object_key are reported as row errors and counted in TotalRows.
func PreviewCSV(r io.Reader) (*Preview, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV file")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make([]string, len(header))
	keyIdx := -1
	for i, col := range header {
		columns[i] = strings.TrimSpace(col)
		if columns[i] == "object_key" {
			keyIdx = i
		}
	}
	if keyIdx < 0 {
		return nil, fmt.Errorf("CSV is missing required column object_key (found: %s)", strings.Join(columns, ", "))
	}

	p := &Preview{Columns: columns}
	for _, col := range columns {
		if col == "tags" {
			p.HasTagsColumn = true
		}
	}

	line := 1 // header was line 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			p.RowErrors = append(p.RowErrors, RowError{Line: line, Msg: err.Error()})
			continue
		}
		p.TotalRows++

		if keyIdx >= len(record) || strings.TrimSpace(record[keyIdx]) == "" {
			p.RowErrors = append(p.RowErrors, RowError{Line: line, Msg: "empty object_key"})
		} else {
			switch ext := strings.ToLower(filepath.Ext(record[keyIdx])); {
			case imageExtensions[ext]:
				p.ImageCount++
			case annotationExtensions[ext]:
				p.AnnotationCount++
			}
		}

		if len(p.SampleRows) < previewRows {
			row := make(map[string]string, len(columns))
			for i, col := range columns {
				if i < len(record) {
					row[col] = record[i]
				}
			}
			p.SampleRows = append(p.SampleRows, row)
		}
	}
	return p, nil
}
