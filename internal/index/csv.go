package index

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Index artifact columns, fixed order. The metadata columns are appended
// only when the run had metadata extraction enabled.
var (
	baseColumns = []string{
		"File Path",
		"File Name",
		"Generated Summary",
		"Metadata Tags",
		"New Standardized Name",
		"Language",
		"Processing Status",
	}
	metaColumns = []string{"Authors", "Title", "Date", "Subject"}
)

func columns(withMeta bool) []string {
	if !withMeta {
		return baseColumns
	}
	return append(append([]string{}, baseColumns...), metaColumns...)
}

func recordRow(r Record, withMeta bool) []string {
	row := []string{
		r.SourcePath,
		r.FileName,
		JoinSummary(r.Summary),
		JoinTags(r.Tags),
		r.ProposedName,
		r.Language,
		string(r.Status),
	}
	if withMeta {
		row = append(row, r.Meta.Authors, r.Meta.Title, r.Meta.Date, r.Meta.Subject)
	}
	return row
}

func rowRecord(row []string, withMeta bool) Record {
	rec := Record{
		SourcePath:   row[0],
		FileName:     row[1],
		Summary:      SplitSummary(row[2]),
		Tags:         SplitTags(row[3]),
		ProposedName: row[4],
		Language:     row[5],
		Status:       Status(row[6]),
	}
	if withMeta && len(row) >= len(baseColumns)+len(metaColumns) {
		rec.Meta = Metadata{
			Authors: row[7],
			Title:   row[8],
			Date:    row[9],
			Subject: row[10],
		}
	}
	return rec
}

// Write persists the index artifact, choosing the sink by file extension:
// .xlsx gets an Excel workbook, everything else the canonical CSV.
func Write(path string, records []Record, withMeta bool) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, records, withMeta)
	}
	return writeCSV(path, records, withMeta)
}

// Read loads an index artifact previously produced by Write.
func Read(path string) ([]Record, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(path)
	}
	return readCSV(path)
}

func writeCSV(path string, records []Record, withMeta bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns(withMeta)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(recordRow(rec, withMeta)); err != nil {
			return fmt.Errorf("write row %s: %w", rec.SourcePath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush index: %w", err)
	}
	return f.Close()
}

func readCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	withMeta := len(rows[0]) >= len(baseColumns)+len(metaColumns)
	var records []Record
	for _, row := range rows[1:] {
		if len(row) < len(baseColumns) {
			continue
		}
		records = append(records, rowRecord(row, withMeta))
	}
	return records, nil
}
