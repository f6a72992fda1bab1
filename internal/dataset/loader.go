package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"chat-insights-go/internal/types"
)

// Load reads a chat dataset. Files ending in .xlsx are read from their first
// sheet; everything else is parsed as comma-separated text with a header row.
func Load(path string) (*Dataset, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	if isXLSX(path) {
		header, rows, err = readXLSX(path)
	} else {
		header, rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	ds, err := New(header, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}
	if !ds.HasColumn(types.ColChatMessages) {
		return nil, fmt.Errorf("%w: %s: missing %q column", ErrLoad, path, types.ColChatMessages)
	}
	return ds, nil
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	// Every record must match the header width.
	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("no header row")
	}
	// Spreadsheet exports often start with a UTF-8 byte order mark.
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records[0], records[1:], nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no header row")
	}
	header := rows[0]
	// excelize trims trailing empty cells; longer rows mean data without a header.
	for i, r := range rows[1:] {
		if len(r) > len(header) {
			return nil, nil, fmt.Errorf("row %d has %d cells, header has %d", i+2, len(r), len(header))
		}
	}
	return header, rows[1:], nil
}
