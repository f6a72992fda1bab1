package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"chat-insights-go/internal/types"
)

// Persist overwrites path with the full dataset, including the derived columns
// (appended empty when absent). The file is written next to path and renamed
// over it, so a failed write leaves the previous contents in place. An existing
// file keeps its permissions, and a symlink at path keeps pointing at it.
func Persist(ds *Dataset, path string) error {
	for _, col := range types.DerivedColumns {
		ds.EnsureColumn(col)
	}

	mode := os.FileMode(0o644)
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
		if st, err := os.Stat(path); err == nil {
			mode = st.Mode().Perm()
		}
	}

	ext := ".csv"
	if isXLSX(path) {
		ext = ".xlsx"
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chat-dataset-*"+ext)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err = tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	if ext == ".xlsx" {
		err = writeXLSX(tmp, ds)
	} else {
		err = writeCSV(tmp, ds)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPersist, path, err)
	}
	return nil
}

func writeCSV(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.header); err != nil {
		return err
	}
	if err := cw.WriteAll(ds.rows); err != nil {
		return err
	}
	return cw.Error()
}

func writeXLSX(w io.Writer, ds *Dataset) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	write := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := write(1, ds.header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range ds.rows {
		if err := write(i+2, r); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.Write(w)
}
