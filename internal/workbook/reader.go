// =============================================================================
// Freight Docs - Workbook Reader
// =============================================================================
//
// This module reads freight sheets saved as workbooks and returns the cells
// of one worksheet as a 2-D string array, ready for tabular.ParseRows.
//
// SUPPORTED FORMATS:
//   - .xlsx / .xlsm : read with excelize
//   - .xls          : read with xlsReader (BIFF8); files that are really
//                     xlsx under an .xls name fall back to excelize
//
// SHEET SELECTION:
//   The first sheet is read unless Options.Sheet names another one. Sheets
//   whose name begins with "_" are treated as scratch sheets and skipped when
//   choosing the first sheet.
//
// =============================================================================

package workbook

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// Options controls which worksheet is read.
type Options struct {
	// Sheet is the worksheet name to read. Empty means the first visible one.
	Sheet string
}

// ReadRows opens the workbook at path and returns the cells of the selected
// worksheet.
//
// PARAMETERS:
//   - path: Path to an .xlsx, .xlsm or .xls file.
//   - opts: Sheet selection.
//
// RETURNS:
//   - The sheet's rows (ragged; trailing empty cells are not padded).
//   - An error if the file cannot be read or has no matching sheet.
func ReadRows(path string, opts Options) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		rows, err := readXLS(bytes.NewReader(data), opts)
		if err == nil {
			return rows, nil
		}
		// Some exporters write xlsx content under an .xls name.
		if rows, errX := readXLSX(bytes.NewReader(data), opts); errX == nil {
			return rows, nil
		}
		return nil, err
	case ".xlsx", ".xlsm":
		return readXLSX(bytes.NewReader(data), opts)
	default:
		return nil, fmt.Errorf("unsupported workbook extension: %s", filepath.Ext(path))
	}
}

// IsWorkbook reports whether path has a workbook extension.
func IsWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// readXLSX reads a worksheet with excelize.
func readXLSX(r io.Reader, opts Options) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opts.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// readXLS reads a legacy BIFF8 worksheet with xlsReader.
func readXLS(r io.ReadSeeker, opts Options) ([][]string, error) {
	workbook, err := xls.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open .xls workbook: %w", err)
	}

	sheets := workbook.GetSheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	names := make([]string, len(sheets))
	for i := range sheets {
		names[i] = sheets[i].GetName()
	}
	name, err := pickSheet(names, opts.Sheet)
	if err != nil {
		return nil, err
	}

	var allRows [][]string
	for i := range sheets {
		if sheets[i].GetName() != name {
			continue
		}
		for _, row := range sheets[i].GetRows() {
			var cells []string
			for _, cell := range row.GetCols() {
				cells = append(cells, cell.GetString())
			}
			allRows = append(allRows, cells)
		}
		break
	}
	return allRows, nil
}

// pickSheet chooses the requested sheet, or the first non-scratch sheet.
func pickSheet(names []string, want string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	if want != "" {
		for _, n := range names {
			if n == want {
				return n, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found (available: %s)", want, strings.Join(names, ", "))
	}

	for _, n := range names {
		if !strings.HasPrefix(n, "_") {
			return n, nil
		}
	}
	return names[0], nil
}
