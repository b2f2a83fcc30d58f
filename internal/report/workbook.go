package report

import (
	"fmt"

	"github.com/ginjaninja78/freight-docs/internal/format"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the billing workbook.
const (
	SheetBillable = "Faturamento"
	SheetSkipped  = "Não Faturar"
)

// TotalLabel heads the totals row.
const TotalLabel = "TOTAL"

// Fill colors used to flag rows.
const (
	colorHeader     = "#D9D9D9"
	colorOverridden = "#FFF2CC"
	colorHighlight  = "#FCE4D6"
	colorZero       = "#F8CBAD"
)

// Column indexes (1-based) inside Header.
const (
	colCNPJ    = 3
	colTotal   = 6
	lastColumn = 8
)

type sheetStyles struct {
	header     int
	total      int
	overridden int
	highlight  int
	zero       int
}

// BuildWorkbook renders rows into a new workbook. "Faturamento" always
// exists and ends with a totals row; "Não Faturar" is added only when some
// row must not be billed. The caller owns the returned file.
func BuildWorkbook(rows []OutputRow) (*excelize.File, error) {
	billable, skipped := Partition(rows)

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetBillable); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	styles, err := newSheetStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	next, err := writeSheet(f, SheetBillable, billable, styles)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := writeTotals(f, SheetBillable, next, Sum(billable), styles); err != nil {
		f.Close()
		return nil, err
	}

	if len(skipped) > 0 {
		if _, err := f.NewSheet(SheetSkipped); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %q: %w", SheetSkipped, err)
		}
		if _, err := writeSheet(f, SheetSkipped, skipped, styles); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook renders rows and saves the workbook at path.
func WriteWorkbook(path string, rows []OutputRow) error {
	f, err := BuildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}

	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Fill: fill(colorHeader)}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.total, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, fmt.Errorf("failed to create totals style: %w", err)
	}
	if s.overridden, err = f.NewStyle(&excelize.Style{Fill: fill(colorOverridden)}); err != nil {
		return s, fmt.Errorf("failed to create override style: %w", err)
	}
	if s.highlight, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Fill: fill(colorHighlight)}); err != nil {
		return s, fmt.Errorf("failed to create highlight style: %w", err)
	}
	if s.zero, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#C00000"}, Fill: fill(colorZero)}); err != nil {
		return s, fmt.Errorf("failed to create zero-value style: %w", err)
	}
	return s, nil
}

// writeSheet writes the header and rows and returns the next free row number.
func writeSheet(f *excelize.File, sheet string, rows []OutputRow, styles sheetStyles) (int, error) {
	if err := setRow(f, sheet, 1, Header); err != nil {
		return 0, err
	}
	if err := styleRange(f, sheet, 1, 1, lastColumn, styles.header); err != nil {
		return 0, err
	}
	if err := f.SetColWidth(sheet, "A", "H", 20); err != nil {
		return 0, fmt.Errorf("failed to size columns: %w", err)
	}

	for i, r := range rows {
		rowNum := i + 2
		if err := setRow(f, sheet, rowNum, r.Cells()); err != nil {
			return 0, err
		}
		if r.Highlight {
			if err := styleRange(f, sheet, rowNum, 1, lastColumn, styles.highlight); err != nil {
				return 0, err
			}
		}
		if r.CNPJOverridden {
			if err := styleRange(f, sheet, rowNum, colCNPJ, colCNPJ, styles.overridden); err != nil {
				return 0, err
			}
		}
		if r.ZeroValue {
			if err := styleRange(f, sheet, rowNum, colTotal, colTotal, styles.zero); err != nil {
				return 0, err
			}
		}
	}
	return len(rows) + 2, nil
}

func writeTotals(f *excelize.File, sheet string, rowNum int, t Totals, styles sheetStyles) error {
	cells := []string{TotalLabel, "", "", fmt.Sprint(t.BLCount), "", format.BRL(t.Value), "", ""}
	if err := setRow(f, sheet, rowNum, cells); err != nil {
		return err
	}
	return styleRange(f, sheet, rowNum, 1, lastColumn, styles.total)
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func styleRange(f *excelize.File, sheet string, rowNum, fromCol, toCol, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, rowNum)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, from, to, style); err != nil {
		return fmt.Errorf("failed to style %s!%s:%s: %w", sheet, from, to, err)
	}
	return nil
}
