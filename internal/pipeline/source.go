package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/tabular"
	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/ginjaninja78/freight-docs/internal/validation"
	"github.com/ginjaninja78/freight-docs/internal/workbook"
)

// Source is the input of a run: a file path or pasted text.
type Source struct {
	// Path is a workbook (.xlsx, .xlsm, .xls) or a tab-separated text file.
	Path string

	// Text is pasted sheet content. Used when Path is empty.
	Text string

	// Sheet selects a worksheet when Path is a workbook.
	Sheet string
}

// PastedSource builds a source from raw pasted bytes. Text copied from
// Windows spreadsheets arrives as Windows-1252 and is decoded to UTF-8.
func PastedSource(data []byte) Source {
	return Source{Text: tabular.DecodeText(data)}
}

// Name describes the source for logs and summaries.
func (s Source) Name() string {
	if s.Path != "" {
		return s.Path
	}
	return "pasted text"
}

// Batch is an ingested and validated input.
type Batch struct {
	Table    *tabular.Table
	Entries  []types.Entry
	Warnings []*validation.ValidationError

	// Valid is false when opts turned a finding into a rejection.
	Valid bool
}

// Load reads the source, checks that the required columns are present and
// normalizes every row. Validation findings are returned on the batch and
// never fail the load; with strict options Batch.Valid reports them.
//
// RETURNS:
//   - *tabular.InsufficientDataError when there is no usable data line.
//   - *tabular.MissingColumnsError when a header lacks a required column.
func Load(ctx context.Context, src Source, opts validation.ValidationOptions, required ...string) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := readTable(src)
	if err != nil {
		return nil, err
	}
	if err := table.Require(required...); err != nil {
		return nil, err
	}

	entries := table.Entries()
	result := validation.NewValidatorWithOptions(opts).ValidateAll(entries, table.Rows)

	return &Batch{
		Table:    table,
		Entries:  entries,
		Warnings: result.Errors,
		Valid:    result.IsValid,
	}, nil
}

func readTable(src Source) (*tabular.Table, error) {
	if src.Path == "" {
		return tabular.ParseText(src.Text)
	}

	if workbook.IsWorkbook(src.Path) {
		rows, err := workbook.ReadRows(src.Path, workbook.Options{Sheet: src.Sheet})
		if err != nil {
			return nil, err
		}
		return tabular.ParseRows(rows)
	}

	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".txt", ".tsv", "":
	default:
		return nil, fmt.Errorf("unsupported input file type: %s", src.Path)
	}

	data, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return tabular.ParseText(tabular.DecodeText(data))
}

// missingColumns returns the absent columns carried by a load error.
func missingColumns(err error) []string {
	var missing *tabular.MissingColumnsError
	if errors.As(err, &missing) {
		return missing.Missing
	}
	return nil
}
