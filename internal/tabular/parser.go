// =============================================================================
// Freight Docs - Tabular Text Ingestion
// =============================================================================
//
// This module turns pasted spreadsheet text (tab-separated) or a workbook's
// 2-D cell array into an ordered list of RawRow records keyed by the
// recognized freight column names.
//
// HEADER DETECTION:
//   The first line is a header when at least HeaderThreshold of its cells,
//   after trimming and synonym normalization ("DUE" -> "DU-E"), match a
//   recognized column name exactly (case-sensitive). Otherwise every line is
//   data and columns are bound positionally to types.FallbackColumns.
//
// FAILURE MODES:
//   - No usable data line:           *InsufficientDataError
//   - Header lacks required columns: *MissingColumnsError (see Table.Require)
//
// =============================================================================

package tabular

import (
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/freight-docs/internal/types"
	"golang.org/x/text/encoding/charmap"
)

// HeaderThreshold is the minimum number of recognized cells for the first
// line to be treated as a header.
const HeaderThreshold = 3

// headerSynonyms maps accepted spellings to the canonical column name.
var headerSynonyms = map[string]string{
	"DUE":         types.ColDeclaration,
	"Qtd per DUE": types.ColQtyPerDUE,
}

// recognized is the set of canonical column names.
var recognized = func() map[string]bool {
	m := make(map[string]bool, len(types.FallbackColumns))
	for _, c := range types.FallbackColumns {
		m[c] = true
	}
	return m
}()

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table is the ingested form of one paste or worksheet.
type Table struct {
	// HasHeader reports whether the first line was detected as a header.
	HasHeader bool

	// Header holds the raw first-line cells when HasHeader is true.
	Header []string

	// Columns maps each bound column name to its cell index.
	Columns map[string]int

	// Rows contains one RawRow per usable data line, in input order.
	Rows []types.RawRow

	// LineNumbers holds the 1-based source line of each entry in Rows.
	LineNumbers []int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseText splits tab-separated text into lines and cells and ingests it.
//
// PARAMETERS:
//   - text: The pasted text. CRLF and LF line endings are both accepted.
//
// RETURNS:
//   - The ingested table.
//   - *InsufficientDataError when no data line is usable.
func ParseText(text string) (*Table, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, "\t")
	}

	return ParseRows(rows)
}

// ParseRows ingests an already-split 2-D array of cells, such as the rows of
// a worksheet.
//
// PARAMETERS:
//   - rows: The cell grid. Rows may be ragged.
//
// RETURNS:
//   - The ingested table.
//   - *InsufficientDataError when no data line is usable.
func ParseRows(rows [][]string) (*Table, error) {
	// Find the first non-blank line; leading blank lines carry no header.
	first := -1
	for i, row := range rows {
		if !isRowEmpty(row) {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, &InsufficientDataError{}
	}

	table := &Table{Columns: make(map[string]int)}
	dataStart := first

	if IsHeader(rows[first]) {
		table.HasHeader = true
		table.Header = rows[first]
		table.Columns = bindHeader(rows[first])
		dataStart = first + 1
	} else {
		for i, name := range types.FallbackColumns {
			table.Columns[name] = i
		}
	}

	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}
		table.Rows = append(table.Rows, buildRow(row, table.Columns))
		table.LineNumbers = append(table.LineNumbers, i+1)
	}

	if len(table.Rows) == 0 {
		return nil, &InsufficientDataError{HeaderOnly: table.HasHeader}
	}

	return table, nil
}

// IsHeader reports whether a line looks like a header row.
func IsHeader(cells []string) bool {
	matches := 0
	for _, cell := range cells {
		if recognized[NormalizeHeader(cell)] {
			matches++
		}
	}
	return matches >= HeaderThreshold
}

// NormalizeHeader trims a header cell and maps accepted synonyms to their
// canonical column name. Case is preserved.
func NormalizeHeader(cell string) string {
	cell = strings.TrimSpace(cell)
	if canonical, ok := headerSynonyms[cell]; ok {
		return canonical
	}
	return cell
}

// Require checks that every named column is bound. Tables without a header
// use the positional fallback and always satisfy Require.
//
// RETURNS:
//   - *MissingColumnsError listing the absent columns, with suggestions drawn
//     from the unrecognized header cells.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.Columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return &MissingColumnsError{
		Missing:     missing,
		Suggestions: suggestColumns(missing, t.unrecognizedHeaders()),
	}
}

// unrecognizedHeaders returns the header cells that did not bind to any
// recognized column.
func (t *Table) unrecognizedHeaders() []string {
	var out []string
	for _, cell := range t.Header {
		name := NormalizeHeader(cell)
		if name == "" || recognized[name] {
			continue
		}
		out = append(out, name)
	}
	return out
}

// =============================================================================
// TEXT DECODING
// =============================================================================

// DecodeText returns b as a string, decoding it from Windows-1252 when it is
// not valid UTF-8. Sheets exported from Windows clients often arrive that way.
func DecodeText(b []byte) string {
	if utf8.Valid(b) {
		return strings.TrimPrefix(string(b), "\ufeff")
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// bindHeader maps every recognized header cell to its index. The first
// occurrence of a duplicated column wins.
func bindHeader(cells []string) map[string]int {
	columns := make(map[string]int)
	for i, cell := range cells {
		name := NormalizeHeader(cell)
		if !recognized[name] {
			continue
		}
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	return columns
}

// buildRow reads every recognized column out of a line. Columns that are not
// bound or fall outside the line read as "".
func buildRow(cells []string, columns map[string]int) types.RawRow {
	row := make(types.RawRow, len(types.FallbackColumns))
	for _, name := range types.FallbackColumns {
		idx, ok := columns[name]
		if !ok || idx < 0 || idx >= len(cells) {
			row[name] = ""
			continue
		}
		row[name] = strings.TrimSpace(cells[idx])
	}
	return row
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
