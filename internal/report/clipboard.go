package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/format"
)

// DoNotBillLabel prefixes the list of skipped shippers.
const DoNotBillLabel = "DO NOT BILL:"

// Payload is the dual-format clipboard content. Text and HTML carry the same
// rows and totals; HTML only adds style hints.
type Payload struct {
	Text string
	HTML string
}

// Clipboard renders the billable rows with their totals line, followed by
// the do-not-bill warning when any row was skipped.
func Clipboard(rows []OutputRow) (Payload, error) {
	billable, skipped := Partition(rows)
	totals := Sum(billable)
	names := SkippedShippers(skipped)

	html, err := renderHTML(billable, totals, names)
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		Text: renderText(billable, totals, names),
		HTML: html,
	}, nil
}

func totalCells(t Totals) []string {
	return []string{TotalLabel, "", "", strconv.Itoa(t.BLCount), "", format.BRL(t.Value), "", ""}
}

// =============================================================================
// PLAIN TEXT
// =============================================================================

func renderText(rows []OutputRow, t Totals, skipped []string) string {
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(cleanCell(c))
		}
		b.WriteByte('\n')
	}

	writeLine(Header)
	for _, r := range rows {
		writeLine(r.Cells())
	}
	writeLine(totalCells(t))

	if len(skipped) > 0 {
		b.WriteString(DoNotBillLabel + " " + strings.Join(skipped, ", ") + "\n")
	}
	return b.String()
}

// cleanCell keeps a value on one clipboard cell.
func cleanCell(s string) string {
	return strings.NewReplacer("\t", " ", "\r", " ", "\n", " ").Replace(s)
}

// =============================================================================
// STYLED MARKUP
// =============================================================================

const (
	styleTable      = "border-collapse:collapse;font-family:Calibri,Arial,sans-serif;font-size:11pt"
	styleCell       = "border:1px solid #999;padding:2px 6px"
	styleHeader     = "background:" + colorHeader + ";font-weight:bold"
	styleOverridden = "background:" + colorOverridden
	styleHighlight  = "background:" + colorHighlight + ";font-weight:bold"
	styleZero       = "background:" + colorZero + ";color:#C00000"
	styleTotal      = "font-weight:bold"
	styleWarning    = "color:#C00000;font-weight:bold"
)

type htmlCell struct {
	Value string
	Style template.CSS
}

type htmlRow struct {
	Style template.CSS
	Cells []htmlCell
}

type htmlView struct {
	TableStyle   template.CSS
	CellStyle    template.CSS
	HeaderStyle  template.CSS
	WarningStyle template.CSS
	Header       []string
	Rows         []htmlRow
	Totals       htmlRow
	Warning      string
}

var clipboardTemplate = template.Must(template.New("clipboard").Parse(
	`<table style="{{.TableStyle}}">` +
		`<tr>{{range .Header}}<th style="{{$.CellStyle}};{{$.HeaderStyle}}">{{.}}</th>{{end}}</tr>` +
		`{{range .Rows}}<tr{{if .Style}} style="{{.Style}}"{{end}}>` +
		`{{range .Cells}}<td style="{{$.CellStyle}}{{if .Style}};{{.Style}}{{end}}">{{.Value}}</td>{{end}}</tr>{{end}}` +
		`<tr style="{{.Totals.Style}}">{{range .Totals.Cells}}<td style="{{$.CellStyle}}">{{.Value}}</td>{{end}}</tr>` +
		`</table>` +
		`{{if .Warning}}<p style="{{.WarningStyle}}">{{.Warning}}</p>{{end}}`))

func renderHTML(rows []OutputRow, t Totals, skipped []string) (string, error) {
	view := htmlView{
		TableStyle:   styleTable,
		CellStyle:    styleCell,
		HeaderStyle:  styleHeader,
		WarningStyle: styleWarning,
		Header:       Header,
		Totals:       htmlRow{Style: styleTotal, Cells: plainCells(totalCells(t))},
	}
	if len(skipped) > 0 {
		view.Warning = DoNotBillLabel + " " + strings.Join(skipped, ", ")
	}

	for _, r := range rows {
		hr := htmlRow{Cells: plainCells(r.Cells())}
		if r.Highlight {
			hr.Style = styleHighlight
		}
		if r.CNPJOverridden {
			hr.Cells[colCNPJ-1].Style = styleOverridden
		}
		if r.ZeroValue {
			hr.Cells[colTotal-1].Style = styleZero
		}
		view.Rows = append(view.Rows, hr)
	}

	var buf bytes.Buffer
	if err := clipboardTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render clipboard markup: %w", err)
	}
	return buf.String(), nil
}

func plainCells(values []string) []htmlCell {
	cells := make([]htmlCell, len(values))
	for i, v := range values {
		cells[i] = htmlCell{Value: v}
	}
	return cells
}
