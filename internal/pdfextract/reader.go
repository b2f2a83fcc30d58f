package pdfextract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/tabular"
	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ReadText returns the text of a document. ".txt" files are returned as is
// (Windows-1252 files are decoded); PDFs are read row by row with
// ledongthuc/pdf, falling back to pdfcpu content-stream parsing when that
// yields nothing. The context is checked between pages.
func ReadText(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", path, err)
		}
		return tabular.DecodeText(data), nil

	case ".pdf":
		text, err := readRows(ctx, path)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}

		fallback, fbErr := readContentStreams(ctx, path)
		if fbErr != nil {
			if err != nil {
				return "", fmt.Errorf("failed to read %s: %v; fallback: %w", path, err, fbErr)
			}
			return "", fmt.Errorf("failed to read %s: %w", path, fbErr)
		}
		return fallback, nil

	default:
		return "", fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// readRows extracts page text row by row with ledongthuc/pdf.
func readRows(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			b.WriteString(strings.Join(words, " "))
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// readContentStreams extracts text operators from each page's content stream
// with pdfcpu.
func readContentStreams(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pdfCtx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", fmt.Errorf("pdfcpu read: %w", err)
	}

	var b strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		content, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
		if err != nil || content == nil {
			continue
		}
		data, err := io.ReadAll(content)
		if err != nil {
			continue
		}
		b.WriteString(textFromStream(data))
		b.WriteByte('\n')
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", ErrNoData
	}
	return b.String(), nil
}

var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// textFromStream collects Tj/TJ/' string operands. Text positioning
// operators start a new line so label/value pairs stay separable.
func textFromStream(data []byte) string {
	var b strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")), bytes.HasSuffix(line, []byte("'")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				b.WriteString(unescapePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")), bytes.Equal(line, []byte("T*")):
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

// unescapePDFString resolves backslash escapes, including octal codes,
// inside a PDF string literal.
func unescapePDFString(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			b.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			b.WriteByte(byte(val))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
