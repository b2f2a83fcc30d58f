package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/freight-docs/internal/bldoc"
)

const cardsYAML = `cards:
  - bl_number: SSZ0001
    vessel: MV OCEAN STAR
    cargo_code: SBS
    issue_date: "2025-01-01"
    shipper_name: SOYCO TRADING
    declaration: due.txt
  - bl_number: SSZ0002
  - bl_number: SSZ0003
    weight: "-5"
  - bl_number: SSZ0004
    declaration: missing.txt
`

const dueText = `Número da DU-E: 24BR0001234567
EXPORTADOR
12.345.678/0001-90 - SOYCO EXPORTADORA LTDA
PESO LÍQUIDO TOTAL (KG)
30.125.500,00000
`

const manifestDoc = `BL NO: SSZ0001 25.000,000 KGS
BL NO: SSZ0002 12.500,500 KGS
`

func TestBLDocsRun(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"cards.yaml":   cardsYAML,
		"due.txt":      dueText,
		"manifest.txt": manifestDoc,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	p := &BLDocs{Catalog: bldoc.DefaultCatalog()}
	result, err := p.Run(context.Background(), filepath.Join(dir, "cards.yaml"), filepath.Join(dir, "manifest.txt"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Deck.Len() != 3 {
		t.Fatalf("cards = %d, want 3 (invalid weight skipped)", result.Deck.Len())
	}
	if len(result.Problems) != 2 {
		t.Errorf("problems = %v", result.Problems)
	}
	if result.ManifestFilled != 1 {
		t.Errorf("manifest filled %d, want 1", result.ManifestFilled)
	}

	first := result.Views[0]
	if first.Shipper != "SOYCO TRADING" {
		t.Errorf("user shipper overwritten: %q", first.Shipper)
	}
	if first.CNPJ != "12.345.678/0001-90" || first.DeclarationNumber != "24BR0001234567" {
		t.Errorf("declaration defaults not applied: %+v", first)
	}
	if first.Weight != "30,125.500 MT" {
		t.Errorf("declaration weight = %q", first.Weight)
	}
	if first.IssueDate != "JANUARY 1ST, 2025" {
		t.Errorf("issue date = %q", first.IssueDate)
	}
	if result.Views[1].Weight != "12.500 MT" {
		t.Errorf("manifest weight = %q", result.Views[1].Weight)
	}
}

func TestBLDocsRunMissingCards(t *testing.T) {
	p := &BLDocs{}
	if _, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "none.yaml"), ""); err == nil {
		t.Error("expected error")
	}
}
