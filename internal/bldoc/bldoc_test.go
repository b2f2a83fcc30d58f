package bldoc

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/pdfextract"
	"github.com/shopspring/decimal"
)

func TestDeckLifecycle(t *testing.T) {
	deck := NewDeck()
	a := deck.Add()
	b := deck.Add()
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", a.ID, b.ID)
	}

	if !deck.Remove(1) {
		t.Fatal("Remove(1) = false")
	}
	if deck.Remove(1) {
		t.Error("second Remove(1) should fail")
	}

	c := deck.Add()
	if c.ID != 3 {
		t.Errorf("ids must not be reused, got %d", c.ID)
	}

	if err := deck.Update(2, func(card *BLData) {
		card.Vessel = "MV OCEAN STAR"
		card.ID = 99
	}); err != nil {
		t.Fatal(err)
	}
	got, ok := deck.Get(2)
	if !ok || got.Vessel != "MV OCEAN STAR" {
		t.Errorf("Update did not apply: %+v", got)
	}
	if err := deck.Update(42, func(*BLData) {}); err == nil {
		t.Error("Update of unknown id should fail")
	}

	list := deck.List()
	if len(list) != 2 || list[0].ID != 2 || list[1].ID != 3 {
		t.Errorf("List = %+v", list)
	}
	list[0].Vessel = "CHANGED"
	if got, _ := deck.Get(2); got.Vessel != "MV OCEAN STAR" {
		t.Error("List must return copies")
	}
}

func TestApplyDeclarationKeepsUserFields(t *testing.T) {
	deck := NewDeck()
	card := deck.Add()
	card.ShipperName = "USER TYPED NAME"

	decl := pdfextract.Declaration{
		Number:      "24BR0001234567",
		CNPJ:        "12.345.678/0001-90",
		CompanyName: "SOYCO EXPORTADORA LTDA",
		NetWeightMT: decimal.RequireFromString("30125.5"),
	}
	if err := deck.ApplyDeclaration(card.ID, decl); err != nil {
		t.Fatal(err)
	}

	if card.ShipperName != "USER TYPED NAME" {
		t.Errorf("populated field overwritten: %q", card.ShipperName)
	}
	if card.DeclarationNumber != decl.Number || card.ShipperCNPJ != decl.CNPJ {
		t.Errorf("empty fields not filled: %+v", card)
	}
	if card.Weight == nil || card.Weight.String() != "30125.5" {
		t.Errorf("Weight = %v", card.Weight)
	}

	// A second declaration changes nothing.
	other := pdfextract.Declaration{Number: "24BR9999999999", NetWeightMT: decimal.NewFromInt(1)}
	if err := deck.ApplyDeclaration(card.ID, other); err != nil {
		t.Fatal(err)
	}
	if card.DeclarationNumber != decl.Number || card.Weight.String() != "30125.5" {
		t.Errorf("defaults overwrote existing values: %+v", card)
	}

	if err := deck.ApplyDeclaration(7, decl); err == nil {
		t.Error("unknown id should fail")
	}
}

func TestApplyManifest(t *testing.T) {
	deck := NewDeck()
	a := deck.Add()
	a.BLNumber = "SSZ0001"
	b := deck.Add()
	b.BLNumber = "SSZ0002"
	w := decimal.NewFromInt(5)
	b.Weight = &w
	deck.Add()

	m := pdfextract.Manifest{Entries: []pdfextract.ManifestEntry{
		{BLNumber: "SSZ0001", WeightMT: decimal.NewFromInt(25)},
		{BLNumber: "SSZ0002", WeightMT: decimal.NewFromInt(12)},
	}}
	if changed := deck.ApplyManifest(m); changed != 1 {
		t.Errorf("changed = %d, want 1", changed)
	}
	if a.Weight == nil || a.Weight.String() != "25" {
		t.Errorf("a.Weight = %v", a.Weight)
	}
	if b.Weight.String() != "5" {
		t.Errorf("b.Weight overwritten: %v", b.Weight)
	}
}

func TestNewView(t *testing.T) {
	w := decimal.RequireFromString("30125.5")
	issued := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	card := BLData{ID: 1, BLNumber: "SSZ0001", CargoCode: "sbs", Weight: &w, IssueDate: &issued}

	v := NewView(card, DefaultCatalog())
	if v.Weight != "30,125.500 MT" {
		t.Errorf("Weight = %q", v.Weight)
	}
	if v.IssueDate != "JANUARY 1ST, 2025" {
		t.Errorf("IssueDate = %q", v.IssueDate)
	}
	if v.CargoDescription != "BRAZILIAN SOYBEANS IN BULK" {
		t.Errorf("CargoDescription = %q", v.CargoDescription)
	}

	empty := NewView(BLData{ID: 2, CargoCode: "XYZ"}, DefaultCatalog())
	if empty.Weight != "" || empty.IssueDate != "" || empty.CargoDescription != "XYZ" {
		t.Errorf("unexpected empty view: %+v", empty)
	}

	var buf bytes.Buffer
	if err := Render(&buf, []View{v, empty}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "CARD 2") || !strings.Contains(buf.String(), "30,125.500 MT") {
		t.Errorf("unexpected render:\n%s", buf.String())
	}
}

func TestLoadCards(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	content := `cards:
  - bl_number: SSZ0001
    vessel: MV OCEAN STAR
    cargo_code: SBS
    weight: "30.125,500"
    issue_date: "2025-03-22"
    declaration: due.pdf
  - bl_number: SSZ0002
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := LoadCards(path)
	if err != nil {
		t.Fatalf("LoadCards: %v", err)
	}
	if len(file.Cards) != 2 || file.Cards[0].Declaration != "due.pdf" {
		t.Fatalf("cards = %+v", file.Cards)
	}

	deck := NewDeck()
	first, err := deck.AddCard(file.Cards[0])
	if err != nil {
		t.Fatal(err)
	}
	if first.Weight == nil || first.Weight.String() != "30125.5" {
		t.Errorf("Weight = %v", first.Weight)
	}
	if first.IssueDate == nil || first.IssueDate.Day() != 22 {
		t.Errorf("IssueDate = %v", first.IssueDate)
	}

	second, err := deck.AddCard(file.Cards[1])
	if err != nil {
		t.Fatal(err)
	}
	if second.Weight != nil || second.IssueDate != nil || second.ID != 2 {
		t.Errorf("blank card = %+v", second)
	}

	if _, err := deck.AddCard(Card{BLNumber: "X", Weight: "heavy"}); err == nil {
		t.Error("expected error for invalid weight")
	}
	if _, err := deck.AddCard(Card{BLNumber: "X", IssueDate: "22/03/2025"}); err == nil {
		t.Error("expected error for invalid date")
	}
	if deck.Len() != 2 {
		t.Errorf("failed cards must not be added, Len = %d", deck.Len())
	}
}
