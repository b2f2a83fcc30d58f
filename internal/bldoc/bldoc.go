// =============================================================================
// Freight Docs - BL Document Data
// =============================================================================
//
// Working data for Bill-of-Lading (CONGENBILL) documents.
//
// LIFECYCLE:
//   1. Add creates an empty card with the next sequential id.
//   2. Update edits a card in place; Remove discards it.
//   3. ApplyDeclaration / ApplyManifest fill empty fields from PDF-derived
//      data. A field the user already populated is never overwritten.
//
// Cards live for one invocation only; nothing is persisted.
//
// =============================================================================

package bldoc

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/pdfextract"
	"github.com/shopspring/decimal"
)

// BLData is one editable BL card.
type BLData struct {
	ID int

	ShipperName string
	ShipperCNPJ string

	Vessel          string
	PortOfLoading   string
	PortOfDischarge string

	CargoType         string
	DeclarationNumber string

	// Weight is in metric tons; nil until known.
	Weight *decimal.Decimal

	// IssueDate is nil until set.
	IssueDate *time.Time

	BLNumber  string
	CargoCode string
}

// Deck is the ordered list of BL cards of a session.
type Deck struct {
	nextID int
	cards  []*BLData
}

// NewDeck returns an empty deck. The first card gets id 1.
func NewDeck() *Deck {
	return &Deck{nextID: 1}
}

// Add appends an empty card and returns it.
func (d *Deck) Add() *BLData {
	card := &BLData{ID: d.nextID}
	d.nextID++
	d.cards = append(d.cards, card)
	return card
}

// Remove deletes the card with id. Ids are never reused.
func (d *Deck) Remove(id int) bool {
	for i, c := range d.cards {
		if c.ID == id {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the card with id.
func (d *Deck) Get(id int) (*BLData, bool) {
	for _, c := range d.cards {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// List returns copies of the cards in insertion order.
func (d *Deck) List() []BLData {
	out := make([]BLData, len(d.cards))
	for i, c := range d.cards {
		out[i] = *c
	}
	return out
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Update applies edit to the card with id. The id itself cannot change.
func (d *Deck) Update(id int, edit func(*BLData)) error {
	card, ok := d.Get(id)
	if !ok {
		return fmt.Errorf("BL card %d not found", id)
	}
	edit(card)
	card.ID = id
	return nil
}

// ApplyDeclaration fills the declaration number, shipper CNPJ, shipper name
// and weight of card id from a DU-E, leaving populated fields untouched.
func (d *Deck) ApplyDeclaration(id int, decl pdfextract.Declaration) error {
	card, ok := d.Get(id)
	if !ok {
		return fmt.Errorf("BL card %d not found", id)
	}

	fillString(&card.DeclarationNumber, decl.Number)
	fillString(&card.ShipperCNPJ, decl.CNPJ)
	fillString(&card.ShipperName, decl.CompanyName)
	if !decl.NetWeightMT.IsZero() {
		fillWeight(&card.Weight, decl.NetWeightMT)
	}
	return nil
}

// ApplyManifest fills the weight of every card whose BL number appears in
// the manifest. It returns the number of cards that changed.
func (d *Deck) ApplyManifest(m pdfextract.Manifest) int {
	changed := 0
	for _, card := range d.cards {
		if card.Weight != nil || strings.TrimSpace(card.BLNumber) == "" {
			continue
		}
		entry, ok := m.Lookup(card.BLNumber)
		if !ok || entry.WeightMT.IsZero() {
			continue
		}
		fillWeight(&card.Weight, entry.WeightMT)
		changed++
	}
	return changed
}

func fillString(dst *string, v string) {
	if strings.TrimSpace(*dst) == "" && v != "" {
		*dst = v
	}
}

func fillWeight(dst **decimal.Decimal, v decimal.Decimal) {
	if *dst == nil {
		w := v
		*dst = &w
	}
}
