package bldoc

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/numparse"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// IssueDateLayout is the date format accepted in card files.
const IssueDateLayout = "2006-01-02"

// Card is the file form of a BL card. Weight accepts Brazilian or US
// notation; Declaration optionally names a DU-E document to take defaults
// from.
type Card struct {
	BLNumber          string `yaml:"bl_number"`
	ShipperName       string `yaml:"shipper_name,omitempty"`
	ShipperCNPJ       string `yaml:"shipper_cnpj,omitempty"`
	Vessel            string `yaml:"vessel,omitempty"`
	PortOfLoading     string `yaml:"port_of_loading,omitempty"`
	PortOfDischarge   string `yaml:"port_of_discharge,omitempty"`
	CargoType         string `yaml:"cargo_type,omitempty"`
	CargoCode         string `yaml:"cargo_code,omitempty"`
	DeclarationNumber string `yaml:"declaration_number,omitempty"`
	Weight            string `yaml:"weight,omitempty"`
	IssueDate         string `yaml:"issue_date,omitempty"`
	Declaration       string `yaml:"declaration,omitempty"`
}

// CardFile is the top-level layout of a card file.
type CardFile struct {
	Cards []Card `yaml:"cards"`
}

// LoadCards reads a YAML card file.
func LoadCards(path string) (*CardFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card file: %w", err)
	}

	var file CardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse card file: %w", err)
	}
	return &file, nil
}

// AddCard appends a card built from c. A blank weight stays nil; a weight
// that does not parse to a positive number is an error, as is a malformed
// issue date.
func (d *Deck) AddCard(c Card) (*BLData, error) {
	var weight *decimal.Decimal
	if w := strings.TrimSpace(c.Weight); w != "" {
		v := numparse.ParseDecimal(w)
		if !v.IsPositive() {
			return nil, fmt.Errorf("BL %s: invalid weight %q", c.BLNumber, c.Weight)
		}
		weight = &v
	}

	var issued *time.Time
	if s := strings.TrimSpace(c.IssueDate); s != "" {
		t, err := time.Parse(IssueDateLayout, s)
		if err != nil {
			return nil, fmt.Errorf("BL %s: invalid issue date %q: %w", c.BLNumber, c.IssueDate, err)
		}
		issued = &t
	}

	card := d.Add()
	card.BLNumber = strings.TrimSpace(c.BLNumber)
	card.ShipperName = strings.TrimSpace(c.ShipperName)
	card.ShipperCNPJ = strings.TrimSpace(c.ShipperCNPJ)
	card.Vessel = strings.TrimSpace(c.Vessel)
	card.PortOfLoading = strings.TrimSpace(c.PortOfLoading)
	card.PortOfDischarge = strings.TrimSpace(c.PortOfDischarge)
	card.CargoType = strings.TrimSpace(c.CargoType)
	card.CargoCode = strings.TrimSpace(c.CargoCode)
	card.DeclarationNumber = strings.TrimSpace(c.DeclarationNumber)
	card.Weight = weight
	card.IssueDate = issued
	return card, nil
}
