package bldoc

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ginjaninja78/freight-docs/internal/format"
)

// View is a card rendered for print.
type View struct {
	ID                int
	BLNumber          string
	Shipper           string
	CNPJ              string
	Vessel            string
	PortOfLoading     string
	PortOfDischarge   string
	CargoType         string
	DeclarationNumber string
	Weight            string
	IssueDate         string
	CargoDescription  string
}

// NewView formats a card. Unknown cargo codes are printed as is.
func NewView(card BLData, catalog Catalog) View {
	v := View{
		ID:                card.ID,
		BLNumber:          card.BLNumber,
		Shipper:           card.ShipperName,
		CNPJ:              card.ShipperCNPJ,
		Vessel:            card.Vessel,
		PortOfLoading:     card.PortOfLoading,
		PortOfDischarge:   card.PortOfDischarge,
		CargoType:         card.CargoType,
		DeclarationNumber: card.DeclarationNumber,
		CargoDescription:  card.CargoCode,
	}
	if card.Weight != nil {
		v.Weight = format.WeightMT(*card.Weight)
	}
	if card.IssueDate != nil {
		v.IssueDate = format.OrdinalDate(*card.IssueDate)
	}
	if desc, ok := catalog.Lookup(card.CargoCode); ok {
		v.CargoDescription = desc
	}
	return v
}

// Render writes the views as labelled blocks.
func Render(w io.Writer, views []View) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "CARD %d\n", v.ID)
		fmt.Fprintf(tw, "BL NUMBER:\t%s\n", v.BLNumber)
		fmt.Fprintf(tw, "SHIPPER:\t%s\n", v.Shipper)
		fmt.Fprintf(tw, "CNPJ:\t%s\n", v.CNPJ)
		fmt.Fprintf(tw, "VESSEL:\t%s\n", v.Vessel)
		fmt.Fprintf(tw, "PORT OF LOADING:\t%s\n", v.PortOfLoading)
		fmt.Fprintf(tw, "PORT OF DISCHARGE:\t%s\n", v.PortOfDischarge)
		fmt.Fprintf(tw, "CARGO:\t%s\n", v.CargoDescription)
		fmt.Fprintf(tw, "DU-E:\t%s\n", v.DeclarationNumber)
		fmt.Fprintf(tw, "GROSS WEIGHT:\t%s\n", v.Weight)
		fmt.Fprintf(tw, "ISSUED:\t%s\n", v.IssueDate)
	}
	return tw.Flush()
}
