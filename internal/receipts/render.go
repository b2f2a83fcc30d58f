package receipts

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/format"
)

// RenderGrain writes printable grain receipts dated issued.
func RenderGrain(w io.Writer, receipts []GrainReceipt, issued time.Time) error {
	for i, r := range receipts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "CARGO RECEIPT\t%s\n", format.OrdinalDate(issued))
		fmt.Fprintf(tw, "SHIPPER:\t%s\n", r.Shipper)
		fmt.Fprintf(tw, "CNPJ:\t%s\n", r.CNPJ)
		fmt.Fprintf(tw, "BILLS OF LADING:\t%s\n", strings.Join(r.BLNumbers, ", "))
		fmt.Fprintf(tw, "TOTAL QUANTITY:\t%s\n", r.DisplayTotal())
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write receipt for %s: %w", r.Shipper, err)
		}
	}
	return nil
}

// RenderSugar writes printable sugar receipts dated issued.
func RenderSugar(w io.Writer, receipts []SugarReceipt, issued time.Time) error {
	for i, r := range receipts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "CARGO RECEIPT\t%s\n", format.OrdinalDate(issued))
		fmt.Fprintf(tw, "CUSTOMS BROKER:\t%s\n", r.Broker)
		if r.Contact != "" {
			fmt.Fprintf(tw, "CONTACT:\t%s\n", r.Contact)
		}
		fmt.Fprintln(tw, "BL\tSHIPPER\tCNPJ\tDU-E\tQUANTITY")
		for _, l := range r.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", l.BLNumber, l.Shipper, l.CNPJ, l.Declaration, l.DisplayQuantity())
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write receipt for %s: %w", r.Broker, err)
		}
	}
	return nil
}

// RenderText renders receipts of either kind to a string.
func RenderText(kind Kind, grain []GrainReceipt, sugar []SugarReceipt, issued time.Time) (string, error) {
	var b strings.Builder
	var err error
	switch kind {
	case KindGrain:
		err = RenderGrain(&b, grain, issued)
	case KindSugar:
		err = RenderSugar(&b, sugar, issued)
	default:
		err = fmt.Errorf("unknown receipt kind %q", kind)
	}
	return b.String(), err
}
