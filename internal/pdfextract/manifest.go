package pdfextract

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ManifestEntry is one BL found in a cargo manifest.
type ManifestEntry struct {
	BLNumber string          `yaml:"bl_number"`
	WeightKG decimal.Decimal `yaml:"weight_kg"`
	WeightMT decimal.Decimal `yaml:"weight_mt"`
}

// Manifest lists the BLs of a cargo manifest in document order.
type Manifest struct {
	Entries []ManifestEntry `yaml:"entries"`
}

// Lookup returns the entry for blNumber, compared case-insensitively.
func (m Manifest) Lookup(blNumber string) (ManifestEntry, bool) {
	want := strings.ToUpper(strings.TrimSpace(blNumber))
	for _, e := range m.Entries {
		if strings.ToUpper(e.BLNumber) == want {
			return e, true
		}
	}
	return ManifestEntry{}, false
}

// ExtractManifest splits text into one window per BL marker (from a marker
// to the next one) and reads the first quantity that follows the BL number
// inside its window. A BL listed twice keeps its first window.
func ExtractManifest(text string) (Manifest, error) {
	var m Manifest

	markers := blMarkerRe.FindAllStringSubmatchIndex(text, -1)
	if len(markers) == 0 {
		return m, ErrNoData
	}

	seen := make(map[string]bool)
	for i, loc := range markers {
		bl := strings.ToUpper(text[loc[2]:loc[3]])
		if seen[bl] {
			continue
		}
		seen[bl] = true

		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		window := text[loc[1]:end]

		entry := ManifestEntry{BLNumber: bl, WeightKG: decimal.Zero}
		if qty := quantityRe.FindString(window); qty != "" {
			entry.WeightKG = parseKilograms(qty)
		}
		entry.WeightMT = entry.WeightKG.Div(kilosPerTon)
		m.Entries = append(m.Entries, entry)
	}

	return m, nil
}
