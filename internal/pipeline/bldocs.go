package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ginjaninja78/freight-docs/internal/bldoc"
	"github.com/ginjaninja78/freight-docs/internal/logging"
	"github.com/ginjaninja78/freight-docs/internal/pdfextract"
)

// BLDocs prepares BL document data from a card file, taking defaults from
// declaration and manifest documents.
type BLDocs struct {
	Catalog bldoc.Catalog
	Logger  logging.Logger
}

// BLResult is the outcome of a BLDocs run.
type BLResult struct {
	Deck  *bldoc.Deck
	Views []bldoc.View

	// ManifestFilled counts cards whose weight came from the manifest.
	ManifestFilled int

	// Problems lists per-card failures. A failing card is skipped or left
	// without defaults; the other cards are still prepared.
	Problems []error
}

// Run loads cardsPath and applies defaults. Declaration paths inside the
// card file are relative to the card file. manifestPath may be empty.
func (p *BLDocs) Run(ctx context.Context, cardsPath, manifestPath string) (BLResult, error) {
	log := p.Logger
	if log == nil {
		log = logging.Nop()
	}

	file, err := bldoc.LoadCards(cardsPath)
	if err != nil {
		return BLResult{}, err
	}

	result := BLResult{Deck: bldoc.NewDeck()}
	baseDir := filepath.Dir(cardsPath)

	for _, c := range file.Cards {
		card, err := result.Deck.AddCard(c)
		if err != nil {
			result.Problems = append(result.Problems, err)
			log.Warnf("%v", err)
			continue
		}
		if c.Declaration == "" {
			continue
		}

		path := c.Declaration
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		decl, err := readDeclaration(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Problems = append(result.Problems, fmt.Errorf("BL %s: %w", card.BLNumber, err))
			log.Warnf("BL %s: no declaration defaults: %v", card.BLNumber, err)
			continue
		}
		if err := result.Deck.ApplyDeclaration(card.ID, decl); err != nil {
			return result, err
		}
		log.Debugf("BL %s: applied declaration %s", card.BLNumber, decl.Number)
	}

	if manifestPath != "" {
		text, err := pdfextract.ReadText(ctx, manifestPath)
		if err != nil {
			return result, err
		}
		manifest, err := pdfextract.ExtractManifest(text)
		switch {
		case errors.Is(err, pdfextract.ErrNoData):
			log.Warnf("manifest %s: no BL entries found", manifestPath)
		case err != nil:
			return result, err
		default:
			result.ManifestFilled = result.Deck.ApplyManifest(manifest)
			log.Infof("Manifest filled %d weight(s)", result.ManifestFilled)
		}
	}

	for _, card := range result.Deck.List() {
		result.Views = append(result.Views, bldoc.NewView(card, p.Catalog))
	}
	return result, nil
}

func readDeclaration(ctx context.Context, path string) (pdfextract.Declaration, error) {
	text, err := pdfextract.ReadText(ctx, path)
	if err != nil {
		return pdfextract.Declaration{}, err
	}
	return pdfextract.ExtractDeclaration(text)
}
