package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/directory"
	"github.com/ginjaninja78/freight-docs/internal/logging"
	"github.com/ginjaninja78/freight-docs/internal/receipts"
	"github.com/ginjaninja78/freight-docs/internal/types"
	"github.com/ginjaninja78/freight-docs/internal/validation"
	"github.com/ginjaninja78/freight-docs/pkg/utils"
)

// ReceiptColumns lists the columns each receipt kind groups on.
var ReceiptColumns = map[receipts.Kind][]string{
	receipts.KindGrain: {types.ColShipper, types.ColBLNumber, types.ColQtyPerBL},
	receipts.KindSugar: {types.ColBLNumber, types.ColBroker},
}

// ReceiptResult represents the outcome of a receipts run.
type ReceiptResult struct {
	Source     string
	Kind       receipts.Kind
	OutputFile string
	Success    bool
	Error      error
	Missing    []string

	Grain []receipts.GrainReceipt
	Sugar []receipts.SugarReceipt

	// Text is the printable rendering of the receipts.
	Text string

	Warnings []*validation.ValidationError
}

// Receipts generates grain or sugar receipts.
type Receipts struct {
	Directory *directory.Directory

	// Files places the rendered text. Nil means nothing is written.
	Files *utils.FileManager

	Logger logging.Logger

	// Now stamps the receipts. Defaults to time.Now.
	Now func() time.Time
}

// Run builds receipts of kind from src.
func (r *Receipts) Run(ctx context.Context, src Source, kind receipts.Kind) ReceiptResult {
	log := r.Logger
	if log == nil {
		log = logging.Nop()
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}

	result := ReceiptResult{Source: src.Name(), Kind: kind}

	required, ok := ReceiptColumns[kind]
	if !ok {
		result.Error = fmt.Errorf("unknown receipt kind %q", kind)
		return result
	}

	log.Infof("Building %s receipts from %s", kind, src.Name())

	batch, err := Load(ctx, src, validation.ValidationOptions{}, required...)
	if err != nil {
		result.Missing = missingColumns(err)
		result.Error = fmt.Errorf("failed to load input: %w", err)
		log.Errorf("%v", result.Error)
		return result
	}
	result.Warnings = batch.Warnings
	for _, w := range batch.Warnings {
		log.Warnf("%s", w.Error())
	}

	switch kind {
	case receipts.KindGrain:
		result.Grain = receipts.Grain(batch.Entries)
	case receipts.KindSugar:
		result.Sugar = receipts.Sugar(batch.Entries, r.Directory)
	}

	result.Text, err = receipts.RenderText(kind, result.Grain, result.Sugar, now())
	if err != nil {
		result.Error = err
		return result
	}

	if r.Files != nil {
		if err := r.Files.EnsureOutputDir(); err != nil {
			result.Error = err
			return result
		}
		path := r.Files.NewOutputPath("recibos_"+string(kind), ".txt")
		if err := os.WriteFile(path, []byte(result.Text), 0644); err != nil {
			result.Error = fmt.Errorf("failed to write receipts: %w", err)
			return result
		}
		result.OutputFile = path
		log.Infof("Wrote %s", path)
	}

	result.Success = true
	return result
}
