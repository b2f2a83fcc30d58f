// =============================================================================
// Freight Docs - Validation Engine
// =============================================================================
//
// Row checks for normalized freight entries. A bad cell never stops a
// batch: the entry has already been degraded (zero quantity, empty field)
// during normalization, and validation only reports what happened so the
// user can fix the sheet.
//
// VALIDATION LEVELS:
//   1. Row-level: required cells present, quantity parsable
//   2. Document-level: a BL number listed under two different shippers
//   3. Custom: extra checks such as RequireCNPJ (ValidationOptions.CustomChecks)
//
// ERROR HANDLING:
//   - Errors are collected, not returned one by one
//   - Each error carries row number, field and offending value
//   - Built-in checks only raise warnings
//
// =============================================================================

package validation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ginjaninja78/freight-docs/internal/types"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Field is the column that failed validation.
	Field string

	// Value is the offending cell value.
	Value string

	// Rule names the check that fired.
	Rule string

	// Message is a human-readable description.
	Message string

	// RowNumber is the 1-based line number in the input.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] Row %d, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.RowNumber,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no fatal errors.
	IsValid bool

	// Errors contains all findings, warnings included, in row order.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int

	// EntriesValidated is the number of entries checked.
	EntriesValidated int
}

// =============================================================================
// VALIDATOR
// =============================================================================

// CheckFunc is a caller-supplied row check. It returns nil when the entry
// passes.
type CheckFunc func(entry types.Entry, raw types.RawRow) *ValidationError

// RequireCNPJ reports an entry without an exporter CNPJ/VAT as an error.
func RequireCNPJ(e types.Entry, _ types.RawRow) *ValidationError {
	if e.CNPJ != "" {
		return nil
	}
	return &ValidationError{
		Severity: SeverityError,
		Field:    types.ColCNPJ,
		Rule:     "required",
		Message:  "CNPJ/VAT is empty",
	}
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// TreatWarningsAsErrors makes any warning invalidate the result.
	// Default: false
	TreatWarningsAsErrors bool

	// CustomChecks run after the built-in row checks.
	CustomChecks []CheckFunc
}

// Validator checks freight entries.
type Validator struct {
	options ValidationOptions
}

// NewValidatorWithOptions creates a Validator. The zero ValidationOptions
// gives warning-only checking.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// ValidateAll checks every entry and returns a detailed result.
//
// PARAMETERS:
//   - entries: normalized entries.
//   - raws: the raw rows the entries came from, index-aligned (may be nil;
//     offending values are then reported from the entry).
func (v *Validator) ValidateAll(entries []types.Entry, raws []types.RawRow) *ValidationResult {
	result := &ValidationResult{
		IsValid:          true,
		Errors:           make([]*ValidationError, 0),
		EntriesValidated: len(entries),
	}

	add := func(err *ValidationError) {
		result.Errors = append(result.Errors, err)
		if err.Severity == SeverityError {
			result.ErrorCount++
			result.IsValid = false
			return
		}
		result.WarningCount++
		if v.options.TreatWarningsAsErrors {
			result.IsValid = false
		}
	}

	blShipper := make(map[string]string)
	for i, e := range entries {
		var raw types.RawRow
		if i < len(raws) {
			raw = raws[i]
		}

		for _, err := range v.ValidateEntry(e, raw) {
			add(err)
		}

		if e.BLNumber != "" && e.Shipper != "" {
			if first, seen := blShipper[e.BLNumber]; !seen {
				blShipper[e.BLNumber] = e.Shipper
			} else if first != e.Shipper {
				add(&ValidationError{
					Severity:  SeverityWarning,
					Field:     types.ColBLNumber,
					Value:     e.BLNumber,
					Rule:      "bl_single_shipper",
					Message:   fmt.Sprintf("BL already listed for shipper %s", first),
					RowNumber: e.RowNumber,
				})
			}
		}
	}

	return result
}

// ValidateEntry runs the row-level and custom checks on one entry.
func (v *Validator) ValidateEntry(e types.Entry, raw types.RawRow) []*ValidationError {
	var errs []*ValidationError

	warn := func(field, value, rule, message string) {
		errs = append(errs, &ValidationError{
			Severity:  SeverityWarning,
			Field:     field,
			Value:     value,
			Rule:      rule,
			Message:   message,
			RowNumber: e.RowNumber,
		})
	}

	if e.Shipper == "" {
		warn(types.ColShipper, "", "required", "shipper is empty; row is grouped under a blank name")
	}
	if e.BLNumber == "" {
		warn(types.ColBLNumber, "", "required", "BL number is empty; row adds no BL to its group")
	}
	if e.QuantityMalformed {
		value := e.Quantity.String()
		if raw != nil {
			value = raw[types.ColQtyPerBL]
		}
		warn(types.ColQtyPerBL, value, "numeric", "quantity could not be parsed and was treated as 0")
	}

	for _, check := range v.options.CustomChecks {
		if err := check(e, raw); err != nil {
			if err.RowNumber == 0 {
				err.RowNumber = e.RowNumber
			}
			if err.Severity == "" {
				err.Severity = SeverityWarning
			}
			errs = append(errs, err)
		}
	}

	return errs
}

// =============================================================================
// ERROR REPORTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// WriteErrorLog writes validation errors to filePath, preceded by a
// timestamped header naming the source.
func WriteErrorLog(errors []*ValidationError, source, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Source: %s\nGenerated: %s\n\n", source, time.Now().Format(time.RFC3339))
	writer.WriteString(FormatErrors(errors))
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
