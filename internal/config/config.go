// =============================================================================
// Freight Docs - Configuration Module
// =============================================================================
//
// This module loads the main application configuration and the business
// tables it points to (billing rules, broker directory, cargo catalog).
//
// CONFIGURATION FILES:
//   1. Main Config (freightdocs.yaml): global settings
//   2. Billing Rules (rules_file):     per-shipper billing overrides
//   3. Broker Directory (directory_file): customs-broker emails
//   4. Cargo Catalog (catalog_file):   cargo codes and BL descriptions
//
// Every table file is optional. When a file is not configured the built-in
// agency table is used, so a fresh install works without any YAML at all.
//
// ENVIRONMENT:
//   FREIGHTDOCS_CONFIG      path of the main config file
//   FREIGHTDOCS_LOG_LEVEL   overrides log_level
//   FREIGHTDOCS_OUTPUT_DIR  overrides output_dir
//   FREIGHTDOCS_UNIT_PRICE  overrides unit_price
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/freight-docs/internal/billing"
	"github.com/ginjaninja78/freight-docs/internal/bldoc"
	"github.com/ginjaninja78/freight-docs/internal/directory"
	"github.com/ginjaninja78/freight-docs/internal/numparse"
	"github.com/ginjaninja78/freight-docs/internal/report"
	"github.com/ginjaninja78/freight-docs/internal/validation"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no path is
// given.
const DefaultConfigFile = "freightdocs.yaml"

// Environment variable names.
const (
	EnvConfig    = "FREIGHTDOCS_CONFIG"
	EnvLogLevel  = "FREIGHTDOCS_LOG_LEVEL"
	EnvOutputDir = "FREIGHTDOCS_OUTPUT_DIR"
	EnvUnitPrice = "FREIGHTDOCS_UNIT_PRICE"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is where generated workbooks and error logs are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogFile is an optional file that receives a copy of the log.
	LogFile string `yaml:"log_file,omitempty"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines the output file names.
	// Placeholders:
	//   {kind}      - "faturamento", "recibos_grain", ...
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "{kind}_{timestamp}_{uuid}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// BILLING SETTINGS
	// =========================================================================

	// UnitPrice is the agency fee per BL, in Brazilian or US notation.
	// Default: "350.00"
	UnitPrice string `yaml:"unit_price"`

	// HighlightMarker flags a billing rule's special note for highlighting.
	// Default: "DESTACAR"
	HighlightMarker string `yaml:"highlight_marker"`

	// =========================================================================
	// VALIDATION SETTINGS
	// =========================================================================

	// StrictValidation stops a billing run when the sheet has any finding.
	// Default: false
	StrictValidation bool `yaml:"strict_validation"`

	// RequireCNPJ reports rows without an exporter CNPJ/VAT as errors.
	// Default: false
	RequireCNPJ bool `yaml:"require_cnpj"`

	// =========================================================================
	// TABLE FILES
	// =========================================================================

	// RulesFile, DirectoryFile and CatalogFile replace the built-in tables.
	// Relative paths are resolved against the config file's directory.
	RulesFile     string `yaml:"rules_file,omitempty"`
	DirectoryFile string `yaml:"directory_file,omitempty"`
	CatalogFile   string `yaml:"catalog_file,omitempty"`

	baseDir string
}

// =============================================================================
// TABLE FILE STRUCTURES
// =============================================================================

// RulesFile is the layout of a billing rules file.
type RulesFile struct {
	Rules []billing.Instruction `yaml:"rules"`
}

// DirectoryFile is the layout of a broker directory file.
type DirectoryFile struct {
	Brokers []directory.Contact `yaml:"brokers"`
}

// CatalogFile is the layout of a cargo catalog file.
type CatalogFile struct {
	Cargoes bldoc.Catalog `yaml:"cargoes"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns the built-in configuration.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct, with defaults applied.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	config.baseDir = filepath.Dir(configPath)

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Resolve loads the configuration the CLI should run with.
//
// RESOLUTION ORDER:
//   1. explicitPath, when non-empty (must exist)
//   2. $FREIGHTDOCS_CONFIG (must exist)
//   3. ./freightdocs.yaml, when present
//   4. built-in defaults
//
// Environment overrides are applied last.
func Resolve(explicitPath string) (*MainConfig, error) {
	path, required := explicitPath, true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path, required = DefaultConfigFile, false
	}

	config, err := LoadMainConfig(path)
	if err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		config = Default()
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv applies environment overrides and re-validates.
func ApplyEnv(config *MainConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		config.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUnitPrice)); v != "" {
		config.UnitPrice = v
	}
	if err := validateMainConfig(config); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "{kind}_{timestamp}_{uuid}.xlsx"
	}
	if config.UnitPrice == "" {
		config.UnitPrice = report.DefaultUnitPrice.StringFixed(2)
	}
	if config.HighlightMarker == "" {
		config.HighlightMarker = billing.DefaultHighlightMarker
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	config.LogLevel = strings.ToLower(strings.TrimSpace(config.LogLevel))
	if !validLogLevels[config.LogLevel] {
		return fmt.Errorf("unknown log level %q", config.LogLevel)
	}
	if _, err := config.unitPrice(); err != nil {
		return err
	}
	if !strings.Contains(config.OutputNameFormat, "{uuid}") && !strings.Contains(config.OutputNameFormat, "{timestamp}") {
		return fmt.Errorf("output_name_format %q needs {uuid} or {timestamp} to keep names unique", config.OutputNameFormat)
	}
	return nil
}

func (c *MainConfig) unitPrice() (decimal.Decimal, error) {
	price := numparse.ParseDecimal(c.UnitPrice)
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("unit_price %q is not a positive amount", c.UnitPrice)
	}
	return price, nil
}

// =============================================================================
// COMPONENT ACCESSORS
// =============================================================================

// Pricing returns the configured billing price.
func (c *MainConfig) Pricing() (report.Pricing, error) {
	price, err := c.unitPrice()
	if err != nil {
		return report.Pricing{}, err
	}
	return report.Pricing{UnitPrice: price}, nil
}

// Validation returns the row validation options for billing runs.
func (c *MainConfig) Validation() validation.ValidationOptions {
	opts := validation.ValidationOptions{TreatWarningsAsErrors: c.StrictValidation}
	if c.RequireCNPJ {
		opts.CustomChecks = append(opts.CustomChecks, validation.RequireCNPJ)
	}
	return opts
}

// BillingTable returns the configured rule table, or the built-in one.
func (c *MainConfig) BillingTable() (*billing.Table, error) {
	if c.RulesFile == "" {
		return billing.NewTable(billing.DefaultInstructions(), c.HighlightMarker), nil
	}
	var file RulesFile
	if err := loadTable(c.resolve(c.RulesFile), &file); err != nil {
		return nil, fmt.Errorf("failed to load billing rules: %w", err)
	}
	return billing.NewTable(file.Rules, c.HighlightMarker), nil
}

// Directory returns the configured broker directory, or the built-in one.
func (c *MainConfig) Directory() (*directory.Directory, error) {
	if c.DirectoryFile == "" {
		return directory.Default(), nil
	}
	var file DirectoryFile
	if err := loadTable(c.resolve(c.DirectoryFile), &file); err != nil {
		return nil, fmt.Errorf("failed to load broker directory: %w", err)
	}
	return directory.New(file.Brokers), nil
}

// Catalog returns the configured cargo catalog, or the built-in one.
func (c *MainConfig) Catalog() (bldoc.Catalog, error) {
	if c.CatalogFile == "" {
		return bldoc.DefaultCatalog(), nil
	}
	var file CatalogFile
	if err := loadTable(c.resolve(c.CatalogFile), &file); err != nil {
		return nil, fmt.Errorf("failed to load cargo catalog: %w", err)
	}
	return file.Cargoes, nil
}

// resolve makes a table path relative to the config file's directory.
func (c *MainConfig) resolve(path string) string {
	if filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

func loadTable(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
