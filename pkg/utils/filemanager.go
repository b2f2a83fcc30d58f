// =============================================================================
// Freight Docs - File Manager Utility
// =============================================================================
//
// This module provides the file handling shared by every command:
//   - Output directory management
//   - Unique output file naming
//   - Run summary generation
//
// NAMING:
//   Output names come from a format with placeholders ({kind}, {uuid},
//   {timestamp}, {date}, {time}). The extension is always forced to the one
//   the caller writes, so a workbook format can also name error logs.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager places generated files in the output directory.
type FileManager struct {
	// OutputDir is the directory where output files are placed.
	OutputDir string

	// NameFormat is the output file name format.
	NameFormat string

	// now is replaceable in tests.
	now func() time.Time
}

// NewFileManager creates a FileManager writing to outputDir.
func NewFileManager(outputDir, nameFormat string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		NameFormat: nameFormat,
		now:        time.Now,
	}
}

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// NewOutputPath returns a fresh path in the output directory for a file of
// the given kind and extension.
func (fm *FileManager) NewOutputPath(kind, ext string) string {
	now := time.Now
	if fm.now != nil {
		now = fm.now
	}
	name := generateOutputFileName(fm.NameFormat, map[string]string{"kind": kind}, ext, now())
	return filepath.Join(fm.OutputDir, name)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// generateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               any key of params, e.g. {kind}
//   - params: A map of placeholder values.
//   - ext: The extension to force, e.g. ".xlsx". Empty keeps the format's.
//   - now: The time the date and time placeholders are taken from.
//
// EXAMPLE:
//   format: "{kind}_{timestamp}_{uuid}.xlsx"
//   params: {"kind": "faturamento"}
//   ext:    ".log"
//   output: "faturamento_20250115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.log"
func generateOutputFileName(format string, params map[string]string, ext string, now time.Time) string {
	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = sanitizeName(value)
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" {
		result = strings.TrimSuffix(result, filepath.Ext(result)) + ext
	}
	return result
}

// sanitizeName keeps a placeholder value usable inside a file name.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary describes one processing run.
type RunSummary struct {
	Command    string
	Source     string
	OutputFile string
	StartTime  time.Time
	EndTime    time.Time

	// Counters holds labelled statistics in print order.
	Counters []Counter

	// Notes are free-form lines appended after the counters.
	Notes []string
}

// Counter is one labelled statistic.
type Counter struct {
	Label string
	Value string
}

// WriteSummaryLog writes a processing summary next to the outputs.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func (fm *FileManager) WriteSummaryLog(summary RunSummary) (string, error) {
	summaryPath := fm.NewOutputPath(summary.Command+"_summary", ".txt")

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	rule := strings.Repeat("=", 80)
	fmt.Fprintf(writer, "Freight Docs - %s Summary\n%s\n\n", summary.Command, rule)
	fmt.Fprintf(writer, "Run Information:\n")
	fmt.Fprintf(writer, "  Source:     %s\n", summary.Source)
	fmt.Fprintf(writer, "  Output:     %s\n", summary.OutputFile)
	fmt.Fprintf(writer, "  Start Time: %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(writer, "  Duration:   %s\n\n", summary.EndTime.Sub(summary.StartTime))

	if len(summary.Counters) > 0 {
		writer.WriteString("Statistics:\n")
		for _, c := range summary.Counters {
			fmt.Fprintf(writer, "  %-20s %s\n", c.Label+":", c.Value)
		}
		writer.WriteString("\n")
	}

	for _, note := range summary.Notes {
		fmt.Fprintf(writer, "%s\n", note)
	}

	writer.WriteString(rule + "\nEnd of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}
	return summaryPath, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
