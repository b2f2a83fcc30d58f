package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2025, 1, 15, 14, 30, 22, 0, time.UTC)

	name := generateOutputFileName("{kind}_{timestamp}_{uuid}.xlsx", map[string]string{"kind": "faturamento"}, "", now)
	if !strings.HasPrefix(name, "faturamento_20250115_143022_") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("name = %q", name)
	}

	logName := generateOutputFileName("{kind}_{date}.xlsx", map[string]string{"kind": "a b/c"}, ".log", now)
	if logName != "a_b_c_20250115.log" {
		t.Errorf("log name = %q", logName)
	}

	fm := NewFileManager(t.TempDir(), "{kind}_{uuid}.xlsx")
	a := fm.NewOutputPath("faturamento", ".xlsx")
	b := fm.NewOutputPath("faturamento", ".xlsx")
	if a == b {
		t.Error("uuid placeholder should make names unique")
	}
}

func TestFileManager(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	fm := NewFileManager(dir, "{kind}_{timestamp}_{uuid}.xlsx")
	fm.now = func() time.Time { return time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC) }

	if err := fm.EnsureOutputDir(); err != nil {
		t.Fatal(err)
	}
	if !FileExists(dir) {
		t.Fatal("output dir not created")
	}

	path := fm.NewOutputPath("recibos", ".xlsx")
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "recibos_20250301_080000_") {
		t.Errorf("path = %q", path)
	}

	start := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	summaryPath, err := fm.WriteSummaryLog(RunSummary{
		Command:    "billing",
		Source:     "sheet.xlsx",
		OutputFile: path,
		StartTime:  start,
		EndTime:    start.Add(2 * time.Second),
		Counters:   []Counter{{Label: "Groups", Value: "3"}},
		Notes:      []string{"DO NOT BILL: ENGELHART"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(summaryPath, ".txt") {
		t.Errorf("summary path = %q", summaryPath)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Freight Docs - billing Summary", "sheet.xlsx", "Groups:", "2s", "DO NOT BILL: ENGELHART"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("summary missing %q:\n%s", want, data)
		}
	}
}
