package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freightdocs.log")

	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var l Logger = logger.Sugar()
	l.Debugf("hidden %d", 1)
	l.Infof("processed %d rows", 3)
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "processed 3 rows") {
		t.Errorf("info entry missing:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level:\n%s", out)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNop(t *testing.T) {
	Nop().Errorf("discarded %s", "message")
}
