package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gbansaghi/scandir"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Format != FormatText {
		t.Errorf("expected format text, got %s", cfg.Format)
	}
	if cfg.NoDots {
		t.Error("expected dots to be kept by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeConfig(t, `
format: json
no_dots: true
types: [reg, dir]
suffix: .go
prefix: main
read_buf_size: 4096
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != FormatJSON {
		t.Errorf("expected format json, got %s", cfg.Format)
	}
	if !cfg.NoDots {
		t.Error("expected no_dots to be true")
	}
	if len(cfg.Types) != 2 {
		t.Fatalf("expected 2 types, got %v", cfg.Types)
	}
	if cfg.Suffix != ".go" || cfg.Prefix != "main" {
		t.Errorf("unexpected name filters: prefix=%q suffix=%q", cfg.Prefix, cfg.Suffix)
	}
	if cfg.ReadBufSize != 4096 {
		t.Errorf("expected read_buf_size 4096, got %d", cfg.ReadBufSize)
	}
	if len(cfg.Options()) != 1 {
		t.Errorf("expected one scan option, got %d", len(cfg.Options()))
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, "no_dots: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Format != FormatText {
		t.Errorf("expected default format text, got %s", cfg.Format)
	}
	if cfg.Options() != nil {
		t.Error("expected no scan options")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	for name, body := range map[string]string{
		"format":   "format: xml\n",
		"type":     "types: [pipe-ish]\n",
		"buf size": "read_buf_size: -1\n",
		"syntax":   "types: [unterminated\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error for %q", body)
			}
		})
	}
}

func TestEntryFilter(t *testing.T) {
	dot := scandir.NewEntry(".", 1, scandir.TypeDir)
	dir := scandir.NewEntry("sub", 2, scandir.TypeDir)
	reg := scandir.NewEntry("f", 3, scandir.TypeRegular)

	cfg := DefaultConfig()

	ef, err := cfg.EntryFilter()
	if err != nil {
		t.Fatalf("EntryFilter failed: %v", err)
	}
	if ef != nil {
		t.Error("expected nil filter when nothing is set")
	}

	cfg.NoDots = true
	cfg.Types = []string{"dir"}

	ef, err = cfg.EntryFilter()
	if err != nil {
		t.Fatalf("EntryFilter failed: %v", err)
	}
	if ef(dot) {
		t.Error("expected . to be rejected")
	}
	if !ef(dir) {
		t.Error("expected sub to be accepted")
	}
	if ef(reg) {
		t.Error("expected regular file to be rejected")
	}
}

func TestNameFilter(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NameFilter() != nil {
		t.Error("expected nil filter when nothing is set")
	}

	cfg.Prefix = "main"
	cfg.Suffix = ".go"
	nf := cfg.NameFilter()

	if !nf("main_test.go") {
		t.Error("expected main_test.go to match")
	}
	if nf("main.md") {
		t.Error("expected main.md NOT to match")
	}
	if nf("util.go") {
		t.Error("expected util.go NOT to match")
	}
}
