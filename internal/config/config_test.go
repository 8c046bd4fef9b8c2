package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeFile(t, `
model = "models/ld.pb"
languages = ["de", "en"]
jobs = 3
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "models/ld.pb" || cfg.Jobs != 3 || !slices.Equal(cfg.Languages, []string{"de", "en"}) {
		t.Fatalf("got %+v", cfg)
	}
	def := Default()
	if cfg.Top != def.Top || cfg.Color != def.Color || cfg.Format != def.Format {
		t.Fatalf("defaults lost: got %+v, want top/color/format of %+v", cfg, def)
	}
}

func TestLoadExplicitZero(t *testing.T) {
	cfg, err := Load(writeFile(t, "top = 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Top != 0 {
		t.Fatalf("top: got %d, want 0", cfg.Top)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"syntax", "model = ", false},
		{"unknown key", "modle = \"x\"\n", true},
		{"negative jobs", "jobs = -1\n", true},
		{"color mode", "color = \"sometimes\"\n", true},
		{"format", "format = \"xml\"\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.invalid != errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("errors.Is(%v, ErrInvalidConfig) = %v, want %v", err, !tt.invalid, tt.invalid)
			}
		})
	}
}

func TestResolveWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, path, err := Resolve("")
	if err != nil || path != "" {
		t.Fatalf("got path=%q err=%v, want defaults", path, err)
	}
	if cfg.Top != Default().Top {
		t.Fatalf("got %+v, want defaults", cfg)
	}
	if _, _, err := Resolve(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("explicit missing file should fail")
	}
}
