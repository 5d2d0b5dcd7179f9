package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if len(p.RecentlyAccessed) != 0 {
		t.Fatalf("RecentlyAccessed = %v, want empty", p.RecentlyAccessed)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "issueboard")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	body := "theme = \"dark\"\nrecentlyAccessed = [\"3\", \"1\"]\n"
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Prefs{Theme: ThemeDark, RecentlyAccessed: []string{"3", "1"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_NormalizesStoredValues(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	body := "theme = \"Solarized\"\nrecentlyAccessed = [\"1\", \"1\", \" \", \"2\", \"3\", \"4\", \"5\", \"6\"]\n"
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Prefs{Theme: defaultTheme, RecentlyAccessed: []string{"1", "2", "3", "4", "5"}}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{Theme: ThemeDark, RecentlyAccessed: []string{"7"}}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(p, loaded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(prefsFile))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("prefs dir has %d entries, want only prefs.toml", len(entries))
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestTouch(t *testing.T) {
	tests := []struct {
		name   string
		start  []string
		touch  string
		expect []string
	}{
		{"first entry", nil, "1", []string{"1"}},
		{"new goes to front", []string{"1", "2"}, "3", []string{"3", "1", "2"}},
		{"existing moves to front", []string{"1", "2", "3"}, "3", []string{"3", "1", "2"}},
		{"capped at five", []string{"1", "2", "3", "4", "5"}, "6", []string{"6", "1", "2", "3", "4"}},
		{"blank ignored", []string{"1"}, "  ", []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Prefs{RecentlyAccessed: tt.start}
			p.Touch(tt.touch)
			if diff := cmp.Diff(tt.expect, p.RecentlyAccessed); diff != "" {
				t.Fatalf("Touch(%q) mismatch (-want +got):\n%s", tt.touch, diff)
			}
		})
	}
}

func TestToggleTheme(t *testing.T) {
	p := Prefs{Theme: ThemeLight}
	if got := p.ToggleTheme(); got != ThemeDark {
		t.Fatalf("ToggleTheme() = %q, want dark", got)
	}
	if got := p.ToggleTheme(); got != ThemeLight {
		t.Fatalf("ToggleTheme() = %q, want light", got)
	}
}
