// Package prefs persists small per-user board state: the color theme and the
// recently opened issues. Preferences are stored in
// ~/.config/issueboard/prefs.toml.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
	toml "github.com/pelletier/go-toml/v2"
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// MaxRecent bounds the recently accessed list.
const MaxRecent = 5

// Prefs holds user preferences for the board.
type Prefs struct {
	Theme            string   `toml:"theme"`
	RecentlyAccessed []string `toml:"recentlyAccessed"` // issue ids, most recent first
}

const (
	defaultPrefsPath = "~/.config/issueboard/prefs.toml"
	defaultTheme     = ThemeLight
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if the
// file is missing or unreadable.
func Load(path string) (Prefs, error) {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, nil // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return prefs, nil // Graceful degradation
	}

	if err := toml.Unmarshal(data, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}, nil // Graceful degradation
	}

	prefs.normalize()
	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
// The file is replaced atomically.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	p.normalize()
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := atomic.WriteFile(resolved, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Touch moves id to the front of the recently accessed list.
func (p *Prefs) Touch(id string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	recent := make([]string, 0, MaxRecent)
	recent = append(recent, id)
	for _, existing := range p.RecentlyAccessed {
		if existing != id && len(recent) < MaxRecent {
			recent = append(recent, existing)
		}
	}
	p.RecentlyAccessed = recent
}

// ToggleTheme flips between light and dark and returns the new theme.
func (p *Prefs) ToggleTheme() string {
	if p.Theme == ThemeDark {
		p.Theme = ThemeLight
	} else {
		p.Theme = ThemeDark
	}
	return p.Theme
}

func (p *Prefs) normalize() {
	p.Theme = strings.ToLower(strings.TrimSpace(p.Theme))
	if p.Theme != ThemeLight && p.Theme != ThemeDark {
		p.Theme = defaultTheme
	}

	recent := make([]string, 0, MaxRecent)
	for _, id := range p.RecentlyAccessed {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(recent, id) {
			continue
		}
		if len(recent) == MaxRecent {
			break
		}
		recent = append(recent, id)
	}
	p.RecentlyAccessed = recent
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
