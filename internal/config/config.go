package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Roles gate which board actions the UI offers.
const (
	RoleAdmin       = "admin"
	RoleContributor = "contributor"
)

// Config holds the settings shared by the board and the backend daemon.
type Config struct {
	// BackendAddr points the board at a boardd instance. Empty runs the
	// simulated backend in-process.
	BackendAddr  string     `toml:"backend_addr" env:"ISSUEBOARD_BACKEND_ADDR"`
	Listen       string     `toml:"listen" env:"ISSUEBOARD_LISTEN"`
	PollSeconds  int        `toml:"poll_seconds" env:"ISSUEBOARD_POLL_SECONDS"`
	UndoWindowMS int        `toml:"undo_window_ms" env:"ISSUEBOARD_UNDO_WINDOW_MS"`
	Role         string     `toml:"role" env:"ISSUEBOARD_ROLE"`
	LogFile      string     `toml:"log_file" env:"ISSUEBOARD_LOG_FILE"`
	SeedFile     string     `toml:"seed_file" env:"ISSUEBOARD_SEED_FILE"`
	Simulation   Simulation `toml:"simulation"`
}

// Simulation tunes the in-process backend.
type Simulation struct {
	LatencyMS              int     `toml:"latency_ms"`
	FailureRate            float64 `toml:"failure_rate"`
	LiveUpdateChance       float64 `toml:"live_update_chance"`
	LiveUpdateEverySeconds int     `toml:"live_update_every_seconds"`
	Seed                   uint64  `toml:"seed"` // 0 seeds from the wall clock
}

const (
	defaultConfigPath   = "~/.config/issueboard/config.toml"
	defaultListen       = "127.0.0.1:7490"
	defaultPollSeconds  = 10
	defaultUndoWindowMS = 5000
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:       defaultListen,
		PollSeconds:  defaultPollSeconds,
		UndoWindowMS: defaultUndoWindowMS,
		Role:         RoleAdmin,
		Simulation: Simulation{
			LatencyMS:              500,
			FailureRate:            0.05,
			LiveUpdateChance:       0.3,
			LiveUpdateEverySeconds: 30,
		},
	}
}

// Load reads the TOML config at path (or the default location), applies
// ISSUEBOARD_* environment overrides and validates the result. A missing file
// is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(bytes, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.BackendAddr = strings.TrimSpace(c.BackendAddr)
	c.Listen = strings.TrimSpace(c.Listen)
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	c.Role = strings.ToLower(strings.TrimSpace(c.Role))
	if c.Role == "" {
		c.Role = RoleAdmin
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = defaultPollSeconds
	}
	if c.UndoWindowMS == 0 {
		c.UndoWindowMS = defaultUndoWindowMS
	}
	c.LogFile = mustExpand(c.LogFile)
	c.SeedFile = mustExpand(c.SeedFile)
}

// Validate rejects negative intervals, probabilities outside [0,1] and
// unknown roles.
func (c Config) Validate() error {
	switch {
	case c.PollSeconds < 0:
		return fmt.Errorf("invalid config: poll_seconds must not be negative (got %d)", c.PollSeconds)
	case c.UndoWindowMS < 0:
		return fmt.Errorf("invalid config: undo_window_ms must not be negative (got %d)", c.UndoWindowMS)
	case c.Role != RoleAdmin && c.Role != RoleContributor:
		return fmt.Errorf("invalid config: role must be %q or %q (got %q)", RoleAdmin, RoleContributor, c.Role)
	}

	sim := c.Simulation
	switch {
	case sim.LatencyMS < 0:
		return fmt.Errorf("invalid config: simulation.latency_ms must not be negative (got %d)", sim.LatencyMS)
	case sim.LiveUpdateEverySeconds < 0:
		return fmt.Errorf("invalid config: simulation.live_update_every_seconds must not be negative (got %d)", sim.LiveUpdateEverySeconds)
	case !isProbability(sim.FailureRate):
		return fmt.Errorf("invalid config: simulation.failure_rate must be within [0,1] (got %v)", sim.FailureRate)
	case !isProbability(sim.LiveUpdateChance):
		return fmt.Errorf("invalid config: simulation.live_update_chance must be within [0,1] (got %v)", sim.LiveUpdateChance)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// PollInterval is the delay between background fetches.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// UndoWindow is how long a mutation stays undoable.
func (c Config) UndoWindow() time.Duration {
	return time.Duration(c.UndoWindowMS) * time.Millisecond
}

// Latency is the simulated round-trip delay.
func (s Simulation) Latency() time.Duration {
	return time.Duration(s.LatencyMS) * time.Millisecond
}

// LiveUpdateEvery is the minimum gap between simulated external edits.
func (s Simulation) LiveUpdateEvery() time.Duration {
	return time.Duration(s.LiveUpdateEverySeconds) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

// mustExpand expands a leading ~ and leaves empty or unresolvable paths as
// they are.
func mustExpand(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
