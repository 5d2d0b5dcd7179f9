package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/issueboard/internal/backend"
	"github.com/five82/issueboard/internal/clock"
	"github.com/five82/issueboard/internal/config"
	"github.com/five82/issueboard/internal/issue"
	"github.com/five82/issueboard/internal/tracker"
)

func TestNewRepository_SelectsBackend(t *testing.T) {
	clk := clock.Fake(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	cfg := config.Default()
	repo, err := NewRepository(cfg, clk, testLogger)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	if _, ok := repo.(*backend.Simulated); !ok {
		t.Fatalf("repository = %T, want *backend.Simulated", repo)
	}

	cfg.BackendAddr = "127.0.0.1:7490"
	repo, err = NewRepository(cfg, clk, testLogger)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	if _, ok := repo.(*tracker.Client); !ok {
		t.Fatalf("repository = %T, want *tracker.Client", repo)
	}
}

func TestNewSimulated_UsesSeedFileAndSettings(t *testing.T) {
	seedPath := filepath.Join(t.TempDir(), "seed.jsonc")
	seed := `[
		// one issue is enough
		{"id": "A", "title": "Seeded", "status": "Done", "assignee": "Zoe",
		 "severity": 2, "priority": "Low", "tags": ["x"], "createdAt": "2025-01-01T00:00:00Z"},
	]`
	if err := os.WriteFile(seedPath, []byte(seed), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := config.Default()
	cfg.SeedFile = seedPath
	cfg.Simulation.LatencyMS = 0
	cfg.Simulation.FailureRate = 1
	cfg.Simulation.Seed = 99

	sim, err := NewSimulated(cfg, clock.Fake(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)), testLogger)
	if err != nil {
		t.Fatalf("NewSimulated: %v", err)
	}
	issues := sim.Issues()
	if len(issues) != 1 || issues[0].Title != "Seeded" {
		t.Fatalf("issues = %+v", issues)
	}

	_, err = sim.Update(context.Background(), "A", issue.Patch{Severity: issue.Set(4)})
	if err == nil {
		t.Fatal("failure_rate = 1 should reject every update")
	}
}

func TestNewSimulated_BadSeedFile(t *testing.T) {
	cfg := config.Default()
	cfg.SeedFile = filepath.Join(t.TempDir(), "missing.jsonc")

	if _, err := NewSimulated(cfg, clock.Real(), testLogger); err == nil {
		t.Fatal("expected error for missing seed file")
	}
}

func TestNewLogger(t *testing.T) {
	logger, closeLog, err := NewLogger("")
	if err != nil || logger == nil {
		t.Fatalf("NewLogger(\"\") = %v, %v", logger, err)
	}
	if err := closeLog(); err != nil {
		t.Fatalf("close discard logger: %v", err)
	}

	path := filepath.Join(t.TempDir(), "logs", "board.log")
	logger, closeLog, err = NewLogger(path)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.Info("hello", "issue", "1")
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") || !strings.Contains(string(data), "issue=1") {
		t.Fatalf("log contents = %q", data)
	}
}
