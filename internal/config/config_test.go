package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[game]\nplayers = 2\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.Players != 2 {
		t.Fatalf("players = %d, want 2", cfg.Game.Players)
	}
	if cfg.Game.TickRate != time.Second/60 || cfg.Game.Map != "TestMap" {
		t.Fatalf("defaults not applied: %+v", cfg.Game)
	}
	if cfg.Logging.Format != "console" || cfg.Database.Enabled {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Logging, cfg.Database)
	}
}

func TestLoadDurations(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[game]\ntick_rate = \"50ms\"\n[database]\nflush_interval = \"5s\"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.TickRate != 50*time.Millisecond || cfg.Database.FlushInterval != 5*time.Second {
		t.Fatalf("durations = %s, %s", cfg.Game.TickRate, cfg.Database.FlushInterval)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"players":   "[game]\nplayers = 9\n",
		"tick_rate": "[game]\ntick_rate = \"0s\"\n",
		"map":       "[game]\nmap = \"\"\n",
		"dsn":       "[database]\nenabled = true\ndsn = \"\"\n",
	}
	for field, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil || !strings.Contains(err.Error(), field) {
			t.Errorf("%s: err = %v", field, err)
		}
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "game.toml"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	if cfg.Game.TickRate != 16*time.Millisecond {
		t.Fatalf("tick rate = %s", cfg.Game.TickRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}
