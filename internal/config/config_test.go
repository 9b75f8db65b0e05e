package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultHeistConfig()
	var embedded HeistConfig
	if err := yaml.Unmarshal(DefaultYAML(), &embedded); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if embedded != cfg {
		t.Errorf("embedded defaults = %+v, hardcoded = %+v", embedded, cfg)
	}
}

func TestLoadHeistCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "search:\n  step_delay_ms: 100\nhints:\n  enabled: false\n")

	cfg, err := LoadHeist(path)
	if err != nil {
		t.Fatalf("LoadHeist() error = %v", err)
	}
	if cfg.Search.StepDelayMS != 100 || cfg.Hints.Enabled {
		t.Errorf("overridden values not applied: %+v", cfg)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Search.ResultHoldMS != 250 || cfg.Display.EmptyGlyph != "–" || !cfg.Display.ShowIndices {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadHeistCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadHeist(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "search: [not, a, map\n")
	if _, err := LoadHeist(bad); err == nil {
		t.Error("malformed custom config should be an error")
	}
}

func TestLoadHeistSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadHeist("")
	if err != nil {
		t.Fatalf("LoadHeist() error = %v", err)
	}
	if cfg != DefaultHeistConfig() {
		t.Errorf("with no files, got %+v", cfg)
	}

	writeFile(t, filepath.Join(work, "configs", "heist.yaml"), "animation:\n  flash_ms: 10\n")
	cfg, _ = LoadHeist("")
	if cfg.Animation.FlashMS != 10 {
		t.Errorf("local config not used, flash_ms = %d", cfg.Animation.FlashMS)
	}

	writeFile(t, filepath.Join(home, ".heist", "configs", "heist.yaml"), "animation:\n  flash_ms: 20\n")
	cfg, _ = LoadHeist("")
	if cfg.Animation.FlashMS != 20 {
		t.Errorf("user config should win over local, flash_ms = %d", cfg.Animation.FlashMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		in    HeistConfig
		check func(HeistConfig) bool
	}{
		{
			name:  "negative delay",
			in:    HeistConfig{Search: SearchConfig{StepDelayMS: -5}, Display: DisplayConfig{EmptyGlyph: "."}},
			check: func(c HeistConfig) bool { return c.Search.StepDelayMS == 0 },
		},
		{
			name:  "huge flash",
			in:    HeistConfig{Animation: AnimationConfig{FlashMS: 999999}, Display: DisplayConfig{EmptyGlyph: "."}},
			check: func(c HeistConfig) bool { return c.Animation.FlashMS == maxDelayMS },
		},
		{
			name:  "empty glyph",
			in:    HeistConfig{},
			check: func(c HeistConfig) bool { return c.Display.EmptyGlyph == "–" },
		},
		{
			name:  "multi rune glyph",
			in:    HeistConfig{Display: DisplayConfig{EmptyGlyph: "ab"}},
			check: func(c HeistConfig) bool { return c.Display.EmptyGlyph == "–" },
		},
		{
			name:  "valid glyph kept",
			in:    HeistConfig{Display: DisplayConfig{EmptyGlyph: "·"}},
			check: func(c HeistConfig) bool { return c.Display.EmptyGlyph == "·" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Validate()
			if !tt.check(cfg) {
				t.Errorf("Validate() = %+v", cfg)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultHeistConfig()
	if cfg.StepDelay().Milliseconds() != 250 || cfg.Flash().Milliseconds() != 350 || cfg.ResultHold().Milliseconds() != 250 {
		t.Errorf("durations = %v %v %v", cfg.StepDelay(), cfg.Flash(), cfg.ResultHold())
	}
}

func TestLive(t *testing.T) {
	l := NewLive(DefaultHeistConfig())

	cfg := l.Get()
	cfg.Hints.Enabled = false
	if !l.Get().Hints.Enabled {
		t.Fatal("Get() returned shared state")
	}

	l.Set(cfg)
	if l.Get().Hints.Enabled {
		t.Error("Set() did not replace the config")
	}
}

func TestWatchFileReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heist.yaml")
	writeFile(t, path, "search:\n  step_delay_ms: 100\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	live := NewLive(cfg)

	type reload struct {
		cfg HeistConfig
		err error
	}
	reloads := make(chan reload, 8)
	w, err := live.WatchFile(path, func(c HeistConfig, err error) {
		reloads <- reload{c, err}
	})
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	next := func() reload {
		t.Helper()
		select {
		case r := <-reloads:
			return r
		case <-time.After(5 * time.Second):
			t.Fatal("no reload within 5s")
			return reload{}
		}
	}

	writeFile(t, path, "search:\n  step_delay_ms: 700\n")
	if r := next(); r.err != nil || r.cfg.Search.StepDelayMS != 700 {
		t.Fatalf("reload = %+v", r)
	}
	if got := live.Get().Search.StepDelayMS; got != 700 {
		t.Errorf("live step delay = %d, want 700", got)
	}

	// A broken file keeps the last good config.
	writeFile(t, path, "search: [not a map\n")
	if r := next(); r.err == nil {
		t.Fatal("expected a parse error")
	}
	if got := live.Get().Search.StepDelayMS; got != 700 {
		t.Errorf("live step delay = %d after bad reload, want 700", got)
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	live := NewLive(DefaultHeistConfig())
	if _, err := live.WatchFile(filepath.Join(t.TempDir(), "nope", "heist.yaml"), nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
