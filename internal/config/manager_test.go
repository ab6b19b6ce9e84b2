package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/leonardotrapani/whisperflow/internal/config"
)

func TestManager_GetConfigReturnsCopy(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m, err := config.NewManager()
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	a := m.GetConfig()
	a.Audio.SampleRate = 1

	b := m.GetConfig()
	if b.Audio.SampleRate == 1 {
		t.Error("mutating a returned config leaked into the manager")
	}
}

func TestManager_ReloadOnFileChange(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m, err := config.NewManager()
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.StartWatching(ctx); err != nil {
		t.Fatalf("StartWatching() error: %v", err)
	}
	defer m.Stop()

	cfg := m.GetConfig()
	cfg.Engine.ModelPath = "/tmp/other-model.bin"
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		if m.GetConfig().Engine.ModelPath == "/tmp/other-model.bin" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("config change was not picked up")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestManager_KeepsPreviousOnInvalidReload(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m, err := config.NewManager()
	if err != nil {
		t.Fatalf("NewManager() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := m.StartWatching(ctx); err != nil {
		t.Fatalf("StartWatching() error: %v", err)
	}
	defer m.Stop()

	before := m.GetConfig()

	// Break the config on disk; the manager must keep serving the old one.
	bad := m.GetConfig()
	bad.Output.Mode = "telepathy"
	if err := config.Save(bad); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := m.GetConfig().Output.Mode; got != before.Output.Mode {
		t.Errorf("invalid reload was applied: mode = %q", got)
	}
}
