package clickforge

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("clickforge", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "clickforge.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.SaveSlot != "default" {
		t.Fatalf("expected default slot, got %q", cfg.SaveSlot)
	}
	if cfg.Duration != 30*time.Second {
		t.Fatalf("expected 30s duration, got %v", cfg.Duration)
	}
	if !cfg.AutoBuy {
		t.Fatal("expected auto-buy on by default")
	}
}

func TestParseConfigOverrides(t *testing.T) {
	fs := flag.NewFlagSet("clickforge", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-db", "/tmp/other.db",
		"-slot", "speedrun",
		"-seed", "42",
		"-duration", "5s",
		"-auto-buy=false",
	})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/other.db" {
		t.Fatalf("expected db override, got %q", cfg.DBPath)
	}
	if cfg.SaveSlot != "speedrun" {
		t.Fatalf("expected slot override, got %q", cfg.SaveSlot)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.Duration != 5*time.Second {
		t.Fatalf("expected 5s duration, got %v", cfg.Duration)
	}
	if cfg.AutoBuy {
		t.Fatal("expected auto-buy off")
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("CLICKFORGE_SAVE_SLOT", "env-slot")
	fs := flag.NewFlagSet("clickforge", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.SaveSlot != "env-slot" {
		t.Fatalf("expected env slot, got %q", cfg.SaveSlot)
	}
}

func TestEmbeddedCatalogParses(t *testing.T) {
	cat, err := loadCatalog("")
	if err != nil {
		t.Fatalf("parse embedded catalog: %v", err)
	}
	if len(cat.Upgrades()) == 0 {
		t.Fatal("embedded catalog has no upgrades")
	}
	if len(cat.Events()) == 0 {
		t.Fatal("embedded catalog has no events")
	}
}
