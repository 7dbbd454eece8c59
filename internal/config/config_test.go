package config

import (
	"testing"
	"time"

	"github.com/BurntSushi/toml"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Files.Directory != "." {
		t.Errorf("default directory = %q, want .", cfg.Files.Directory)
	}
	if cfg.Tick() != time.Second {
		t.Errorf("default tick = %v, want 1s", cfg.Tick())
	}
	if cfg.MessageTTL() != 3*time.Second {
		t.Errorf("default message TTL = %v, want 3s", cfg.MessageTTL())
	}
}

func TestFillDefaults(t *testing.T) {
	var cfg Config
	cfg.fillDefaults()

	if cfg.Files.Directory != "." || cfg.UI.TickMillis != 1000 || cfg.UI.MessageSeconds != 3 {
		t.Errorf("zero config not filled: %+v", cfg)
	}

	cfg = Config{UI: UIConfig{TickMillis: 250}}
	cfg.fillDefaults()
	if cfg.UI.TickMillis != 250 {
		t.Errorf("explicit tick overwritten: %d", cfg.UI.TickMillis)
	}
	if cfg.UI.MessageSeconds != 3 {
		t.Errorf("missing message_seconds not filled: %d", cfg.UI.MessageSeconds)
	}
}

func TestPartialFileDecode(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode("[files]\ndirectory = \"/tmp/tally\"\n", &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	cfg.fillDefaults()

	if cfg.Files.Directory != "/tmp/tally" {
		t.Errorf("directory = %q", cfg.Files.Directory)
	}
	if cfg.UI.TickMillis != 1000 {
		t.Errorf("tick default not applied: %d", cfg.UI.TickMillis)
	}
}
