package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("output.format = %q, want text", cfg.Output.Format)
	}
	if cfg.NTP.Server != "pool.ntp.org:123" {
		t.Errorf("ntp.server = %q", cfg.NTP.Server)
	}
	if cfg.NTP.Timeout != 5*time.Second {
		t.Errorf("ntp.timeout = %s", cfg.NTP.Timeout)
	}
	if cfg.NTP.Attempts != 1 {
		t.Errorf("ntp.attempts = %d", cfg.NTP.Attempts)
	}
	if cfg.DNS.ProbeServer != "208.67.222.222" || cfg.DNS.ProbePort != 53 {
		t.Errorf("dns probe = %s:%d", cfg.DNS.ProbeServer, cfg.DNS.ProbePort)
	}
	if cfg.DNS.ResolvConf != "/etc/resolv.conf" {
		t.Errorf("dns.resolv_conf = %q", cfg.DNS.ResolvConf)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MY_NTP_SERVER", "time.example.com:123")
	t.Setenv("MY_NTP_TIMEOUT", "250ms")
	t.Setenv("MY_NTP_ATTEMPTS", "3")
	t.Setenv("MY_OUTPUT_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NTP.Server != "time.example.com:123" {
		t.Errorf("ntp.server = %q", cfg.NTP.Server)
	}
	if cfg.NTP.Timeout != 250*time.Millisecond {
		t.Errorf("ntp.timeout = %s", cfg.NTP.Timeout)
	}
	if cfg.NTP.Attempts != 3 {
		t.Errorf("ntp.attempts = %d", cfg.NTP.Attempts)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output.format = %q", cfg.Output.Format)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "ntp:\n  server: ntp.internal:123\n  attempts: 2\ndns:\n  probe_port: 5353\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NTP.Server != "ntp.internal:123" {
		t.Errorf("ntp.server = %q", cfg.NTP.Server)
	}
	if cfg.NTP.Attempts != 2 {
		t.Errorf("ntp.attempts = %d", cfg.NTP.Attempts)
	}
	if cfg.DNS.ProbePort != 5353 {
		t.Errorf("dns.probe_port = %d", cfg.DNS.ProbePort)
	}
	// Untouched keys keep their defaults.
	if cfg.DNS.ProbeServer != "208.67.222.222" {
		t.Errorf("dns.probe_server = %q", cfg.DNS.ProbeServer)
	}
}

func TestLoadDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".my")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "ntp:\n  server: home.ntp:123\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NTP.Server != "home.ntp:123" {
		t.Errorf("ntp.server = %q, want home.ntp:123", cfg.NTP.Server)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"empty server", func(c *Config) { c.NTP.Server = "" }},
		{"zero timeout", func(c *Config) { c.NTP.Timeout = 0 }},
		{"zero attempts", func(c *Config) { c.NTP.Attempts = 0 }},
		{"too many attempts", func(c *Config) { c.NTP.Attempts = MaxNTPAttempts + 1 }},
		{"bad port", func(c *Config) { c.DNS.ProbePort = 70000 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := base()
			c.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
