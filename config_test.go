package nin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDaemonConfig_Defaults(t *testing.T) {
	cfg, err := LoadDaemonConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("LoadDaemonConfig() error = %v", err)
	}
	if cfg.Root != "." || cfg.Addr != ":9987" || cfg.WriteTimeout != "30s" {
		t.Errorf("LoadDaemonConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadDaemonConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dcached.yaml")
	content := []byte("root: /srv/build\naddr: \":7000\"\nwriteTimeout: 5s\npeers:\n  - host: build1\n    port: 9987\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDaemonConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("LoadDaemonConfig() error = %v", err)
	}
	if cfg.Root != "/srv/build" || cfg.Addr != ":7000" || cfg.WriteTimeout != "5s" {
		t.Errorf("LoadDaemonConfig() = %+v, want file values", cfg)
	}
	if len(cfg.Peers) != 1 || cfg.Peers[0].Host != "build1" || cfg.Peers[0].Port != "9987" {
		t.Errorf("LoadDaemonConfig() peers = %+v", cfg.Peers)
	}
}

func TestLoadDaemonConfig_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadDaemonConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadDaemonConfig() error = %v, want nil for a missing file", err)
	}
	if cfg.Addr != ":9987" {
		t.Errorf("LoadDaemonConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadDaemonConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dcached.yaml")
	if err := os.WriteFile(path, []byte("root: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDaemonConfig(viper.New(), path); err == nil {
		t.Fatal("LoadDaemonConfig() error = nil, want a parse error")
	}
}

func TestDaemonConfig_WriteTimeoutDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 30 * time.Second},
		{"5s", 5 * time.Second},
		{"1m", time.Minute},
	}
	for _, c := range cases {
		cfg := DaemonConfig{WriteTimeout: c.in}
		got, err := cfg.WriteTimeoutDuration()
		if err != nil {
			t.Errorf("WriteTimeoutDuration(%q) unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("WriteTimeoutDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDaemonConfig_WriteTimeoutDuration_InvalidIsFatal(t *testing.T) {
	cfg := DaemonConfig{WriteTimeout: "not-a-duration"}
	if _, err := cfg.WriteTimeoutDuration(); err == nil {
		t.Fatal("WriteTimeoutDuration() error = nil, want an error for an unparsable value")
	}
}
