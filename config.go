package nin

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// DaemonConfig holds dcached's settings: where to serve files from, where to
// listen, and how long a slow peer gets before a response is abandoned.
// Peers is only consulted by tools that also act as a DCache client (warming
// a cache from its neighbors); the daemon itself never dials out.
type DaemonConfig struct {
	Root         string     `mapstructure:"root"`
	Addr         string     `mapstructure:"addr"`
	WriteTimeout string     `mapstructure:"writeTimeout"`
	Peers        []HostInfo `mapstructure:"peers"`
}

// DefaultDaemonConfig returns the settings dcached runs with when no config
// file and no flags override them.
func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		Root:         ".",
		Addr:         ":9987",
		WriteTimeout: "30s",
	}
}

// LoadDaemonConfig reads a YAML config file through viper, falling back to
// defaults for anything the file doesn't set. A missing file is not an
// error; a malformed one is, since guessing at a broken config is worse than
// refusing to start.
func LoadDaemonConfig(v *viper.Viper, path string) (DaemonConfig, error) {
	cfg := DefaultDaemonConfig()
	v.SetDefault("root", cfg.Root)
	v.SetDefault("addr", cfg.Addr)
	v.SetDefault("writeTimeout", cfg.WriteTimeout)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// An explicitly set file that doesn't exist surfaces as an
			// fs error rather than ConfigFileNotFoundError.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return cfg, fmt.Errorf("dcached: reading config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("dcached: parsing config: %w", err)
	}
	return cfg, nil
}

// WriteTimeoutDuration parses WriteTimeout, defaulting to 30s when unset. An
// unparsable value is a config error, not silently ignored: the caller must
// treat it as fatal at startup rather than run with a timeout the operator
// never asked for.
func (c DaemonConfig) WriteTimeoutDuration() (time.Duration, error) {
	if c.WriteTimeout == "" {
		return writeTimeout, nil
	}
	d, err := time.ParseDuration(c.WriteTimeout)
	if err != nil {
		return 0, fmt.Errorf("dcached: invalid writeTimeout %q: %w", c.WriteTimeout, err)
	}
	return d, nil
}
