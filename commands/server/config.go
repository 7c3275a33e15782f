package server

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/campuspay/ledger/errors"
)

// ConfigFile is the name of the node configuration file inside the home
// directory.
const ConfigFile = "config.toml"

// MemDBBackend keeps all state in memory. Nothing is persisted between runs.
const MemDBBackend = "memdb"

// Config holds the settings of a running node. Command line flags take
// precedence over the values read from the file.
type Config struct {
	Bind        string `toml:"bind"`
	MetricsBind string `toml:"metrics_bind"`
	LogLevel    string `toml:"log_level"`
	LogFile     string `toml:"log_file"`
	DBBackend   string `toml:"db_backend"`
	Debug       bool   `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file exists yet.
func DefaultConfig() Config {
	return Config{
		Bind:      "tcp://localhost:26658",
		LogLevel:  "info",
		DBBackend: "goleveldb",
	}
}

// Validate returns an error if the configuration cannot be used to start a
// node.
func (c Config) Validate() error {
	if c.Bind == "" {
		return errors.Wrap(errors.ErrEmpty, "bind")
	}
	switch c.LogLevel {
	case "debug", "info", "error", "none":
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "log level %q", c.LogLevel)
	}
	switch c.DBBackend {
	case MemDBBackend, "goleveldb":
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "db backend %q", c.DBBackend)
	}
	return nil
}

// LoadConfig reads the configuration from the home directory. If the file
// does not exist, the defaults are written there and returned.
func LoadConfig(home string) (Config, error) {
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		return cfg, WriteConfig(home, cfg)
	}

	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "cannot decode %s: %s", path, err)
	}
	if keys := meta.Undecoded(); len(keys) != 0 {
		return cfg, errors.Wrapf(errors.ErrInvalidInput, "unknown key %q in %s", keys[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// WriteConfig stores the configuration in the home directory, replacing any
// existing file.
func WriteConfig(home string, cfg Config) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return errors.Wrap(err, "cannot create home directory")
	}
	f, err := os.OpenFile(filepath.Join(home, ConfigFile), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return errors.Wrap(err, "cannot open config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(err, "cannot encode config")
	}
	return nil
}
