// Package config loads runtime settings for the todokeeper CLI.
//
// Settings are resolved in three stages, later stages taking precedence:
// built-in defaults, then a JSON config file (-c/-config), then
// command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - DataDir: directory holding the JSON collections, the SQLite database
//     and the markdown mirror.
//   - Backend: storage backend, "json" or "sqlite".
//   - SessionTTL: absolute session lifetime from creation.
//   - MirrorFile: filename of the human-readable markdown mirror inside
//     DataDir.
type Config struct {
	DataDir    string
	Backend    string
	SessionTTL time.Duration
	MirrorFile string
}

// Backend names accepted in config.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// FlagNames lists every command-line flag owned by this package. The
// subcommand dispatcher strips these from the argument list before parsing
// its own flags.
var FlagNames = []string{"-c", "-config", "-datadir", "-backend", "-ttl", "-mirror"}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = ".todokeeper"
	c.Backend = BackendJSON
	c.SessionTTL = 7 * 24 * time.Hour
	c.MirrorFile = "TODO.md"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
