package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-datadir string   data directory (default from Config)
//	-backend string   storage backend: json or sqlite
//	-ttl int          session lifetime in hours
//	-mirror string    markdown mirror filename
//
// The function filters os.Args down to the flags it owns, using
// flagx.FilterArgs, to avoid interference with subcommand flags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-datadir", "-backend", "-ttl", "-mirror"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "datadir", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "storage backend: json or sqlite")
	ttlHours := fs.Int("ttl", int(cfg.SessionTTL.Hours()), "session lifetime (in hours)")
	fs.StringVar(&cfg.MirrorFile, "mirror", cfg.MirrorFile, "markdown mirror filename")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionTTL = time.Duration(*ttlHours) * time.Hour
}
