package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/flagx"
	"github.com/dmitrijs2005/todokeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the session lifetime either as a
// string like "168h" or as integer nanoseconds.
type JsonConfig struct {
	DataDir    string         `json:"data_dir"`
	Backend    string         `json:"backend"`
	SessionTTL timex.Duration `json:"session_ttl"`
	MirrorFile string         `json:"mirror_file"`
}

// parseJson overlays Config with values loaded from a JSON file whose path
// is given by the -c or -config flags. If neither flag is present, no JSON
// is loaded. Only fields present in the file override the defaults.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later
// stages override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.Backend != "" {
		cfg.Backend = jc.Backend
	}
	if jc.SessionTTL.Duration != 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if jc.MirrorFile != "" {
		cfg.MirrorFile = jc.MirrorFile
	}
}
