package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/quitvault/quitvault/internal/flagx"
	"github.com/quitvault/quitvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath        string         `json:"database_path"`
	KeystoreDir         string         `json:"keystore_dir"`
	ProbeAddr           string         `json:"probe_addr"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	CacheMaxBytes       int            `json:"cache_max_bytes"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags via
// flagx.JsonConfigFlags(); with no flag, nothing is loaded. Read or
// unmarshal errors panic (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
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

	cfg.DatabasePath = jc.DatabasePath
	cfg.KeystoreDir = jc.KeystoreDir
	cfg.ProbeAddr = jc.ProbeAddr
	cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	cfg.CacheMaxBytes = jc.CacheMaxBytes
}
