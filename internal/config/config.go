package config

import "time"

// Config holds runtime settings for the QuitVault CLI.
//
// Fields:
//   - DatabasePath: path of the SQLite file backing the key-value store.
//   - KeystoreDir: directory holding device credentials (key, PIN digest).
//   - ProbeAddr: host:port probed to decide online/offline.
//   - OnlineCheckInterval: how often the watcher probes connectivity.
//   - CacheMaxBytes: serialized-size budget of the offline cache.
//
// Units: OnlineCheckInterval is a time.Duration (e.g., 3*time.Second);
// CacheMaxBytes is bytes.
type Config struct {
	DatabasePath        string
	KeystoreDir         string
	ProbeAddr           string
	OnlineCheckInterval time.Duration
	CacheMaxBytes       int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "quitvault.db"
	c.KeystoreDir = ".quitvault-keys"
	c.ProbeAddr = "1.1.1.1:443"
	c.OnlineCheckInterval = 3 * time.Second
	c.CacheMaxBytes = 10 * 1024 * 1024
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
