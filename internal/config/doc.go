// Package config loads runtime configuration for the QuitVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path of the SQLite database file
//	-k string   directory holding device credentials
//	-a string   address:port probed for connectivity
//	-i int      online status check interval (seconds)
//	-m int      offline cache budget (bytes)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "database_path": "quitvault.db",
//	  "keystore_dir": ".quitvault-keys",
//	  "probe_addr": "1.1.1.1:443",
//	  "online_check_interval": "3s",
//	  "cache_max_bytes": 10485760
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
