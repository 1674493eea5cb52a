package config

import (
	"flag"
	"os"
	"time"

	"github.com/quitvault/quitvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path of the SQLite database file (default from Config)
//	-k string   directory holding device credentials (default from Config)
//	-a string   address and port probed for connectivity (default from Config)
//	-i int      online check interval in seconds (default from Config)
//	-m int      offline cache budget in bytes (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-a", "-i", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.KeystoreDir, "k", cfg.KeystoreDir, "directory holding device credentials")
	fs.StringVar(&cfg.ProbeAddr, "a", cfg.ProbeAddr, "address and port probed for connectivity")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.IntVar(&cfg.CacheMaxBytes, "m", cfg.CacheMaxBytes, "offline cache budget (in bytes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
