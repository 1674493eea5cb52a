package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/quitvault/quitvault/internal/config"
	"github.com/quitvault/quitvault/internal/keystore"
	"github.com/quitvault/quitvault/internal/logging"
	"github.com/quitvault/quitvault/internal/netx"
	"github.com/quitvault/quitvault/internal/offline"
	"github.com/quitvault/quitvault/internal/secret"
	"github.com/quitvault/quitvault/internal/storage"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	secrets *secret.Service
	vault   *offline.Manager
	db      *sql.DB
	Mode    Mode
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	db, kv, err := storage.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	creds, err := keystore.NewFileKeystore(c.KeystoreDir)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	secrets := secret.NewService(kv, creds, &secret.StaticChallenger{}, logger)

	applier := &offline.SimulatedApplier{Latency: 100 * time.Millisecond}
	vault := offline.NewManager(kv, applier, netx.NewDialProber(c.ProbeAddr), logger)

	if c.CacheMaxBytes > 0 {
		if err := vault.UpdateCacheConfig(ctx, offline.CacheConfig{MaxSizeBytes: int64(c.CacheMaxBytes)}); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &App{config: c, secrets: secrets, vault: vault, db: db, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

// isUnlocked consults the auto-lock policy, so an idle session re-locks
// without any explicit action.
func (a *App) isUnlocked() bool {
	return !a.secrets.IsAuthenticationRequired(context.Background())
}
