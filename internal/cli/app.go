package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/slackconnect/cli/internal/api"
	"github.com/slackconnect/cli/internal/config"
	"github.com/slackconnect/cli/internal/credentials"
	"github.com/slackconnect/cli/internal/logging"
	"github.com/slackconnect/cli/internal/notify"
	"github.com/slackconnect/cli/internal/scheduled"
	"github.com/slackconnect/cli/internal/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config   *config.Config
	gateway  *api.Client
	session  *session.Manager
	channels *scheduled.Store
	webhooks *scheduled.Store
	notices  *notify.Queue
	log      logging.Logger
	reader   *bufio.Reader
	db       *sql.DB
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	var (
		repo credentials.Repository
		db   *sql.DB
	)
	if cfg.NoPersist {
		repo = credentials.NewMemoryRepository()
	} else {
		var err error
		db, err = credentials.OpenDB(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		repo = credentials.NewSQLiteRepository(db)
	}

	gateway := api.New(cfg.BaseURL, cfg.RequestTimeout, repo, log)
	sess := session.NewManager(gateway, log)
	gateway.OnSessionExpired(sess.HandleSessionExpired)

	return &App{
		config:   cfg,
		gateway:  gateway,
		session:  sess,
		channels: scheduled.NewStore(scheduled.ChannelBackend{Client: gateway}, log),
		webhooks: scheduled.NewStore(scheduled.WebhookBackend{Client: gateway}, log),
		notices:  notify.NewQueue(),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		db:       db,
	}, nil
}

func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Run restores the session, starts the background validity watcher, and
// hands control to the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	a.session.Bootstrap(ctx)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.startTokenValidityWatcher(watchCtx, a.config.TokenCheckInterval)

	a.Root(ctx)
}

// startTokenValidityWatcher periodically re-checks whether the backend's
// Slack credential for the current user is still valid. Best-effort
// housekeeping; each probe gets its own short deadline.
func (a *App) startTokenValidityWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(context.Background(), a.config.RequestTimeout)
			a.session.CheckTokenValidity(probeCtx)
			cancel()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
