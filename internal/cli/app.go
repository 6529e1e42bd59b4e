package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/config"
	"github.com/dsavelev/gitnotes/internal/cryptox"
	"github.com/dsavelev/gitnotes/internal/db"
	"github.com/dsavelev/gitnotes/internal/filex"
	"github.com/dsavelev/gitnotes/internal/github"
	"github.com/dsavelev/gitnotes/internal/logging"
	"github.com/dsavelev/gitnotes/internal/repositories/documents"
	"github.com/dsavelev/gitnotes/internal/repositories/settings"
	"github.com/dsavelev/gitnotes/internal/repositories/syncqueue"
	"github.com/dsavelev/gitnotes/internal/repositories/versions"
	"github.com/dsavelev/gitnotes/internal/services"
)

const saltSize = 16

// App wires the repositories, services and the GitHub client behind the
// REPL. creds is nil until the stored token has been unlocked with the
// user's passphrase.
type App struct {
	config *config.Config
	log    logging.Logger

	docs     documents.Repository
	vers     versions.Repository
	queue    syncqueue.Repository
	settings settings.Repository

	reconciler *services.Reconciler
	processor  *services.QueueProcessor
	versionSvc *services.VersionService
	autoSaver  *services.AutoSaver

	// creds is read by the background sync worker goroutine while the
	// REPL goroutine unlocks or replaces the token, so access goes
	// through credentials/setCredentials.
	credsMu sync.RWMutex
	creds   *github.Credentials

	reader *bufio.Reader

	closeDB func() error
}

// NewApp opens the database, applies migrations and wires every service.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	if _, err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := db.Open(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err.Error())
		return nil, err
	}

	docs := documents.NewSQLiteRepository(conn)
	vers := versions.NewSQLiteRepository(conn)
	queue := syncqueue.NewSQLiteRepository(conn)
	sets := settings.NewSQLiteRepository(conn)

	gh := github.NewClient("", nil)
	rec := services.NewReconciler(docs, vers, gh, log)

	return &App{
		config:     c,
		log:        log,
		docs:       docs,
		vers:       vers,
		queue:      queue,
		settings:   sets,
		reconciler: rec,
		processor:  services.NewQueueProcessor(queue, docs, rec, c.QueueMaxRetries, log),
		versionSvc: services.NewVersionService(docs, vers, c.Plan, log),
		autoSaver:  services.NewAutoSaver(vers, c.AutoSaveInterval, log),
		reader:     bufio.NewReader(os.Stdin),
		closeDB:    conn.Close,
	}, nil
}

// Run evicts expired snapshots, starts the background sync worker and
// enters the REPL. It returns when the user exits.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if n, err := a.versionSvc.EvictExpired(ctx); err != nil {
		a.log.Warn(ctx, "snapshot eviction failed", "error", err.Error())
	} else if n > 0 {
		fmt.Printf("Removed %d expired snapshots\n", n)
	}

	go a.StartSyncWorker(ctx, a.config.SyncInterval)

	a.Root(ctx)

	// Pending auto-saves must land before the process exits.
	a.autoSaver.Flush(context.Background())
	if err := a.closeDB(); err != nil {
		a.log.Warn(ctx, "error closing database", "error", err.Error())
	}
}

func (a *App) credentials() *github.Credentials {
	a.credsMu.RLock()
	defer a.credsMu.RUnlock()
	return a.creds
}

func (a *App) setCredentials(c *github.Credentials) {
	a.credsMu.Lock()
	a.creds = c
	a.credsMu.Unlock()
}

func (a *App) isUnlocked() bool {
	return a.credentials() != nil
}

// location resolves the target repository, preferring config over stored
// settings.
func (a *App) location(ctx context.Context) (github.Location, error) {
	loc := github.Location{Owner: a.config.Owner, Repo: a.config.Repo, Branch: a.config.Branch}

	if loc.Owner == "" {
		if v, err := a.settings.Get(ctx, settings.KeyGitHubOwner); err == nil && v != nil {
			loc.Owner = string(v)
		}
	}
	if loc.Repo == "" {
		if v, err := a.settings.Get(ctx, settings.KeyGitHubRepo); err == nil && v != nil {
			loc.Repo = string(v)
		}
	}

	if loc.Owner == "" || loc.Repo == "" {
		return loc, fmt.Errorf("GitHub repository is not configured: %w", common.ErrorValidation)
	}
	return loc, nil
}

// unlock decrypts the stored token with a passphrase prompted from the
// user and caches the credentials for the session.
func (a *App) unlock(ctx context.Context) error {
	if a.isUnlocked() {
		return nil
	}

	blob, err := a.settings.Get(ctx, settings.KeyGitHubToken)
	if err != nil {
		return err
	}
	salt, err := a.settings.Get(ctx, settings.KeyTokenSalt)
	if err != nil {
		return err
	}
	if blob == nil || salt == nil {
		return fmt.Errorf("no GitHub token stored, run 'settoken' first: %w", common.ErrorValidation)
	}

	pass, err := GetPassword(os.Stdout, "Enter passphrase: ")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pass)

	key := cryptox.DeriveKey(pass, salt)
	defer common.WipeByteArray(key)

	token, err := cryptox.Open(blob, key)
	if err != nil {
		return errors.New("wrong passphrase")
	}

	a.setCredentials(&github.Credentials{Token: string(token)})
	common.WipeByteArray(token)
	return nil
}
