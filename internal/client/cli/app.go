package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/config"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/db"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/services"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/store"
	"github.com/dmitrijs2005/warrantykeeper/internal/clock"
	"github.com/dmitrijs2005/warrantykeeper/internal/logging"
	"golang.org/x/term"
)

const defaultFlushTimeout = 5 * time.Second

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config *config.Config
	log    logging.Logger

	store *store.Store
	prefs services.PreferencesService
	repo  kv.Repository

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	closers []func() error
}

// NewApp builds the application from cfg: logger, storage backend, store
// (already loaded) and preferences.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log, syncLog, err := logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:      cfg,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
	}
	a.closers = append(a.closers, func() error { syncLog(); return nil })

	repo, err := a.openRepository(ctx)
	if err != nil {
		_ = a.close()
		return nil, err
	}
	a.repo = repo

	loc, err := cfg.Location()
	if err != nil {
		_ = a.close()
		return nil, err
	}
	unit, err := cfg.WindowUnit()
	if err != nil {
		_ = a.close()
		return nil, err
	}

	a.store = store.New(repo,
		store.WithClock(clock.System{}),
		store.WithLogger(log.With("component", "store")),
		store.WithLocation(loc),
		store.WithWindowUnit(unit),
	)
	if err := a.store.Load(ctx); err != nil {
		_ = a.close()
		return nil, err
	}
	a.prefs = services.NewPreferencesService(repo, log.With("component", "preferences"))

	return a, nil
}

func (a *App) openRepository(ctx context.Context) (kv.Repository, error) {
	switch a.config.Storage {
	case config.StorageFile:
		repo, err := kv.NewFileRepository(a.config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		a.log.Debug(ctx, "using file storage", "dir", repo.Dir())
		return repo, nil

	case config.StorageSQLite:
		conn, err := db.InitDatabase(ctx, a.config.DatabasePath)
		if err != nil {
			a.log.Error(ctx, "error initializing database", "error", err)
			return nil, err
		}
		a.closers = append(a.closers, conn.Close)
		a.log.Debug(ctx, "using sqlite storage", "path", a.config.DatabasePath)
		return kv.NewSQLiteRepository(conn), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorage, a.config.Storage)
}

// Run starts the storage watcher (file backend only) and the REPL. It
// returns after the REPL ends, once the store is flushed and resources are
// released.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	var watchDone <-chan struct{}
	if w, ok := a.repo.(*kv.FileRepository); ok && a.config.WatchStorage {
		done, err := w.Watch(ctx, func(key string) {
			a.log.Warn(ctx, "storage changed by another process; it will be overwritten on the next save", "key", key)
		})
		if err != nil {
			a.log.Warn(ctx, "storage watcher disabled", "error", err)
		} else {
			watchDone = done
		}
	}

	fmt.Fprintln(a.out, "Welcome to WarrantyKeeper (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.promptWriter())

	cancel()
	if watchDone != nil {
		<-watchDone
	}
	return a.shutdown()
}

// shutdown flushes the store within the configured timeout and releases
// resources.
func (a *App) shutdown() error {
	timeout := a.config.FlushTimeout.Duration
	if timeout <= 0 {
		timeout = defaultFlushTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	if err := a.store.Close(ctx); err != nil {
		a.log.Error(ctx, "final flush failed", "error", err)
		errs = append(errs, err)
	}
	if err := a.close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// promptWriter is where prompts go: the output when a human is typing,
// nowhere when input is piped.
func (a *App) promptWriter() io.Writer {
	if a.interactive {
		return a.out
	}
	return pipedPrompts{}
}

func (a *App) status() string {
	return fmt.Sprintf("%d", a.store.Len())
}
