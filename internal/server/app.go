// Package server initializes and runs the application server. It wires the
// database, repositories, services, and the HTTP endpoint, handles graceful
// shutdown, and runs the periodic refresh-token ledger sweep.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/AvinashKhichar/mynotes/internal/logging"
	"github.com/AvinashKhichar/mynotes/internal/server/auth"
	"github.com/AvinashKhichar/mynotes/internal/server/config"
	"github.com/AvinashKhichar/mynotes/internal/server/credentials"
	"github.com/AvinashKhichar/mynotes/internal/server/httpapi"
	"github.com/AvinashKhichar/mynotes/internal/server/repositories/repomanager"
	"github.com/AvinashKhichar/mynotes/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
	noteService *services.NoteService
	codec       *auth.Codec
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()

	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	codec := auth.NewCodec([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	hasher := credentials.NewBcryptHasher()

	as := services.NewAuthService(db, rm, codec, hasher, cfg)
	ns := services.NewNoteService(db, rm)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		authService: as,
		noteService: ns,
		codec:       codec,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	handler := httpapi.NewHandler(app.authService, app.noteService, app.codec, app.logger)

	srv := &http.Server{
		Addr:    app.config.EndpointAddrHTTP,
		Handler: httpapi.NewRouter(handler),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "http shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "starting http server", "addr", app.config.EndpointAddrHTTP)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, "http server error", "error", err)
		cancelFunc()
	}
}

// runLedgerSweeper periodically deletes expired refresh-token rows so stale
// sessions do not accumulate in the ledger.
func (app *App) runLedgerSweeper(ctx context.Context) {
	ticker := time.NewTicker(app.config.LedgerSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.authService.SweepExpiredTokens(ctx, time.Now())
			if err != nil {
				app.logger.Error(ctx, "ledger sweep error", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info(ctx, "ledger sweep", "deleted", n)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runLedgerSweeper(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "app stopped")
}
