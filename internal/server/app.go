// Package server initializes and runs the EcoScan application: it wires
// configuration, database, migrations, storage, the Gemini classifier, and
// the web server, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"ecoscan/internal/logging"
	"ecoscan/internal/server/classifier"
	"ecoscan/internal/server/config"
	"ecoscan/internal/server/repositories/repomanager"
	"ecoscan/internal/server/services"
	"ecoscan/internal/server/sessions"
	"ecoscan/internal/server/storage"
	"ecoscan/internal/server/web"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	sessionStore *sessions.Store
	webServer    *web.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewJSON()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	st, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	cl, err := classifier.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ClassifierTimeout)
	if err != nil {
		return nil, fmt.Errorf("classifier init error: %w", err)
	}

	store := sessions.NewStore(cfg.ChatSessionTTL)

	us := services.NewUserService(db, rm, cfg)
	ts := services.NewTreeService(db, rm, st, cl, logger)
	cs := services.NewChatService(store, st, cl, logger)

	ws := web.NewServer(cfg.EndpointAddrHTTP, logger, us, ts, cs, st)

	return &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		sessionStore: store,
		webServer:    ws,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewS3(ctx, storage.S3Config{
			User:         cfg.S3RootUser,
			Password:     cfg.S3RootPassword,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
	case "local":
		return storage.NewLocal(cfg.UploadsDir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	// Drops idle chat sessions in the background.
	go app.sessionStore.RunSweeper(ctx, app.config.ChatSessionTTL)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.webServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
