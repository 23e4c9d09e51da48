// Package playerservice собирает HTTP-приложение: хранилище, кеш,
// бизнес-сервис и роутер.
package playerservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/player-service/internal/cache"
	"github.com/magabrotheeeer/player-service/internal/config"
	"github.com/magabrotheeeer/player-service/internal/migrations"
	playersvc "github.com/magabrotheeeer/player-service/internal/services/player"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/storage/memory"
	"github.com/magabrotheeeer/player-service/internal/storage/postgres"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *postgres.Storage
}

// New создаёт приложение: выбирает хранилище, подключает Redis,
// применяет миграции и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var repo storage.PlayerRepository
	var db *postgres.Storage

	if cfg.StorageConnectionString != "" {
		var err error
		db, err = postgres.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(db.DB, "./migrations"); err != nil {
			return nil, err
		}
		repo = db
	} else {
		logger.Warn("storage connection string is empty, using in-memory storage")
		repo = memory.New()
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	playerService := playersvc.NewPlayerService(repo, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, playerService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает сервер и блокируется до отмены контекста или ошибки.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.db != nil {
			a.db.DB.Close()
		}
		return err
	}
}
