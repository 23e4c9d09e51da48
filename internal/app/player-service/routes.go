package playerservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/player-service/internal/http/handlers/player/create"
	"github.com/magabrotheeeer/player-service/internal/http/handlers/player/read"
	"github.com/magabrotheeeer/player-service/internal/http/handlers/player/remove"
	"github.com/magabrotheeeer/player-service/internal/http/handlers/player/update"
	"github.com/magabrotheeeer/player-service/internal/http/middlewarectx"
	playersvc "github.com/magabrotheeeer/player-service/internal/services/player"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, playerService *playersvc.PlayerService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Post("/player/create", create.New(logger, playerService).ServeHTTP)
		r.Get("/player", read.New(logger, playerService).ServeHTTP)
		r.Patch("/player/update/{id}", update.New(logger, playerService).ServeHTTP)
		r.Delete("/player/delete/{id}", remove.New(logger, playerService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
