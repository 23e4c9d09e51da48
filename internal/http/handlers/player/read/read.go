// Package read реализует HTTP-обработчик для получения игрока по ID.
//
// Handler извлекает ID из query-параметра, вызывает бизнес-логику чтения
// и возвращает запись игрока в JSON-формате.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-service/internal/http/response"
	"github.com/magabrotheeeer/player-service/internal/lib/sl"
	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
)

// Handler обрабатывает запросы на получение игрока по уникальному идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения игрока.
type Service interface {
	Read(ctx context.Context, id string) (*models.Player, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить игрока по id
// @Tags Players
// @Produce  json
// @Param id query string true "Идентификатор игрока"
// @Success 200 {object} models.Player "Запись игрока"
// @Failure 400 {object} response.ErrorResponse "Отсутствует параметр id"
// @Failure 404 {object} response.ErrorResponse "Игрок не найден"
// @Router /player [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.player.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := r.URL.Query().Get("id")
	if id == "" {
		log.Error("missing id query parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id query parameter"))
		return
	}

	res, err := h.service.Read(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrPlayerNotFound) {
			log.Info("player not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound())
			return
		}
		log.Error("failed to read player", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read player"))
		return
	}

	log.Info("success to read player", slog.String("id", res.ID))
	render.JSON(w, r, res)
}
