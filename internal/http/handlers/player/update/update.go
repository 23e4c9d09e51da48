// Package update реализует HTTP-обработчик частичного обновления игрока.
//
// Handler извлекает ID из URL-параметров, принимает JSON-патч с любым
// подмножеством полей и возвращает обновлённую запись. Не указанные в
// запросе поля сохраняют прежние значения.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-service/internal/http/response"
	"github.com/magabrotheeeer/player-service/internal/lib/sl"
	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

// Handler управляет HTTP-запросами на обновление игроков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления игрока.
type Service interface {
	Update(ctx context.Context, id string, patch models.UpdatePlayer) (*models.Player, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновить игрока
// @Description Накладывает частичный патч на запись игрока. Поле role изменить нельзя.
// @Tags Players
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор игрока"
// @Param request body models.UpdatePlayer true "Изменяемые поля"
// @Success 200 {object} models.Player "Обновлённая запись"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нарушения валидации"
// @Failure 404 {object} response.ErrorResponse "Игрок не найден"
// @Router /player/update/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.player.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var patch models.UpdatePlayer
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrPlayerNotFound) {
			log.Info("player not found", slog.String("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.NotFound())
			return
		}
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			log.Info("update rejected", slog.Any("violations", vErr.Messages))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationFailed(vErr.Messages))
			return
		}
		log.Error("failed to update player", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update player"))
		return
	}

	log.Info("success to update player", slog.String("id", updated.ID))
	render.JSON(w, r, updated)
}
