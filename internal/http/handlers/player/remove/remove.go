// Package remove реализует HTTP-обработчик удаления игрока.
//
// Успешное удаление возвращает пустой ответ 204. Отсутствие записи
// сообщается как общая неудача удаления с телом-строкой — контракт
// намеренно отличается здесь от ответа "Player not found" чтения и
// обновления.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/player-service/internal/http/response"
	"github.com/magabrotheeeer/player-service/internal/lib/sl"
	playerservice "github.com/magabrotheeeer/player-service/internal/services/player"
)

// Handler управляет HTTP-запросами на удаление игроков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления игрока.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить игрока
// @Tags Players
// @Produce  plain
// @Param id path string true "Идентификатор игрока"
// @Success 204 "Игрок удалён"
// @Failure 400 {string} string "Failed to delete user"
// @Router /player/delete/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.player.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, playerservice.ErrDeleteFailed) {
			log.Info("delete failed, player missing", slog.String("id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.PlainText(w, r, response.MsgDeleteFailed)
			return
		}
		log.Error("failed to delete player", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete player"))
		return
	}

	log.Info("success to delete player", slog.String("id", id))
	render.NoContent(w, r)
}
