// Package create реализует HTTP-обработчик для создания нового игрока.
//
// Handler принимает JSON-запрос со всеми полями игрока, проверяет их,
// вызывает бизнес-логику создания и возвращает созданную запись со
// сгенерированным идентификатором.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/player-service/internal/http/response"
	"github.com/magabrotheeeer/player-service/internal/lib/sl"
	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

// Handler управляет HTTP-запросами на создание игроков.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики для создания игрока
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания игрока.
type Service interface {
	Create(ctx context.Context, req models.DummyPlayer) (*models.Player, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать нового игрока
// @Description Создает игрока и возвращает запись со сгенерированным id.
// @Tags Players
// @Accept  json
// @Produce  json
// @Param request body models.DummyPlayer true "Данные нового игрока"
// @Success 201 {object} models.Player "Созданный игрок"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или нарушения валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при создании игрока"
// @Router /player/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.player.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPlayer
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("login", req.Login))

	if err := h.validate.Struct(req); err != nil {
		log.Error("missing required fields", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			log.Info("player rejected", slog.Any("violations", vErr.Messages))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationFailed(vErr.Messages))
			return
		}
		log.Error("failed to create player", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create player"))
		return
	}

	log.Info("success to create player", slog.String("id", created.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}
