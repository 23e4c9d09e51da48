// Package player содержит бизнес-логику CRUD-операций над игроками:
// допуск кандидатов через валидацию, назначение идентификаторов,
// согласование хранилища с индексом уникальности и кеширование чтений.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

// ErrDeleteFailed возвращается при попытке удалить несуществующего игрока.
// Контракт удаления сообщает об отсутствии записи как об общей неудаче,
// а не как о "не найдено" — в отличие от чтения и обновления.
var ErrDeleteFailed = errors.New("failed to delete player")

// cacheTTL — время жизни записи игрока в кеше.
const cacheTTL = time.Hour

// commitAttempts ограничивает повторы фиксации при проигранной гонке за
// уникальное значение: повторный допуск либо обнаруживает занятое значение и
// возвращает детерминированный отказ, либо значение успело освободиться.
const commitAttempts = 3

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// PlayerService реализует бизнес-логику работы с игроками.
type PlayerService struct {
	repo      storage.PlayerRepository
	cache     Cache
	validator *validation.Validator
	log       *slog.Logger
}

// NewPlayerService создает новый экземпляр PlayerService. Проверка
// уникальности при допуске выполняется через то же хранилище, в которое
// затем фиксируется запись.
func NewPlayerService(repo storage.PlayerRepository, cache Cache, log *slog.Logger) *PlayerService {
	return &PlayerService{
		repo:      repo,
		cache:     cache,
		validator: validation.New(repo),
		log:       log,
	}
}

// Create проверяет кандидата, назначает ему новый UUID и сохраняет запись.
// При нарушениях возвращает validation.Error с полным списком сообщений.
func (s *PlayerService) Create(ctx context.Context, req models.DummyPlayer) (*models.Player, error) {
	const op = "services.player.Create"

	patch := req.ToUpdate()
	for attempt := 0; attempt < commitAttempts; attempt++ {
		admitted, messages, err := s.validator.Admit(ctx, patch, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if len(messages) > 0 {
			return nil, &validation.Error{Messages: messages}
		}

		admitted.ID = uuid.NewString()
		err = s.repo.Create(ctx, *admitted)
		if errors.Is(err, storage.ErrUniqueConflict) {
			// Гонка за логин или отображаемое имя проиграна между допуском и
			// фиксацией: повторный допуск превратит конфликт в отказ валидации.
			s.log.Warn("create lost uniqueness race, re-admitting", slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		s.log.Info("created new player", slog.String("id", admitted.ID))
		s.cachePut(admitted)
		return admitted, nil
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrUniqueConflict)
}

// Read возвращает игрока по ID, используя кеш или хранилище.
func (s *PlayerService) Read(ctx context.Context, id string) (*models.Player, error) {
	cacheKey := cacheKey(id)

	var cached models.Player
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return &cached, nil
	}

	result, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cachePut(result)
	return result, nil
}

// Update накладывает частичный патч на существующую запись, проверяет
// результат и фиксирует его. Роль назначается только при создании: попытка
// изменить её отклоняется вместе с остальными нарушениями.
func (s *PlayerService) Update(ctx context.Context, id string, patch models.UpdatePlayer) (*models.Player, error) {
	const op = "services.player.Update"

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	roleChanged := patch.Role != nil && *patch.Role != existing.Role

	for attempt := 0; attempt < commitAttempts; attempt++ {
		admitted, messages, err := s.validator.Admit(ctx, patch, existing)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if roleChanged {
			messages = append(messages, validation.MsgRoleImmutable)
		}
		if len(messages) > 0 {
			return nil, &validation.Error{Messages: messages}
		}

		err = s.repo.Update(ctx, *admitted)
		if errors.Is(err, storage.ErrUniqueConflict) {
			s.log.Warn("update lost uniqueness race, re-admitting", slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, err
		}

		s.log.Info("updated player", slog.String("id", admitted.ID))
		s.cachePut(admitted)
		return admitted, nil
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrUniqueConflict)
}

// Delete удаляет игрока и инвалидирует кеш. Отсутствие записи транслируется
// в ErrDeleteFailed.
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	const op = "services.player.Delete"

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrPlayerNotFound) {
			return ErrDeleteFailed
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(id)), slog.Any("err", err))
	}
	s.log.Info("deleted player", slog.String("id", id))
	return nil
}

func (s *PlayerService) cachePut(player *models.Player) {
	key := cacheKey(player.ID)
	if err := s.cache.Set(key, player, cacheTTL); err != nil {
		s.log.Warn("failed to cache player", slog.String("key", key), slog.Any("err", err))
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("player:%s", id)
}
