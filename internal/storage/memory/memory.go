// Package memory реализует хранилище игроков в памяти процесса.
// Карта записей и индекс уникальности изменяются под одной блокировкой,
// поэтому каждая операция атомарна с точки зрения вызывающей стороны.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/storage"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

// Storage хранит записи игроков и индекс уникальности под общим мьютексом.
type Storage struct {
	mu      sync.RWMutex
	players map[string]models.Player
	index   *uniqueIndex
}

// New создает пустое хранилище.
func New() *Storage {
	return &Storage{
		players: make(map[string]models.Player),
		index:   newUniqueIndex(),
	}
}

// Get возвращает копию записи игрока по id.
func (s *Storage) Get(ctx context.Context, id string) (*models.Player, error) {
	const op = "storage.memory.Get"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, storage.ErrPlayerNotFound
	}
	return &player, nil
}

// Create сохраняет нового игрока и резервирует его логин и отображаемое имя.
func (s *Storage) Create(ctx context.Context, player models.Player) error {
	const op = "storage.memory.Create"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.index.available(validation.FieldLogin, player.Login, player.ID) ||
		!s.index.available(validation.FieldScreenName, player.ScreenName, player.ID) {
		return storage.ErrUniqueConflict
	}

	s.players[player.ID] = player
	s.index.reserve(validation.FieldLogin, player.Login, player.ID)
	s.index.reserve(validation.FieldScreenName, player.ScreenName, player.ID)
	return nil
}

// Update перезаписывает существующую запись, перенося резервации индекса
// со старых значений уникальных полей на новые.
func (s *Storage) Update(ctx context.Context, player models.Player) error {
	const op = "storage.memory.Update"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.players[player.ID]
	if !ok {
		return storage.ErrPlayerNotFound
	}

	if !s.index.available(validation.FieldLogin, player.Login, player.ID) ||
		!s.index.available(validation.FieldScreenName, player.ScreenName, player.ID) {
		return storage.ErrUniqueConflict
	}

	if old.Login != player.Login {
		s.index.release(validation.FieldLogin, old.Login)
		s.index.reserve(validation.FieldLogin, player.Login, player.ID)
	}
	if old.ScreenName != player.ScreenName {
		s.index.release(validation.FieldScreenName, old.ScreenName)
		s.index.reserve(validation.FieldScreenName, player.ScreenName, player.ID)
	}
	s.players[player.ID] = player
	return nil
}

// Delete удаляет запись и освобождает её резервации в индексе.
func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.memory.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[id]
	if !ok {
		return storage.ErrPlayerNotFound
	}

	s.index.release(validation.FieldLogin, player.Login)
	s.index.release(validation.FieldScreenName, player.ScreenName)
	delete(s.players, id)
	return nil
}

// IsTaken сообщает, занято ли значение поля игроком с другим id.
func (s *Storage) IsTaken(ctx context.Context, field validation.Field, value, excludeID string) (bool, error) {
	const op = "storage.memory.IsTaken"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.index.available(field, value, excludeID), nil
}
