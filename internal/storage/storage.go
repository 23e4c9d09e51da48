// Package storage определяет контракт хранилища игроков и общие для всех
// реализаций ошибки. Конкретные реализации находятся в подпакетах memory и
// postgres.
package storage

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/player-service/internal/models"
	"github.com/magabrotheeeer/player-service/internal/validation"
)

var (
	// ErrPlayerNotFound возвращается, когда запись с указанным id отсутствует.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrUniqueConflict возвращается, когда фиксация записи проиграла гонку
	// за уникальное значение логина или отображаемого имени.
	ErrUniqueConflict = errors.New("unique value already reserved")
)

// PlayerRepository описывает хранилище игроков. Каждая мутация обязана
// атомарно обновлять и запись, и индекс уникальности: при конкурентных
// записях одного и того же логина или отображаемого имени ровно одна из них
// завершается успехом, вторая получает ErrUniqueConflict.
type PlayerRepository interface {
	// Get возвращает игрока по id или ErrPlayerNotFound.
	Get(ctx context.Context, id string) (*models.Player, error)
	// Create сохраняет нового игрока с уже назначенным id.
	Create(ctx context.Context, player models.Player) error
	// Update перезаписывает существующую запись целиком.
	Update(ctx context.Context, player models.Player) error
	// Delete удаляет запись и освобождает её значения в индексе уникальности.
	Delete(ctx context.Context, id string) error
	// IsTaken сообщает, занято ли значение поля другим игроком.
	IsTaken(ctx context.Context, field validation.Field, value, excludeID string) (bool, error)
}
