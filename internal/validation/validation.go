// Package validation реализует проверку допустимости данных игрока:
// фиксированную таблицу правил по полям, проверку уникальности логина
// и отображаемого имени, а также агрегацию всех нарушений в один список.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/player-service/internal/models"
)

// UniqueChecker описывает проверку занятости значения в пространстве
// уникальности поля. excludeID исключает собственную запись игрока,
// чтобы обновление не конфликтовало само с собой.
type UniqueChecker interface {
	IsTaken(ctx context.Context, field Field, value, excludeID string) (bool, error)
}

// Error содержит полный список нарушений, обнаруженных при проверке.
// Проверка никогда не останавливается на первом нарушении.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// Validator выполняет допуск кандидата: наложение патча на существующую
// запись, применение всех правил и проверку уникальности. Состояние
// хранилища при этом не изменяется.
type Validator struct {
	unique UniqueChecker
}

// New создает Validator с переданной проверкой уникальности.
func New(unique UniqueChecker) *Validator {
	return &Validator{unique: unique}
}

// Admit проверяет кандидата и возвращает либо нормализованную запись игрока,
// либо список нарушений. Для создания existing равен nil и патч содержит все
// поля; для обновления патч накладывается на существующую запись, поэтому
// частичный запрос не может нарушить инвариант незатронутого поля.
func (v *Validator) Admit(ctx context.Context, patch models.UpdatePlayer, existing *models.Player) (*models.Player, []string, error) {
	const op = "validation.Admit"

	var base models.Player
	var excludeID string
	if existing != nil {
		base = *existing
		excludeID = existing.ID
	}
	candidate := patch.Apply(base)

	var messages []string
	for _, r := range fieldRules {
		if !r.check(candidate) {
			messages = append(messages, r.message)
		}
	}

	loginTaken, err := v.unique.IsTaken(ctx, FieldLogin, candidate.Login, excludeID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if loginTaken {
		messages = append(messages, MsgLoginUnique)
	}

	screenNameTaken, err := v.unique.IsTaken(ctx, FieldScreenName, candidate.ScreenName, excludeID)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if screenNameTaken {
		messages = append(messages, MsgScreenNameUnique)
	}

	if len(messages) > 0 {
		return nil, messages, nil
	}
	return &candidate, nil, nil
}
