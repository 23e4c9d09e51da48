// Package response содержит вспомогательные типы и функции для формирования
// JSON‑ответов HTTP‑обработчиков. Формы ответов зафиксированы контрактом:
// клиенты сравнивают поле message и список errors дословно.
package response

import (
	"fmt"

	"github.com/go-playground/validator"
)

// ErrorResponse описывает структуру JSON‑ответа с ошибкой.
// Поле Message — краткое описание неудачи.
// Поле Errors — список нарушений валидации (опционально).
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Зафиксированные контрактом тексты ответов.
const (
	MsgValidationFailed = "Validation failed"
	MsgPlayerNotFound   = "Player not found"
	MsgDeleteFailed     = "Failed to delete user"
)

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Message: msg}
}

// NotFound возвращает ответ об отсутствии игрока.
func NotFound() ErrorResponse {
	return Error(MsgPlayerNotFound)
}

// ValidationFailed возвращает ответ с полным списком нарушений.
func ValidationFailed(errs []string) ErrorResponse {
	return ErrorResponse{
		Message: MsgValidationFailed,
		Errors:  errs,
	}
}

// ValidationError формирует ответ Validation failed на основе ошибок
// структурной валидации запроса.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ValidationFailed(errsMsgs)
}
