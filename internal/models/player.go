// Package models содержит доменные структуры, описывающие игрока,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Возможные значения перечислимых полей игрока.
const (
	GenderMale   = "male"
	GenderFemale = "female"

	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Player представляет собой основную модель игрока,
// используемую в бизнес-логике и хранилище.
// Поле ID генерируется системой при создании и не изменяется.
type Player struct {
	ID         string `json:"id"`         // Уникальный идентификатор (UUID)
	Age        int    `json:"age"`        // Возраст, строго между 16 и 60
	Gender     string `json:"gender"`     // male или female
	Login      string `json:"login"`      // Логин, уникален среди всех игроков
	Password   string `json:"password"`   // Пароль, латинские буквы и цифры, 7-15 символов
	Role       string `json:"role"`       // Роль, user или admin, назначается только при создании
	ScreenName string `json:"screenName"` // Отображаемое имя, уникально среди всех игроков
}

// DummyPlayer используется для приёма данных из JSON-запроса на создание игрока.
// Все поля обязательны.
type DummyPlayer struct {
	Age        int    `json:"age" validate:"required"`
	Gender     string `json:"gender" validate:"required"`
	Login      string `json:"login" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required"`
	ScreenName string `json:"screenName" validate:"required"`
}

// UpdatePlayer используется для приёма частичного JSON-запроса на обновление.
// Отсутствующие в запросе поля остаются nil и сохраняют прежние значения записи.
type UpdatePlayer struct {
	Age        *int    `json:"age,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	Login      *string `json:"login,omitempty"`
	Password   *string `json:"password,omitempty"`
	Role       *string `json:"role,omitempty"`
	ScreenName *string `json:"screenName,omitempty"`
}

// ToUpdate конвертирует запрос на создание в полный набор полей.
func (d DummyPlayer) ToUpdate() UpdatePlayer {
	return UpdatePlayer{
		Age:        &d.Age,
		Gender:     &d.Gender,
		Login:      &d.Login,
		Password:   &d.Password,
		Role:       &d.Role,
		ScreenName: &d.ScreenName,
	}
}

// Apply накладывает заполненные поля патча на копию существующей записи.
func (u UpdatePlayer) Apply(base Player) Player {
	if u.Age != nil {
		base.Age = *u.Age
	}
	if u.Gender != nil {
		base.Gender = *u.Gender
	}
	if u.Login != nil {
		base.Login = *u.Login
	}
	if u.Password != nil {
		base.Password = *u.Password
	}
	if u.Role != nil {
		base.Role = *u.Role
	}
	if u.ScreenName != nil {
		base.ScreenName = *u.ScreenName
	}
	return base
}
