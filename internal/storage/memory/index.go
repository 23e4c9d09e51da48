package memory

import "github.com/magabrotheeeer/player-service/internal/validation"

// uniqueIndex хранит проекцию занятых значений логинов и отображаемых имён
// на id игроков. Вызывающая сторона обязана держать блокировку хранилища:
// индекс изменяется только вместе с картой записей.
type uniqueIndex struct {
	logins      map[string]string
	screenNames map[string]string
}

func newUniqueIndex() *uniqueIndex {
	return &uniqueIndex{
		logins:      make(map[string]string),
		screenNames: make(map[string]string),
	}
}

func (ix *uniqueIndex) slot(field validation.Field) map[string]string {
	switch field {
	case validation.FieldLogin:
		return ix.logins
	case validation.FieldScreenName:
		return ix.screenNames
	default:
		return nil
	}
}

// available сообщает, свободно ли значение. Запись с excludeID не считается
// конфликтом: игрок не конкурирует со своим собственным прежним значением.
func (ix *uniqueIndex) available(field validation.Field, value, excludeID string) bool {
	owner, ok := ix.slot(field)[value]
	return !ok || owner == excludeID
}

func (ix *uniqueIndex) reserve(field validation.Field, value, id string) {
	ix.slot(field)[value] = id
}

func (ix *uniqueIndex) release(field validation.Field, value string) {
	delete(ix.slot(field), value)
}
