package validation

import "github.com/magabrotheeeer/player-service/internal/models"

// Field идентифицирует проверяемый атрибут игрока.
type Field string

// Поля игрока, участвующие в проверках.
const (
	FieldAge        Field = "age"
	FieldGender     Field = "gender"
	FieldRole       Field = "role"
	FieldLogin      Field = "login"
	FieldScreenName Field = "screenName"
	FieldPassword   Field = "password"
)

// Тексты нарушений. Клиенты сравнивают их дословно, поэтому формулировки
// являются частью контракта и не подлежат изменению.
const (
	MsgAgeRange = "User must be older than 16 and younger than 60 years old"
	// Историческая формулировка начинается с "Role", хотя речь о поле gender.
	MsgGenderEnum       = "Role must be either 'male' or 'female'"
	MsgRoleEnum         = "Role must be either 'admin' or 'user'"
	MsgLoginUnique      = "Login must be unique"
	MsgScreenNameUnique = "Screen name must be unique"
	MsgPassword         = "Password must contain Latin letters and numbers (min 7 max 15 characters)"
	MsgRoleImmutable    = "Role cannot be changed"
)

type rule struct {
	field   Field
	check   func(p models.Player) bool
	message string
}

// fieldRules — фиксированная таблица правил, применяемых к каждому
// кандидату. Порядок таблицы определяет порядок сообщений в ответе.
var fieldRules = []rule{
	{
		field:   FieldAge,
		check:   func(p models.Player) bool { return p.Age > 16 && p.Age < 60 },
		message: MsgAgeRange,
	},
	{
		field: FieldGender,
		check: func(p models.Player) bool {
			return p.Gender == models.GenderMale || p.Gender == models.GenderFemale
		},
		message: MsgGenderEnum,
	},
	{
		field: FieldRole,
		check: func(p models.Player) bool {
			return p.Role == models.RoleUser || p.Role == models.RoleAdmin
		},
		message: MsgRoleEnum,
	},
	{
		field:   FieldPassword,
		check:   func(p models.Player) bool { return passwordOK(p.Password) },
		message: MsgPassword,
	},
}

// passwordOK проверяет, что пароль состоит только из латинских букв и цифр,
// содержит хотя бы одну букву и одну цифру и имеет длину от 7 до 15 символов.
func passwordOK(s string) bool {
	if len(s) < 7 || len(s) > 15 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
