package view

import "choplab/internal/models/auth"

const (
	passwordHelp  = "Пароль должен содержать не менее восьми знаков, включать буквы, цифры и специальные символы"
	usernameEmpty = "Необходимо заполнить имя пользователя!"
	usernameChars = "Имя пользователя не может содержать кириллицу или специальные символы"
	passwordEmpty = "Необходимо заполнить пароль"
)

type messageKey struct {
	form  Form
	field Field
}

var help = map[messageKey]string{
	{LoginForm, Username}:        "Введите имя пользователя, указанное при регистрации",
	{LoginForm, Password}:        passwordHelp,
	{RegistrationForm, Username}: "Можно использовать буквы латинского алфавита и цифры.",
	{RegistrationForm, Password}: passwordHelp,
}

var reasons = map[messageKey]map[auth.State]string{
	{LoginForm, Username}: {
		auth.Empty:             usernameEmpty,
		auth.NotFound:          "К сожалению, выбранное имя пользователя не найдено",
		auth.InvalidCharacters: usernameChars,
	},
	{LoginForm, Password}: {
		auth.Empty:             passwordEmpty,
		auth.InvalidCharacters: "Пароль не может содержать кириллицу или специальные символы",
		auth.Mismatch:          "Неверный пароль!",
	},
	{RegistrationForm, Username}: {
		auth.Empty:             usernameEmpty,
		auth.AlreadyExists:     "К сожалению, выбранное имя пользователя занято.",
		auth.InvalidCharacters: usernameChars,
	},
	{RegistrationForm, Password}: {
		auth.Empty:             passwordEmpty,
		auth.EmptyConfirmation: "Введите пароль еще раз",
		auth.TooWeak:           "Пароль слишком простой. Пароль должен содержать специальные символы и быть не менее 8 символов",
		auth.Mismatch:          "Пароли не совпадают",
	},
}

// Describe returns the fixed description text for a field in state.
// Neutral states and states a field cannot reach show the help text.
func Describe(form Form, field Field, state auth.State) string {
	key := messageKey{form, field}
	if !state.Neutral() {
		if msg, ok := reasons[key][state]; ok {
			return msg
		}
	}
	return help[key]
}
