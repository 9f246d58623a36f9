package bot

import (
	"context"
	"log/slog"

	"choplab/internal/screen"
	"choplab/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var prompts = map[screen.Input]string{
	screen.UsernameInput:     "Введите имя пользователя",
	screen.PasswordInput:     "Введите пароль",
	screen.ConfirmationInput: "Введите пароль еще раз",
}

func send(api sender, log *slog.Logger, c tgbotapi.Chattable) {
	if _, err := api.Send(c); err != nil {
		log.Error("failed to send message", slog.Any("error", err))
	}
}

func sendHello(b *Bot, chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Привет!\nЗдесь можно войти в аккаунт или зарегистрироваться")
	msg.ReplyMarkup = startKeyboard
	send(b.api, b.logger, msg)
}

func knownCommand(cmd string) bool {
	switch cmd {
	case "start", "login", "register", "clear":
		return true
	}
	return false
}

func handleCommand(ctx context.Context, b *Bot, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.close(chatID)
		sendHello(b, chatID)
	case "login":
		b.open(chatID, view.LoginForm)
	case "register":
		b.open(chatID, view.RegistrationForm)
	case "clear":
		clearField(ctx, b, chatID)
	default:
		unknownCommand(b, msg)
	}
}

// clearField empties the focused field; a chat cannot send empty text.
func clearField(ctx context.Context, b *Bot, chatID int64) {
	s := b.session(chatID)
	if s == nil || !s.focused {
		send(b.api, b.logger, tgbotapi.NewMessage(chatID, "Сначала выберите поле на клавиатуре"))
		return
	}
	b.change(ctx, s, chatID, "")
}

func unknownCommand(b *Bot, msg *tgbotapi.Message) {
	response := tgbotapi.NewMessage(msg.Chat.ID, "?")
	response.ReplyToMessageID = msg.MessageID
	send(b.api, b.logger, response)
}

func unknownInput(b *Bot, chatID int64) {
	send(b.api, b.logger, tgbotapi.NewMessage(chatID, "На этом экране нет такого поля"))
}
