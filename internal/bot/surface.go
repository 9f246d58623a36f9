package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"choplab/internal/screen"
	"choplab/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	progressText = "Соединяемся с сервером..."
	resumeText   = "Можно попробовать еще раз"
	ackPrefix    = "ack:"
)

var inputLabels = map[screen.Input]string{
	screen.UsernameInput:     btnUsername,
	screen.PasswordInput:     btnPassword,
	screen.ConfirmationInput: btnConfirmation,
}

var formTitles = map[view.Form]string{
	view.LoginForm:        "Вход",
	view.RegistrationForm: "Регистрация",
}

// chatSurface draws one screen into a chat: a form card edited in place,
// a reply keyboard for the inputs and the submit button, a transient
// progress message and inline-button alerts.
type chatSurface struct {
	mu     sync.Mutex
	api    sender
	chatID int64
	kind   view.Form
	logger *slog.Logger

	cardID     int
	progressID int

	inputsEnabled bool
	submitVisible bool
	// sentKeyboard is the keyboard the chat currently shows.
	sentKeyboard string

	closed bool
}

var _ screen.Surface = (*chatSurface)(nil)

func newChatSurface(api sender, chatID int64, kind view.Form, logger *slog.Logger) *chatSurface {
	return &chatSurface{
		api:           api,
		chatID:        chatID,
		kind:          kind,
		logger:        logger.With(slog.Int64("chat_id", chatID)),
		inputsEnabled: true,
		submitVisible: true,
	}
}

func (s *chatSurface) Render(f screen.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	text := renderForm(f)
	if s.cardID == 0 {
		msg := tgbotapi.NewMessage(s.chatID, text)
		msg.ReplyMarkup = s.keyboard()
		sent, err := s.api.Send(msg)
		if err != nil {
			s.logger.Error("failed to send form", slog.Any("error", err))
			return
		}
		s.cardID = sent.MessageID
		s.sentKeyboard = s.keyboardSignature()
		return
	}

	if _, err := s.api.Send(tgbotapi.NewEditMessageText(s.chatID, s.cardID, text)); err != nil {
		// Telegram refuses edits that change nothing.
		s.logger.Debug("failed to edit form", slog.Any("error", err))
	}
}

func (s *chatSurface) SetInputsEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputsEnabled = enabled
}

func (s *chatSurface) SetSubmitVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitVisible = visible
}

// SetProgress also publishes keyboard changes made earlier in the same
// transition, since a reply keyboard can only travel with a new message.
func (s *chatSurface) SetProgress(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if active {
		if s.progressID != 0 {
			return
		}
		msg := tgbotapi.NewMessage(s.chatID, progressText)
		msg.ReplyMarkup = s.keyboard()
		sent, err := s.api.Send(msg)
		if err != nil {
			s.logger.Error("failed to send progress", slog.Any("error", err))
			return
		}
		s.progressID = sent.MessageID
		s.sentKeyboard = s.keyboardSignature()
		return
	}

	if s.progressID != 0 {
		if _, err := s.api.Request(tgbotapi.NewDeleteMessage(s.chatID, s.progressID)); err != nil {
			s.logger.Error("failed to delete progress", slog.Any("error", err))
		}
		s.progressID = 0
	}
	if s.cardID != 0 && s.sentKeyboard != s.keyboardSignature() {
		msg := tgbotapi.NewMessage(s.chatID, resumeText)
		msg.ReplyMarkup = s.keyboard()
		if _, err := s.api.Send(msg); err != nil {
			s.logger.Error("failed to send keyboard", slog.Any("error", err))
			return
		}
		s.sentKeyboard = s.keyboardSignature()
	}
}

func (s *chatSurface) PresentAlert(a screen.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	msg := tgbotapi.NewMessage(s.chatID, a.Title+"\n\n"+a.Message)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(a.Action, ackPrefix+a.ID),
		),
	)
	if _, err := s.api.Send(msg); err != nil {
		s.logger.Error("failed to send alert", slog.Any("error", err), slog.String("alert_id", a.ID))
	}
}

func (s *chatSurface) InputsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputsEnabled
}

// close detaches the surface; later calls from a pending timer are dropped.
func (s *chatSurface) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *chatSurface) keyboardSignature() string {
	return fmt.Sprintf("inputs=%t submit=%t", s.inputsEnabled, s.submitVisible)
}

func (s *chatSurface) keyboard() tgbotapi.ReplyKeyboardMarkup {
	return formKeyboard(s.kind, s.inputsEnabled, s.submitVisible)
}

func formKeyboard(kind view.Form, inputsEnabled, submitVisible bool) tgbotapi.ReplyKeyboardMarkup {
	var rows [][]tgbotapi.KeyboardButton
	if inputsEnabled {
		row := tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnUsername),
			tgbotapi.NewKeyboardButton(btnPassword),
		)
		if kind == view.RegistrationForm {
			row = append(row, tgbotapi.NewKeyboardButton(btnConfirmation))
		}
		rows = append(rows, row)
	}
	if submitVisible {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(submitLabel(kind))))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnLogin),
		tgbotapi.NewKeyboardButton(btnRegister),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}

func submitLabel(kind view.Form) string {
	if kind == view.RegistrationForm {
		return btnSubmitRegistration
	}
	return btnSubmitLogin
}

func renderForm(f screen.Form) string {
	var sb strings.Builder
	sb.WriteString(formTitles[f.Kind])
	for _, sec := range f.Sections {
		sb.WriteString("\n")
		for _, in := range sec.Inputs {
			sb.WriteString("\n")
			sb.WriteString(marker(in.Background))
			sb.WriteString(" ")
			sb.WriteString(inputLabels[in.Input])
			sb.WriteString(": ")
			sb.WriteString(displayValue(in))
		}
		sb.WriteString("\n")
		if sec.Description.Color == view.Error {
			sb.WriteString("❗ ")
		}
		sb.WriteString(sec.Description.Text)
	}
	return sb.String()
}

func marker(c view.Color) string {
	if c == view.Error {
		return "🟥"
	}
	return "⬜"
}

func displayValue(in screen.InputView) string {
	if in.Value == "" {
		return "—"
	}
	if in.Secret {
		return strings.Repeat("•", utf8.RuneCountInString(in.Value))
	}
	return in.Value
}
