package bot

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"choplab/internal/bot/logger"
	"choplab/internal/config"
	"choplab/internal/models/auth"
	"choplab/internal/screen"
	"choplab/internal/view"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnLogin              = "Вход"
	btnRegister           = "Регистрация"
	btnUsername           = "Имя пользователя"
	btnPassword           = "Пароль"
	btnConfirmation       = "Повтор пароля"
	btnSubmitLogin        = "Войти"
	btnSubmitRegistration = "Зарегистрироваться"
)

var startKeyboard = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(btnLogin),
		tgbotapi.NewKeyboardButton(btnRegister),
	),
)

// Chats untouched for sessionTTL lose their screen.
const (
	sessionTTL = 24 * time.Hour
	sweepEvery = time.Hour
)

var fieldButtons = map[string]screen.Input{
	btnUsername:     screen.UsernameInput,
	btnPassword:     screen.PasswordInput,
	btnConfirmation: screen.ConfirmationInput,
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// NewAPI connects to Telegram and routes the library's log output to log.
func NewAPI(cfg *config.Config, log *slog.Logger) (*tgbotapi.BotAPI, error) {
	if err := tgbotapi.SetLogger(logger.New(log)); err != nil {
		return nil, err
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	api.Debug = cfg.BotDebug
	return api, nil
}

type session struct {
	screen  screen.Screen
	surface *chatSurface
	focus   screen.Input
	focused bool

	lastSeen time.Time
}

// Bot serves one login or registration screen per chat.
type Bot struct {
	api          sender
	logger       *slog.Logger
	login        auth.Login
	registration auth.Registration
	opts         []screen.Option
	now          func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(api sender, dir auth.Directory, verifier auth.Verifier, log *slog.Logger, opts ...screen.Option) *Bot {
	return &Bot{
		api:          api,
		logger:       log,
		login:        auth.NewLogin(dir, verifier),
		registration: auth.NewRegistration(dir),
		opts:         append([]screen.Option{screen.WithLogger(log)}, opts...),
		now:          time.Now,
		sessions:     make(map[int64]*session),
	}
}

// Start handles updates until ctx is done or the channel is closed.
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			b.sweep(now)
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handle(ctx, update)
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message == nil {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	// A focused field takes "/text" as a value unless it names a command.
	if msg.IsCommand() && (knownCommand(msg.Command()) || !b.awaitsInput(chatID)) {
		handleCommand(ctx, b, msg)
		return
	}

	switch msg.Text {
	case btnLogin:
		b.open(chatID, view.LoginForm)
		return
	case btnRegister:
		b.open(chatID, view.RegistrationForm)
		return
	}

	s := b.session(chatID)
	if s == nil {
		sendHello(b, chatID)
		return
	}

	if in, ok := fieldButtons[msg.Text]; ok {
		b.focus(s, chatID, in)
		return
	}
	if msg.Text == submitLabel(s.screen.Kind()) {
		s.screen.Submit()
		return
	}
	b.input(ctx, s, msg)
}

func (b *Bot) open(chatID int64, kind view.Form) {
	surface := newChatSurface(b.api, chatID, kind, b.logger)
	s := &session{surface: surface, lastSeen: b.now()}
	if kind == view.RegistrationForm {
		s.screen = screen.NewRegistration(surface, b.registration, b.opts...)
	} else {
		s.screen = screen.NewLogin(surface, b.login, b.opts...)
	}

	b.mu.Lock()
	if old, ok := b.sessions[chatID]; ok {
		old.surface.close()
	}
	b.sessions[chatID] = s
	b.mu.Unlock()

	b.logger.Debug("screen opened", slog.Int64("chat_id", chatID), slog.String("screen", formTitles[kind]))
	s.screen.Load()
}

func (b *Bot) close(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.sessions[chatID]; ok {
		s.surface.close()
		delete(b.sessions, chatID)
	}
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.sessions[chatID]
	if s != nil {
		s.lastSeen = b.now()
	}
	return s
}

func (b *Bot) awaitsInput(chatID int64) bool {
	s := b.session(chatID)
	return s != nil && s.focused
}

// sweep drops idle screens of chats that went quiet.
func (b *Bot) sweep(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for chatID, s := range b.sessions {
		if now.Sub(s.lastSeen) < sessionTTL || s.screen.Phase() != screen.Idle {
			continue
		}
		s.surface.close()
		delete(b.sessions, chatID)
		b.logger.Debug("screen expired", slog.Int64("chat_id", chatID))
	}
}

func (b *Bot) focus(s *session, chatID int64, in screen.Input) {
	if !s.surface.InputsEnabled() {
		return
	}
	if in == screen.ConfirmationInput && s.screen.Kind() != view.RegistrationForm {
		unknownInput(b, chatID)
		return
	}
	s.focus, s.focused = in, true
	send(b.api, b.logger, tgbotapi.NewMessage(chatID, prompts[in]))
}

func (b *Bot) input(ctx context.Context, s *session, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !s.focused {
		send(b.api, b.logger, tgbotapi.NewMessage(chatID, "Сначала выберите поле на клавиатуре"))
		return
	}
	// Passwords should not stay in the chat history.
	if s.focus != screen.UsernameInput {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
			b.logger.Debug("failed to delete password message", slog.Any("error", err), slog.Int64("chat_id", chatID))
		}
	}
	b.change(ctx, s, chatID, msg.Text)
}

func (b *Bot) change(ctx context.Context, s *session, chatID int64, text string) {
	if err := s.screen.Change(ctx, s.focus, text); err != nil {
		b.logger.Error(
			"failed to change field",
			slog.Any("error", err),
			slog.Int64("chat_id", chatID),
		)
	}
}

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
			b.logger.Debug("failed to answer callback", slog.Any("error", err))
		}
	}()

	alertID, ok := strings.CutPrefix(q.Data, ackPrefix)
	if !ok || q.Message == nil || q.Message.Chat == nil {
		return
	}
	chatID := q.Message.Chat.ID
	s := b.session(chatID)
	if s == nil || !s.screen.Dismiss(alertID) {
		return
	}

	done := tgbotapi.NewEditMessageReplyMarkup(chatID, q.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.api.Request(done); err != nil {
		b.logger.Debug("failed to remove alert button", slog.Any("error", err), slog.Int64("chat_id", chatID))
	}
}
