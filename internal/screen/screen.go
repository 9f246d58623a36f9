// Package screen holds the login and registration screen controllers.
//
// A controller keeps the latest text and state of every field, revalidates
// on each text change, redraws its Surface and runs the submission gate:
// Idle -> Submitting -> (FailureDelay) -> FailurePresented -> Idle.
// No request is issued on submit; the attempt always ends with the
// "server did not respond" alert.
package screen

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"choplab/internal/models/auth"
	"choplab/internal/view"

	"github.com/google/uuid"
)

// FailureDelay is how long a submit attempt "waits" for the server.
const FailureDelay = 3 * time.Second

var ErrNoSuchField = errors.New("screen has no such field")

type Phase int8

const (
	Idle Phase = iota
	Submitting
	FailurePresented
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case FailurePresented:
		return "failure_presented"
	}
	return "unknown"
}

var failureAlert = Alert{
	Title:   "Что-то пошло не так",
	Message: "К сожалению, сервер не отвечает. Попробуйте позже!",
	Action:  "Хорошо",
}

// Screen is what both controllers offer to an input source.
type Screen interface {
	Kind() view.Form
	Load()
	Change(ctx context.Context, in Input, text string) error
	Submit() bool
	Dismiss(alertID string) bool
	Phase() Phase
	States() (username, password auth.State)
}

type Option func(*core)

func WithClock(c Clock) Option {
	return func(s *core) { s.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *core) { s.logger = l }
}

type core struct {
	mu      sync.Mutex
	kind    view.Form
	surface Surface
	clock   Clock
	logger  *slog.Logger

	// lockInputs disables the text inputs while submitting.
	lockInputs    bool
	inputsEnabled bool

	username     string
	password     string
	confirmation string
	userState    auth.State
	passState    auth.State

	phase Phase
	alert string

	// form lays out the current state for the surface.
	form func() Form
}

func newCore(kind view.Form, s Surface, lockInputs bool, opts []Option) *core {
	c := &core{
		kind:          kind,
		surface:       s,
		clock:         systemClock{},
		logger:        slog.Default(),
		lockInputs:    lockInputs,
		inputsEnabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(slog.String("screen", kindName(kind)))
	return c
}

func kindName(k view.Form) string {
	if k == view.RegistrationForm {
		return "registration"
	}
	return "login"
}

func (c *core) Kind() view.Form {
	return c.kind
}

// Load draws the initial form with the progress indicator hidden.
func (c *core) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.surface.Render(c.form())
	c.surface.SetProgress(false)
}

func (c *core) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *core) States() (auth.State, auth.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userState, c.passState
}

// settle turns a validator result into the state to store. A failed
// collaborator never yields Correct.
func (c *core) settle(op string, st auth.State, err error) auth.State {
	if err != nil {
		c.logger.Error("failed to validate field", slog.String("op", op), slog.Any("error", err))
		return auth.Default
	}
	return st
}

// Submit starts a submit attempt. It does nothing and returns false
// unless both fields are Correct and no attempt is in progress.
func (c *core) Submit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Idle || c.userState != auth.Correct || c.passState != auth.Correct {
		c.logger.Debug("submit ignored",
			slog.String("phase", c.phase.String()),
			slog.String("username_state", c.userState.String()),
			slog.String("password_state", c.passState.String()),
		)
		return false
	}

	c.phase = Submitting
	if c.lockInputs {
		c.inputsEnabled = false
		c.surface.SetInputsEnabled(false)
	}
	c.surface.SetSubmitVisible(false)
	c.surface.SetProgress(true)

	c.clock.AfterFunc(FailureDelay, c.fail)
	c.logger.Debug("submitting")
	return true
}

func (c *core) fail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != Submitting {
		return
	}
	c.phase = FailurePresented
	c.alert = uuid.NewString()

	a := failureAlert
	a.ID = c.alert
	c.surface.PresentAlert(a)
	c.logger.Debug("failure presented", slog.String("alert_id", a.ID))
}

// Dismiss acknowledges the presented alert and returns the screen to
// Idle. Unknown or stale alert ids are ignored.
func (c *core) Dismiss(alertID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != FailurePresented || alertID != c.alert {
		return false
	}
	c.phase = Idle
	c.alert = ""
	if c.lockInputs {
		c.inputsEnabled = true
		c.surface.SetInputsEnabled(true)
	}
	c.surface.SetSubmitVisible(true)
	c.surface.SetProgress(false)
	return true
}

func section(kind view.Form, field view.Field, st auth.State, inputs ...InputView) Section {
	a := view.Present(kind, field, st)
	for i := range inputs {
		inputs[i].Background = a.Background
	}
	return Section{
		Inputs:      inputs,
		Description: Description{Text: a.Description, Color: a.Foreground},
	}
}
