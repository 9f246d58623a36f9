package screen

import (
	"context"

	"choplab/internal/models/auth"
	"choplab/internal/view"
)

// Login is the sign-in screen. Its inputs stay enabled while submitting.
type Login struct {
	*core
	rules auth.Login

	// passwordEdited keeps an untouched password field in Default.
	passwordEdited bool
}

var _ Screen = (*Login)(nil)

func NewLogin(s Surface, rules auth.Login, opts ...Option) *Login {
	l := &Login{
		core:  newCore(view.LoginForm, s, false, opts),
		rules: rules,
	}
	l.form = l.layout
	return l
}

func (l *Login) ChangeUsername(ctx context.Context, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.inputsEnabled {
		return
	}

	l.username = text
	st, err := l.rules.ValidateUsername(ctx, text)
	l.userState = l.settle("login.username", st, err)
	if l.passwordEdited {
		l.validatePassword(ctx)
	}
	l.surface.Render(l.layout())
}

func (l *Login) ChangePassword(ctx context.Context, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.inputsEnabled {
		return
	}

	l.password = text
	l.passwordEdited = true
	l.validatePassword(ctx)
	l.surface.Render(l.layout())
}

// validatePassword checks the password against the current username.
func (l *Login) validatePassword(ctx context.Context) {
	st, err := l.rules.ValidatePassword(ctx, l.username, l.password)
	l.passState = l.settle("login.password", st, err)
}

func (l *Login) Change(ctx context.Context, in Input, text string) error {
	switch in {
	case UsernameInput:
		l.ChangeUsername(ctx, text)
	case PasswordInput:
		l.ChangePassword(ctx, text)
	default:
		return ErrNoSuchField
	}
	return nil
}

func (l *Login) layout() Form {
	return Form{
		Kind: view.LoginForm,
		Sections: []Section{
			section(view.LoginForm, view.Username, l.userState,
				InputView{Input: UsernameInput, Value: l.username}),
			section(view.LoginForm, view.Password, l.passState,
				InputView{Input: PasswordInput, Value: l.password, Secret: true}),
		},
	}
}
