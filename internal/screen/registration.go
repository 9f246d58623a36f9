package screen

import (
	"context"

	"choplab/internal/models/auth"
	"choplab/internal/view"
)

// Registration is the sign-up screen. Both password inputs share one
// state: whichever of them was edited last decides it.
type Registration struct {
	*core
	rules auth.Registration
}

var _ Screen = (*Registration)(nil)

func NewRegistration(s Surface, rules auth.Registration, opts ...Option) *Registration {
	r := &Registration{
		core:  newCore(view.RegistrationForm, s, true, opts),
		rules: rules,
	}
	r.form = r.layout
	return r
}

func (r *Registration) ChangeUsername(ctx context.Context, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inputsEnabled {
		return
	}

	r.username = text
	st, err := r.rules.ValidateUsername(ctx, text)
	r.userState = r.settle("registration.username", st, err)
	r.surface.Render(r.layout())
}

func (r *Registration) ChangePassword(ctx context.Context, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inputsEnabled {
		return
	}

	r.password = text
	st, err := r.rules.ValidatePassword(ctx, text)
	r.passState = r.settle("registration.password", st, err)
	r.surface.Render(r.layout())
}

// ChangeConfirmation compares the confirmation with the password and
// overwrites the password state, even if the password itself is too weak.
func (r *Registration) ChangeConfirmation(ctx context.Context, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inputsEnabled {
		return
	}

	r.confirmation = text
	st, err := r.rules.ValidateConfirmation(ctx, r.password, text)
	r.passState = r.settle("registration.confirmation", st, err)
	r.surface.Render(r.layout())
}

func (r *Registration) Change(ctx context.Context, in Input, text string) error {
	switch in {
	case UsernameInput:
		r.ChangeUsername(ctx, text)
	case PasswordInput:
		r.ChangePassword(ctx, text)
	case ConfirmationInput:
		r.ChangeConfirmation(ctx, text)
	default:
		return ErrNoSuchField
	}
	return nil
}

func (r *Registration) layout() Form {
	return Form{
		Kind: view.RegistrationForm,
		Sections: []Section{
			section(view.RegistrationForm, view.Username, r.userState,
				InputView{Input: UsernameInput, Value: r.username}),
			section(view.RegistrationForm, view.Password, r.passState,
				InputView{Input: PasswordInput, Value: r.password, Secret: true},
				InputView{Input: ConfirmationInput, Value: r.confirmation, Secret: true}),
		},
	}
}
