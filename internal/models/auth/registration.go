package auth

import "context"

const MinPasswordLength = 8

// Registration holds the field rules of the sign-up form.
//
// The taken-name check runs before the character check, unlike login.
// The password rules have no character check at all, and the
// confirmation result replaces whatever the password rules produced.
type Registration struct {
	Username     Field
	Password     Field
	Confirmation Field
}

func NewRegistration(dir Directory) Registration {
	return Registration{
		Username: Field{
			Blank(Empty),
			Registered(dir, AlreadyExists),
			Disallowed(InvalidCharacters),
		},
		Password: Field{
			Blank(Empty),
			ShorterThan(MinPasswordLength, TooWeak),
		},
		Confirmation: Field{
			Blank(EmptyConfirmation),
			DiffersFromPaired(Mismatch),
		},
	}
}

func (r Registration) ValidateUsername(ctx context.Context, username string) (State, error) {
	return r.Username.Validate(ctx, Input{Text: username})
}

func (r Registration) ValidatePassword(ctx context.Context, password string) (State, error) {
	return r.Password.Validate(ctx, Input{Text: password})
}

func (r Registration) ValidateConfirmation(ctx context.Context, password, confirmation string) (State, error) {
	return r.Confirmation.Validate(ctx, Input{Text: confirmation, Paired: password})
}
