package auth

import "context"

// Login holds the field rules of the sign-in form.
type Login struct {
	Username Field
	Password Field
}

func NewLogin(dir Directory, v Verifier) Login {
	return Login{
		Username: Field{
			Blank(Empty),
			Disallowed(InvalidCharacters),
			Unregistered(dir, NotFound),
		},
		Password: Field{
			Blank(Empty),
			Disallowed(InvalidCharacters),
			Rejected(v, Mismatch),
		},
	}
}

func (l Login) ValidateUsername(ctx context.Context, username string) (State, error) {
	return l.Username.Validate(ctx, Input{Text: username})
}

// ValidatePassword checks password against the username typed so far.
func (l Login) ValidatePassword(ctx context.Context, username, password string) (State, error) {
	return l.Password.Validate(ctx, Input{Text: password, Paired: username})
}
