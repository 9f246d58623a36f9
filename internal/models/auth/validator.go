package auth

import (
	"context"
	"fmt"

	"github.com/rivo/uniseg"
)

// Input is what a rule sees: the edited field and the field it is paired
// with (the username for a password, the password for its confirmation).
type Input struct {
	Text   string
	Paired string
}

// Rule maps an input to State when Fails reports true.
type Rule struct {
	State State
	Fails func(ctx context.Context, in Input) (bool, error)
}

// Field validates one form field. Rules run in order and the first
// failing one decides the state; an input passing all of them is Correct.
type Field []Rule

func (f Field) Validate(ctx context.Context, in Input) (State, error) {
	for _, r := range f {
		failed, err := r.Fails(ctx, in)
		if err != nil {
			return Default, fmt.Errorf("%s rule: %w", r.State, err)
		}
		if failed {
			return r.State, nil
		}
	}
	return Correct, nil
}

func Blank(s State) Rule {
	return Rule{State: s, Fails: func(_ context.Context, in Input) (bool, error) {
		return in.Text == "", nil
	}}
}

func Disallowed(s State) Rule {
	return Rule{State: s, Fails: func(_ context.Context, in Input) (bool, error) {
		return HasDisallowedCharacters(in.Text), nil
	}}
}

// Unregistered fails for usernames the directory does not know.
func Unregistered(dir Directory, s State) Rule {
	return Rule{State: s, Fails: func(ctx context.Context, in Input) (bool, error) {
		ok, err := dir.Exists(ctx, in.Text)
		return !ok, err
	}}
}

// Registered fails for usernames the directory already has.
func Registered(dir Directory, s State) Rule {
	return Rule{State: s, Fails: func(ctx context.Context, in Input) (bool, error) {
		return dir.Exists(ctx, in.Text)
	}}
}

// ShorterThan counts user-perceived characters, not bytes.
func ShorterThan(n int, s State) Rule {
	return Rule{State: s, Fails: func(_ context.Context, in Input) (bool, error) {
		return uniseg.GraphemeClusterCount(in.Text) < n, nil
	}}
}

// Rejected fails when the verifier refuses Text as the password of Paired.
func Rejected(v Verifier, s State) Rule {
	return Rule{State: s, Fails: func(ctx context.Context, in Input) (bool, error) {
		ok, err := v.Verify(ctx, in.Paired, in.Text)
		return !ok, err
	}}
}

func DiffersFromPaired(s State) Rule {
	return Rule{State: s, Fails: func(_ context.Context, in Input) (bool, error) {
		return in.Text != in.Paired, nil
	}}
}
