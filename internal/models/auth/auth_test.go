package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) Exists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func TestHasDisallowedCharacters(t *testing.T) {
	cases := map[string]bool{
		"":           false,
		"admin":      false,
		"AbcXyz0189": false,
		"admin!":     true,
		"two words":  true,
		" ":          true,
		"привет":     true,
		"adminп":     true,
		"line\nfeed": true,
		"café":       true,
		"under_line": true,
	}
	for in, want := range cases {
		assert.Equal(t, want, HasDisallowedCharacters(in), "input %q", in)
	}
}

func TestLoginUsername(t *testing.T) {
	l := NewLogin(Defaults())
	ctx := context.Background()

	cases := []struct {
		in   string
		want State
	}{
		{"", Empty},
		{"admin", Correct},
		{"admin!", InvalidCharacters},
		{"админ", InvalidCharacters},
		{"bob", NotFound},
		{"Admin", NotFound},
	}
	for _, c := range cases {
		got, err := l.ValidateUsername(ctx, c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "username %q", c.in)
	}
}

func TestLoginPassword(t *testing.T) {
	l := NewLogin(Defaults())
	ctx := context.Background()

	cases := []struct {
		in   string
		want State
	}{
		{"", Empty},
		{"admin", Correct},
		{"admin!", InvalidCharacters},
		{"bob", Mismatch},
	}
	for _, c := range cases {
		got, err := l.ValidatePassword(ctx, "whoever", c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "password %q", c.in)
	}
}

func TestLoginUsesInjectedCollaborators(t *testing.T) {
	ctx := context.Background()
	l := NewLogin(StaticDirectory{"bob"}, StaticVerifier("hunter22"))

	st, err := l.ValidateUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, Correct, st)

	st, err = l.ValidateUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, NotFound, st)

	st, err = l.ValidatePassword(ctx, "bob", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, Correct, st)
}

func TestRegistrationUsername(t *testing.T) {
	r := NewRegistration(StaticDirectory{AcceptedCredential})
	ctx := context.Background()

	cases := []struct {
		in   string
		want State
	}{
		{"", Empty},
		{"admin", AlreadyExists},
		{"bob$", InvalidCharacters},
		{"bob", Correct},
	}
	for _, c := range cases {
		got, err := r.ValidateUsername(ctx, c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "username %q", c.in)
	}
}

func TestRegistrationTakenCheckPrecedesCharacterCheck(t *testing.T) {
	r := NewRegistration(StaticDirectory{"taken name"})

	got, err := r.ValidateUsername(context.Background(), "taken name")
	require.NoError(t, err)
	assert.Equal(t, AlreadyExists, got)
}

func TestRegistrationPassword(t *testing.T) {
	r := NewRegistration(StaticDirectory{})
	ctx := context.Background()

	cases := []struct {
		in   string
		want State
	}{
		{"", Empty},
		{"short", TooWeak},
		{"1234567", TooWeak},
		{"12345678", Correct},
		{"longenough", Correct},
		// No character rule on this path.
		{"пароль!! с пробелом", Correct},
		{"$$$$$$$$", Correct},
		// Eight characters, more than eight bytes.
		{"пароль12", Correct},
		{"семь777", TooWeak},
	}
	for _, c := range cases {
		got, err := r.ValidatePassword(ctx, c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "password %q", c.in)
		assert.NotEqual(t, InvalidCharacters, got)
	}
}

func TestRegistrationConfirmation(t *testing.T) {
	r := NewRegistration(StaticDirectory{})
	ctx := context.Background()

	got, err := r.ValidateConfirmation(ctx, "password1", "")
	require.NoError(t, err)
	assert.Equal(t, EmptyConfirmation, got)

	got, err = r.ValidateConfirmation(ctx, "password1", "password2")
	require.NoError(t, err)
	assert.Equal(t, Mismatch, got)

	got, err = r.ValidateConfirmation(ctx, "password1", "password1")
	require.NoError(t, err)
	assert.Equal(t, Correct, got)
}

func TestRegistrationConfirmationIgnoresStrength(t *testing.T) {
	r := NewRegistration(StaticDirectory{})
	ctx := context.Background()

	primary, err := r.ValidatePassword(ctx, "short")
	require.NoError(t, err)
	require.Equal(t, TooWeak, primary)

	got, err := r.ValidateConfirmation(ctx, "short", "short")
	require.NoError(t, err)
	assert.Equal(t, Correct, got)
}

func TestFieldCollaboratorError(t *testing.T) {
	ctx := context.Background()
	dir := new(mockDirectory)
	boom := errors.New("connection refused")
	dir.On("Exists", ctx, "bob").Return(false, boom)

	st, err := NewRegistration(dir).ValidateUsername(ctx, "bob")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Default, st)

	st, err = NewLogin(dir, StaticVerifier("x")).ValidateUsername(ctx, "bob")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Default, st)
	dir.AssertExpectations(t)
}

func TestFieldStopsAtFirstFailingRule(t *testing.T) {
	ctx := context.Background()
	dir := new(mockDirectory)

	// Blank and character rules fail first, the directory is never asked.
	l := NewLogin(dir, StaticVerifier("x"))
	st, err := l.ValidateUsername(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Empty, st)

	st, err = l.ValidateUsername(ctx, "bad name")
	require.NoError(t, err)
	assert.Equal(t, InvalidCharacters, st)

	dir.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "too_weak", TooWeak.String())
	assert.Equal(t, "unknown", State(100).String())
	assert.True(t, Default.Neutral())
	assert.True(t, Correct.Neutral())
	assert.False(t, Mismatch.Neutral())
}
