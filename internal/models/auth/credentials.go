package auth

import "context"

// AcceptedCredential is the only username and password the demo knows.
const AcceptedCredential = "admin"

// Directory answers whether a username is already registered.
type Directory interface {
	Exists(ctx context.Context, username string) (bool, error)
}

// Verifier checks a password for a username.
type Verifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// StaticDirectory is a fixed set of registered usernames.
type StaticDirectory []string

func (d StaticDirectory) Exists(_ context.Context, username string) (bool, error) {
	for _, v := range d {
		if v == username {
			return true, nil
		}
	}
	return false, nil
}

// StaticVerifier accepts a single password for every username.
type StaticVerifier string

func (v StaticVerifier) Verify(_ context.Context, _, password string) (bool, error) {
	return string(v) == password, nil
}

// Defaults returns the collaborators used when no storage is configured.
func Defaults() (Directory, Verifier) {
	return StaticDirectory{AcceptedCredential}, StaticVerifier(AcceptedCredential)
}
