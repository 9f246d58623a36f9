package auth

// State is the correctness of one form field's current content.
type State int8

const (
	Default State = iota
	Correct
	Empty
	NotFound
	AlreadyExists
	InvalidCharacters
	Mismatch
	EmptyConfirmation
	TooWeak
)

var stateNames = map[State]string{
	Default:           "default",
	Correct:           "correct",
	Empty:             "empty",
	NotFound:          "not_found",
	AlreadyExists:     "already_exists",
	InvalidCharacters: "invalid_characters",
	Mismatch:          "mismatch",
	EmptyConfirmation: "empty_confirmation",
	TooWeak:           "too_weak",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Neutral reports whether the state is shown without an error highlight.
func (s State) Neutral() bool {
	return s == Default || s == Correct
}
