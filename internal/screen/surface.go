package screen

import (
	"time"

	"choplab/internal/view"
)

type Input int8

const (
	UsernameInput Input = iota
	PasswordInput
	ConfirmationInput
)

// InputView is one text input as it should be drawn.
type InputView struct {
	Input      Input
	Value      string
	Secret     bool
	Background view.Color
}

type Description struct {
	Text  string
	Color view.Color
}

// Section is a group of inputs sharing one description label.
type Section struct {
	Inputs      []InputView
	Description Description
}

type Form struct {
	Kind     view.Form
	Sections []Section
}

// Alert is a modal notification with a single acknowledgement action.
type Alert struct {
	ID      string
	Title   string
	Message string
	Action  string
}

// Surface is the set of UI controls a screen drives.
//
// Calls are made with the screen's lock held, so an implementation sees
// them strictly one at a time. SetProgress is always the last call of a
// submit or dismiss transition.
type Surface interface {
	Render(f Form)
	SetInputsEnabled(enabled bool)
	SetSubmitVisible(visible bool)
	SetProgress(active bool)
	PresentAlert(a Alert)
}

// Clock schedules the delayed failure.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
