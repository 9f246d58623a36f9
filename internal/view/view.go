// Package view maps field states to what the screens display.
package view

import "choplab/internal/models/auth"

// Color is a display color role, not a concrete color value.
type Color int8

const (
	// Clear is the transparent background of a valid input.
	Clear Color = iota
	// Label is the regular text color.
	Label
	// Error is the red highlight.
	Error
)

func (c Color) String() string {
	switch c {
	case Clear:
		return "clear"
	case Label:
		return "label"
	case Error:
		return "error"
	}
	return "unknown"
}

type Form int8

const (
	LoginForm Form = iota
	RegistrationForm
)

type Field int8

const (
	Username Field = iota
	Password
)

// Tint returns the background of an input control or the text color of
// a description label for state.
func Tint(state auth.State, isInput bool) Color {
	if isInput && state.Neutral() {
		return Clear
	}
	if state.Neutral() {
		return Label
	}
	return Error
}

// Appearance is everything a screen sets for one field.
type Appearance struct {
	Background  Color
	Foreground  Color
	Description string
}

func Present(form Form, field Field, state auth.State) Appearance {
	return Appearance{
		Background:  Tint(state, true),
		Foreground:  Tint(state, false),
		Description: Describe(form, field, state),
	}
}
