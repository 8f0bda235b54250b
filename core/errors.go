package core

import (
	"errors"
	"fmt"
)

// ErrEndOfInput is returned when a production needs a token but the input is
// exhausted.
var ErrEndOfInput = errors.New("end of program input")

// SyntaxError reports a token that does not fit the production being parsed.
type SyntaxError struct {
	Pos   int    // offset of the offending token in the stripped input
	Token byte   // the offending token
	Msg   string // short description, e.g. "expected digit"
}

func (e *SyntaxError) Error() string {
	if e.Token == EndMarker {
		return fmt.Sprintf("%s at position %d, reached end of input", e.Msg, e.Pos)
	}

	return fmt.Sprintf("%s at position %d, current symbol is %q",
		e.Msg, e.Pos, string(e.Token))
}

func endOfInputAt(pos int) error {
	return fmt.Errorf("%w at position %d", ErrEndOfInput, pos)
}
