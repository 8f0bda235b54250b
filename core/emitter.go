package core

import (
	"fmt"
	"io"

	"github.com/sarchlab/tinyl/instr"
)

// Emitter receives the instructions produced by the compiler, in program
// order. *program.Program is an Emitter.
type Emitter interface {
	Emit(inst instr.Instruction) error
}

// TextEmitter renders each instruction as one line of text.
type TextEmitter struct {
	w io.Writer
}

// NewTextEmitter creates an emitter that writes to w.
func NewTextEmitter(w io.Writer) *TextEmitter {
	return &TextEmitter{w: w}
}

// Emit writes the instruction.
func (e *TextEmitter) Emit(inst instr.Instruction) error {
	if _, err := fmt.Fprintln(e.w, inst.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", inst, err)
	}

	return nil
}

type multiEmitter []Emitter

// MultiEmitter duplicates every instruction to all the given emitters. It
// stops at the first emitter that fails.
func MultiEmitter(emitters ...Emitter) Emitter {
	return multiEmitter(emitters)
}

func (m multiEmitter) Emit(inst instr.Instruction) error {
	for _, e := range m {
		if err := e.Emit(inst); err != nil {
			return err
		}
	}

	return nil
}
