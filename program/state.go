package program

import (
	"github.com/sarchlab/tinyl/instr"
)

// MachineState is the state of the tinyL machine: six variables and an
// unbounded register file.
type MachineState struct {
	Variables [instr.NumVariables]int32
	Registers map[int]int32
}

// NewMachineState creates a state with all variables zero and no registers.
func NewMachineState() *MachineState {
	return &MachineState{
		Registers: make(map[int]int32),
	}
}

// WriteReg writes a value to a register
func (ms *MachineState) WriteReg(reg int, value int32) {
	ms.Registers[reg] = value
}

// ReadReg reads a register. ok is false if the register was never written.
func (ms *MachineState) ReadReg(reg int) (value int32, ok bool) {
	value, ok = ms.Registers[reg]
	return value, ok
}

// WriteVar writes a variable.
func (ms *MachineState) WriteVar(v byte, value int32) {
	ms.Variables[instr.VariableIndex(v)] = value
}

// ReadVar reads a variable.
func (ms *MachineState) ReadVar(v byte) int32 {
	return ms.Variables[instr.VariableIndex(v)]
}
