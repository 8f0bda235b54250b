package api

import (
	"fmt"

	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

type emuState struct {
	PC      int
	Machine *program.MachineState
	Inputs  []int32
	Outputs []int32
}

func newEmuState() emuState {
	return emuState{Machine: program.NewMachineState()}
}

type instEmulator struct {
	isa *program.ISA
}

// RunInst executes one instruction and moves the PC past it.
func (i instEmulator) RunInst(inst instr.Instruction, state *emuState) error {
	instFuncs := map[instr.Opcode]func(instr.Instruction, *emuState) error{
		instr.LOADI: i.runLoadI,
		instr.LOAD:  i.runLoad,
		instr.STORE: i.runStore,
		instr.ADD:   i.runBinary,
		instr.SUB:   i.runBinary,
		instr.MUL:   i.runBinary,
		instr.AND:   i.runBinary,
		instr.OR:    i.runBinary,
		instr.READ:  i.runRead,
		instr.WRITE: i.runWrite,
	}

	instFunc, ok := instFuncs[inst.Opcode]
	if !ok {
		return fmt.Errorf("unknown instruction %s at PC %d", inst.Opcode, state.PC)
	}

	if err := instFunc(inst, state); err != nil {
		return fmt.Errorf("PC %d (%s): %w", state.PC, inst, err)
	}

	state.PC++

	return nil
}

func (i instEmulator) runLoadI(inst instr.Instruction, state *emuState) error {
	state.Machine.WriteReg(inst.Field1, int32(inst.Field2))
	return nil
}

func (i instEmulator) runLoad(inst instr.Instruction, state *emuState) error {
	v, err := i.variable(inst.Field2)
	if err != nil {
		return err
	}

	state.Machine.WriteReg(inst.Field1, state.Machine.ReadVar(v))

	return nil
}

func (i instEmulator) runStore(inst instr.Instruction, state *emuState) error {
	v, err := i.variable(inst.Field1)
	if err != nil {
		return err
	}

	value, err := i.readOperand(inst.Field2, state)
	if err != nil {
		return err
	}

	state.Machine.WriteVar(v, value)

	return nil
}

func (i instEmulator) runBinary(inst instr.Instruction, state *emuState) error {
	src1, err := i.readOperand(inst.Field2, state)
	if err != nil {
		return err
	}

	src2, err := i.readOperand(inst.Field3, state)
	if err != nil {
		return err
	}

	res, err := i.isa.Execute(inst.Opcode, src1, src2)
	if err != nil {
		return err
	}

	state.Machine.WriteReg(inst.Field1, res)

	return nil
}

func (i instEmulator) runRead(inst instr.Instruction, state *emuState) error {
	v, err := i.variable(inst.Field1)
	if err != nil {
		return err
	}

	if len(state.Inputs) == 0 {
		return fmt.Errorf("input exhausted")
	}

	state.Machine.WriteVar(v, state.Inputs[0])
	state.Inputs = state.Inputs[1:]

	return nil
}

func (i instEmulator) runWrite(inst instr.Instruction, state *emuState) error {
	v, err := i.variable(inst.Field1)
	if err != nil {
		return err
	}

	state.Outputs = append(state.Outputs, state.Machine.ReadVar(v))

	return nil
}

func (i instEmulator) readOperand(reg int, state *emuState) (int32, error) {
	value, ok := state.Machine.ReadReg(reg)
	if !ok {
		return 0, fmt.Errorf("register r%d is not defined", reg)
	}

	return value, nil
}

func (i instEmulator) variable(field int) (byte, error) {
	if field < 0 || field > 0xFF || !instr.IsVariable(byte(field)) {
		return 0, fmt.Errorf("invalid variable field %d", field)
	}

	return byte(field), nil
}
