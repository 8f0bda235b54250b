package verify

import (
	"fmt"

	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

// FunctionalSimulator executes a program in order, without timing.
type FunctionalSimulator struct {
	prog    program.Program
	isa     *program.ISA
	state   *program.MachineState
	inputs  []int32
	outputs []int32
	steps   int
}

// NewFunctionalSimulator creates a simulator for prog with a fresh machine
// state.
func NewFunctionalSimulator(prog program.Program) *FunctionalSimulator {
	return &FunctionalSimulator{
		prog:  prog,
		isa:   program.DefaultISA(),
		state: program.NewMachineState(),
	}
}

// FeedIn appends values to the input queue consumed by READ.
func (fs *FunctionalSimulator) FeedIn(values ...int32) {
	fs.inputs = append(fs.inputs, values...)
}

// Outputs returns the values printed by WRITE, in order.
func (fs *FunctionalSimulator) Outputs() []int32 {
	return fs.outputs
}

// Steps returns the number of instructions executed.
func (fs *FunctionalSimulator) Steps() int {
	return fs.steps
}

// State exposes the machine state after (or during) a run.
func (fs *FunctionalSimulator) State() *program.MachineState {
	return fs.state
}

// GetVariable returns the current value of variable v.
func (fs *FunctionalSimulator) GetVariable(v byte) int32 {
	return fs.state.ReadVar(v)
}

// Run executes every instruction of the program once.
// Returns an error if execution fails.
func (fs *FunctionalSimulator) Run() error {
	for idx, inst := range fs.prog.Insts {
		if err := fs.executeOp(inst); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", idx, inst, err)
		}

		fs.steps++
	}

	return nil
}

// executeOp executes a single instruction
func (fs *FunctionalSimulator) executeOp(inst instr.Instruction) error {
	switch inst.Opcode {
	case instr.LOADI:
		fs.state.WriteReg(inst.Field1, int32(inst.Field2))
	case instr.LOAD:
		v, err := fs.variableField(inst.Field2)
		if err != nil {
			return err
		}
		fs.state.WriteReg(inst.Field1, fs.state.ReadVar(v))
	case instr.STORE:
		return fs.runStore(inst)
	case instr.ADD, instr.SUB, instr.MUL, instr.AND, instr.OR:
		return fs.runBinary(inst)
	case instr.READ:
		return fs.runRead(inst)
	case instr.WRITE:
		v, err := fs.variableField(inst.Field1)
		if err != nil {
			return err
		}
		fs.outputs = append(fs.outputs, fs.state.ReadVar(v))
	default:
		return fmt.Errorf("unknown opcode %d", int(inst.Opcode))
	}

	return nil
}

func (fs *FunctionalSimulator) runStore(inst instr.Instruction) error {
	v, err := fs.variableField(inst.Field1)
	if err != nil {
		return err
	}

	value, err := fs.readReg(inst.Field2)
	if err != nil {
		return err
	}

	fs.state.WriteVar(v, value)

	return nil
}

func (fs *FunctionalSimulator) runBinary(inst instr.Instruction) error {
	lhs, err := fs.readReg(inst.Field2)
	if err != nil {
		return err
	}

	rhs, err := fs.readReg(inst.Field3)
	if err != nil {
		return err
	}

	res, err := fs.isa.Execute(inst.Opcode, lhs, rhs)
	if err != nil {
		return err
	}

	fs.state.WriteReg(inst.Field1, res)

	return nil
}

func (fs *FunctionalSimulator) runRead(inst instr.Instruction) error {
	v, err := fs.variableField(inst.Field1)
	if err != nil {
		return err
	}

	if len(fs.inputs) == 0 {
		return fmt.Errorf("no input left for READ %c", v)
	}

	fs.state.WriteVar(v, fs.inputs[0])
	fs.inputs = fs.inputs[1:]

	return nil
}

func (fs *FunctionalSimulator) readReg(reg int) (int32, error) {
	value, ok := fs.state.ReadReg(reg)
	if !ok {
		return 0, fmt.Errorf("r%d read before it was written", reg)
	}

	return value, nil
}

func (fs *FunctionalSimulator) variableField(field int) (byte, error) {
	if field < 0 || field > 0xFF || !instr.IsVariable(byte(field)) {
		return 0, fmt.Errorf("invalid variable field %d", field)
	}

	return byte(field), nil
}
