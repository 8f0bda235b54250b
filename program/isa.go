package program

import (
	"fmt"

	"github.com/sarchlab/tinyl/instr"
)

// Behavior computes the result of a binary instruction.
type Behavior func(src1 int32, src2 int32) int32

// ISA is a struct that represents an Instruction Set Architecture.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from opcode to the behavior of the instruction.
	opToBehavior map[instr.Opcode]Behavior
}

// Constructor for ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:      name,
		opToBehavior: make(map[instr.Opcode]Behavior),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Register a new instruction to the ISA.
func (isa *ISA) registerNewInst(op instr.Opcode, behavior Behavior) {
	isa.opToBehavior[op] = behavior
}

// Behavior returns the behavior of a binary opcode.
func (isa *ISA) Behavior(op instr.Opcode) (Behavior, bool) {
	b, ok := isa.opToBehavior[op]
	return b, ok
}

// Execute applies the behavior of op to the two operands.
func (isa *ISA) Execute(op instr.Opcode, src1, src2 int32) (int32, error) {
	b, ok := isa.opToBehavior[op]
	if !ok {
		return 0, fmt.Errorf("%s: no behavior for %s", isa.isaName, op)
	}

	return b(src1, src2), nil
}

var defaultISA = newDefaultISA()

// DefaultISA returns the ISA of the tinyL machine.
func DefaultISA() *ISA {
	return defaultISA
}

func newDefaultISA() *ISA {
	isa := NewISA("tinyL ISA")
	isa.registerNewInst(instr.ADD, instADD)
	isa.registerNewInst(instr.SUB, instSUB)
	isa.registerNewInst(instr.MUL, instMUL)
	isa.registerNewInst(instr.AND, instAND)
	isa.registerNewInst(instr.OR, instOR)

	return isa
}
