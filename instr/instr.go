// Package instr defines the instructions of the tinyL virtual-register machine.
package instr

import (
	"fmt"
	"strings"
)

// Opcode is the operation performed by an instruction.
type Opcode int

const (
	LOADI Opcode = iota
	LOAD
	STORE
	ADD
	SUB
	MUL
	AND
	OR
	READ
	WRITE
)

var opcodeNames = map[Opcode]string{
	LOADI: "LOADI",
	LOAD:  "LOAD",
	STORE: "STORE",
	ADD:   "ADD",
	SUB:   "SUB",
	MUL:   "MUL",
	AND:   "AND",
	OR:    "OR",
	READ:  "READ",
	WRITE: "WRITE",
}

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Opcode(%d)", int(o))
}

// Valid reports whether o is one of the ten machine opcodes.
func (o Opcode) Valid() bool {
	_, ok := opcodeNames[o]
	return ok
}

// IsBinary reports whether o combines two registers into a third one.
func (o Opcode) IsBinary() bool {
	switch o {
	case ADD, SUB, MUL, AND, OR:
		return true
	}

	return false
}

// ParseOpcode looks up an opcode by its mnemonic. The lookup is case-insensitive.
func ParseOpcode(name string) (Opcode, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for op, n := range opcodeNames {
		if n == upper {
			return op, nil
		}
	}

	return 0, fmt.Errorf("unknown opcode %q", name)
}

// Instruction is one machine instruction. The meaning of the fields depends on
// the opcode; a field that the opcode does not use holds EmptyField.
//
//	LOADI  dst   imm   -
//	LOAD   dst   var   -
//	STORE  var   src   -
//	ADD..  dst   src1  src2
//	READ   var   -     -
//	WRITE  var   -     -
type Instruction struct {
	Opcode Opcode
	Field1 int
	Field2 int
	Field3 int
}

// LoadI loads the immediate value into register dst.
func LoadI(dst, value int) Instruction {
	return Instruction{Opcode: LOADI, Field1: dst, Field2: value, Field3: EmptyField}
}

// Load copies variable v into register dst.
func Load(dst int, v byte) Instruction {
	return Instruction{Opcode: LOAD, Field1: dst, Field2: int(v), Field3: EmptyField}
}

// Store copies register src into variable v.
func Store(v byte, src int) Instruction {
	return Instruction{Opcode: STORE, Field1: int(v), Field2: src, Field3: EmptyField}
}

// Binary combines registers lhs and rhs into dst. It panics if op is not one
// of the binary opcodes.
func Binary(op Opcode, dst, lhs, rhs int) Instruction {
	opMustBeBinary(op)
	return Instruction{Opcode: op, Field1: dst, Field2: lhs, Field3: rhs}
}

// Read reads a value from the input into variable v.
func Read(v byte) Instruction {
	return Instruction{Opcode: READ, Field1: int(v), Field2: EmptyField, Field3: EmptyField}
}

// Write prints variable v.
func Write(v byte) Instruction {
	return Instruction{Opcode: WRITE, Field1: int(v), Field2: EmptyField, Field3: EmptyField}
}

func opMustBeBinary(op Opcode) {
	if !op.IsBinary() {
		panic(fmt.Sprintf("%s is not a binary opcode", op))
	}
}

// Produces returns the register defined by the instruction, or 0 if the
// instruction does not write a register.
func (i Instruction) Produces() int {
	switch {
	case i.Opcode == LOADI, i.Opcode == LOAD, i.Opcode.IsBinary():
		return i.Field1
	}

	return 0
}

// Consumes returns the registers read by the instruction, in operand order.
func (i Instruction) Consumes() []int {
	switch {
	case i.Opcode == STORE:
		return []int{i.Field2}
	case i.Opcode.IsBinary():
		return []int{i.Field2, i.Field3}
	}

	return nil
}

// Variable returns the variable letter named by the instruction, if any.
func (i Instruction) Variable() (byte, bool) {
	switch i.Opcode {
	case LOAD:
		return byte(i.Field2), true
	case STORE, READ, WRITE:
		return byte(i.Field1), true
	}

	return 0, false
}

// String renders the instruction as one line of the output listing.
func (i Instruction) String() string {
	switch i.Opcode {
	case LOADI:
		return fmt.Sprintf("LOADI %s #%d", FormatRegister(i.Field1), i.Field2)
	case LOAD:
		return fmt.Sprintf("LOAD %s %s",
			FormatRegister(i.Field1), FormatVariable(i.Field2))
	case STORE:
		return fmt.Sprintf("STORE %s %s",
			FormatVariable(i.Field1), FormatRegister(i.Field2))
	case ADD, SUB, MUL, AND, OR:
		return fmt.Sprintf("%s %s %s %s", i.Opcode,
			FormatRegister(i.Field1),
			FormatRegister(i.Field2),
			FormatRegister(i.Field3))
	case READ, WRITE:
		return fmt.Sprintf("%s %s", i.Opcode, FormatVariable(i.Field1))
	default:
		panic(fmt.Sprintf("cannot render instruction with opcode %s", i.Opcode))
	}
}

// ParseInstruction reads back one line produced by Instruction.String.
func ParseInstruction(line string) (Instruction, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Instruction{}, fmt.Errorf("empty instruction")
	}

	op, err := ParseOpcode(tokens[0])
	if err != nil {
		return Instruction{}, err
	}

	operands := tokens[1:]
	want := map[Opcode]int{LOADI: 2, LOAD: 2, STORE: 2, READ: 1, WRITE: 1}[op]
	if op.IsBinary() {
		want = 3
	}

	if len(operands) != want {
		return Instruction{}, fmt.Errorf(
			"%s expects %d operands, got %d in %q", op, want, len(operands), line)
	}

	switch op {
	case LOADI:
		return parseLoadI(operands)
	case LOAD:
		return parseLoad(operands)
	case STORE:
		return parseStore(operands)
	case READ, WRITE:
		v, err := ParseVariable(operands[0])
		if err != nil {
			return Instruction{}, err
		}

		if op == READ {
			return Read(v), nil
		}

		return Write(v), nil
	default:
		return parseBinary(op, operands)
	}
}

func parseLoadI(operands []string) (Instruction, error) {
	dst, err := ParseRegister(operands[0])
	if err != nil {
		return Instruction{}, err
	}

	value, err := ParseImmediate(operands[1])
	if err != nil {
		return Instruction{}, err
	}

	return LoadI(dst, value), nil
}

func parseLoad(operands []string) (Instruction, error) {
	dst, err := ParseRegister(operands[0])
	if err != nil {
		return Instruction{}, err
	}

	v, err := ParseVariable(operands[1])
	if err != nil {
		return Instruction{}, err
	}

	return Load(dst, v), nil
}

func parseStore(operands []string) (Instruction, error) {
	v, err := ParseVariable(operands[0])
	if err != nil {
		return Instruction{}, err
	}

	src, err := ParseRegister(operands[1])
	if err != nil {
		return Instruction{}, err
	}

	return Store(v, src), nil
}

func parseBinary(op Opcode, operands []string) (Instruction, error) {
	regs := make([]int, len(operands))
	for i, o := range operands {
		r, err := ParseRegister(o)
		if err != nil {
			return Instruction{}, err
		}
		regs[i] = r
	}

	return Binary(op, regs[0], regs[1], regs[2]), nil
}
