package verify

import (
	"fmt"

	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

// RunLint performs static lint checks on a compiled program.
// Returns a list of issues found, or empty list if no issues.
func RunLint(prog program.Program) []Issue {
	var issues []Issue

	for idx, inst := range prog.Insts {
		if !inst.Opcode.Valid() {
			issues = append(issues, Issue{
				Type:    IssueField,
				Index:   idx,
				Message: fmt.Sprintf("Unknown opcode %d", int(inst.Opcode)),
				Details: map[string]interface{}{"opcode": int(inst.Opcode)},
			})
			continue
		}

		issues = append(issues, checkFields(idx, inst)...)
		issues = append(issues, checkVariable(idx, inst)...)
	}

	issues = append(issues, checkRegisters(prog)...)

	return issues
}

// fieldUse describes what each of the three fields holds for an opcode.
type fieldUse int

const (
	useEmpty fieldUse = iota
	useRegister
	useImmediate
	useVariable
)

var fieldLayout = map[instr.Opcode][3]fieldUse{
	instr.LOADI: {useRegister, useImmediate, useEmpty},
	instr.LOAD:  {useRegister, useVariable, useEmpty},
	instr.STORE: {useVariable, useRegister, useEmpty},
	instr.ADD:   {useRegister, useRegister, useRegister},
	instr.SUB:   {useRegister, useRegister, useRegister},
	instr.MUL:   {useRegister, useRegister, useRegister},
	instr.AND:   {useRegister, useRegister, useRegister},
	instr.OR:    {useRegister, useRegister, useRegister},
	instr.READ:  {useVariable, useEmpty, useEmpty},
	instr.WRITE: {useVariable, useEmpty, useEmpty},
}

func checkFields(idx int, inst instr.Instruction) []Issue {
	var issues []Issue

	fields := [3]int{inst.Field1, inst.Field2, inst.Field3}
	for i, use := range fieldLayout[inst.Opcode] {
		f := fields[i]

		var problem string
		switch {
		case use == useEmpty && f != instr.EmptyField:
			problem = "must be empty"
		case use != useEmpty && f == instr.EmptyField:
			problem = "must not be empty"
		case use == useRegister && f < 1:
			problem = "is not a register"
		case use == useImmediate && (f < 0 || f > 9):
			problem = "is not a single digit"
		}

		if problem == "" {
			continue
		}

		issues = append(issues, Issue{
			Type:  IssueField,
			Index: idx,
			Message: fmt.Sprintf("%s field %d (%d) %s",
				inst.Opcode, i+1, f, problem),
			Details: map[string]interface{}{
				"field": i + 1,
				"value": f,
			},
		})
	}

	return issues
}

func checkVariable(idx int, inst instr.Instruction) []Issue {
	var (
		field int
		found bool
	)

	for i, use := range fieldLayout[inst.Opcode] {
		if use == useVariable {
			field = [3]int{inst.Field1, inst.Field2, inst.Field3}[i]
			found = true
		}
	}

	if !found || field == instr.EmptyField {
		return nil
	}

	if field >= 0 && field <= 0xFF && instr.IsVariable(byte(field)) {
		return nil
	}

	return []Issue{{
		Type:    IssueVariable,
		Index:   idx,
		Message: fmt.Sprintf("%s addresses unknown variable %d", inst.Opcode, field),
		Details: map[string]interface{}{"variable": field},
	}}
}

// checkRegisters walks the program in order. A register must be defined
// exactly once, before its first use, and definitions must number the
// registers 1, 2, 3, ... without gaps.
func checkRegisters(prog program.Program) []Issue {
	var issues []Issue

	definedAt := make(map[int]int)
	expected := 1

	for idx, inst := range prog.Insts {
		if !inst.Opcode.Valid() {
			continue
		}

		for _, src := range inst.Consumes() {
			if src == instr.EmptyField {
				continue
			}

			if _, ok := definedAt[src]; !ok {
				issues = append(issues, Issue{
					Type:    IssueRegister,
					Index:   idx,
					Message: fmt.Sprintf("r%d used before definition", src),
					Details: map[string]interface{}{"register": src},
				})
			}
		}

		dst := inst.Produces()
		if dst == 0 || dst == instr.EmptyField {
			continue
		}

		if prev, ok := definedAt[dst]; ok {
			issues = append(issues, Issue{
				Type:    IssueRegister,
				Index:   idx,
				Message: fmt.Sprintf("r%d redefined (first defined by instruction %d)", dst, prev),
				Details: map[string]interface{}{"register": dst, "first": prev},
			})
			continue
		}

		if dst != expected {
			issues = append(issues, Issue{
				Type:    IssueRegister,
				Index:   idx,
				Message: fmt.Sprintf("r%d defined where r%d was expected", dst, expected),
				Details: map[string]interface{}{"register": dst, "expected": expected},
			})
		}

		definedAt[dst] = idx
		if dst >= expected {
			expected = dst + 1
		}
	}

	return issues
}
