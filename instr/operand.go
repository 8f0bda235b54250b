package instr

import (
	"fmt"
	"strconv"
	"strings"
)

// EmptyField marks an operand field that the opcode does not use. It lies
// outside the range of every register number, immediate and variable letter
// the compiler produces.
const EmptyField = 0xFFFFF

// The machine has exactly six variables, addressed by letter.
const (
	FirstVariable byte = 'a'
	LastVariable  byte = 'f'
	NumVariables       = int(LastVariable-FirstVariable) + 1
)

// IsVariable reports whether c names one of the machine variables.
func IsVariable(c byte) bool {
	return c >= FirstVariable && c <= LastVariable
}

// VariableIndex maps a variable letter to 0..NumVariables-1.
func VariableIndex(c byte) int {
	if !IsVariable(c) {
		panic(fmt.Sprintf("invalid variable %q", c))
	}

	return int(c - FirstVariable)
}

// FormatRegister renders a register field as "r<n>".
func FormatRegister(field int) string {
	if field == EmptyField {
		return "-"
	}

	return "r" + strconv.Itoa(field)
}

// FormatVariable renders a variable field as its letter.
func FormatVariable(field int) string {
	if field == EmptyField {
		return "-"
	}

	return string(rune(field))
}

// ParseRegister parses "r<n>" with n >= 1.
func ParseRegister(s string) (int, error) {
	if !strings.HasPrefix(s, "r") {
		return 0, fmt.Errorf("invalid register %q", s)
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid register %q", s)
	}

	return n, nil
}

// ParseImmediate parses "#<n>".
func ParseImmediate(s string) (int, error) {
	if !strings.HasPrefix(s, "#") {
		return 0, fmt.Errorf("invalid immediate %q", s)
	}

	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid immediate %q", s)
	}

	return n, nil
}

// ParseVariable parses a single variable letter.
func ParseVariable(s string) (byte, error) {
	if len(s) != 1 || !IsVariable(s[0]) {
		return 0, fmt.Errorf("invalid variable %q", s)
	}

	return s[0], nil
}
