// Package program holds compiled tinyL programs and the ISA that executes them.
package program

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/tinyl/instr"
	"gopkg.in/yaml.v3"
)

// Program is the ordered instruction stream produced by the compiler.
// Instructions are only ever appended.
type Program struct {
	Insts []instr.Instruction
}

// Emit appends an instruction to the program.
func (p *Program) Emit(inst instr.Instruction) error {
	p.Insts = append(p.Insts, inst)
	return nil
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Insts)
}

// String renders the program as a listing, one instruction per line.
func (p *Program) String() string {
	var sb strings.Builder
	_ = p.WriteText(&sb)

	return sb.String()
}

// WriteText writes one line per instruction.
func (p *Program) WriteText(w io.Writer) error {
	for _, inst := range p.Insts {
		if _, err := fmt.Fprintln(w, inst.String()); err != nil {
			return err
		}
	}

	return nil
}

type yamlInst struct {
	Op     string `yaml:"op"`
	Fields []int  `yaml:"fields,flow"`
}

type yamlProgram struct {
	Instructions []yamlInst `yaml:"instructions"`
}

// WriteYAML writes the program as a YAML document. Unused fields are written
// as instr.EmptyField.
func (p *Program) WriteYAML(w io.Writer) error {
	doc := yamlProgram{Instructions: make([]yamlInst, 0, len(p.Insts))}
	for _, inst := range p.Insts {
		doc.Instructions = append(doc.Instructions, yamlInst{
			Op:     inst.Opcode.String(),
			Fields: []int{inst.Field1, inst.Field2, inst.Field3},
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

// ReadText parses a listing written by WriteText. Blank lines are skipped.
func ReadText(r io.Reader) (Program, error) {
	var p Program

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		inst, err := instr.ParseInstruction(line)
		if err != nil {
			return Program{}, fmt.Errorf("line %d: %w", lineNo, err)
		}

		p.Insts = append(p.Insts, inst)
	}

	if err := scanner.Err(); err != nil {
		return Program{}, err
	}

	return p, nil
}

// ReadYAML parses a document written by WriteYAML.
func ReadYAML(r io.Reader) (Program, error) {
	var doc yamlProgram
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return Program{}, fmt.Errorf("failed to decode program: %w", err)
	}

	p := Program{Insts: make([]instr.Instruction, 0, len(doc.Instructions))}
	for i, yi := range doc.Instructions {
		op, err := instr.ParseOpcode(yi.Op)
		if err != nil {
			return Program{}, fmt.Errorf("instruction %d: %w", i, err)
		}

		if len(yi.Fields) != 3 {
			return Program{}, fmt.Errorf(
				"instruction %d: expected 3 fields, got %d", i, len(yi.Fields))
		}

		p.Insts = append(p.Insts, instr.Instruction{
			Opcode: op,
			Field1: yi.Fields[0],
			Field2: yi.Fields[1],
			Field3: yi.Fields[2],
		})
	}

	return p, nil
}

// LoadProgramFile loads a text listing from disk.
func LoadProgramFile(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, err
	}
	defer f.Close()

	return ReadText(f)
}

// LoadProgramFileFromYAML loads a YAML program from disk.
func LoadProgramFileFromYAML(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, err
	}
	defer f.Close()

	return ReadYAML(f)
}

// LoadAny picks the loader by file extension: .yaml and .yml files are read
// as YAML, everything else as a text listing.
func LoadAny(path string) (Program, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return LoadProgramFileFromYAML(path)
	}

	return LoadProgramFile(path)
}
