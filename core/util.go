package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/tinyl/instr"
	"github.com/sarchlab/tinyl/program"
)

// LevelTrace sits below debug so that token-by-token traces stay hidden
// unless asked for.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs msg at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintProgram renders the program as a table.
func PrintProgram(w io.Writer, prog program.Program) {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Program (%d instructions)", prog.Len()))
	t.AppendHeader(table.Row{"#", "Opcode", "Field1", "Field2", "Field3", "Listing"})

	for i, inst := range prog.Insts {
		t.AppendRow(table.Row{
			i,
			inst.Opcode.String(),
			formatField(inst.Field1),
			formatField(inst.Field2),
			formatField(inst.Field3),
			inst.String(),
		})
	}

	fmt.Fprintln(w, t.Render())
}

func formatField(f int) string {
	if f == instr.EmptyField {
		return "-"
	}

	return fmt.Sprintf("%d", f)
}

// LogProgram logs every instruction of prog at debug level.
func LogProgram(prog program.Program) {
	for i, inst := range prog.Insts {
		slog.Debug("Instruction",
			"Index", i,
			"Opcode", inst.Opcode.String(),
			"Field1", inst.Field1,
			"Field2", inst.Field2,
			"Field3", inst.Field3,
		)
	}
}
