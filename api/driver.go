// Package api runs compiled tinyL programs on a cycle-level machine model
// driven by an akita simulation engine.
package api

import (
	"fmt"
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tinyl/core"
	"github.com/sarchlab/tinyl/program"
)

// Driver provides the interface to run a program on the machine.
type Driver interface {
	sim.Component

	// MapProgram loads the program and resets the machine.
	MapProgram(prog program.Program)

	// FeedIn appends values to the input consumed by READ instructions.
	FeedIn(data []int32)

	// Collect returns the values printed by WRITE instructions so far.
	Collect() []int32

	// Run executes the mapped program to completion. One instruction
	// retires per cycle.
	Run() error

	// Cycles returns the number of cycles the last run took.
	Cycles() uint64

	// Variable returns the value of a machine variable.
	Variable(v byte) int32
}

type driverImpl struct {
	*sim.TickingComponent

	emu    instEmulator
	prog   program.Program
	state  emuState
	cycles uint64
	err    error
}

// Tick runs the driver for one cycle.
func (d *driverImpl) Tick() (madeProgress bool) {
	if d.err != nil || d.state.PC >= d.prog.Len() {
		return false
	}

	inst := d.prog.Insts[d.state.PC]
	if err := d.emu.RunInst(inst, &d.state); err != nil {
		d.err = err
		slog.Error("Machine fault", "Driver", d.Name(), "Error", err)

		return false
	}

	d.cycles++

	core.Trace("Inst",
		"Driver", d.Name(),
		"Time", float64(d.Engine.CurrentTime()),
		"Cycle", d.cycles,
		"Inst", inst.String(),
	)

	return true
}

// MapProgram sets the program that the machine needs to run.
func (d *driverImpl) MapProgram(prog program.Program) {
	inputs := d.state.Inputs

	d.prog = prog
	d.state = newEmuState()
	d.state.Inputs = inputs
	d.cycles = 0
	d.err = nil
}

// FeedIn provides input data to the machine.
func (d *driverImpl) FeedIn(data []int32) {
	d.state.Inputs = append(d.state.Inputs, data...)
}

// Collect returns the output data of the machine.
func (d *driverImpl) Collect() []int32 {
	return d.state.Outputs
}

func (d *driverImpl) Cycles() uint64 {
	return d.cycles
}

func (d *driverImpl) Variable(v byte) int32 {
	return d.state.Machine.ReadVar(v)
}

// Run runs the mapped program in the driver.
func (d *driverImpl) Run() error {
	if d.prog.Len() == 0 {
		return nil
	}

	d.TickNow()
	d.Engine.Run()

	if d.err != nil {
		return d.err
	}

	if d.state.PC != d.prog.Len() {
		return fmt.Errorf("machine stopped at PC %d of %d", d.state.PC, d.prog.Len())
	}

	return nil
}
