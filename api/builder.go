package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tinyl/program"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine sim.Engine
	freq   sim.Freq
	isa    *program.ISA
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the driver.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithISA sets the ISA that gives the binary instructions their behavior.
func (b DriverBuilder) WithISA(isa *program.ISA) DriverBuilder {
	b.isa = isa
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	isa := b.isa
	if isa == nil {
		isa = program.DefaultISA()
	}

	d := &driverImpl{
		emu:   instEmulator{isa: isa},
		state: newEmuState(),
	}

	d.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, d)

	return d
}
