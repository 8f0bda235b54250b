package config

// Builder can create configurations.
type Builder struct {
	cfg Config
}

// NewBuilder starts from the default configuration.
func NewBuilder() Builder {
	return Builder{cfg: Default()}
}

// From starts from an existing configuration.
func (b Builder) From(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithOutput sets the output file.
func (b Builder) WithOutput(path string) Builder {
	b.cfg.Output = path
	return b
}

// WithFormat sets the output format.
func (b Builder) WithFormat(format string) Builder {
	b.cfg.Format = format
	return b
}

// WithLogLevel sets the log level.
func (b Builder) WithLogLevel(level string) Builder {
	b.cfg.LogLevel = level
	return b
}

// WithListing enables printing the compiled program as a table.
func (b Builder) WithListing(listing bool) Builder {
	b.cfg.Listing = listing
	return b
}

// WithRun enables running the compiled program.
func (b Builder) WithRun(run bool) Builder {
	b.cfg.Run = run
	return b
}

// WithInputs sets the values consumed by READ when running.
func (b Builder) WithInputs(inputs []int32) Builder {
	b.cfg.Inputs = inputs
	return b
}

// WithFreqGHz sets the frequency of the simulated machine.
func (b Builder) WithFreqGHz(freq float64) Builder {
	b.cfg.FreqGHz = freq
	return b
}

// WithMonitor enables the akita monitoring server while the program runs.
func (b Builder) WithMonitor(monitor bool) Builder {
	b.cfg.Monitor = monitor
	return b
}

// Build validates and returns the configuration.
func (b Builder) Build() (Config, error) {
	return b.cfg, b.cfg.Validate()
}
