package x86

// Options carries the handful of CPU construction knobs the specification's
// execution engine actually exposes: where execution starts and what the
// segment/stack registers read as before the first instruction runs. There
// are no interrupt, BIOS or DOS-preset options — those describe behavior
// this package's non-goals exclude (interrupts, I/O ports, BIOS emulation).
type Options struct {
	initialIP uint32
	initialSP uint16
	initialCS uint16
	initialDS uint16
	initialES uint16
	initialSS uint16
}

// Option configures CPU construction.
type Option func(*Options)

// NewOptions builds Options with every register zeroed, matching the
// specification's "CPU state is created zeroed" lifecycle rule.
func NewOptions(options ...Option) Options {
	var opts Options
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// WithInitialIP sets the instruction pointer execution starts at.
func WithInitialIP(ip uint32) Option {
	return func(opts *Options) { opts.initialIP = ip }
}

// WithInitialSP sets the initial stack pointer.
func WithInitialSP(sp uint16) Option {
	return func(opts *Options) { opts.initialSP = sp }
}

// WithInitialCS sets the initial code segment register value.
func WithInitialCS(cs uint16) Option {
	return func(opts *Options) { opts.initialCS = cs }
}

// WithInitialDS sets the initial data segment register value.
func WithInitialDS(ds uint16) Option {
	return func(opts *Options) { opts.initialDS = ds }
}

// WithInitialES sets the initial extra segment register value.
func WithInitialES(es uint16) Option {
	return func(opts *Options) { opts.initialES = es }
}

// WithInitialSS sets the initial stack segment register value.
func WithInitialSS(ss uint16) Option {
	return func(opts *Options) { opts.initialSS = ss }
}
