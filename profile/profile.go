package profile

// Stopper ends a profiling session and flushes its data.
// Stop is always safe to call.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]. An empty or unknown mode disables profiling.
	Mode string
	// Path is the output directory. Empty selects a temporary directory.
	Path string
	// Quiet suppresses the messages printed when a session starts and stops.
	Quiet bool
}

// Option configures a [Profiler].
type Option func(*Profiler)

// New returns a [Profiler] configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option {
	return func(p *Profiler) { p.Mode = mode }
}

// WithPath sets the output directory.
func WithPath(path string) Option {
	return func(p *Profiler) { p.Path = path }
}

// WithQuiet sets whether start and stop messages are suppressed.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) { p.Quiet = quiet }
}

// Start begins profiling. If built without the pprof tag, or Mode is not
// supported, Start returns a no-op Stopper.
func (p Profiler) Start() Stopper {
	if !Enabled || p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
