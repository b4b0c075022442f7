//go:build !pprof

package profile

// Enabled reports whether profiling support is compiled in.
const Enabled = false

// Modes returns the sorted names of the supported profiling modes, which is
// empty without the pprof build tag.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
