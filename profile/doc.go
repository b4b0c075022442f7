// Package profile provides optional runtime profiling for the vic3def command.
//
// Profiling is built on [github.com/pkg/profile] and compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Enabled] is false, [Modes] is empty, and
// [Profiler.Start] returns a Stopper that does nothing.
//
// A session is described by a [Profiler] and runs until its Stopper is called:
//
//	stop := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/vic3def"),
//	).Start()
//	defer stop.Stop()
//
//	// parse and project sources here
//
// Profile data is written to the directory named by [WithPath] in a file
// named after the mode, such as cpu.pprof, and can be inspected with
//
//	go tool pprof -http=: /tmp/vic3def/cpu.pprof
//
// Builds with the tag also import [net/http/pprof], registering its handlers
// with [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
