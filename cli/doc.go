// Package cli contains the command line interface for vic3def.
//
// # Usage
//
// Without a command, sources are printed as JSON:
//
//	vic3def common/history/states/00_states.txt
//	vic3def -I ~/games/victoria3/game yaml common/history/states/00_states.txt
//	vic3def query 'STATE_SVEALAND.provinces' 00_states.txt
//
// Relative source names are looked up in the working directory, then in each
// --path directory, then in each directory of $VIC3DEF_PATH.
//
// # Configuration
//
// Flag defaults are read from a configuration file in the user configuration
// directory, written in the definition language itself. The init command
// writes the current flag values to it:
//
//	CONFIG = {
//	    log_level = "info"
//	    strategy = "backtrack"
//	    max_depth = 0
//	}
//
// Flag names with hyphens use underscores. Command-line flags override
// configuration values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time: Set timestamp format (RFC3339, kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/vic3def/pprof)
package cli
