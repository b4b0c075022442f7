// Package cmd implements the vic3def subcommands.
//
// Every command reads one or more source files, or standard input when the
// source is "-", parses them as a single program, and writes a rendering of
// the result to standard output:
//
//	vic3def json  common/history/states/00_states.txt
//	vic3def yaml  --indent 4 00_states.txt
//	vic3def ast   - < 00_states.txt
//	vic3def fmt   00_states.txt
//	vic3def query 'len(STATE_SVEALAND.provinces)' 00_states.txt
//	vic3def repl  00_states.txt
//
// Relative source names that do not exist in the working directory are looked
// up in the search path given by --path and $VIC3DEF_PATH.
package cmd

const (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file, and the name of the scope read from it.
	ConfigIdentifier = "config"

	// ConfigScope is the scope of the configuration file holding flag values.
	ConfigScope = "CONFIG"
)
