package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration directory and the prefix for environment variable identifiers.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name, // default output from dlv
			regexp.MustCompile(`^\.+`):             "",   // remove leading dot(s)
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files such as
// REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir returns the directory reported by lookup, falling back to a hidden
// directory in the user's home and finally the working directory.
func userDir(lookup func() (string, error), hidden string) string {
	dir, err := lookup()
	if err == nil {
		return dir
	}

	if dir, err = os.UserHomeDir(); err == nil {
		return filepath.Join(dir, hidden)
	}

	if dir, err = os.Getwd(); err == nil {
		return dir
	}

	return "."
}

// ConfigPath returns the path formed by joining the configuration directory
// with the given path elements.
func ConfigPath(elem ...string) string {
	return filepath.Join(append([]string{ConfigDir()}, elem...)...)
}

// DefaultDirMode is the permission mode for created directories.
const DefaultDirMode os.FileMode = 0o700

// MkdirAll creates the configuration and cache directories.
func MkdirAll() error {
	for _, dir := range []string{ConfigDir(), CacheDir()} {
		if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
			return err
		}
	}

	return nil
}

// SearchPath composes the source search path from the given directories
// followed by the list held in environment variable [PathEnv]. Entries that
// are not existing directories are dropped, and duplicates keep their first
// position.
func SearchPath(dirs ...string) []string {
	sep := string(os.PathListSeparator)

	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(sep),
		mung.WithPrefixItems(dirs...),
		mung.WithFilter(isDir),
	).String()

	var path []string

	for dir := range strings.SplitSeq(list, sep) {
		if dir == "" || !isDir(dir) || slices.Contains(path, dir) {
			continue
		}

		path = append(path, dir)
	}

	return path
}

// Resolve locates a source file. Absolute paths and paths that exist relative
// to the working directory are returned unchanged; otherwise each directory in
// searchPath is tried in order. The original name is returned when nothing
// matches so that the caller reports the open failure.
func Resolve(name string, searchPath []string) string {
	if filepath.IsAbs(name) || isFile(name) {
		return name
	}

	for _, dir := range searchPath {
		if candidate := filepath.Join(dir, name); isFile(candidate) {
			return candidate
		}
	}

	return name
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
