package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/vic3def/lang"
	"github.com/ardnew/vic3def/log"
	"github.com/ardnew/vic3def/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Settings are the global options shared by all commands.
type Settings struct {
	// SearchPath lists directories tried for relative source names.
	SearchPath []string
	// Strategy and MaxDepth configure the parser.
	Strategy lang.Strategy
	MaxDepth int
	// Logger receives parser trace records.
	Logger log.Logger
	// Stdin is read for the source "-". Nil selects os.Stdin.
	Stdin io.Reader
	// Stdout receives command output. Nil selects os.Stdout.
	Stdout io.Writer
}

type settingsKey struct{}

// WithSettings returns a new context.Context containing s.
func WithSettings(ctx context.Context, s Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

func settingsFrom(ctx context.Context) Settings {
	s, _ := ctx.Value(settingsKey{}).(Settings)

	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}

	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}

	return s
}

func (s Settings) parseOptions() []lang.Option {
	return []lang.Option{
		lang.WithStrategy(s.Strategy),
		lang.WithMaxDepth(s.MaxDepth),
		lang.WithLogger(s.Logger),
	}
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// fileKey uniquely identifies a file by its device and inode numbers, so that
// a file named twice, through a symlink or by another relative path, is read
// once.
type fileKey struct {
	dev uint64
	ino uint64
}

func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}

// sources is the concatenation of the files named by a command.
type sources struct {
	readers []io.Reader
	closers []io.Closer
	names   []string
}

func (s *sources) Close() error {
	var first error

	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// reader joins the sources with newlines, so that a line comment closing one
// file does not swallow the first line of the next.
func (s *sources) reader() io.Reader {
	joined := make([]io.Reader, 0, 2*len(s.readers))

	for i, r := range s.readers {
		if i > 0 {
			joined = append(joined, strings.NewReader("\n"))
		}

		joined = append(joined, r)
	}

	return io.MultiReader(joined...)
}

// openSources opens names in order. Standard input is read at most once and
// last; other duplicates keep their first position.
func openSources(s Settings, names []string) (*sources, error) {
	if len(names) == 0 {
		names = []string{stdinSource}
	}

	var (
		src      sources
		hasStdin bool
	)

	seen := make(map[fileKey]struct{}, len(names))

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		path := pkg.Resolve(name, s.SearchPath)

		resolved, err := filepath.EvalSymlinks(path)
		if err != nil {
			src.Close()

			return nil, ErrOpenSource.With(slog.String("file", name)).Wrap(err)
		}

		file, err := os.Open(resolved)
		if err != nil {
			src.Close()

			return nil, ErrOpenSource.With(slog.String("file", name)).Wrap(err)
		}

		if info, err := file.Stat(); err == nil {
			if key, ok := makeFileKey(info); ok {
				if _, dup := seen[key]; dup {
					file.Close()

					continue
				}

				seen[key] = struct{}{}
			}
		}

		src.readers = append(src.readers, file)
		src.closers = append(src.closers, file)
		src.names = append(src.names, resolved)
	}

	if hasStdin {
		src.readers = append(src.readers, s.Stdin)
		src.names = append(src.names, stdinSource)
	}

	return &src, nil
}

// readProgram parses the concatenation of the named sources.
func readProgram(ctx context.Context, command string, names []string) (*lang.Program, error) {
	s := settingsFrom(ctx)

	src, err := openSources(s, names)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	s.Logger.DebugContext(ctx, "read sources",
		slog.String("command", command),
		slog.Any("files", src.names),
	)

	prog, err := lang.ParseReader(ctx, src.reader(), s.parseOptions()...)
	if err != nil {
		return nil, ErrParseSource.
			With(slog.String("command", command), slog.Any("files", src.names)).
			Wrap(err)
	}

	return prog, nil
}
