package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/vic3def/lang"
	"github.com/ardnew/vic3def/log"
)

const (
	defaultEditor = "vi"
	editIndent    = 4
)

// editCommand implements [tea.ExecCommand]. It writes the program to a
// temporary file, opens it in the user's editor, and parses the result. On a
// parse error the user is asked whether to edit again; declining ends the
// session.
type editCommand struct {
	ctxFunc func() context.Context
	prog    *lang.Program
	opts    []lang.Option
	logger  log.Logger
	result  *lang.Program
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. It returns [ErrEditDeclined] when
// the user gives up on a program that does not parse. An emptied file leaves
// result nil.
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := c.prog.Format(&buf, editIndent); err != nil {
		return fmt.Errorf("format program: %w", err)
	}

	f, err := os.CreateTemp("", "vic3def-repl-*.txt")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}

		prog, parseErr := lang.ParseString(ctx, string(data), c.opts...)

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.result = prog

			return nil
		}

		fmt.Fprintf(c.stderr, "\nParse error: %s\n", parseErr)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// editorCommand returns the user's preferred editor and its arguments.
func editorCommand() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	return []string{defaultEditor}
}

func runEditor(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, path string) error {
	argv := append(editorCommand(), path)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
