// Package console runs the line-oriented command loop of the client.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/ryanbastic/classtrak/internal/table"
)

// Table is the set of actions the console can drive. *table.Controller
// satisfies it.
type Table interface {
	Load(ctx context.Context) error
	Retrieve(ctx context.Context, id int) error
	Edit(id int) error
	SetField(id int, f table.Field, value string) error
	Cancel(ctx context.Context, id int) error
	Update(ctx context.Context, id int) error
	Delete(ctx context.Context, id int) error
	Render() error
}

const prompt = "classtrak> "

const helpText = `Commands:
  load                          fetch the student table
  retrieve ID                   show the classes of a student
  edit ID                       start editing a student
  set ID first|last|school VAL  change a field of an edited student
  update ID                     save an edited student
  cancel ID                     drop all edits and reload
  delete ID                     delete a student
  show                          redraw the tables
  help                          show this help
  quit                          exit
`

var errQuit = errors.New("quit")

// usageError is a malformed command; it is printed and the loop continues.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Run reads commands from in until quit, EOF or ctx is done. Action failures
// are already shown by the table's renderer, so only usage errors are
// printed here.
func Run(ctx context.Context, in io.Reader, out io.Writer, t Table) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		err := Exec(ctx, t, out, scanner.Text())
		var ue *usageError
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.As(err, &ue):
			fmt.Fprintf(out, "error: %s\n", ue.msg)
		}
	}
}

// Exec runs a single command line.
func Exec(ctx context.Context, t Table, out io.Writer, line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return usagef("cannot parse %q: %v", line, err)
	}
	if len(args) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "load":
		if err := want(cmd, args, 0); err != nil {
			return err
		}
		return t.Load(ctx)
	case "show":
		return t.Render()
	case "help", "?":
		fmt.Fprint(out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "set":
		if len(args) != 3 {
			return usagef("usage: set ID first|last|school VALUE")
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		f, err := table.ParseField(args[1])
		if err != nil {
			return usagef("%v", err)
		}
		return t.SetField(id, f, args[2])
	}

	action, ok := map[string]func(int) error{
		"retrieve": func(id int) error { return t.Retrieve(ctx, id) },
		"edit":     t.Edit,
		"update":   func(id int) error { return t.Update(ctx, id) },
		"cancel":   func(id int) error { return t.Cancel(ctx, id) },
		"delete":   func(id int) error { return t.Delete(ctx, id) },
	}[cmd]
	if !ok {
		return usagef("unknown command %q, try help", cmd)
	}
	if err := want(cmd, args, 1); err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return action(id)
}

func want(cmd string, args []string, n int) error {
	if len(args) == n {
		return nil
	}
	if n == 0 {
		return usagef("usage: %s", cmd)
	}
	return usagef("usage: %s ID", cmd)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("student id %q is not a number", s)
	}
	return id, nil
}
