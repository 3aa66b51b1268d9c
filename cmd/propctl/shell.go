package main

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/propstore/errors"
	"github.com/wippyai/propstore/listener"
	"github.com/wippyai/propstore/platform"
	"github.com/wippyai/propstore/property"
	"github.com/wippyai/propstore/store"
)

var errQuit = stderrors.New("quit")

const helpText = `commands:
  set NAME TYPE VALUE   set a property (types: integer, float, boolean, string, raw)
  unset NAME            remove a property
  get NAME              print one property
  list                  print all properties in insertion order
  dump                  print all properties as JSON
  watch NAME|*          subscribe to one name or to every name
  unwatch ID            cancel a subscription
  watches               list subscriptions
  rand NAME N           set NAME to N secure random bytes
  wide NAME TEXT        set NAME to TEXT encoded as UTF-16LE
  sys                   print heap and table statistics
  help                  print this help
  quit                  leave the shell`

type watch struct {
	id     string
	filter listener.Filter
	handle listener.Handle
}

// shell executes propctl commands against one table.
type shell struct {
	table   *store.Table
	out     io.Writer
	watches []watch
	nextID  int
}

func newShell(table *store.Table, out io.Writer) *shell {
	return &shell{table: table, out: out}
}

// Run executes every line of r. Blank lines and lines starting with # are
// skipped. Command errors are printed; with strict set the first one stops
// the run and is returned.
func (s *shell) Run(r io.Reader, strict bool, prompt string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)

	lineNo := 0
	for {
		if prompt != "" {
			fmt.Fprint(s.out, prompt)
		}
		if !sc.Scan() {
			break
		}
		lineNo++

		err := s.Exec(sc.Text())
		if stderrors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			if strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
	}
	return sc.Err()
}

// Exec runs a single command line.
func (s *shell) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "set":
		if len(args) < 3 {
			return usage("set NAME TYPE VALUE")
		}
		return s.set(args[0], args[1], strings.Join(args[2:], " "))
	case "unset":
		if len(args) != 1 {
			return usage("unset NAME")
		}
		return s.table.Unset(args[0])
	case "get":
		if len(args) != 1 {
			return usage("get NAME")
		}
		p, err := s.table.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, formatProperty(p))
		return nil
	case "list":
		return s.list()
	case "dump":
		return s.dump()
	case "watch":
		if len(args) != 1 {
			return usage("watch NAME|*")
		}
		return s.watch(listener.ParseFilter(args[0]))
	case "unwatch":
		if len(args) != 1 {
			return usage("unwatch ID")
		}
		return s.unwatch(args[0])
	case "watches":
		for _, w := range s.watches {
			fmt.Fprintf(s.out, "%s %s\n", w.id, w.filter)
		}
		return nil
	case "rand":
		if len(args) != 2 {
			return usage("rand NAME N")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.InvalidArgument(errors.OpParse, args[1], "byte count is not a number")
		}
		b, err := platform.RandomBytes(n)
		if err != nil {
			return err
		}
		return s.table.Set(args[0], property.TypeRawData, property.RawData(b))
	case "wide":
		if len(args) < 2 {
			return usage("wide NAME TEXT")
		}
		b, err := platform.EncodePath(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return s.table.Set(args[0], property.TypeRawData, property.RawData(b))
	case "sys":
		fmt.Fprintf(s.out, "properties=%d listeners=%d %s\n",
			s.table.Len(), s.table.Listeners(), platform.ReadHeapStats())
		return nil
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "quit", "exit":
		return errQuit
	}
	return errors.New(errors.OpParse, errors.KindNotSupported).
		Detail("unknown command %q, try help", cmd).
		Build()
}

func (s *shell) set(name, typeName, text string) error {
	t, err := property.ParseType(typeName)
	if err != nil {
		return err
	}
	v, err := property.Parse(t, text)
	if err != nil {
		return err
	}
	return s.table.Set(name, t, v)
}

func (s *shell) list() error {
	it := s.table.Iterator()
	defer it.Destroy()

	n := 0
	for p := range it.All() {
		fmt.Fprintln(s.out, formatProperty(p))
		n++
	}
	if err := it.Err(); err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(s.out, "(empty)")
	}
	return nil
}

func (s *shell) dump() error {
	it := s.table.Iterator()
	defer it.Destroy()

	var props []property.Property
	for p := range it.All() {
		props = append(props, p)
	}
	if err := it.Err(); err != nil {
		return err
	}

	data, err := property.MarshalIndent(props)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(data))
	return nil
}

func (s *shell) watch(f listener.Filter) error {
	id := "w" + strconv.Itoa(s.nextID+1)
	out := s.out

	h, err := s.table.AddListener(f, listener.Func(func(name string, t property.Type, v *property.Value) {
		if v == nil {
			fmt.Fprintf(out, "[%s] %s removed\n", id, name)
			return
		}
		fmt.Fprintf(out, "[%s] %s %s %s\n", id, name, t, v)
	}))
	if err != nil {
		return err
	}

	s.nextID++
	s.watches = append(s.watches, watch{id: id, filter: f, handle: h})
	fmt.Fprintln(s.out, id)
	return nil
}

func (s *shell) unwatch(id string) error {
	for i, w := range s.watches {
		if w.id != id {
			continue
		}
		if err := s.table.RemoveListener(w.handle); err != nil {
			return err
		}
		s.watches = append(s.watches[:i], s.watches[i+1:]...)
		return nil
	}
	return errors.NotFound(errors.OpUnsubscribe, "watch", id)
}

func formatProperty(p property.Property) string {
	return fmt.Sprintf("%s %s %s", quoteName(p.Name), p.Type, p.Value)
}

func quoteName(name string) string {
	if strings.ContainsAny(name, " \t\"") {
		return strconv.Quote(name)
	}
	return name
}

func usage(form string) error {
	return errors.New(errors.OpParse, errors.KindInvalidArgument).
		Detail("usage: %s", form).
		Build()
}

// splitArgs splits a command line on whitespace. Double-quoted arguments
// may contain spaces and Go escape sequences.
func splitArgs(line string) ([]string, error) {
	var args []string
	for {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			return args, nil
		}
		if line[0] != '"' {
			end := strings.IndexAny(line, " \t")
			if end < 0 {
				end = len(line)
			}
			args = append(args, line[:end])
			line = line[end:]
			continue
		}

		prefix, err := strconv.QuotedPrefix(line)
		if err != nil {
			return nil, errors.InvalidArgument(errors.OpParse, line, "unterminated quoted argument")
		}
		arg, _ := strconv.Unquote(prefix)
		args = append(args, arg)
		line = line[len(prefix):]
	}
}
