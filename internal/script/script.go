// Package script reads and replays logs of tree operations.
//
// A script is UTF-8 text with one operation per line:
//
//	insert 17   # also "i 17" or "+ 17"
//	delete 17   # also "d 17", "- 17" or "remove 17"
//	clear
//
// Blank lines and everything after '#' are ignored.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrUnknownOp  = errors.New("unknown operation")
	ErrMissingKey = errors.New("missing key")
	ErrBadKey     = errors.New("key is not an integer")
	ErrExtraInput = errors.New("unexpected trailing input")
)

// Op is the kind of a script entry.
type Op byte

const (
	OpInsert Op = iota
	OpDelete
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return fmt.Sprintf("op(%d)", byte(o))
	}
}

// Entry is a single operation. Line is the 1-based source line, or 0 for
// entries built in code.
type Entry struct {
	Op   Op
	Key  int
	Line int
}

func (e Entry) String() string {
	if e.Op == OpClear {
		return e.Op.String()
	}
	return fmt.Sprintf("%s %d", e.Op, e.Key)
}

// Script is an ordered list of entries.
type Script struct {
	Name    string
	Entries []Entry
}

// Append adds entries to the end of the script.
func (s *Script) Append(entries ...Entry) {
	s.Entries = append(s.Entries, entries...)
}

// Len returns the number of entries.
func (s *Script) Len() int { return len(s.Entries) }

// Replay calls fn for each entry in order and stops at the first error.
func (s *Script) Replay(fn func(Entry) error) error {
	for _, e := range s.Entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo writes the script in its text form.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, e := range s.Entries {
		m, err := fmt.Fprintln(bw, e.String())
		n += int64(m)
		if err != nil {
			return n, errors.Wrap(err, "failed to write entry")
		}
	}
	if err := bw.Flush(); err != nil {
		return n, errors.Wrap(err, "failed to flush script")
	}
	return n, nil
}

// Parse reads a script from r.
func Parse(name string, r io.Reader) (*Script, error) {
	s := &Script{Name: name}
	scanner := bufio.NewScanner(r)

	for line := 1; scanner.Scan(); line++ {
		e, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, line)
		}
		if !ok {
			continue
		}
		e.Line = line
		s.Append(e)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return s, nil
}

func parseLine(text string) (Entry, bool, error) {
	if i := strings.IndexByte(text, '#'); i >= 0 {
		text = text[:i]
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Entry{}, false, nil
	}

	var e Entry
	switch strings.ToLower(fields[0]) {
	case "insert", "i", "+":
		e.Op = OpInsert
	case "delete", "d", "-", "remove":
		e.Op = OpDelete
	case "clear":
		if len(fields) > 1 {
			return Entry{}, false, errors.Wrapf(ErrExtraInput, "%q", strings.Join(fields[1:], " "))
		}
		return Entry{Op: OpClear}, true, nil
	default:
		return Entry{}, false, errors.Wrapf(ErrUnknownOp, "%q", fields[0])
	}

	switch {
	case len(fields) < 2:
		return Entry{}, false, errors.Wrapf(ErrMissingKey, "%s", e.Op)
	case len(fields) > 2:
		return Entry{}, false, errors.Wrapf(ErrExtraInput, "%q", strings.Join(fields[2:], " "))
	}

	key, err := strconv.Atoi(fields[1])
	if err != nil {
		return Entry{}, false, errors.Wrapf(ErrBadKey, "%q", fields[1])
	}
	e.Key = key
	return e, true, nil
}
