package script

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrUnknownScenario = errors.New("unknown scenario")

// scenarios are canned sequences: a red-uncle recolor, a straight-line
// rotation, a zig-zag double rotation, and a black-leaf delete that
// rotates at the parent of the hole.
var scenarios = [][]Entry{
	inserts(17, 9, 19, 75),
	inserts(17, 9, 19, 75, 81),
	inserts(17, 9, 19, 75, 25),
	append(inserts(17, 9, 19, 75, 25, 81, 83, 85), Entry{Op: OpDelete, Key: 75}),
}

func inserts(keys ...int) []Entry {
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Op: OpInsert, Key: k}
	}
	return entries
}

// Scenarios returns the number of canned scenarios.
func Scenarios() int { return len(scenarios) }

// Scenario returns canned scenario n, counting from 0.
func Scenario(n int) (*Script, error) {
	if n < 0 || n >= len(scenarios) {
		return nil, errors.Wrapf(ErrUnknownScenario, "%d (have 0-%d)", n, len(scenarios)-1)
	}

	s := &Script{Name: fmt.Sprintf("scenario-%d", n)}
	s.Append(scenarios[n]...)
	return s, nil
}
