// Package render draws a red-black tree as text, sideways: the right
// subtree above its parent and the left subtree below.
//
//	    ┌── 19[B]
//	17[B]
//	    └── 9[R]
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/AlonMell/redblack/internal/rbtree"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// Options control how nodes are labelled.
type Options struct {
	// ANSI wraps red nodes in red and black nodes in bold.
	ANSI bool
}

// String renders the subtree at root. A nil root renders as "(empty)".
func String[K any](root *rbtree.Node[K], opts Options) string {
	if root == nil {
		return "(empty)\n"
	}

	var sb strings.Builder
	r := renderer[K]{sb: &sb, opts: opts}
	r.node(root, "", false, false)
	return sb.String()
}

// Write renders the subtree at root to w.
func Write[K any](w io.Writer, root *rbtree.Node[K], opts Options) error {
	if _, err := io.WriteString(w, String(root, opts)); err != nil {
		return errors.Wrap(err, "failed to write tree")
	}
	return nil
}

type renderer[K any] struct {
	sb   *strings.Builder
	opts Options
}

func (r renderer[K]) node(n *rbtree.Node[K], prefix string, isLeft, hasParent bool) {
	if right := n.Right(); right != nil {
		r.node(right, prefix+r.gap(hasParent && isLeft), false, true)
	}

	r.sb.WriteString(prefix)
	if hasParent {
		if isLeft {
			r.sb.WriteString("└── ")
		} else {
			r.sb.WriteString("┌── ")
		}
	}
	r.sb.WriteString(r.label(n))
	r.sb.WriteByte('\n')

	if left := n.Left(); left != nil {
		r.node(left, prefix+r.gap(hasParent && !isLeft), true, true)
	}
}

func (r renderer[K]) gap(bar bool) string {
	if bar {
		return "│   "
	}
	return "    "
}

func (r renderer[K]) label(n *rbtree.Node[K]) string {
	tag := "B"
	if n.Color() == rbtree.Red {
		tag = "R"
	}
	s := fmt.Sprintf("%v[%s]", n.Key(), tag)

	if !r.opts.ANSI {
		return s
	}
	if n.Color() == rbtree.Red {
		return ansiRed + s + ansiReset
	}
	return ansiBold + s + ansiReset
}
