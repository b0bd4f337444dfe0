// Package rbtree implements a Red-Black Tree data structure
// with insertion, deletion and search operations.
//
// Red-Black Tree is a self-balancing binary search tree that guarantees
// O(log n) time complexity for basic operations. Every leaf and the
// parent of the root point at a single black sentinel owned by the tree,
// so rotations and fixups never branch on nil.
//
// A Tree is not safe for concurrent use; wrap it in Synced when several
// goroutines share it.
package rbtree

import (
	"golang.org/x/exp/constraints"
)

// Color of a node.
type Color bool

const (
	Red   Color = true
	Black Color = false
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Node is a single element of the tree. Structural accessors return nil
// where the tree stores its sentinel.
type Node[K any] struct {
	key                 K
	color               Color
	left, right, parent *Node[K]
	sentinel            bool
}

// Key returns the key stored in the node.
func (n *Node[K]) Key() K { return n.key }

// Color returns the node color.
func (n *Node[K]) Color() Color { return n.color }

// Left returns the left child or nil.
func (n *Node[K]) Left() *Node[K] { return visible(n.left) }

// Right returns the right child or nil.
func (n *Node[K]) Right() *Node[K] { return visible(n.right) }

// Parent returns the parent or nil for the root.
func (n *Node[K]) Parent() *Node[K] { return visible(n.parent) }

func visible[K any](n *Node[K]) *Node[K] {
	if n == nil || n.sentinel {
		return nil
	}
	return n
}

// Tree represents a Red-Black Tree instance.
// Use New() or NewFunc() to create a new tree instance.
type Tree[K any] struct {
	root    *Node[K]
	nilNode *Node[K] // Sentinel node
	cmp     func(a, b K) int
	size    int
}

// New creates and returns a new empty tree ordered by the natural
// ordering of K.
func New[K constraints.Ordered]() *Tree[K] {
	return NewFunc(compareOrdered[K])
}

// NewFunc creates and returns a new empty tree ordered by cmp, which must
// return a negative number when a < b, zero when a == b and a positive
// number when a > b. cmp must describe a total order.
func NewFunc[K any](cmp func(a, b K) int) *Tree[K] {
	nilNode := &Node[K]{color: Black, sentinel: true}
	return &Tree[K]{
		root:    nilNode,
		nilNode: nilNode,
		cmp:     cmp,
	}
}

func compareOrdered[K constraints.Ordered](a, b K) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Len returns the number of keys in the tree.
func (t *Tree[K]) Len() int { return t.size }

// IsEmpty reports whether the tree holds no keys.
func (t *Tree[K]) IsEmpty() bool { return t.root == t.nilNode }

// Root returns the root node, or nil for an empty tree.
func (t *Tree[K]) Root() *Node[K] { return visible(t.root) }

// Clear drops every node.
func (t *Tree[K]) Clear() {
	t.nilNode.parent = nil
	t.root = t.nilNode
	t.size = 0
}

// Insert adds key to the tree while maintaining Red-Black Tree
// properties. It returns false, leaving the tree untouched, when the key
// is already present.
func (t *Tree[K]) Insert(key K) bool {
	parent := t.nilNode
	current := t.root
	c := 0

	for current != t.nilNode {
		parent = current
		c = t.cmp(key, current.key)
		switch {
		case c < 0:
			current = current.left
		case c > 0:
			current = current.right
		default:
			return false
		}
	}

	newNode := &Node[K]{
		key:    key,
		color:  Red,
		left:   t.nilNode,
		right:  t.nilNode,
		parent: parent,
	}

	if parent == t.nilNode {
		t.root = newNode
	} else if c < 0 {
		parent.left = newNode
	} else {
		parent.right = newNode
	}

	t.fixInsert(newNode)
	t.size++
	return true
}

func (t *Tree[K]) fixInsert(z *Node[K]) {
	for z.parent.color == Red {
		if z.parent == z.parent.parent.left {
			uncle := z.parent.parent.right
			if uncle.color == Red {
				z.parent.color = Black
				uncle.color = Black
				z.parent.parent.color = Red
				z = z.parent.parent
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.leftRotate(z)
			}
			z.parent.color = Black
			z.parent.parent.color = Red
			t.rightRotate(z.parent.parent)
		} else {
			uncle := z.parent.parent.left
			if uncle.color == Red {
				z.parent.color = Black
				uncle.color = Black
				z.parent.parent.color = Red
				z = z.parent.parent
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rightRotate(z)
			}
			z.parent.color = Black
			z.parent.parent.color = Red
			t.leftRotate(z.parent.parent)
		}
	}
	t.root.color = Black
}

func (t *Tree[K]) leftRotate(x *Node[K]) {
	/*
		Left rotation around node x:
			    Before:               After:
		          P                    P
		          |                    |
		          x                    y
		         / \                  / \
		        A   y       →        x   C
		           / \              / \
		          B   C            A   B
	*/
	y := x.right
	x.right = y.left
	if y.left != t.nilNode {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == t.nilNode {
		t.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (t *Tree[K]) rightRotate(y *Node[K]) {
	/*
		Right rotation around node y:
		    Before:               After:
		       P                    P
		       |                    |
		       y                    x
		      / \                  / \
		     x   C       →        A   y
		    / \                      / \
		   A   B                    B   C
	*/
	x := y.left
	y.left = x.right
	if x.right != t.nilNode {
		x.right.parent = y
	}
	x.parent = y.parent
	if y.parent == t.nilNode {
		t.root = x
	} else if y == y.parent.right {
		y.parent.right = x
	} else {
		y.parent.left = x
	}
	x.right = y
	y.parent = x
}

// Delete removes key from the tree while maintaining Red-Black Tree
// properties. It returns false when the key is not present.
func (t *Tree[K]) Delete(key K) bool {
	z := t.findNode(key)
	if z == t.nilNode {
		return false
	}

	var x *Node[K]
	y := z
	yOriginalColor := y.color

	if z.left == t.nilNode {
		x = z.right
		t.transplant(z, z.right)
	} else if z.right == t.nilNode {
		x = z.left
		t.transplant(z, z.left)
	} else {
		y = t.minimum(z.right)
		yOriginalColor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if yOriginalColor == Black {
		t.fixDelete(x)
	}

	z.left, z.right, z.parent = nil, nil, nil
	t.size--
	return true
}

// transplant puts v in the slot u occupies under its parent. v may be
// the sentinel, whose parent link is then valid until the next fixup ends.
func (t *Tree[K]) transplant(u, v *Node[K]) {
	if u.parent == t.nilNode {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

func (t *Tree[K]) minimum(x *Node[K]) *Node[K] {
	for x.left != t.nilNode {
		x = x.left
	}
	return x
}

func (t *Tree[K]) maximum(x *Node[K]) *Node[K] {
	for x.right != t.nilNode {
		x = x.right
	}
	return x
}

func (t *Tree[K]) fixDelete(x *Node[K]) {
	for x != t.root && x.color == Black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color == Red {
				w.color = Black
				x.parent.color = Red
				t.leftRotate(x.parent)
				w = x.parent.right
			}
			if w.left.color == Black && w.right.color == Black {
				w.color = Red
				x = x.parent
			} else {
				if w.right.color == Black {
					w.left.color = Black
					w.color = Red
					t.rightRotate(w)
					w = x.parent.right
				}
				w.color = x.parent.color
				x.parent.color = Black
				w.right.color = Black
				t.leftRotate(x.parent)
				x = t.root
			}
		} else {
			w := x.parent.left
			if w.color == Red {
				w.color = Black
				x.parent.color = Red
				t.rightRotate(x.parent)
				w = x.parent.left
			}
			if w.right.color == Black && w.left.color == Black {
				w.color = Red
				x = x.parent
			} else {
				if w.left.color == Black {
					w.right.color = Black
					w.color = Red
					t.leftRotate(w)
					w = x.parent.left
				}
				w.color = x.parent.color
				x.parent.color = Black
				w.left.color = Black
				t.rightRotate(x.parent)
				x = t.root
			}
		}
	}
	x.color = Black
}

// Find returns the node holding key.
func (t *Tree[K]) Find(key K) (*Node[K], bool) {
	node := t.findNode(key)
	if node == t.nilNode {
		return nil, false
	}
	return node, true
}

func (t *Tree[K]) findNode(key K) *Node[K] {
	current := t.root
	for current != t.nilNode {
		c := t.cmp(key, current.key)
		if c == 0 {
			return current
		} else if c < 0 {
			current = current.left
		} else {
			current = current.right
		}
	}
	return t.nilNode
}

// Contains checks if a key is present in the tree.
func (t *Tree[K]) Contains(key K) bool {
	return t.findNode(key) != t.nilNode
}

// Min returns the smallest key.
func (t *Tree[K]) Min() (K, bool) {
	var zero K
	if t.IsEmpty() {
		return zero, false
	}
	return t.minimum(t.root).key, true
}

// Max returns the largest key.
func (t *Tree[K]) Max() (K, bool) {
	var zero K
	if t.IsEmpty() {
		return zero, false
	}
	return t.maximum(t.root).key, true
}

// Height returns the number of nodes on the longest path from the root
// down to a sentinel. The empty tree has height 0.
func (t *Tree[K]) Height() int {
	height := 0
	stack := []frame[K]{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node == t.nilNode {
			height = max(height, f.depth)
			continue
		}
		stack = append(stack, frame[K]{f.node.left, f.depth + 1}, frame[K]{f.node.right, f.depth + 1})
	}
	return height
}

type frame[K any] struct {
	node  *Node[K]
	depth int
}

// BlackHeight returns the number of black nodes on the path from the root
// down to a sentinel, excluding the sentinel.
func (t *Tree[K]) BlackHeight() int {
	n := 0
	for x := t.root; x != t.nilNode; x = x.left {
		if x.color == Black {
			n++
		}
	}
	return n
}
