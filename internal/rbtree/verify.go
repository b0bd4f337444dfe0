package rbtree

import (
	"github.com/pkg/errors"
)

// ErrInvariant is the cause of every error returned by Verify.
var ErrInvariant = errors.New("red-black invariant violated")

// Verify validates Red-Black Tree invariants:
//  1. The sentinel is black
//  2. The root is black
//  3. Red nodes have black children
//  4. All paths from a node to its leaves hold the same number of black nodes
//  5. Keys are strictly ordered left to right
//
// Parent links and the node count are checked as well. The first
// violation found is returned; nil means the tree is valid.
func (t *Tree[K]) Verify() error {
	if t.nilNode.color != Black {
		return errors.Wrap(ErrInvariant, "sentinel is red")
	}
	if t.root.color != Black {
		return errors.Wrapf(ErrInvariant, "root %v is red", t.root.key)
	}
	if t.root != t.nilNode && t.root.parent != t.nilNode {
		return errors.Wrapf(ErrInvariant, "root %v has a parent", t.root.key)
	}

	count := 0
	if _, err := t.checkSubtree(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return errors.Wrapf(ErrInvariant, "counted %d nodes, tree reports %d", count, t.size)
	}
	return nil
}

// checkSubtree returns the black height of node, counting the sentinel as 1.
func (t *Tree[K]) checkSubtree(node *Node[K], lo, hi *K, count *int) (int, error) {
	if node == t.nilNode {
		return 1, nil
	}
	*count++

	if lo != nil && t.cmp(node.key, *lo) <= 0 {
		return 0, errors.Wrapf(ErrInvariant, "key %v is not greater than ancestor %v", node.key, *lo)
	}
	if hi != nil && t.cmp(node.key, *hi) >= 0 {
		return 0, errors.Wrapf(ErrInvariant, "key %v is not less than ancestor %v", node.key, *hi)
	}

	if node.color == Red && (node.left.color == Red || node.right.color == Red) {
		return 0, errors.Wrapf(ErrInvariant, "red node %v has a red child", node.key)
	}

	for _, child := range []*Node[K]{node.left, node.right} {
		if child != t.nilNode && child.parent != node {
			return 0, errors.Wrapf(ErrInvariant, "child %v of %v has a stale parent link", child.key, node.key)
		}
	}

	leftCount, err := t.checkSubtree(node.left, lo, &node.key, count)
	if err != nil {
		return 0, err
	}
	rightCount, err := t.checkSubtree(node.right, &node.key, hi, count)
	if err != nil {
		return 0, err
	}

	if leftCount != rightCount {
		return 0, errors.Wrapf(ErrInvariant, "node %v has black heights %d and %d", node.key, leftCount, rightCount)
	}

	if node.color == Black {
		leftCount++
	}
	return leftCount, nil
}
