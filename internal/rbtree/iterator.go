package rbtree

import (
	"iter"
)

// InOrder yields keys in ascending order. The tree must not be modified
// while the sequence is being consumed.
func (t *Tree[K]) InOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		stack := []*Node[K]{}
		current := t.root
		for current != t.nilNode || len(stack) > 0 {

			for current != t.nilNode {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key) {
				return
			}

			current = current.right
		}
	}
}

// Keys returns all keys in ascending order.
func (t *Tree[K]) Keys() []K {
	keys := make([]K, 0, t.size)
	for k := range t.InOrder() {
		keys = append(keys, k)
	}
	return keys
}
