package rbtree

import (
	"sync"
)

// Synced guards a Tree with a single reader/writer lock. Rotations rewrite
// several links in sequence, so readers must never overlap a writer.
type Synced[K any] struct {
	tree *Tree[K]
	mu   sync.RWMutex
}

// NewSynced wraps t. The caller must stop using t directly.
func NewSynced[K any](t *Tree[K]) *Synced[K] {
	return &Synced[K]{tree: t}
}

// Insert adds key under the write lock.
func (s *Synced[K]) Insert(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tree.Insert(key)
}

// Delete removes key under the write lock.
func (s *Synced[K]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tree.Delete(key)
}

// Clear drops every key under the write lock.
func (s *Synced[K]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tree.Clear()
}

func (s *Synced[K]) Contains(key K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Contains(key)
}

func (s *Synced[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Len()
}

func (s *Synced[K]) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.IsEmpty()
}

func (s *Synced[K]) Height() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Height()
}

// Keys returns a snapshot of the keys in ascending order.
func (s *Synced[K]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Keys()
}

func (s *Synced[K]) Verify() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tree.Verify()
}

// View runs fn with the read lock held. fn must not retain nodes or call
// back into s.
func (s *Synced[K]) View(fn func(t *Tree[K])) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn(s.tree)
}
