package internal

import (
	"cmp"
	"slices"
)

// Set holds unique values, such as field signatures or visited schema ids.
type Set[T comparable] struct {
	items map[T]struct{}
}

func NewSet[T comparable]() *Set[T] {
	return &Set[T]{items: make(map[T]struct{})}
}

func (s *Set[T]) Add(item T) {
	s.items[item] = struct{}{}
}

func (s *Set[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

func (s *Set[T]) Size() int {
	return len(s.items)
}

// ToSlice returns the items in map iteration order.
func (s *Set[T]) ToSlice() []T {
	out := make([]T, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	return out
}

// SortedSlice returns the items of s in ascending order, never nil.
func SortedSlice[T cmp.Ordered](s *Set[T]) []T {
	out := s.ToSlice()
	slices.Sort(out)
	return out
}

// MapKeys returns the keys of m in map iteration order, never nil.
func MapKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}
