// Package sparse implements a counting sparse set over a bounded integer domain.
//
// A Set maps ids in [0, Cap()) to accumulated counts and remembers the order
// in which ids were first added since the last Clear. Clear is O(1): it only
// resets the member count. Slots of the sparse index are never re-zeroed; a
// slot is trusted only if it points below the member count and the dense
// entry it points to holds the same id.
//
//	sparse[]                        dense[]/counts[]
//	+---+---+---+---+---+---+       +---+---+---+---+
//	| ? | 2 | 0 | ? | ? | 1 |       | 2 | 5 | 1 | ? |
//	+---+---+---+---+---+---+       +---+---+---+---+
//	  0   1   2   3   4   5           0   1   2
//	                                            ^ n=3
package sparse

import (
	"fmt"
	"iter"
)

// Set is a counting set of uint32 ids with 64-bit counts. The zero value has capacity 0.
type Set struct {
	sparse []uint32 // id -> position in dense, valid only if < n
	dense  []uint32 // member ids in first-add order
	counts []uint64 // counts[i] belongs to dense[i]
	n      uint32
}

// New creates a set for ids in [0, capacity).
func New(capacity int) *Set {
	if capacity < 0 {
		panic(fmt.Sprintf("sparse: negative capacity %d", capacity))
	}
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, capacity),
		counts: make([]uint64, capacity),
	}
}

// Cap returns the size of the id domain.
func (s *Set) Cap() int { return len(s.sparse) }

// Len returns the number of distinct members.
func (s *Set) Len() int { return int(s.n) }

// Clear removes all members in O(1).
func (s *Set) Clear() { s.n = 0 }

func (s *Set) position(id uint32) (uint32, bool) {
	if int(id) >= len(s.sparse) {
		return 0, false
	}
	i := s.sparse[id]
	return i, i < s.n && s.dense[i] == id
}

// Contains reports whether id has been added since the last Clear.
func (s *Set) Contains(id uint32) bool {
	_, ok := s.position(id)
	return ok
}

// Count returns the accumulated count of id, or 0 if id is not a member.
func (s *Set) Count(id uint32) uint64 {
	if i, ok := s.position(id); ok {
		return s.counts[i]
	}
	return 0
}

// Add adds delta to the count of id. The first Add of an id after a Clear
// appends it to the members.
//
// Add panics if id is outside [0, Cap()); the set is left unchanged.
func (s *Set) Add(id uint32, delta uint64) {
	if int(id) >= len(s.sparse) {
		panic(fmt.Sprintf("sparse: id %d out of range [0,%d)", id, len(s.sparse)))
	}
	if i, ok := s.position(id); ok {
		s.counts[i] += delta
		return
	}
	s.sparse[id] = s.n
	s.dense[s.n] = id
	s.counts[s.n] = delta
	s.n++
}

// At returns the i-th member in first-add order together with its count.
func (s *Set) At(i int) (id uint32, count uint64) {
	if i < 0 || i >= int(s.n) {
		panic(fmt.Sprintf("sparse: member index %d out of range [0,%d)", i, s.n))
	}
	return s.dense[i], s.counts[i]
}

// All iterates over (id, count) pairs in first-add order.
// The set must not be modified during iteration.
func (s *Set) All() iter.Seq2[uint32, uint64] {
	return func(yield func(uint32, uint64) bool) {
		for i := uint32(0); i < s.n; i++ {
			if !yield(s.dense[i], s.counts[i]) {
				return
			}
		}
	}
}
