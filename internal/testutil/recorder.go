package testutil

import (
	"sync"

	"github.com/roach88/tabula/internal/ir"
)

// RecordedTransition is one captured state transition.
type RecordedTransition struct {
	Seq  int64
	From ir.State
	To   ir.State
}

// RecordedMove is one captured move resolution.
type RecordedMove struct {
	Seq    int64
	Name   string
	Params ir.Object
}

// MemoryRecorder captures transitions and moves in memory. It implements
// engine.Recorder and stands in for the SQLite journal in tests.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type MemoryRecorder struct {
	mu          sync.Mutex
	transitions []RecordedTransition
	moves       []RecordedMove

	// Err, when non-nil, is returned from every Record call. Used to
	// verify that recorder failures do not abort resolution.
	Err error
}

// NewMemoryRecorder creates an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// RecordTransition captures a state transition.
func (r *MemoryRecorder) RecordTransition(seq int64, from, to ir.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.transitions = append(r.transitions, RecordedTransition{Seq: seq, From: from.Clone(), To: to.Clone()})
	return nil
}

// RecordMove captures a resolved move.
func (r *MemoryRecorder) RecordMove(seq int64, name string, params ir.Object) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.moves = append(r.moves, RecordedMove{Seq: seq, Name: name, Params: params.Clone()})
	return nil
}

// Transitions returns a copy of the captured transitions in record order.
func (r *MemoryRecorder) Transitions() []RecordedTransition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedTransition, len(r.transitions))
	copy(out, r.transitions)
	return out
}

// Moves returns a copy of the captured moves in record order.
func (r *MemoryRecorder) Moves() []RecordedMove {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedMove, len(r.moves))
	copy(out, r.moves)
	return out
}
