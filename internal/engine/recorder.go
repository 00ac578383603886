package engine

import "github.com/roach88/tabula/internal/ir"

// Recorder receives the engine's authoritative history: one call per state
// transition and per performed move, stamped with the engine clock's seq.
//
// Implemented by store.Journal (production) and test fakes. The engine
// never blocks on a recorder and never retries: a recorder error is logged
// and play continues, because retrying would make replay non-deterministic.
type Recorder interface {
	// RecordTransition is called after the state has been replaced.
	RecordTransition(seq int64, from, to ir.State) error

	// RecordMove is called after a submitted move has been resolved.
	RecordMove(seq int64, name string, params ir.Object) error
}

// nopRecorder is the default when no journal is wired.
type nopRecorder struct{}

func (nopRecorder) RecordTransition(int64, ir.State, ir.State) error { return nil }
func (nopRecorder) RecordMove(int64, string, ir.Object) error       { return nil }
