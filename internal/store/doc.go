// Package store provides the durable game journal: an append-only SQLite
// log of state transitions and performed moves.
//
// The journal is an external collaborator of the engine, wired in through
// the engine.Recorder interface; the core stays storage-free. Records are
// stamped with the engine clock's seq (never wall-clock time) and carry
// content-addressed hashes, so writes are idempotent and a read-back is
// totally ordered and deterministic.
//
// SQLite is configured with WAL mode for concurrent read access while the
// single game loop writes.
package store
