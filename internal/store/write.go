package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/tabula/internal/ir"
)

// Transition is one journaled state transition.
type Transition struct {
	ID   string   `json:"id"`
	Hash string   `json:"hash"`
	Seq  int64    `json:"seq"`
	From ir.State `json:"from"`
	To   ir.State `json:"to"`
}

// Move is one journaled performed move.
type Move struct {
	ID     string    `json:"id"`
	Hash   string    `json:"hash"`
	Seq    int64     `json:"seq"`
	Name   string    `json:"name"`
	Params ir.Object `json:"params"`
}

// WriteTransition inserts a transition record. The record ID is a
// time-sortable UUIDv7; the content hash makes the write idempotent -
// re-journaling the same transition is silently ignored via
// ON CONFLICT(hash) DO NOTHING.
func (j *Journal) WriteTransition(ctx context.Context, seq int64, from, to ir.State) error {
	hash, err := ir.TransitionHash(seq, from, to)
	if err != nil {
		return fmt.Errorf("write transition: %w", err)
	}

	fromJSON, err := ir.MarshalCanonical(from)
	if err != nil {
		return fmt.Errorf("write transition: %w", err)
	}
	toJSON, err := ir.MarshalCanonical(to)
	if err != nil {
		return fmt.Errorf("write transition: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO transitions
		(id, hash, seq, from_state, to_state, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		uuid.Must(uuid.NewV7()).String(),
		hash,
		seq,
		string(fromJSON),
		string(toJSON),
		ir.EngineVersion,
		ir.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write transition: %w", err)
	}

	return nil
}

// WriteMove inserts a move record. Idempotent via the content hash, like
// WriteTransition.
func (j *Journal) WriteMove(ctx context.Context, seq int64, name string, params ir.Object) error {
	hash, err := ir.MoveHash(seq, name, params)
	if err != nil {
		return fmt.Errorf("write move: %w", err)
	}

	paramsJSON, err := ir.MarshalCanonical(params)
	if err != nil {
		return fmt.Errorf("write move: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO moves
		(id, hash, seq, name, params, engine_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`,
		uuid.Must(uuid.NewV7()).String(),
		hash,
		seq,
		name,
		string(paramsJSON),
		ir.EngineVersion,
		ir.IRVersion,
	)
	if err != nil {
		return fmt.Errorf("write move: %w", err)
	}

	return nil
}

// RecordTransition implements engine.Recorder.
func (j *Journal) RecordTransition(seq int64, from, to ir.State) error {
	return j.WriteTransition(context.Background(), seq, from, to)
}

// RecordMove implements engine.Recorder.
func (j *Journal) RecordMove(seq int64, name string, params ir.Object) error {
	return j.WriteMove(context.Background(), seq, name, params)
}
