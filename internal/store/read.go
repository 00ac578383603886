package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// ReadTransitions returns every journaled transition ordered by seq.
func (j *Journal) ReadTransitions(ctx context.Context) ([]Transition, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, hash, seq, from_state, to_state
		FROM transitions
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("read transitions: %w", err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var t Transition
		var fromJSON, toJSON string
		if err := rows.Scan(&t.ID, &t.Hash, &t.Seq, &fromJSON, &toJSON); err != nil {
			return nil, fmt.Errorf("read transitions: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(fromJSON), &t.From); err != nil {
			return nil, fmt.Errorf("read transitions: seq %d from_state: %w", t.Seq, err)
		}
		if err := json.Unmarshal([]byte(toJSON), &t.To); err != nil {
			return nil, fmt.Errorf("read transitions: seq %d to_state: %w", t.Seq, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read transitions: %w", err)
	}
	return out, nil
}

// ReadMoves returns every journaled move ordered by seq.
func (j *Journal) ReadMoves(ctx context.Context) ([]Move, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, hash, seq, name, params
		FROM moves
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("read moves: %w", err)
	}
	defer rows.Close()

	var out []Move
	for rows.Next() {
		var m Move
		var paramsJSON string
		if err := rows.Scan(&m.ID, &m.Hash, &m.Seq, &m.Name, &paramsJSON); err != nil {
			return nil, fmt.Errorf("read moves: scan: %w", err)
		}
		if err := json.Unmarshal([]byte(paramsJSON), &m.Params); err != nil {
			return nil, fmt.Errorf("read moves: seq %d params: %w", m.Seq, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read moves: %w", err)
	}
	return out, nil
}

// ReadMove returns one move by record ID.
func (j *Journal) ReadMove(ctx context.Context, id string) (Move, error) {
	var m Move
	var paramsJSON string
	err := j.db.QueryRowContext(ctx, `
		SELECT id, hash, seq, name, params
		FROM moves
		WHERE id = ?
	`, id).Scan(&m.ID, &m.Hash, &m.Seq, &m.Name, &paramsJSON)
	if err != nil {
		return Move{}, fmt.Errorf("read move %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &m.Params); err != nil {
		return Move{}, fmt.Errorf("read move %s: params: %w", id, err)
	}
	return m, nil
}
