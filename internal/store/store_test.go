package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tabula/internal/ir"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	var version int
	require.NoError(t, j2.DB().QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestWriteAndReadTransitions(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	initial := ir.State{"name": ir.String("!initial")}
	turn := ir.State{"name": ir.String("turn"), "player": ir.String("x")}

	require.NoError(t, j.WriteTransition(ctx, 1, ir.State{}, initial))
	require.NoError(t, j.WriteTransition(ctx, 2, initial, turn))

	got, err := j.ReadTransitions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(1), got[0].Seq)
	assert.True(t, ir.Equal(initial, got[0].To))
	assert.Equal(t, int64(2), got[1].Seq)
	assert.True(t, ir.Equal(initial, got[1].From))
	assert.True(t, ir.Equal(turn, got[1].To))

	assert.Equal(t, ir.MustTransitionHash(1, ir.State{}, initial), got[0].Hash)
	assert.NotEmpty(t, got[0].ID)
}

func TestWriteTransitionIdempotent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	from := ir.State{"name": ir.String("a")}
	to := ir.State{"name": ir.String("b")}

	require.NoError(t, j.WriteTransition(ctx, 1, from, to))
	require.NoError(t, j.WriteTransition(ctx, 1, from, to))

	got, err := j.ReadTransitions(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "identical content must journal once")
}

func TestWriteAndReadMoves(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	params := ir.Object{"cell": ir.Coords([]int{1, 2})}
	require.NoError(t, j.WriteMove(ctx, 3, "place", params))

	got, err := j.ReadMoves(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(3), got[0].Seq)
	assert.Equal(t, "place", got[0].Name)
	assert.True(t, ir.Equal(params, got[0].Params))
	assert.Equal(t, ir.MustMoveHash(3, "place", params), got[0].Hash)

	byID, err := j.ReadMove(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, got[0], byID)
}

func TestWriteMoveIdempotent(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.WriteMove(ctx, 1, "pass", ir.Object{}))
	require.NoError(t, j.WriteMove(ctx, 1, "pass", ir.Object{}))

	got, err := j.ReadMoves(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestReadMoveUnknownID(t *testing.T) {
	j := openTestJournal(t)
	_, err := j.ReadMove(context.Background(), "no-such-id")
	require.Error(t, err)
}

func TestLastSeq(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	seq, err := j.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq, "empty journal reports 0")

	require.NoError(t, j.WriteTransition(ctx, 1, ir.State{}, ir.State{"name": ir.String("a")}))
	require.NoError(t, j.WriteMove(ctx, 2, "pass", ir.Object{}))
	require.NoError(t, j.WriteTransition(ctx, 3, ir.State{"name": ir.String("a")}, ir.State{"name": ir.String("b")}))

	seq, err = j.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
}

func TestRecorderAdapters(t *testing.T) {
	j := openTestJournal(t)

	require.NoError(t, j.RecordTransition(1, ir.State{}, ir.State{"name": ir.String("a")}))
	require.NoError(t, j.RecordMove(2, "pass", ir.Object{}))

	transitions, err := j.ReadTransitions(context.Background())
	require.NoError(t, err)
	assert.Len(t, transitions, 1)

	moves, err := j.ReadMoves(context.Background())
	require.NoError(t, err)
	assert.Len(t, moves, 1)
}
