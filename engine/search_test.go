//////////////////////////////////////////////////////
// search_test.go
// end-to-end search scenarios: quiet search, mate-in-one, stalemate,
// en-passant discovered-check rejection, Zobrist determinism
//////////////////////////////////////////////////////

package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/fen"
)

func newState(t *testing.T) *engine.SearchState {
	t.Helper()
	return engine.NewSearchState(1 << 16)
}

func TestQuietSearchReturnsLegalMove(t *testing.T) {
	pos, err := fen.Parse("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)

	state := newState(t)
	tc := engine.NewTimeControl(500 * time.Millisecond)
	result := engine.Search(context.Background(), state, &pos, tc, 6, nil)

	require.NotEqual(t, engine.NoMove, result.BestMove)
	legal := engine.GenerateMoves(&pos, engine.NewMoveTable())
	assert.Contains(t, legal, result.BestMove)
}

func TestMateInOne(t *testing.T) {
	pos, err := fen.Parse("6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1")
	require.NoError(t, err)

	state := newState(t)
	tc := engine.NewTimeControl(2 * time.Second)
	result := engine.Search(context.Background(), state, &pos, tc, 4, nil)

	require.Equal(t, "e1e8", result.BestMove.UCI())
}

func TestStalemateHasNoMovesAndDrawScore(t *testing.T) {
	pos, err := fen.Parse("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	table := engine.NewMoveTable()
	moves := engine.GenerateMoves(&pos, table)
	assert.Empty(t, moves, "stalemate position must have zero legal moves")
	assert.False(t, pos.InCheck(), "a stalemated king is not in check, distinguishing Draw from Loss in pvs's leaf handling")
}

func TestEnPassantDiscoveredCheckRejected(t *testing.T) {
	pos, err := fen.Parse("8/8/8/KPp4r/8/8/8/6k1 w - c6 0 1")
	require.NoError(t, err)

	table := engine.NewMoveTable()
	moves := engine.GenerateMoves(&pos, table)
	for _, m := range moves {
		assert.NotEqual(t, "b5c6", m.UCI(), "en-passant capture must be rejected: it exposes the king to the h5 rook")
	}
}

func TestZobristDeterminismAcrossMakeMovePaths(t *testing.T) {
	start, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	// Path A: e2e4, then e7e5.
	table := engine.NewMoveTable()
	a := start
	a.MovePtr = 0
	m1 := findMove(t, &a, table, "e2e4")
	a = engine.MakeMove(&a, m1)
	m2 := findMove(t, &a, table, "e7e5")
	a = engine.MakeMove(&a, m2)

	// Path B: reach the same position via the FEN it corresponds to.
	b, err := fen.Parse("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)

	assert.Equal(t, b.Key, a.Key)
}

func findMove(t *testing.T, pos *engine.Position, table *engine.MoveTable, uci string) engine.Move {
	t.Helper()
	for _, m := range engine.GenerateMoves(pos, table) {
		if m.UCI() == uci {
			return m
		}
	}
	t.Fatalf("move %s not found among legal moves", uci)
	return engine.NoMove
}
