//////////////////////////////////////////////////////
// perft_test.go
// legal-move-generator verification against well-known perft node counts
// (startpos, Kiwipete, and friends), at depths shallow enough to run as
// a unit test
//////////////////////////////////////////////////////

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/fen"
)

func TestPerftStartPosition(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := engine.NewMoveTable()
	want := []int64{1, 20, 400, 8902, 197281}
	for depth, n := range want {
		require.Equal(t, n, engine.Perft(&pos, depth, table), "depth %d", depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	pos, err := fen.Parse("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	table := engine.NewMoveTable()
	want := []int64{1, 48, 2039, 97862}
	for depth, n := range want {
		require.Equal(t, n, engine.Perft(&pos, depth, table), "depth %d", depth)
	}
}

func TestPerftRookEndgame(t *testing.T) {
	pos, err := fen.Parse("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)

	table := engine.NewMoveTable()
	want := []int64{1, 14, 191, 2812}
	for depth, n := range want {
		require.Equal(t, n, engine.Perft(&pos, depth, table), "depth %d", depth)
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := engine.NewMoveTable()
	entries, total := engine.PerftDivide(&pos, 3, table)
	require.Equal(t, int64(8902), total)

	var sum int64
	for _, e := range entries {
		sum += e.Nodes
	}
	require.Equal(t, total, sum)
	require.Len(t, entries, 20)
}
