//////////////////////////////////////////////////////
// moveorder_test.go
//////////////////////////////////////////////////////

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/fen"
)

func TestMovePickerYieldsTTMoveFirst(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := engine.NewMoveTable()
	moves := engine.GenerateMoves(&pos, table)
	ttMove := moves[len(moves)-1] // pick something other than the natural generation order's first move

	picker := engine.NewMovePicker(&pos, moves, ttMove, engine.NoMove, engine.NoMove, 0)
	first := picker.Next()
	assert.Equal(t, ttMove, first)
}

func TestMovePickerYieldsEveryLegalMoveExactlyOnce(t *testing.T) {
	pos, err := fen.Parse("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	table := engine.NewMoveTable()
	moves := engine.GenerateMoves(&pos, table)

	picker := engine.NewMovePicker(&pos, moves, engine.NoMove, engine.NoMove, engine.NoMove, 0)
	seen := map[engine.Move]int{}
	for {
		m := picker.Next()
		if m == engine.NoMove {
			break
		}
		seen[m]++
	}

	assert.Len(t, seen, len(moves))
	for _, m := range moves {
		assert.Equal(t, 1, seen[m], "move %s must be emitted exactly once", m.UCI())
	}
}

func TestMovePickerKillersOutrankQuietMoves(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	table := engine.NewMoveTable()
	moves := engine.GenerateMoves(&pos, table)

	var killer engine.Move
	for _, m := range moves {
		if m.Code() != engine.CodeDoublePush {
			killer = m
			break
		}
	}
	require.NotEqual(t, engine.NoMove, killer)

	picker := engine.NewMovePicker(&pos, moves, engine.NoMove, killer, engine.NoMove, 0)
	assert.Equal(t, killer, picker.Next())
}
