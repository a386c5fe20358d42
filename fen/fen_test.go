//////////////////////////////////////////////////////
// fen_test.go
//////////////////////////////////////////////////////

package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/fen"
)

func TestParseStartPos(t *testing.T) {
	pos, err := fen.Parse(fen.StartPos)
	require.NoError(t, err)

	assert.True(t, pos.Turn)
	assert.Equal(t, 16, pos.Player.Count())
	assert.Equal(t, 16, pos.Enemy.Count())
	assert.Equal(t, engine.CastleWhiteShort|engine.CastleWhiteLong|engine.CastleBlackShort|engine.CastleBlackLong, pos.CastleFlags)
	assert.Equal(t, engine.Bitboard(0), pos.EnPassant)
}

func TestParseEnPassantConvertsCaptureSquareToPawnSquare(t *testing.T) {
	pos, err := fen.Parse("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	require.NoError(t, err)

	pawnSq, err := engine.SquareFromString("e5")
	require.NoError(t, err)
	assert.Equal(t, engine.BITS[pawnSq], pos.EnPassant, "FEN 'e6' names the capture square; the pawn sits on e5")
}

func TestStringRoundTrip(t *testing.T) {
	in := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	pos, err := fen.Parse(in)
	require.NoError(t, err)

	out := fen.String(&pos)

	back, err := fen.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, pos.Key, back.Key)
}

func TestParseRejectsTooFewFields(t *testing.T) {
	_, err := fen.Parse("8/8/8/8/8/8/8/8 w")
	assert.Error(t, err)
}

func TestParseRejectsBadPiecePlacement(t *testing.T) {
	_, err := fen.Parse("8/8/8/8/8/8/8 w KQkq - 0 1")
	assert.Error(t, err)
}
