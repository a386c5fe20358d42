//////////////////////////////////////////////////////
// zobrist.go
// deterministic 64-bit position fingerprint; random constants generated
// once from a fixed seed so builds are internally consistent
// zurichess sources: attack.go (rand.Seed(5) magic-search pattern), zobrist.go
//////////////////////////////////////////////////////

package engine

import "math/rand"

// zobristSeed fixes the random constants at build time: every run of this
// binary hashes the same way, which is all two independent make-move paths
// reaching the same position need to agree on a key.
const zobristSeed = 5

var (
	zobristPiece   [numTiers][2][64]uint64
	zobristTurn    uint64
	zobristCastle  [16]uint64
	zobristEnPass  [8]uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for tier := 0; tier < numTiers; tier++ {
		for side := 0; side < 2; side++ {
			for sq := 0; sq < 64; sq++ {
				zobristPiece[tier][side][sq] = r.Uint64()
			}
		}
	}
	zobristTurn = r.Uint64()
	for i := range zobristCastle {
		zobristCastle[i] = r.Uint64()
	}
	for f := range zobristEnPass {
		zobristEnPass[f] = r.Uint64()
	}
}

// zobristPieceKey returns the hash contribution of a single piece of the
// given tier and color sitting on sq. side follows the LUT_PAWN_CAPTURES
// convention: 0 black, 1 white.
func zobristPieceKey(tier Tier, white bool, sq Square) uint64 {
	return zobristPiece[tier][sideIndex(white)][sq]
}

// zobristFromScratch recomputes pos's Zobrist key from its piece sets and
// PositionState, ignoring the incrementally-maintained Key field. Used by
// invariant checks and by position construction (FEN, startpos).
func zobristFromScratch(pos *Position) uint64 {
	var key uint64
	for sq := 0; sq < 64; sq++ {
		tier, ok := pos.tierAt(Square(sq))
		if !ok {
			continue
		}
		white := pos.Player.Has(Square(sq)) == pos.Turn
		key ^= zobristPieceKey(tier, white, Square(sq))
	}
	if pos.Turn {
		key ^= zobristTurn
	}
	key ^= zobristCastle[pos.CastleFlags]
	if pos.EnPassant != 0 {
		key ^= zobristEnPass[fileOf(pos.EnPassant.LSB())]
	}
	return key
}
