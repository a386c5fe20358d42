//////////////////////////////////////////////////////
// eval.go
// static evaluation: incremental material balance plus sliding-piece
// mobility, from the side-to-move's perspective
// zurichess sources: material.go, search.go Eval accounting
//////////////////////////////////////////////////////

package engine

// Eval returns pos's static score from the side to move's perspective:
// the incrementally-maintained material balance plus a mobility term.
// Mobility counts bishop/rook/queen attacked squares over the full board
// occupancy (no legality filtering), player's total minus enemy's.
func Eval(pos *Position) int16 {
	return pos.MaterialBalance + mobilityDelta(pos)
}

func mobilityDelta(pos *Position) int16 {
	return int16(sideMobility(pos, true) - sideMobility(pos, false))
}

func sideMobility(pos *Position, forPlayer bool) int {
	own := pos.Enemy
	if forPlayer {
		own = pos.Player
	}
	mobility := 0

	bishops := pos.Bishops & own
	for bishops != 0 {
		sq := bishops.Pop()
		mobility += BishopAttacks(pos.All, sq).Count()
	}
	rooks := pos.Rooks & own
	for rooks != 0 {
		sq := rooks.Pop()
		mobility += RookAttacks(pos.All, sq).Count()
	}
	queens := pos.Queens & own
	for queens != 0 {
		sq := queens.Pop()
		mobility += BishopAttacks(pos.All, sq).Count() + RookAttacks(pos.All, sq).Count()
	}
	return mobility
}

// materialFromScratch recomputes the material balance from the piece
// sets, from the side-to-move's perspective. Used by invariant checks and
// by position construction.
func materialFromScratch(pos *Position) int16 {
	var player, enemy int16
	for tier := TierPawn; tier <= TierQueen; tier++ {
		set := pos.pieceSetFor(tier)
		player += int16((set & pos.Player).Count()) * PieceValue[tier]
		enemy += int16((set & pos.Enemy).Count()) * PieceValue[tier]
	}
	return player - enemy
}

// pieceSetFor returns the shared bitboard for a tier, across both colors.
func (pos *Position) pieceSetFor(tier Tier) Bitboard {
	switch tier {
	case TierPawn:
		return pos.Pawns
	case TierKnight:
		return pos.Knights
	case TierBishop:
		return pos.Bishops
	case TierRook:
		return pos.Rooks
	case TierQueen:
		return pos.Queens
	default:
		return pos.Kings
	}
}
