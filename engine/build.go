//////////////////////////////////////////////////////
// build.go
// position construction helpers used by the fen package: placing pieces
// one at a time and finalizing the derived occupancy/key/material fields
// zurichess sources: position.go Put/Remove, ParsePiecePlacement
//////////////////////////////////////////////////////

package engine

// PlacePiece sets a piece of the given tier and color on sq. Used while
// parsing piece placement; callers must call FinalizePosition once
// placement, side-to-move, castling and en-passant are all set.
func PlacePiece(pos *Position, sq Square, tier Tier, white bool) {
	*pos.bitboardFor(tier) |= BITS[sq]
	if white == pos.startingTurnIsWhite() {
		pos.Player |= BITS[sq]
	} else {
		pos.Enemy |= BITS[sq]
	}
}

// startingTurnIsWhite reports whether pos.Turn denotes white to move.
// PlacePiece sorts pieces into Player or Enemy by it, so pos.Turn must be
// set before any piece is placed; fen.Parse parses the side-to-move field
// first for this reason.
func (pos *Position) startingTurnIsWhite() bool { return pos.Turn }

// FinalizePosition derives All from Player|Enemy and computes the Zobrist
// key and material balance from scratch, once every FEN field has been
// applied to pos. MovePtr/MoveCnt are left at their zero values, ready for
// the first GenerateMoves call.
func FinalizePosition(pos *Position) {
	pos.All = pos.Player | pos.Enemy
	pos.Key = zobristFromScratch(pos)
	pos.MaterialBalance = materialFromScratch(pos)
	pos.LastMove = NoMove
	assert(pos.checkInvariants(), "FinalizePosition produced an inconsistent position")
}

// EnPassantPawnSquare converts a FEN en-passant *capture* square (e.g.
// "e3") into the pawn square the position actually stores (e4): the pawn
// sits one rank behind the capture square from the mover's perspective,
// i.e. towards the side that just moved.
func (pos *Position) EnPassantPawnSquare(captureSq Square) Square {
	if pos.Turn {
		// White to move: black just double-pushed, so the pawn sits one
		// rank further from rank 8 than the capture square, i.e. a
		// higher square index.
		return captureSq.shiftRight(8)
	}
	return captureSq.shiftLeft(8)
}

// CaptureTargetSquare is the inverse of EnPassantPawnSquare: given the
// stored pawn square, returns the FEN-visible capture square.
func (pos *Position) CaptureTargetSquare() Square {
	pawnSq := pos.EnPassant.LSB()
	if pos.Turn {
		return pawnSq.shiftLeft(8)
	}
	return pawnSq.shiftRight(8)
}

// PieceLetter returns the FEN letter for the piece on sq (uppercase for
// white, lowercase for black), and false if sq is empty.
func PieceLetter(pos *Position, sq Square) (byte, bool) {
	tier, ok := pos.tierAt(sq)
	if !ok {
		return 0, false
	}
	letters := [numTiers]byte{
		TierPawn:   'p',
		TierKnight: 'n',
		TierBishop: 'b',
		TierRook:   'r',
		TierQueen:  'q',
		TierKing:   'k',
	}
	letter := letters[tier]
	white := pos.Player.Has(sq) == pos.Turn
	if white {
		letter -= 'a' - 'A'
	}
	return letter, true
}
