//////////////////////////////////////////////////////
// makemove.go
// make_move: returns a new Position rather than mutating in place, so the
// call stack of a search recursion is the only "unmake" there is
// zurichess sources: position.go DoMove
//////////////////////////////////////////////////////

package engine

// MakeMove applies m to pos and returns the resulting position. pos is
// never modified; callers keep pos alive on their own stack frame as the
// implicit undo.
func MakeMove(pos *Position, m Move) Position {
	next := *pos

	origin, target := m.Origin(), m.Target()
	tier, code := m.Tier(), m.Code()
	moveMask := BITS[origin] | BITS[target]

	// Capture detection happens against the pre-image: before any bitboard
	// is touched, check whether the target square was occupied by the
	// enemy and retire that piece's material/hash/bitboard contribution.
	if pos.All.Has(target) {
		capturedTier, _ := pos.tierAt(target)
		next.MaterialBalance += PieceValue[capturedTier]
		*next.bitboardFor(capturedTier) &^= BITS[target]
		next.Enemy &^= BITS[target]
		next.All &^= BITS[target]
		next.Key ^= zobristPieceKey(capturedTier, !pos.Turn, target)
	}

	// Move the piece: clear origin+target from its own set, then set
	// target (clearing origin is already covered since target bit was
	// off there before the capture handling above, and origin is cleared
	// below uniformly for every moved tier).
	ownSet := pos.bitboardFor(tier)
	*next.bitboardFor(tier) = (*ownSet &^ moveMask) | BITS[target]
	next.All = (next.All &^ moveMask) | BITS[target]
	next.Player = (next.Player &^ moveMask) | BITS[target]

	next.Key ^= zobristPieceKey(tier, pos.Turn, origin)
	next.Key ^= zobristPieceKey(tier, pos.Turn, target)

	// Retire the previous en-passant hash contribution; it is re-set below
	// only if this move is itself a double push.
	if pos.EnPassant != 0 {
		next.Key ^= zobristEnPass[fileOf(pos.EnPassant.LSB())]
	}
	next.EnPassant = 0

	switch code {
	case CodePromoteKnight, CodePromoteBishop, CodePromoteRook, CodePromoteQueen:
		promoted := code.PromotionTier()
		next.Pawns &^= BITS[target]
		*next.bitboardFor(promoted) |= BITS[target]
		next.MaterialBalance += PieceValue[promoted] - PieceValue[TierPawn]
		next.Key ^= zobristPieceKey(TierPawn, pos.Turn, target)
		next.Key ^= zobristPieceKey(promoted, pos.Turn, target)

	case CodeDoublePush:
		next.EnPassant = BITS[target]
		next.Key ^= zobristEnPass[fileOf(target)]

	case CodeCastleShort:
		// Spec's "target<<1"/"target>>1" are bitboard shifts, not square-
		// index shifts: BITS[sq]<<n sits at square index sq-n, BITS[sq]>>n
		// at sq+n, hence shiftLeft/shiftRight below.
		rookFrom := target.shiftRight(1)
		rookTo := target.shiftLeft(1)
		next.Rooks = (next.Rooks &^ BITS[rookFrom]) | BITS[rookTo]
		next.All = (next.All &^ BITS[rookFrom]) | BITS[rookTo]
		next.Player = (next.Player &^ BITS[rookFrom]) | BITS[rookTo]
		next.Key ^= zobristPieceKey(TierRook, pos.Turn, rookFrom)
		next.Key ^= zobristPieceKey(TierRook, pos.Turn, rookTo)

	case CodeCastleLong:
		rookFrom := target.shiftLeft(2)
		rookTo := target.shiftRight(1)
		next.Rooks = (next.Rooks &^ BITS[rookFrom]) | BITS[rookTo]
		next.All = (next.All &^ BITS[rookFrom]) | BITS[rookTo]
		next.Player = (next.Player &^ BITS[rookFrom]) | BITS[rookTo]
		next.Key ^= zobristPieceKey(TierRook, pos.Turn, rookFrom)
		next.Key ^= zobristPieceKey(TierRook, pos.Turn, rookTo)

	case CodeEnPassant:
		capturedSq := pos.EnPassant.LSB()
		next.Pawns &^= BITS[capturedSq]
		next.Enemy &^= BITS[capturedSq]
		next.All &^= BITS[capturedSq]
		next.MaterialBalance += PieceValue[TierPawn]
		next.Key ^= zobristPieceKey(TierPawn, !pos.Turn, capturedSq)
	}

	updateCastleRights(&next, pos, origin, target, tier)

	next.MaterialBalance = -next.MaterialBalance
	next.Player, next.Enemy = next.Enemy, next.Player
	next.Turn = !pos.Turn
	next.Key ^= zobristTurn
	next.HalfMove = pos.HalfMove + 1
	next.LastMove = m
	next.MovePtr = childMovePtr(pos.MovePtr)
	next.MoveCnt = 0

	assert(next.checkInvariants(), "MakeMove produced an inconsistent position")
	return next
}

// shiftLeft/shiftRight mirror a bitboard-level BITS[sq]<<n / BITS[sq]>>n
// shift at the square-index level: since BITS[sq] = 1<<63>>sq, shifting the
// bitboard left by n lands on square index sq-n, and shifting right lands
// on sq+n.
func (sq Square) shiftLeft(n int) Square  { return Square(int(sq) - n) }
func (sq Square) shiftRight(n int) Square { return Square(int(sq) + n) }

// updateCastleRights clears any castle right whose king/rook home square
// was touched by this move, either by moving from it or by a capture
// landing on it.
func updateCastleRights(next *Position, prev *Position, origin, target Square, tier Tier) {
	flags := prev.CastleFlags
	touch := func(right uint8, squares ...Square) {
		if flags&right == 0 {
			return
		}
		for _, s := range squares {
			if s == origin || s == target {
				flags &^= right
			}
		}
	}
	// King moves forfeit both rights for that color outright.
	if tier == TierKing {
		if prev.Turn {
			flags &^= CastleWhiteShort | CastleWhiteLong
		} else {
			flags &^= CastleBlackShort | CastleBlackLong
		}
	}
	touch(CastleWhiteShort, whiteRookShortSq, whiteKingSq)
	touch(CastleWhiteLong, whiteRookLongSq, whiteKingSq)
	touch(CastleBlackShort, blackRookShortSq, blackKingSq)
	touch(CastleBlackLong, blackRookLongSq, blackKingSq)

	if flags != prev.CastleFlags {
		next.Key ^= zobristCastle[prev.CastleFlags]
		next.Key ^= zobristCastle[flags]
	}
	next.CastleFlags = flags
}

// Corner/home squares for castle-rights bookkeeping, in the engine's
// square numbering (square 0 = A8, square 63 = H1).
const (
	whiteKingSq      Square = 60 // e1
	whiteRookShortSq Square = 63 // h1
	whiteRookLongSq  Square = 56 // a1
	blackKingSq      Square = 4  // e8
	blackRookShortSq Square = 7  // h8
	blackRookLongSq  Square = 0  // a8
)
