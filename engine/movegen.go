//////////////////////////////////////////////////////
// movegen.go
// full legal move generation: check evasion, pin detection via sniper-ray
// recasting, en-passant discovered-check rejection, castling legality
// zurichess sources: movegen.go (genPseudoMoves shape), built on this
// package's attack.go primitives
//////////////////////////////////////////////////////

package engine

// GenerateMoves writes every strictly legal move for pos into table,
// starting at pos.MovePtr, and returns the slice of moves written. No
// later legality filtering is required of the caller: every emitted move,
// once applied, leaves the mover out of check.
func GenerateMoves(pos *Position, table *MoveTable) []Move {
	table.reset(pos)

	kingSq := pos.KingSquare(true)
	// Enemy attacks with our own king made transparent: removing it from
	// occupancy means a slider's ray through the king continues past it,
	// so a king retreat along that ray is correctly seen as still attacked.
	occNoKing := pos.All &^ BITS[kingSq]
	enemyAttacks := AttacksBy(pos, false, occNoKing)

	genKingMoves(pos, table, kingSq, enemyAttacks)

	inCheck := enemyAttacks.Has(kingSq)
	var evasion Bitboard
	numAttackers := 0
	if inCheck {
		evasion, numAttackers = evasionMask(pos, kingSq)
		if numAttackers >= 2 {
			// Double check: only king moves are legal, already emitted.
			return table.slice(pos)
		}
	} else {
		evasion = BbFull
	}

	pins := pinnedPieces(pos, kingSq)

	genKnightMoves(pos, table, evasion, pins)
	genSliderMoves(pos, table, TierBishop, evasion, pins, kingSq)
	genSliderMoves(pos, table, TierRook, evasion, pins, kingSq)
	genSliderMoves(pos, table, TierQueen, evasion, pins, kingSq)
	genPawnMoves(pos, table, evasion, pins, kingSq)

	if !inCheck {
		genCastling(pos, table, enemyAttacks)
	}

	return table.slice(pos)
}

// pinInfo describes the squares a pinned piece may still move to. It is
// not used by pinnedPieces, which stores that mask (the squares from the
// king up to and including the pinning slider) directly in its map.
type pinInfo struct {
	mask Bitboard // squares every other piece pinned to this sniper's line may move to
}

// pinnedPieces finds, for each hostile slider that would attack the king
// through exactly one friendly blocker if that blocker were removed, the
// single blocker and its pin line. It returns a lookup from each pinned
// square to the line it must stay on; a square with no entry is not pinned.
func pinnedPieces(pos *Position, kingSq Square) map[Square]Bitboard {
	pins := map[Square]Bitboard{}

	// Queen-ray from the king against the full board locates the nearest
	// blocker (friend or foe) on each of the 8 directions; only friendly
	// blockers can be pinned.
	diagRay := hyperbolaQuintessence(pos.All, DIAGONALS[kingSq], kingSq) | hyperbolaQuintessence(pos.All, ANTIDIAGS[kingSq], kingSq)
	orthoRay := hyperbolaQuintessence(pos.All, FILES[fileOf(kingSq)], kingSq) | rankAttacks(pos.All, kingSq)

	friendlyOnDiag := diagRay & pos.Player
	friendlyOnOrtho := orthoRay & pos.Player

	// Removing each friendly blocker in turn and recasting the ray reveals
	// whether a hostile slider of the matching geometry sits behind it.
	bb := friendlyOnDiag
	for bb != 0 {
		blocker := bb.Pop()
		occWithout := pos.All &^ BITS[blocker]
		recast := hyperbolaQuintessence(occWithout, DIAGONALS[kingSq], kingSq) | hyperbolaQuintessence(occWithout, ANTIDIAGS[kingSq], kingSq)
		snipers := recast &^ diagRay & pos.Enemy & (pos.Bishops | pos.Queens)
		if snipers != 0 {
			sniperSq := snipers.LSB()
			pins[blocker] = RAYS[kingSq][sniperSq] | BITS[kingSq]
		}
	}
	bb = friendlyOnOrtho
	for bb != 0 {
		blocker := bb.Pop()
		occWithout := pos.All &^ BITS[blocker]
		recast := hyperbolaQuintessence(occWithout, FILES[fileOf(kingSq)], kingSq) | rankAttacks(occWithout, kingSq)
		snipers := recast &^ orthoRay & pos.Enemy & (pos.Rooks | pos.Queens)
		if snipers != 0 {
			sniperSq := snipers.LSB()
			pins[blocker] = RAYS[kingSq][sniperSq] | BITS[kingSq]
		}
	}
	return pins
}

// evasionMask returns the squares a non-king piece may move to while the
// king on kingSq is in check, plus the number of checking pieces. With a
// single slider attacker the mask includes the ray between attacker and
// king so a block is legal; with a leaper attacker only capturing it is.
func evasionMask(pos *Position, kingSq Square) (Bitboard, int) {
	var mask Bitboard
	count := 0

	tryTier := func(tier Tier, attackers Bitboard, sliding bool) {
		bb := attackers
		for bb != 0 {
			sq := bb.Pop()
			count++
			mask |= BITS[sq]
			if sliding {
				mask |= RAYS[kingSq][sq] &^ BITS[sq]
			}
		}
	}

	tryTier(TierPawn, PawnCaptures(sideIndex(pos.Turn), kingSq)&pos.Enemy&pos.Pawns, false)
	tryTier(TierKnight, KnightAttacks(kingSq)&pos.Enemy&pos.Knights, false)
	tryTier(TierBishop, BishopAttacks(pos.All, kingSq)&pos.Enemy&pos.Bishops, true)
	tryTier(TierRook, RookAttacks(pos.All, kingSq)&pos.Enemy&pos.Rooks, true)
	tryTier(TierQueen, QueenAttacks(pos.All, kingSq)&pos.Enemy&pos.Queens, true)

	return mask, count
}

func genKingMoves(pos *Position, table *MoveTable, kingSq Square, enemyAttacks Bitboard) {
	targets := KingAttacks(kingSq) &^ pos.Player &^ enemyAttacks
	for targets != 0 {
		to := targets.Pop()
		table.emit(pos, NewMove(kingSq, to, TierKing, CodeNormal))
	}
}

// pinFilter returns the squares sq (a piece pinned along some line) may
// still move to, or BbFull if sq isn't pinned at all.
func pinFilter(pins map[Square]Bitboard, sq Square) Bitboard {
	if line, ok := pins[sq]; ok {
		return line
	}
	return BbFull
}

func genKnightMoves(pos *Position, table *MoveTable, evasion Bitboard, pins map[Square]Bitboard) {
	knights := pos.Knights & pos.Player
	for knights != 0 {
		from := knights.Pop()
		// A pinned knight has no legal moves: no knight move stays on a
		// straight line through the king.
		if _, pinned := pins[from]; pinned {
			continue
		}
		targets := KnightAttacks(from) &^ pos.Player & evasion
		for targets != 0 {
			to := targets.Pop()
			table.emit(pos, NewMove(from, to, TierKnight, CodeNormal))
		}
	}
}

func genSliderMoves(pos *Position, table *MoveTable, tier Tier, evasion Bitboard, pins map[Square]Bitboard, kingSq Square) {
	var pieces Bitboard
	switch tier {
	case TierBishop:
		pieces = pos.Bishops & pos.Player
	case TierRook:
		pieces = pos.Rooks & pos.Player
	case TierQueen:
		pieces = pos.Queens & pos.Player
	}
	for pieces != 0 {
		from := pieces.Pop()
		var attacks Bitboard
		switch tier {
		case TierBishop:
			attacks = BishopAttacks(pos.All, from)
		case TierRook:
			attacks = RookAttacks(pos.All, from)
		case TierQueen:
			attacks = QueenAttacks(pos.All, from)
		}
		targets := attacks &^ pos.Player & evasion & pinFilter(pins, from)
		for targets != 0 {
			to := targets.Pop()
			table.emit(pos, NewMove(from, to, tier, CodeNormal))
		}
	}
}

func genPawnMoves(pos *Position, table *MoveTable, evasion Bitboard, pins map[Square]Bitboard, kingSq Square) {
	pawns := pos.Pawns & pos.Player
	white := pos.Turn
	// White pawns advance towards rank 8, which is the low end of this
	// numbering (rank index 0), so a white push decreases the square
	// index; black pushes increase it.
	forward := -8
	startRank, promoRank := 6, 0
	if !white {
		forward = 8
		startRank, promoRank = 1, 7
	}

	bb := pawns
	for bb != 0 {
		from := bb.Pop()
		line := pinFilter(pins, from)

		push1 := pawnPushTarget(from, forward)
		if push1 != NoSquare && !pos.All.Has(push1) {
			emitPawnMove(pos, table, from, push1, evasion, line, promoRank)

			if rankOf(from) == startRank {
				push2 := pawnPushTarget(push1, forward)
				if push2 != NoSquare && !pos.All.Has(push2) && evasion.Has(push2) && line.Has(push2) {
					table.emit(pos, NewMove(from, push2, TierPawn, CodeDoublePush))
				}
			}
		}

		captures := PawnCaptures(sideIndex(white), from) & pos.Enemy & evasion & line
		for captures != 0 {
			to := captures.Pop()
			emitPawnMove(pos, table, from, to, evasion, line, promoRank)
		}

		genEnPassant(pos, table, from, white, evasion, line, kingSq)
	}
}

// pawnPushTarget returns the square one push away from sq in the given
// direction (+8 towards rank 1, -8 towards rank 8), or NoSquare if that
// would leave the board.
func pawnPushTarget(sq Square, delta int) Square {
	t := int(sq) + delta
	if t < 0 || t > 63 {
		return NoSquare
	}
	return Square(t)
}

func emitPawnMove(pos *Position, table *MoveTable, from, to Square, evasion, line Bitboard, promoRank int) {
	if !evasion.Has(to) || !line.Has(to) {
		return
	}
	if rankOf(to) == promoRank {
		table.emit(pos, NewMove(from, to, TierPawn, CodePromoteKnight))
		table.emit(pos, NewMove(from, to, TierPawn, CodePromoteBishop))
		table.emit(pos, NewMove(from, to, TierPawn, CodePromoteRook))
		table.emit(pos, NewMove(from, to, TierPawn, CodePromoteQueen))
		return
	}
	table.emit(pos, NewMove(from, to, TierPawn, CodeNormal))
}

// genEnPassant emits the en-passant capture from "from" if legal,
// rejecting it when removing both the capturer and the captured pawn
// would reveal a rook/queen check along the shared rank — the classic
// en-passant discovered-check case that ordinary pin detection misses
// because it only ever removes one piece at a time.
func genEnPassant(pos *Position, table *MoveTable, from Square, white bool, evasion, line Bitboard, kingSq Square) {
	if pos.EnPassant == 0 {
		return
	}
	capturedSq := pos.EnPassant.LSB()
	var to Square
	if white {
		to = pawnPushTarget(capturedSq, -8)
	} else {
		to = pawnPushTarget(capturedSq, 8)
	}
	if to == NoSquare || !pos.Pawns.Has(from) {
		return
	}
	if PawnCaptures(sideIndex(white), from)&BITS[to] == 0 {
		return
	}
	if !evasion.Has(to) && !evasion.Has(capturedSq) {
		return
	}
	if !line.Has(to) {
		return
	}

	occWithout := pos.All &^ BITS[from] &^ BITS[capturedSq]
	revealed := rankAttacks(occWithout, kingSq) & pos.Enemy & (pos.Rooks | pos.Queens)
	if revealed != 0 {
		return
	}

	table.emit(pos, NewMove(from, to, TierPawn, CodeEnPassant))
}

func genCastling(pos *Position, table *MoveTable, enemyAttacks Bitboard) {
	white := pos.Turn
	kingSq := whiteKingSq
	shortRight, longRight := CastleWhiteShort, CastleWhiteLong
	if !white {
		kingSq = blackKingSq
		shortRight, longRight = CastleBlackShort, CastleBlackLong
	}
	if pos.KingSquare(true) != kingSq {
		return
	}

	if pos.CastleFlags&shortRight != 0 {
		// Kingside files (f,g) sit at higher square indices than e.
		f1 := kingSq.shiftRight(1)
		g1 := kingSq.shiftRight(2)
		if !pos.All.Has(f1) && !pos.All.Has(g1) &&
			!enemyAttacks.Has(f1) && !enemyAttacks.Has(g1) {
			table.emit(pos, NewMove(kingSq, g1, TierKing, CodeCastleShort))
		}
	}
	if pos.CastleFlags&longRight != 0 {
		// Queenside files (d,c,b) sit at lower square indices than e.
		d1 := kingSq.shiftLeft(1)
		c1 := kingSq.shiftLeft(2)
		b1 := kingSq.shiftLeft(3)
		if !pos.All.Has(d1) && !pos.All.Has(c1) && !pos.All.Has(b1) &&
			!enemyAttacks.Has(d1) && !enemyAttacks.Has(c1) {
			table.emit(pos, NewMove(kingSq, c1, TierKing, CodeCastleLong))
		}
	}
}
