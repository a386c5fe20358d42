//////////////////////////////////////////////////////
// position.go
// the position representation: six piece-type bitboards plus
// all/player/enemy occupancy, and the per-position metadata that rides
// along with make_move
// zurichess sources: position.go, material.go
//////////////////////////////////////////////////////

package engine

// PieceValue gives the material value of a tier. Kings score zero since
// they are never captured and never contribute to material balance.
var PieceValue = [numTiers]int16{
	TierPawn:   100,
	TierKnight: 300,
	TierBishop: 300,
	TierRook:   500,
	TierQueen:  1000,
	TierKing:   0,
}

// Castle rights bit positions within CastleFlags.
const (
	CastleWhiteShort uint8 = 1 << iota
	CastleWhiteLong
	CastleBlackShort
	CastleBlackLong
)

// PositionState carries the metadata that rides along with a Position but
// isn't itself a piece-set bitboard: the Zobrist key, incremental material
// balance, en-passant state, castle rights, and the scratch fields used to
// index the shared move table during generation.
type PositionState struct {
	Key             uint64
	MaterialBalance int16
	EnPassant       Bitboard
	CastleFlags     uint8
	HalfMove        int
	Turn            bool
	LastMove        Move
	MovePtr         int
	MoveCnt         int
}

// Position is the full board representation: six piece-type bitboards
// shared across both colors, the three occupancy masks derived from them,
// and the PositionState metadata. Positions are immutable value types once
// built; MakeMove returns a new Position rather than mutating pos in
// place, so the call stack of a search recursion is itself the undo
// mechanism — there is no unmake.
type Position struct {
	Pawns   Bitboard
	Knights Bitboard
	Bishops Bitboard
	Rooks   Bitboard
	Queens  Bitboard
	Kings   Bitboard

	All    Bitboard
	Player Bitboard
	Enemy  Bitboard

	PositionState
}

// pieceSets returns the six tier bitboards — in Tier order, so index it by
// Tier — restricted to forPlayer's own pieces (the side to move's pieces
// when forPlayer is true, the opponent's otherwise).
func (pos *Position) pieceSets(forPlayer bool) [numTiers]Bitboard {
	own := pos.Enemy
	if forPlayer {
		own = pos.Player
	}
	return [numTiers]Bitboard{
		TierPawn:   pos.Pawns & own,
		TierKnight: pos.Knights & own,
		TierBishop: pos.Bishops & own,
		TierRook:   pos.Rooks & own,
		TierQueen:  pos.Queens & own,
		TierKing:   pos.Kings & own,
	}
}

// tierAt returns the tier of the piece occupying sq, and false if sq is
// empty. Used by make_move's capture detection to classify the piece being
// removed; the moving piece's tier comes from the move itself.
func (pos *Position) tierAt(sq Square) (Tier, bool) {
	bit := BITS[sq]
	switch {
	case pos.All&bit == 0:
		return 0, false
	case pos.Pawns&bit != 0:
		return TierPawn, true
	case pos.Knights&bit != 0:
		return TierKnight, true
	case pos.Bishops&bit != 0:
		return TierBishop, true
	case pos.Rooks&bit != 0:
		return TierRook, true
	case pos.Queens&bit != 0:
		return TierQueen, true
	default:
		return TierKing, true
	}
}

// bitboardFor returns a pointer to the piece-set bitboard for tier, so
// callers can XOR moves into the right set without a long switch at every
// call site.
func (pos *Position) bitboardFor(tier Tier) *Bitboard {
	switch tier {
	case TierPawn:
		return &pos.Pawns
	case TierKnight:
		return &pos.Knights
	case TierBishop:
		return &pos.Bishops
	case TierRook:
		return &pos.Rooks
	case TierQueen:
		return &pos.Queens
	default:
		return &pos.Kings
	}
}

// KingSquare returns the square of forPlayer's king.
func (pos *Position) KingSquare(forPlayer bool) Square {
	own := pos.Enemy
	if forPlayer {
		own = pos.Player
	}
	return (pos.Kings & own).LSB()
}

// InCheck reports whether the side to move's king is currently attacked.
func (pos *Position) InCheck() bool {
	return AttacksBy(pos, false, pos.All)&pos.Kings&pos.Player != 0
}

// checkInvariants validates the structural invariants a legal Position
// must hold: player/enemy partition all, and every square belongs to at
// most one piece-set. It is only ever consulted through assert, so it
// costs nothing when DebugAsserts is off.
func (pos *Position) checkInvariants() bool {
	if pos.Player&pos.Enemy != 0 {
		return false
	}
	if pos.Player|pos.Enemy != pos.All {
		return false
	}
	union := pos.Pawns | pos.Knights | pos.Bishops | pos.Rooks | pos.Queens | pos.Kings
	if union != pos.All {
		return false
	}
	overlap := (pos.Pawns & pos.Knights) | (pos.Pawns & pos.Bishops) | (pos.Pawns & pos.Rooks) |
		(pos.Pawns & pos.Queens) | (pos.Pawns & pos.Kings) |
		(pos.Knights & pos.Bishops) | (pos.Knights & pos.Rooks) | (pos.Knights & pos.Queens) | (pos.Knights & pos.Kings) |
		(pos.Bishops & pos.Rooks) | (pos.Bishops & pos.Queens) | (pos.Bishops & pos.Kings) |
		(pos.Rooks & pos.Queens) | (pos.Rooks & pos.Kings) |
		(pos.Queens & pos.Kings)
	return overlap == 0
}
