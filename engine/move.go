//////////////////////////////////////////////////////
// move.go
// the tagged move record and its packing for transposition-table storage
// zurichess sources: basic.go
//////////////////////////////////////////////////////

package engine

import "fmt"

// MaxPly bounds search recursion depth; the move table allocates one
// 256-move slice per ply using this bound.
const MaxPly = 64

// maxMoveCount is the largest number of pseudo-legal moves any single
// chess position can have, rounded up; each ply's slice of the shared
// move table reserves this many slots.
const maxMoveCount = 256

// moveTableSize is the total size of the shared move table: MAX_PLY
// slices of maxMoveCount moves each, allocated once at engine start.
const moveTableSize = MaxPly * maxMoveCount

// Tier identifies a moving piece's type, independent of color.
type Tier int

const (
	TierPawn Tier = iota
	TierKnight
	TierBishop
	TierRook
	TierQueen
	TierKing

	numTiers = int(TierKing) + 1
)

func (t Tier) String() string {
	switch t {
	case TierPawn:
		return "pawn"
	case TierKnight:
		return "knight"
	case TierBishop:
		return "bishop"
	case TierRook:
		return "rook"
	case TierQueen:
		return "queen"
	case TierKing:
		return "king"
	}
	return "?"
}

// Code tags the kind of a move: a plain move, a promotion to one of the
// four pieces, a double pawn push, one of the two castles, or en passant.
type Code int

const (
	CodeNormal Code = iota
	CodePromoteKnight
	CodePromoteBishop
	CodePromoteRook
	CodePromoteQueen
	CodeDoublePush
	CodeCastleShort
	CodeCastleLong
	CodeEnPassant
)

// IsPromotion reports whether c promotes a pawn.
func (c Code) IsPromotion() bool {
	return c >= CodePromoteKnight && c <= CodePromoteQueen
}

// PromotionTier returns the tier a CodePromote* code promotes to.
func (c Code) PromotionTier() Tier {
	switch c {
	case CodePromoteKnight:
		return TierKnight
	case CodePromoteBishop:
		return TierBishop
	case CodePromoteRook:
		return TierRook
	case CodePromoteQueen:
		return TierQueen
	}
	return TierPawn
}

// Move packs a single chess move: origin and target squares, the moving
// piece's tier and the move's code. It packs into the low 24 bits of a
// uint32 as origin | target<<6 | tier<<12 | code<<16, which is how it is
// stored in the transposition table.
type Move uint32

// NoMove is the all-ones value, used as a sentinel for "no move available";
// the zero value is not free for this, since it encodes a pawn move a8a8.
const NoMove Move = 0xffffffff

// NewMove builds a packed move from its fields.
func NewMove(origin, target Square, tier Tier, code Code) Move {
	return Move(uint32(origin) | uint32(target)<<6 | uint32(tier)<<12 | uint32(code)<<16)
}

func (m Move) Origin() Square { return Square(m & 0x3f) }
func (m Move) Target() Square { return Square((m >> 6) & 0x3f) }
func (m Move) Tier() Tier     { return Tier((m >> 12) & 0xf) }
func (m Move) Code() Code     { return Code((m >> 16) & 0xf) }

// Pack returns the move's 32-bit transposition-table representation.
func (m Move) Pack() uint32 { return uint32(m) }

// UnpackMove reconstructs a Move from its packed representation.
func UnpackMove(v uint32) Move { return Move(v) }

// UCI renders m in UCI long algebraic notation: origin, target, and a
// trailing promotion letter when applicable. Castling is represented as
// the king's two-square move, e.g. "e1g1".
func (m Move) UCI() string {
	if m == NoMove {
		return "0000"
	}
	s := m.Origin().String() + m.Target().String()
	switch m.Code() {
	case CodePromoteKnight:
		s += "n"
	case CodePromoteBishop:
		s += "b"
	case CodePromoteRook:
		s += "r"
	case CodePromoteQueen:
		s += "q"
	}
	return s
}

func (m Move) String() string {
	if m == NoMove {
		return "(none)"
	}
	return fmt.Sprintf("%s[%s]", m.UCI(), m.Tier())
}
