package engine

import "testing"

func TestRookAttacksOnEmptyBoardFromCorner(t *testing.T) {
	a1, _ := SquareFromString("a1")
	attacks := RookAttacks(BbEmpty, a1)
	if attacks.Count() != 14 {
		t.Fatalf("rook on an1 empty board attacks %d squares, want 14", attacks.Count())
	}
}

func TestBishopAttacksBlockedByOccupancy(t *testing.T) {
	d4, _ := SquareFromString("d4")
	e5, _ := SquareFromString("e5")
	occ := BITS[e5]
	attacks := BishopAttacks(occ, d4)
	if !attacks.Has(e5) {
		t.Fatal("bishop attack must include the first blocker's square")
	}
	f6, _ := SquareFromString("f6")
	if attacks.Has(f6) {
		t.Fatal("bishop attack must not extend past the first blocker")
	}
}

func TestKnightAttacksFromCenter(t *testing.T) {
	d4, _ := SquareFromString("d4")
	if got := KnightAttacks(d4).Count(); got != 8 {
		t.Fatalf("knight on d4 attacks %d squares, want 8", got)
	}
}

func TestPawnCapturesDirectionDependsOnSide(t *testing.T) {
	e4, _ := SquareFromString("e4")
	d5, _ := SquareFromString("d5")
	f5, _ := SquareFromString("f5")
	white := PawnCaptures(1, e4)
	if !white.Has(d5) || !white.Has(f5) {
		t.Fatal("white pawn on e4 must attack d5 and f5")
	}
	d3, _ := SquareFromString("d3")
	f3, _ := SquareFromString("f3")
	black := PawnCaptures(0, e4)
	if !black.Has(d3) || !black.Has(f3) {
		t.Fatal("black pawn on e4 must attack d3 and f3")
	}
}
