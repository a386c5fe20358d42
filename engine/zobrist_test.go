package engine

import "testing"

func TestZobristPieceKeyDependsOnColor(t *testing.T) {
	sq := Square(10)
	white := zobristPieceKey(TierQueen, true, sq)
	black := zobristPieceKey(TierQueen, false, sq)
	if white == black {
		t.Fatal("a white and black queen on the same square must hash differently")
	}
}

func TestZobristFromScratchMatchesIncrementalUpdate(t *testing.T) {
	var pos Position
	pos.Turn = true
	PlacePiece(&pos, Square(60), TierKing, true)  // e1
	PlacePiece(&pos, Square(4), TierKing, false)  // e8
	PlacePiece(&pos, Square(52), TierPawn, true)  // e2
	FinalizePosition(&pos)

	m := NewMove(Square(52), Square(36), TierPawn, CodeDoublePush) // e2e4
	next := MakeMove(&pos, m)

	if next.Key != zobristFromScratch(&next) {
		t.Fatal("incremental Key after MakeMove must match a from-scratch recomputation")
	}
}
