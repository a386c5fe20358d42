package engine

import "testing"

func TestMovePackUnpackRoundTrip(t *testing.T) {
	m := NewMove(Square(12), Square(28), TierKnight, CodeDoublePush)
	packed := m.Pack()
	got := UnpackMove(packed)
	if got != m {
		t.Fatalf("UnpackMove(m.Pack()) = %v, want %v", got, m)
	}
	if got.Origin() != Square(12) || got.Target() != Square(28) {
		t.Fatalf("origin/target not preserved: got %v/%v", got.Origin(), got.Target())
	}
}

func TestMoveUCIPromotionLetters(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{CodePromoteQueen, "e7e8q"},
		{CodePromoteKnight, "e7e8n"},
		{CodePromoteRook, "e7e8r"},
		{CodePromoteBishop, "e7e8b"},
	}
	from, _ := SquareFromString("e7")
	to, _ := SquareFromString("e8")
	for _, c := range cases {
		m := NewMove(from, to, TierPawn, c.code)
		if m.UCI() != c.want {
			t.Errorf("UCI() with code %v = %q, want %q", c.code, m.UCI(), c.want)
		}
	}
}

func TestNoMoveUCIIsNullMove(t *testing.T) {
	if NoMove.UCI() != "0000" {
		t.Fatalf("NoMove.UCI() = %q, want 0000", NoMove.UCI())
	}
}
