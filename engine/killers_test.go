package engine

import "testing"

func TestKillerAddAndGet(t *testing.T) {
	kt := NewKillerTable()
	m1 := NewMove(Square(1), Square(2), TierPawn, CodeNormal)
	m2 := NewMove(Square(3), Square(4), TierKnight, CodeNormal)

	kt.Add(5, m1)
	kt.Add(5, m2)

	k1, k2 := kt.Get(5)
	if k1 != m2 || k2 != m1 {
		t.Fatalf("Get(5) = (%v, %v), want newest-first (%v, %v)", k1, k2, m2, m1)
	}
}

func TestKillerDuplicateInsertIsNoOp(t *testing.T) {
	kt := NewKillerTable()
	m := NewMove(Square(1), Square(2), TierPawn, CodeNormal)
	kt.Add(0, m)
	kt.Add(0, m)

	k1, k2 := kt.Get(0)
	if k1 != m || k2 != NoMove {
		t.Fatalf("Get(0) after duplicate Add = (%v, %v), want (%v, NoMove)", k1, k2, m)
	}
}

func TestKillerClearResetsAllPlies(t *testing.T) {
	kt := NewKillerTable()
	kt.Add(10, NewMove(Square(1), Square(2), TierPawn, CodeNormal))
	kt.Clear()

	k1, k2 := kt.Get(10)
	if k1 != NoMove || k2 != NoMove {
		t.Fatalf("Get(10) after Clear = (%v, %v), want (NoMove, NoMove)", k1, k2)
	}
}
