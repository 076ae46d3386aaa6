package fixlat

import "testing"

func TestComparePartialNat(t *testing.T) {
	o, err := ComparePartial(nil, NatTerm(2), NatTerm(5))
	if err != nil {
		t.Fatalf("ComparePartial returned error: %v", err)
	}
	if o != LT {
		t.Fatalf("expected LT, got %s", o)
	}

	o, err = ComparePartial(nil, NatTerm(5), NatTerm(5))
	if err != nil {
		t.Fatalf("ComparePartial returned error: %v", err)
	}
	if o != EQ {
		t.Fatalf("expected EQ, got %s", o)
	}
}

func TestComparePartialBool(t *testing.T) {
	o, err := ComparePartial(nil, FalseTerm(), TrueTerm())
	if err != nil {
		t.Fatalf("ComparePartial returned error: %v", err)
	}
	if o != LT {
		t.Fatalf("expected False < True, got %s", o)
	}
}

func TestComparePartialTupleLexicographic(t *testing.T) {
	a := TupleTerm(NatTerm(1), NatTerm(9))
	b := TupleTerm(NatTerm(2), NatTerm(0))
	o, err := ComparePartial(nil, a, b)
	if err != nil {
		t.Fatalf("ComparePartial returned error: %v", err)
	}
	if o != LT {
		t.Fatalf("expected <1,9> < <2,0> (first component decides), got %s", o)
	}
}

func TestComparePartialPanicsOnSortMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("ComparePartial should panic on mismatched sorts")
		}
	}()
	ComparePartial(nil, NatTerm(1), TrueTerm())
}

func TestSubsumes(t *testing.T) {
	stronger := MustGroundProposition(Proposition{Relation: "score", Arg: NatTerm(5)})
	weaker := MustGroundProposition(Proposition{Relation: "score", Arg: NatTerm(2)})
	if !Subsumes(nil, stronger, weaker) {
		t.Fatal("a larger Nat should subsume a smaller one")
	}
	if Subsumes(nil, weaker, stronger) {
		t.Fatal("a smaller Nat should not subsume a larger one")
	}
	if !Subsumes(nil, stronger, stronger) {
		t.Fatal("a proposition should subsume an equal one")
	}
}

func TestSubsumesDifferentRelationsNeverSubsume(t *testing.T) {
	a := MustGroundProposition(Proposition{Relation: "score", Arg: NatTerm(5)})
	b := MustGroundProposition(Proposition{Relation: "rank", Arg: NatTerm(5)})
	if Subsumes(nil, a, b) || Subsumes(nil, b, a) {
		t.Fatal("propositions on different relations should never subsume each other")
	}
}
