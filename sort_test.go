package fixlat

import "testing"

func TestSortEqual(t *testing.T) {
	if !UnitSort().Equal(UnitSort()) {
		t.Fatal("UnitSort should equal itself")
	}
	if BoolSort().Equal(NatSort()) {
		t.Fatal("BoolSort should not equal NatSort")
	}

	a := TupleSort(Lexicographic, NatSort(), BoolSort())
	b := TupleSort(Lexicographic, NatSort(), BoolSort())
	c := TupleSort(Lexicographic, BoolSort(), NatSort())
	if !a.Equal(b) {
		t.Fatal("identical tuple sorts should be equal")
	}
	if a.Equal(c) {
		t.Fatal("tuple sorts with different element order should not be equal")
	}

	if !PredicateSortOf("even").Equal(PredicateSortOf("even")) {
		t.Fatal("predicate sorts of the same relation should be equal")
	}
	if PredicateSortOf("even").Equal(PredicateSortOf("odd")) {
		t.Fatal("predicate sorts of different relations should not be equal")
	}
}

func TestSortString(t *testing.T) {
	s := TupleSort(Lexicographic, NatSort(), BoolSort())
	if s.String() != "Tuple(Lex, [Nat, Bool])" {
		t.Fatalf("unexpected Sort.String(): %s", s.String())
	}
}
