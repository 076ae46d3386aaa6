package fixlat

import (
	"fmt"
	"strings"
)

// Name identifies a relation, function, variable, axiom, rule, or
// fixpoint spec. Equality is plain string equality; fixlat never
// interns or rewrites a Name except for the internal alpha-renaming
// NormalizeRule performs on rule-local variable and let-bound names.
type Name string

// SortKind identifies which variant of Sort a value holds.
type SortKind int

const (
	SortUnit SortKind = iota
	SortBool
	SortNat
	SortTuple
	SortPredicate
)

func (k SortKind) String() string {
	switch k {
	case SortUnit:
		return "Unit"
	case SortBool:
		return "Bool"
	case SortNat:
		return "Nat"
	case SortTuple:
		return "Tuple"
	case SortPredicate:
		return "PredicateSort"
	default:
		return "Sort(?)"
	}
}

// Ordering names the ordering discipline for a Tuple sort. Lexicographic
// is the only variant this core supports.
type Ordering int

const (
	Lexicographic Ordering = iota
)

// Sort is the type of a Term. Every Term carries its Sort, and every
// Proposition's argument sort must equal the declared argument sort of
// its relation.
type Sort struct {
	kind      SortKind
	ordering  Ordering // valid only when kind == SortTuple
	elems     []Sort   // valid only when kind == SortTuple
	predicate Name     // valid only when kind == SortPredicate
}

// UnitSort is the sort of the single value Unit.
func UnitSort() Sort { return Sort{kind: SortUnit} }

// BoolSort is the sort of True and False.
func BoolSort() Sort { return Sort{kind: SortBool} }

// NatSort is the sort of Zero and Suc chains.
func NatSort() Sort { return Sort{kind: SortNat} }

// TupleSort builds a Tuple sort with the given ordering and element
// sorts.
func TupleSort(ordering Ordering, elems ...Sort) Sort {
	cp := make([]Sort, len(elems))
	copy(cp, elems)
	return Sort{kind: SortTuple, ordering: ordering, elems: cp}
}

// PredicateSortOf tags a sort as belonging to a user-declared relation's
// argument, by name.
func PredicateSortOf(relation Name) Sort {
	return Sort{kind: SortPredicate, predicate: relation}
}

// Kind reports which Sort variant this value holds.
func (s Sort) Kind() SortKind { return s.kind }

// Elems returns the element sorts of a Tuple sort, or nil otherwise.
func (s Sort) Elems() []Sort { return s.elems }

// TupleOrdering returns the ordering discipline of a Tuple sort.
func (s Sort) TupleOrdering() Ordering { return s.ordering }

// PredicateName returns the relation name tagged by a PredicateSort.
func (s Sort) PredicateName() Name { return s.predicate }

// Equal reports whether two sorts are structurally identical.
func (s Sort) Equal(o Sort) bool {
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case SortTuple:
		if s.ordering != o.ordering || len(s.elems) != len(o.elems) {
			return false
		}
		for i := range s.elems {
			if !s.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	case SortPredicate:
		return s.predicate == o.predicate
	default:
		return true
	}
}

func (s Sort) String() string {
	switch s.kind {
	case SortTuple:
		parts := make([]string, len(s.elems))
		for i, e := range s.elems {
			parts[i] = e.String()
		}
		return fmt.Sprintf("Tuple(Lex, [%s])", strings.Join(parts, ", "))
	case SortPredicate:
		return fmt.Sprintf("PredicateSort(%s)", s.predicate)
	default:
		return s.kind.String()
	}
}
