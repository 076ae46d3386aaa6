package fixlat

import (
	"fmt"
	"strings"
)

// Ctor enumerates the built-in term constructors.
type Ctor int

const (
	CtorUnit Ctor = iota
	CtorTrue
	CtorFalse
	CtorZero
	CtorSuc
	CtorTuple
)

func (c Ctor) String() string {
	switch c {
	case CtorUnit:
		return "Unit"
	case CtorTrue:
		return "True"
	case CtorFalse:
		return "False"
	case CtorZero:
		return "Zero"
	case CtorSuc:
		return "Suc"
	case CtorTuple:
		return "Tuple"
	default:
		return "Ctor(?)"
	}
}

// TermKind identifies which variant of Term a value holds.
type TermKind int

const (
	TermVar TermKind = iota
	TermConstructor
	TermApplication
)

// Term is the engine's term representation: a variable (only legal in
// rule bodies, before unification resolves it), a constructor
// application, or a built-in function application. Every Term carries
// its Sort.
//
// Term values are immutable once built; all operations that "modify" a
// term (substitution, evaluation) return a new value.
type Term struct {
	sort Sort
	k    TermKind
	// TermVar
	name Name
	// TermConstructor / TermApplication
	ctor     Ctor
	function Name
	args     []Term
}

// Sort returns the term's declared sort.
func (t Term) Sort() Sort { return t.sort }

// Kind reports which Term variant this value holds.
func (t Term) Kind() TermKind { return t.k }

// Name returns the variable name of a TermVar, or "" otherwise.
func (t Term) Name() Name { return t.name }

// Ctor returns the constructor of a TermConstructor, or the zero Ctor
// otherwise.
func (t Term) Ctor() Ctor { return t.ctor }

// Function returns the function name of a TermApplication, or ""
// otherwise.
func (t Term) Function() Name { return t.function }

// Args returns the argument list of a TermConstructor or TermApplication.
func (t Term) Args() []Term { return t.args }

// VarTerm builds a symbolic variable term. Concrete terms never contain
// a TermVar; constructing one is legal only while building rule bodies.
func VarTerm(name Name, sort Sort) Term {
	return Term{k: TermVar, name: name, sort: sort}
}

// ConstructorTerm builds a constructor application. The caller is
// responsible for ensuring ctor, args, and sort agree (e.g. Suc takes
// one Nat argument; a Tuple's arguments match its element sorts);
// ValidateModule checks this for every rule and axiom in a module.
func ConstructorTerm(ctor Ctor, sort Sort, args ...Term) Term {
	cp := make([]Term, len(args))
	copy(cp, args)
	return Term{k: TermConstructor, ctor: ctor, sort: sort, args: cp}
}

// ApplicationTerm builds a built-in function application.
func ApplicationTerm(function Name, sort Sort, args ...Term) Term {
	cp := make([]Term, len(args))
	copy(cp, args)
	return Term{k: TermApplication, function: function, sort: sort, args: cp}
}

// UnitTerm is the single value of UnitSort.
func UnitTerm() Term { return ConstructorTerm(CtorUnit, UnitSort()) }

// TrueTerm is the True value of BoolSort.
func TrueTerm() Term { return ConstructorTerm(CtorTrue, BoolSort()) }

// FalseTerm is the False value of BoolSort.
func FalseTerm() Term { return ConstructorTerm(CtorFalse, BoolSort()) }

// ZeroTerm is the Nat value 0.
func ZeroTerm() Term { return ConstructorTerm(CtorZero, NatSort()) }

// SucTerm builds the successor of n, which must itself have NatSort.
func SucTerm(n Term) Term { return ConstructorTerm(CtorSuc, NatSort(), n) }

// NatTerm builds the Nat term for a non-negative integer literal.
func NatTerm(n int) Term {
	t := ZeroTerm()
	for i := 0; i < n; i++ {
		t = SucTerm(t)
	}
	return t
}

// TupleTerm builds a tuple of the given elements under lexicographic
// ordering, with sort inferred from the elements' own sorts.
func TupleTerm(elems ...Term) Term {
	sorts := make([]Sort, len(elems))
	for i, e := range elems {
		sorts[i] = e.Sort()
	}
	return ConstructorTerm(CtorTuple, TupleSort(Lexicographic, sorts...), elems...)
}

// Equal reports whether two terms are structurally identical, including
// variable names and sorts. It does not evaluate or unify.
func (t Term) Equal(o Term) bool {
	if t.k != o.k || !t.sort.Equal(o.sort) {
		return false
	}
	switch t.k {
	case TermVar:
		return t.name == o.name
	case TermConstructor:
		if t.ctor != o.ctor || len(t.args) != len(o.args) {
			return false
		}
	case TermApplication:
		if t.function != o.function || len(t.args) != len(o.args) {
			return false
		}
	}
	for i := range t.args {
		if !t.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (t Term) String() string {
	switch t.k {
	case TermVar:
		return string(t.name)
	case TermConstructor:
		switch t.ctor {
		case CtorUnit:
			return "unit"
		case CtorTrue:
			return "true"
		case CtorFalse:
			return "false"
		case CtorZero:
			return "zero"
		case CtorSuc:
			return fmt.Sprintf("suc(%s)", t.args[0])
		case CtorTuple:
			parts := make([]string, len(t.args))
			for i, a := range t.args {
				parts[i] = a.String()
			}
			return fmt.Sprintf("<%s>", strings.Join(parts, ", "))
		}
	case TermApplication:
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.function, strings.Join(parts, ", "))
	}
	return "?"
}

// IsConcrete reports whether t contains no TermVar and no residual
// TermApplication anywhere in its tree: the engine's definition of
// "concrete".
func IsConcrete(t Term) bool {
	switch t.k {
	case TermVar, TermApplication:
		return false
	}
	for _, a := range t.args {
		if !IsConcrete(a) {
			return false
		}
	}
	return true
}

// GroundTerm wraps a Term known to be concrete. It is the idiomatic Go
// rendering of the engine's "concrete term" type parameter: rather than
// an uninhabited variable case enforced by the type system, concreteness
// is enforced by construction (AsGround, MustGround, or EvaluateGround's
// result).
type GroundTerm struct{ t Term }

// Term returns the underlying (concrete) term.
func (g GroundTerm) Term() Term { return g.t }

func (g GroundTerm) String() string { return g.t.String() }

// AsGround wraps t as a GroundTerm if it is concrete.
func AsGround(t Term) (GroundTerm, bool) {
	if !IsConcrete(t) {
		return GroundTerm{}, false
	}
	return GroundTerm{t}, true
}

// MustGround wraps t as a GroundTerm, panicking if t is not concrete.
// Used at points where the caller has already established concreteness
// as a loop invariant (e.g. just after EvaluateTerm).
func MustGround(t Term) GroundTerm {
	g, ok := AsGround(t)
	if !ok {
		panic(fmt.Sprintf("fixlat: expected concrete term, got %s", t))
	}
	return g
}
