package fixlat

// Order is the result of comparing two terms under the lattice partial
// order.
type Order int

const (
	Incomparable Order = iota
	LT
	EQ
	GT
)

func (o Order) String() string {
	switch o {
	case LT:
		return "LT"
	case EQ:
		return "EQ"
	case GT:
		return "GT"
	default:
		return "Incomparable"
	}
}

// ComparePartial compares two well-sorted terms of the same sort under
// the lattice partial order. A sort mismatch is a bug in the caller, not
// a comparison outcome, and panics.
//
//   - Unit terms are always EQ.
//   - Bool terms: False < True.
//   - Nat terms: the standard order on naturals built from Zero/Suc.
//   - Tuple(Lex, ...) terms: lexicographic combination of component
//     comparisons; the first non-EQ component decides, but an
//     Incomparable component before a decisive one makes the whole
//     comparison Incomparable.
//   - Two identically-named variables are EQ; otherwise Incomparable.
//   - An unevaluated application on either side is evaluated first.
//   - A variable against a non-variable: attempt to unify first,
//     substitute, and recurse; if unification fails, Incomparable.
func ComparePartial(ev *Evaluator, a, b Term) (Order, error) {
	if !a.Sort().Equal(b.Sort()) {
		panic("fixlat: ComparePartial called on mismatched sorts: " + a.Sort().String() + " vs " + b.Sort().String())
	}
	return compareResolved(ev, a, b)
}

func compareResolved(ev *Evaluator, a, b Term) (Order, error) {
	if a.Kind() == TermApplication || b.Kind() == TermApplication {
		ea, eb, err := evalBothForCompare(ev, a, b)
		if err != nil {
			return Incomparable, err
		}
		a, b = ea, eb
	}

	switch {
	case a.Kind() == TermVar && b.Kind() == TermVar:
		if a.Name() == b.Name() {
			return EQ, nil
		}
		return Incomparable, nil
	case a.Kind() == TermVar || b.Kind() == TermVar:
		sigma, err := Unify(ev, Substitution{}, a, b)
		if err != nil {
			return Incomparable, nil
		}
		return compareResolved(ev, substituteTerm(sigma, a), substituteTerm(sigma, b))
	}

	if a.Ctor() != b.Ctor() {
		// Bool is the one sort whose two constructors are still
		// comparable to one another.
		if isBoolCtor(a.Ctor()) && isBoolCtor(b.Ctor()) {
			return compareBoolCtors(a.Ctor(), b.Ctor()), nil
		}
		return Incomparable, nil
	}

	switch a.Ctor() {
	case CtorUnit:
		return EQ, nil
	case CtorTrue, CtorFalse:
		return EQ, nil
	case CtorZero, CtorSuc:
		return compareNat(a, b), nil
	case CtorTuple:
		return compareTupleArgs(ev, a.Args(), b.Args())
	default:
		return Incomparable, nil
	}
}

func evalBothForCompare(ev *Evaluator, a, b Term) (Term, Term, error) {
	ea, err := ev.EvaluateTerm(a)
	if err != nil {
		return Term{}, Term{}, err
	}
	eb, err := ev.EvaluateTerm(b)
	if err != nil {
		return Term{}, Term{}, err
	}
	return ea, eb, nil
}

func isBoolCtor(c Ctor) bool { return c == CtorTrue || c == CtorFalse }

func compareBoolCtors(a, b Ctor) Order {
	if a == b {
		return EQ
	}
	if a == CtorFalse && b == CtorTrue {
		return LT
	}
	return GT
}

func compareNat(a, b Term) Order {
	for {
		switch {
		case a.Ctor() == CtorZero && b.Ctor() == CtorZero:
			return EQ
		case a.Ctor() == CtorZero:
			return LT
		case b.Ctor() == CtorZero:
			return GT
		default:
			a, b = a.Args()[0], b.Args()[0]
		}
	}
}

func compareTupleArgs(ev *Evaluator, as, bs []Term) (Order, error) {
	if len(as) != len(bs) {
		return Incomparable, nil
	}
	for i := range as {
		o, err := compareResolved(ev, as[i], bs[i])
		if err != nil {
			return Incomparable, err
		}
		if o == Incomparable {
			return Incomparable, nil
		}
		if o != EQ {
			return o, nil
		}
	}
	return EQ, nil
}

// CompareProposition compares p and q under the lattice order, which
// Subsumes uses in the datalog-subsumption direction this engine uses
// throughout (a stronger fact dominates a weaker one): p and q must
// share a relation name, and the result is the comparison of their
// arguments. Two propositions on different relations are always
// Incomparable i.e. never subsume one another.
func CompareProposition(ev *Evaluator, p, q GroundProposition) Order {
	if p.Relation != q.Relation {
		return Incomparable
	}
	o, err := ComparePartial(ev, p.Arg.Term(), q.Arg.Term())
	if err != nil {
		// Ground propositions carry no variables and no residual
		// applications, so comparing them can never legitimately fail;
		// a failure here means a builtin used purely for normal-form
		// computation raised unexpectedly, which is a bug.
		panic("fixlat: ComparePartial failed on ground propositions: " + err.Error())
	}
	return o
}

// Subsumes reports whether p >= q, i.e. p subsumes q.
func Subsumes(ev *Evaluator, p, q GroundProposition) bool {
	o := CompareProposition(ev, p, q)
	return o == GT || o == EQ
}
