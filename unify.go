package fixlat

// Unify attempts to unify two terms of the same sort, starting from an
// existing substitution sigma (pass nil or an empty Substitution to
// start fresh):
//
//   - a variable unifies with any term of its sort, subject to the
//     occurs check;
//   - two constructors unify if their heads match and their arguments
//     unify pairwise;
//   - two applications unify if their heads match and their arguments
//     unify pairwise;
//   - a constructor and an application, or two applications with
//     different heads, are evaluated and retried once;
//   - any other combination fails.
//
// A sort mismatch between a and b returns ErrSortMismatch rather than
// attempting to unify: it is ordinarily a bug in the caller (e.g.
// comparing a rule premise against a candidate of a different
// relation's argument sort should never reach Unify with mismatched
// sorts in the first place). Unify itself returns it as an ordinary
// error and leaves the decision to the caller; applyRule panics on it.
func Unify(ev *Evaluator, sigma Substitution, a, b Term) (Substitution, error) {
	if sigma == nil {
		sigma = Substitution{}
	}
	a = chase(sigma, a)
	b = chase(sigma, b)
	if !a.Sort().Equal(b.Sort()) {
		return nil, ErrSortMismatch
	}

	switch {
	case a.Kind() == TermVar && b.Kind() == TermVar && a.Name() == b.Name():
		return sigma, nil
	case a.Kind() == TermVar:
		if occurs(sigma, a.Name(), b) {
			return nil, ErrOccursCheck
		}
		return bind(sigma, a.Name(), b), nil
	case b.Kind() == TermVar:
		if occurs(sigma, b.Name(), a) {
			return nil, ErrOccursCheck
		}
		return bind(sigma, b.Name(), a), nil
	case a.Kind() == TermConstructor && b.Kind() == TermConstructor:
		if a.Ctor() != b.Ctor() || len(a.Args()) != len(b.Args()) {
			return nil, ErrStructuralMismatch
		}
		return unifyArgs(ev, sigma, a.Args(), b.Args())
	case a.Kind() == TermApplication && b.Kind() == TermApplication &&
		a.Function() == b.Function() && len(a.Args()) == len(b.Args()):
		return unifyArgs(ev, sigma, a.Args(), b.Args())
	default:
		return unifyByEvaluating(ev, sigma, a, b)
	}
}

func unifyArgs(ev *Evaluator, sigma Substitution, as, bs []Term) (Substitution, error) {
	cur := sigma
	for i := range as {
		var err error
		cur, err = Unify(ev, cur, as[i], bs[i])
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// unifyByEvaluating handles a constructor/application mismatch, or two
// applications with differing heads, by evaluating both sides and
// retrying once. If either side is still not in normal form afterward
// (which cannot happen for a well-formed Evaluator, but guards against a
// builtin returning another unevaluated Application), unification fails.
func unifyByEvaluating(ev *Evaluator, sigma Substitution, a, b Term) (Substitution, error) {
	if a.Kind() == TermVar || b.Kind() == TermVar {
		return nil, ErrStructuralMismatch
	}
	if ev == nil {
		return nil, ErrStructuralMismatch
	}
	ea, err := ev.EvaluateTerm(a)
	if err != nil {
		return nil, err
	}
	eb, err := ev.EvaluateTerm(b)
	if err != nil {
		return nil, err
	}
	if ea.Kind() == TermApplication || eb.Kind() == TermApplication {
		return nil, ErrStructuralMismatch
	}
	if ea.Equal(a) && eb.Equal(b) {
		// Nothing changed under evaluation: retrying would just recurse
		// into this same branch forever.
		return nil, ErrStructuralMismatch
	}
	return Unify(ev, sigma, ea, eb)
}

// UnifyPropositions unifies two propositions: their relation names must
// be equal, and their argument terms must unify. The returned
// substitution binds whatever argument-level variables remained free.
func UnifyPropositions(ev *Evaluator, sigma Substitution, a, b Proposition) (Substitution, error) {
	if a.Relation != b.Relation {
		return nil, ErrStructuralMismatch
	}
	return Unify(ev, sigma, a.Arg, b.Arg)
}
