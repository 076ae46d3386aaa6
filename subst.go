package fixlat

// Substitution is a finite mapping from variable name to term. It is
// treated as persistent/immutable: extending a substitution (bind)
// returns a new map rather than mutating the caller's, so that a failed
// unification attempt against one candidate fact never corrupts the
// substitution state of another attempt.
type Substitution map[Name]Term

// chase follows t through sigma until it reaches a constructor, an
// application, or an unmapped variable. This gives "if a variable is
// already bound, recursively unify against its prior binding" for free:
// by the time unify's switch sees a TermVar, chase has already
// established it is unbound.
func chase(sigma Substitution, t Term) Term {
	for t.Kind() == TermVar {
		bound, ok := sigma[t.Name()]
		if !ok {
			return t
		}
		t = bound
	}
	return t
}

// bind extends sigma with name -> t, without mutating sigma.
func bind(sigma Substitution, name Name, t Term) Substitution {
	next := make(Substitution, len(sigma)+1)
	for k, v := range sigma {
		next[k] = v
	}
	next[name] = t
	return next
}

// occurs reports whether name appears free in t, chasing through sigma
// as it descends. Used for the occurs-check before binding a variable.
func occurs(sigma Substitution, name Name, t Term) bool {
	t = chase(sigma, t)
	if t.Kind() == TermVar {
		return t.Name() == name
	}
	for _, a := range t.Args() {
		if occurs(sigma, name, a) {
			return true
		}
	}
	return false
}

// substituteTerm applies sigma to t, replacing each TermVar with its
// image under sigma when defined, and recursing into constructor and
// application arguments. Because rules are alpha-normalized at load
// time (see NormalizeRule), no bound name in t can collide with a name
// in sigma's domain, so no shadowing logic is required here.
func substituteTerm(sigma Substitution, t Term) Term {
	switch t.Kind() {
	case TermVar:
		if v, ok := sigma[t.Name()]; ok {
			return v
		}
		return t
	case TermConstructor:
		args := make([]Term, len(t.Args()))
		for i, a := range t.Args() {
			args[i] = substituteTerm(sigma, a)
		}
		return ConstructorTerm(t.Ctor(), t.Sort(), args...)
	case TermApplication:
		args := make([]Term, len(t.Args()))
		for i, a := range t.Args() {
			args[i] = substituteTerm(sigma, a)
		}
		return ApplicationTerm(t.Function(), t.Sort(), args...)
	default:
		return t
	}
}

// substituteProposition applies sigma to a proposition's argument.
func substituteProposition(sigma Substitution, p Proposition) Proposition {
	return Proposition{Relation: p.Relation, Arg: substituteTerm(sigma, p.Arg)}
}
