package fixlat

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// FixpointSpec names the subset of a module's axioms and rules that
// participate in a single Generate call. A module can declare several
// specs over the same relations/rules (e.g. "debug" vs. "full").
type FixpointSpec struct {
	AxiomNames []Name
	RuleNames  []Name
}

// Module is a closed collection of declarations: the relations
// (predicate sorts) a program talks about, the functions its rules may
// call out to, the rules themselves, the ground axioms available as
// initial facts, and the named fixpoint specs that select a subset of
// axioms and rules to run together.
type Module struct {
	Relations     map[Name]Sort
	Functions     map[Name]FunctionDecl
	Rules         map[Name]*Rule
	Axioms        map[Name]GroundProposition
	FixpointSpecs map[Name]FixpointSpec
}

// NewModule returns an empty, ready-to-populate module.
func NewModule() *Module {
	return &Module{
		Relations:     map[Name]Sort{},
		Functions:     map[Name]FunctionDecl{},
		Rules:         map[Name]*Rule{},
		Axioms:        map[Name]GroundProposition{},
		FixpointSpecs: map[Name]FixpointSpec{},
	}
}

// ValidateModule checks a module's internal consistency: every
// proposition (in an axiom or a rule's premises/conclusion) names a
// declared relation and carries that relation's declared argument sort,
// every constructor term appearing anywhere in an axiom or rule has the
// arity and argument sorts its Ctor requires, every function
// application's arguments match the arity and sorts of its declared
// FunctionDecl, every rule conclusion only uses variables bound earlier
// in the same rule, every filter condition is Bool-sorted, and every
// fixpoint spec only references axioms and rules that actually exist in
// the module.
//
// All violations found are collected and returned together as a
// *multierror.Error of *ConfigurationError values, rather than failing
// on the first one, so a caller authoring a module sees every mistake
// in one pass. Returns nil if the module is well-formed.
func ValidateModule(m *Module) error {
	var result *multierror.Error

	for name, axiom := range m.Axioms {
		for _, err := range validateProposition(m, fmt.Sprintf("axiom %s", name), axiom.Proposition()) {
			result = multierror.Append(result, err)
		}
	}

	for name, rule := range m.Rules {
		for _, err := range validateRule(m, name, rule) {
			result = multierror.Append(result, err)
		}
	}

	for name, fn := range m.Functions {
		if fn.Impl == nil {
			result = multierror.Append(result, &ConfigurationError{
				Where:   fmt.Sprintf("function %s", name),
				Message: "no implementation provided",
			})
		}
	}

	for name, spec := range m.FixpointSpecs {
		for _, an := range spec.AxiomNames {
			if _, ok := m.Axioms[an]; !ok {
				result = multierror.Append(result, &ConfigurationError{
					Where:   fmt.Sprintf("fixpoint spec %s", name),
					Message: fmt.Sprintf("references unknown axiom %s", an),
				})
			}
		}
		for _, rn := range spec.RuleNames {
			if _, ok := m.Rules[rn]; !ok {
				result = multierror.Append(result, &ConfigurationError{
					Where:   fmt.Sprintf("fixpoint spec %s", name),
					Message: fmt.Sprintf("references unknown rule %s", rn),
				})
			}
		}
	}

	if result != nil {
		return result
	}
	return nil
}

func validateProposition(m *Module, where string, p Proposition) []error {
	declared, ok := m.Relations[p.Relation]
	if !ok {
		return []error{&ConfigurationError{Where: where, Message: fmt.Sprintf("unknown relation %s", p.Relation)}}
	}
	var errs []error
	if !p.Arg.Sort().Equal(declared) {
		errs = append(errs, &ConfigurationError{
			Where:   where,
			Message: fmt.Sprintf("relation %s expects argument sort %s, got %s", p.Relation, declared, p.Arg.Sort()),
		})
	}
	errs = append(errs, validateTermShape(m, where, p.Arg)...)
	return errs
}

// validateTermShape recursively checks that a term's constructor and
// application nodes agree in arity and argument sort with what their
// Ctor or declared FunctionDecl requires. A TermVar carries no shape of
// its own and is always accepted here; no check compares the sort a
// variable carries where it is used with the sort given where it is
// bound (a Quantification or Let).
func validateTermShape(m *Module, where string, t Term) []error {
	var errs []error
	switch t.Kind() {
	case TermConstructor:
		errs = append(errs, validateConstructorShape(where, t)...)
	case TermApplication:
		decl, ok := m.Functions[t.Function()]
		if !ok {
			errs = append(errs, &ConfigurationError{
				Where:   where,
				Message: fmt.Sprintf("application of unknown function %s", t.Function()),
			})
			break
		}
		if len(t.Args()) != len(decl.ArgSorts) {
			errs = append(errs, &ConfigurationError{
				Where:   where,
				Message: fmt.Sprintf("function %s expects %d argument(s), got %d", t.Function(), len(decl.ArgSorts), len(t.Args())),
			})
			break
		}
		for i, a := range t.Args() {
			if !a.Sort().Equal(decl.ArgSorts[i]) {
				errs = append(errs, &ConfigurationError{
					Where:   where,
					Message: fmt.Sprintf("function %s argument %d expects sort %s, got %s", t.Function(), i, decl.ArgSorts[i], a.Sort()),
				})
			}
		}
		if !t.Sort().Equal(decl.ReturnSort) {
			errs = append(errs, &ConfigurationError{
				Where:   where,
				Message: fmt.Sprintf("application of %s declared with sort %s, but function returns %s", t.Function(), t.Sort(), decl.ReturnSort),
			})
		}
	}
	for _, a := range t.Args() {
		errs = append(errs, validateTermShape(m, where, a)...)
	}
	return errs
}

// validateConstructorShape checks a single TermConstructor node's arity
// and argument sorts against what its Ctor requires, without recursing
// into its arguments (the caller, validateTermShape, handles that).
func validateConstructorShape(where string, t Term) []error {
	args := t.Args()
	switch t.Ctor() {
	case CtorUnit:
		if len(args) != 0 {
			return []error{shapeError(where, t, "Unit takes no arguments")}
		}
		if t.Sort().Kind() != SortUnit {
			return []error{shapeError(where, t, fmt.Sprintf("Unit must have Unit sort, got %s", t.Sort()))}
		}
	case CtorTrue, CtorFalse:
		if len(args) != 0 {
			return []error{shapeError(where, t, fmt.Sprintf("%s takes no arguments", t.Ctor()))}
		}
		if t.Sort().Kind() != SortBool {
			return []error{shapeError(where, t, fmt.Sprintf("%s must have Bool sort, got %s", t.Ctor(), t.Sort()))}
		}
	case CtorZero:
		if len(args) != 0 {
			return []error{shapeError(where, t, "Zero takes no arguments")}
		}
		if t.Sort().Kind() != SortNat {
			return []error{shapeError(where, t, fmt.Sprintf("Zero must have Nat sort, got %s", t.Sort()))}
		}
	case CtorSuc:
		if len(args) != 1 {
			return []error{shapeError(where, t, fmt.Sprintf("Suc takes exactly one argument, got %d", len(args)))}
		}
		if t.Sort().Kind() != SortNat {
			return []error{shapeError(where, t, fmt.Sprintf("Suc must have Nat sort, got %s", t.Sort()))}
		}
		if !args[0].Sort().Equal(NatSort()) {
			return []error{shapeError(where, t, fmt.Sprintf("Suc's argument must have Nat sort, got %s", args[0].Sort()))}
		}
	case CtorTuple:
		if t.Sort().Kind() != SortTuple {
			return []error{shapeError(where, t, fmt.Sprintf("Tuple term must carry a Tuple sort, got %s", t.Sort()))}
		}
		elems := t.Sort().Elems()
		if len(args) != len(elems) {
			return []error{shapeError(where, t, fmt.Sprintf("Tuple sort declares %d element(s) but the term has %d argument(s)", len(elems), len(args)))}
		}
		var errs []error
		for i, a := range args {
			if !a.Sort().Equal(elems[i]) {
				errs = append(errs, shapeError(where, t, fmt.Sprintf("Tuple element %d expects sort %s, got %s", i, elems[i], a.Sort())))
			}
		}
		return errs
	default:
		return []error{shapeError(where, t, fmt.Sprintf("unrecognized constructor %s", t.Ctor()))}
	}
	return nil
}

// shapeError reports a malformed constructor term. It deliberately does
// not format t itself: Term.String() assumes well-formed arity (e.g. it
// indexes a Suc term's first argument unconditionally), so stringifying
// a term this check just rejected for bad arity would reintroduce the
// same panic one layer up.
func shapeError(where string, t Term, detail string) error {
	return &ConfigurationError{Where: where, Message: fmt.Sprintf("malformed %s term: %s", t.Ctor(), detail)}
}

func validateRule(m *Module, name Name, r *Rule) []error {
	var errs []error
	bound := map[Name]bool{}
	where := fmt.Sprintf("rule %s", name)

	for node := r; node != nil; node = node.Rest() {
		switch node.Kind() {
		case ClauseQuantification:
			bound[node.Quantification().Variable] = true
		case ClauseLet:
			bound[node.LetName()] = true
			errs = append(errs, validateTermShape(m, where, node.LetTerm())...)
		case ClausePremise:
			errs = append(errs, validateProposition(m, where, node.Premise())...)
		case ClauseFilter:
			if node.FilterCond().Sort().Kind() != SortBool {
				errs = append(errs, &ConfigurationError{
					Where:   where,
					Message: fmt.Sprintf("filter condition must be Bool-sorted, got %s", node.FilterCond().Sort()),
				})
			}
			errs = append(errs, validateTermShape(m, where, node.FilterCond())...)
		case ClauseConclusion:
			errs = append(errs, validateProposition(m, where, node.Conclusion())...)
			for _, v := range freeVars(node.Conclusion().Arg) {
				if !bound[v] {
					errs = append(errs, &ConfigurationError{
						Where:   where,
						Message: fmt.Sprintf("conclusion references unbound variable %s", v),
					})
				}
			}
		}
	}
	return errs
}

// freeVars collects every variable name appearing in t, including
// inside constructor and (unevaluated) application arguments.
func freeVars(t Term) []Name {
	var out []Name
	var walk func(Term)
	walk = func(t Term) {
		switch t.Kind() {
		case TermVar:
			out = append(out, t.Name())
		case TermConstructor, TermApplication:
			for _, a := range t.Args() {
				walk(a)
			}
		}
	}
	walk(t)
	return out
}
