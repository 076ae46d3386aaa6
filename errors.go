package fixlat

import "errors"

// Sentinel errors for the local, absorbed failure modes of unification:
// a single (rule, candidate) pairing that fails to unify just means "no
// patches." Callers distinguish the occurs-check and structural cases
// (non-fatal, expected) from a sort mismatch, which the fixpoint loop
// treats as a fatal bug.
var (
	// ErrSortMismatch is returned when unification is attempted between
	// two terms of different sorts. Unify only reports it; applyRule
	// panics when unifying a rule premise against a candidate fact
	// yields it, since a validated module never offers such a candidate.
	ErrSortMismatch = errors.New("fixlat: sort mismatch during unification")

	// ErrOccursCheck is returned when unifying a variable with a term
	// that contains that variable, which would build an infinite term.
	ErrOccursCheck = errors.New("fixlat: occurs check failed")

	// ErrStructuralMismatch is returned when two terms cannot be
	// unified because their heads (constructor, function, or predicate)
	// disagree and cannot be brought into agreement by evaluation.
	ErrStructuralMismatch = errors.New("fixlat: structural mismatch")
)

// ConfigurationError reports a problem found while validating a Module:
// an unknown name, a sort mismatch in a declared axiom or rule, or a
// missing fixpoint spec entry. ValidateModule collects every
// ConfigurationError it finds rather than stopping at the first.
type ConfigurationError struct {
	Where   string // e.g. "rule foo", "axiom bar", "fixpoint spec baz"
	Message string
}

func (e *ConfigurationError) Error() string {
	return "fixlat: configuration error in " + e.Where + ": " + e.Message
}

// MissingFunctionImplementationError reports that the evaluator reached
// an Application whose function name has no entry in Module.Functions.
// This is a fatal bug: a well-validated module should never reach it.
type MissingFunctionImplementationError struct {
	Function Name
}

func (e *MissingFunctionImplementationError) Error() string {
	return "fixlat: no implementation registered for function " + string(e.Function)
}

// BuiltinEvaluationError wraps an error returned by a builtin function
// implementation while evaluating a term. Builtins are expected to be
// pure and terminating; an error return here signals a realistic
// failure (e.g. a malformed argument) rather than divergence, which is
// out of scope for this evaluator.
type BuiltinEvaluationError struct {
	Function Name
	Err      error
}

func (e *BuiltinEvaluationError) Error() string {
	return "fixlat: builtin " + string(e.Function) + " failed: " + e.Err.Error()
}

func (e *BuiltinEvaluationError) Unwrap() error { return e.Err }

// MalformedRuleShapeError reports that apply_rule (or the residual walk)
// reached a clause shape that should not arise from well-formed,
// normalized input: a bare Conclusion or Filter at the point a premise
// was expected to be consumed. It indicates a bug in normalization or in
// the caller, not a data problem, so it is fatal.
type MalformedRuleShapeError struct {
	Detail string
}

func (e *MalformedRuleShapeError) Error() string {
	return "fixlat: malformed rule shape: " + e.Detail
}
