package fixlat

import (
	"context"
	"errors"
	"fmt"
)

// Tracer observes fixpoint-loop events for diagnostics without the core
// depending on any particular logging library; fixlat/tracelog provides
// a zap-backed implementation. All methods must be safe to call from a
// single goroutine only — Generate never calls a Tracer concurrently.
type Tracer interface {
	PatchEnqueued(batch BatchID, p Patch)
	PatchPopped(p Patch)
	FactLearned(p GroundProposition, inserted bool)
	BatchStarted(batch BatchID, reason string)
}

type noopTracer struct{}

func (noopTracer) PatchEnqueued(BatchID, Patch)        {}
func (noopTracer) PatchPopped(Patch)                   {}
func (noopTracer) FactLearned(GroundProposition, bool) {}
func (noopTracer) BatchStarted(BatchID, string)        {}

// FixpointEnv holds all mutable state for one Generate call: the
// remaining gas, the database, the set of live (possibly partially
// applied) rules, and the patch queue.
//
// rules is a slice rather than a Name-keyed map: learnApply registers a
// residual PartialRule that represents one specific in-flight match of
// an original rule against some specific prior facts, and many such
// residuals for the same original rule Name can be live at once (e.g. a
// two-premise transitive-closure rule produces one residual per
// matching first-premise fact). Keying by Name would let a later
// residual silently overwrite an earlier one instead of coexisting with
// it, which would lose derivations.
type FixpointEnv struct {
	gas       int
	database  *Database
	rules     []PartialRule
	queue     *Queue
	ev        *Evaluator
	tracer    Tracer
	nextBatch BatchID
}

// GenerateOption configures a Generate call.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	comparePatch ComparePatch
	tracer       Tracer
}

// WithComparePatch overrides the queue's priority discipline.
func WithComparePatch(cmp ComparePatch) GenerateOption {
	return func(o *generateOptions) { o.comparePatch = cmp }
}

// WithTracer attaches an observer for patch and learn-step events.
func WithTracer(t Tracer) GenerateOption {
	return func(o *generateOptions) { o.tracer = t }
}

// Generate computes the least fixpoint (or a gas-bounded approximation
// of it) of the named fixpoint spec's rules applied to its axioms within
// module, and returns the resulting database.
//
// Generate refuses to start if module does not validate. gas bounds the
// number of patches popped from the queue; running out of gas ends the
// loop and returns the database accumulated so far, not an error (spec
// §7: gas exhaustion is an ordinary, expected outcome). ctx is checked
// for cancellation once per loop iteration, alongside gas, as a
// cooperative escape hatch for callers embedding Generate in a larger
// service; a cancelled context also returns the partial database with no
// error, matching gas exhaustion's shape.
func Generate(ctx context.Context, module *Module, specName Name, gas int, opts ...GenerateOption) (*Database, error) {
	if err := ValidateModule(module); err != nil {
		return nil, err
	}
	spec, ok := module.FixpointSpecs[specName]
	if !ok {
		return nil, &ConfigurationError{Where: "Generate", Message: fmt.Sprintf("unknown fixpoint spec %s", specName)}
	}

	options := generateOptions{comparePatch: DefaultComparePatch, tracer: noopTracer{}}
	for _, o := range opts {
		o(&options)
	}

	ev := NewEvaluator(module.Functions)
	env := &FixpointEnv{
		gas:      gas,
		database: EmptyDatabase(ev),
		queue:    NewQueue(options.comparePatch),
		ev:       ev,
		tracer:   options.tracer,
	}

	for _, rn := range spec.RuleNames {
		rule, ok := module.Rules[rn]
		if !ok {
			return nil, &ConfigurationError{Where: "Generate", Message: fmt.Sprintf("fixpoint spec %s references unknown rule %s", specName, rn)}
		}
		env.rules = append(env.rules, PartialRule{Name: rn, Body: NormalizeRule(rule)})
	}

	seedBatch := env.nextBatchID()
	env.tracer.BatchStarted(seedBatch, "seed")
	for _, an := range spec.AxiomNames {
		axiom, ok := module.Axioms[an]
		if !ok {
			return nil, &ConfigurationError{Where: "Generate", Message: fmt.Sprintf("fixpoint spec %s references unknown axiom %s", specName, an)}
		}
		env.enqueue(NewConclusionPatch(axiom, seedBatch))
	}

	for env.gas > 0 {
		select {
		case <-ctx.Done():
			return env.database, nil
		default:
		}

		patch, ok := env.queue.Pop(env.database)
		if !ok {
			break
		}
		env.tracer.PatchPopped(patch)
		env.gas--

		children, err := env.learn(patch)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			continue
		}
		childBatch := env.nextBatchID()
		env.tracer.BatchStarted(childBatch, "learn")
		for _, c := range children {
			env.enqueue(c.withBatch(childBatch))
		}
	}
	return env.database, nil
}

func (env *FixpointEnv) nextBatchID() BatchID {
	env.nextBatch++
	return env.nextBatch
}

func (env *FixpointEnv) enqueue(p Patch) {
	env.queue.Insert(p)
	env.tracer.PatchEnqueued(p.Batch(), p)
}

// learn dispatches a popped patch to the conclusion or apply learn step.
func (env *FixpointEnv) learn(p Patch) ([]Patch, error) {
	switch p.Kind() {
	case PatchConclusion:
		return env.learnConclusion(p.Conclusion())
	case PatchApply:
		return env.learnApply(p.Apply())
	default:
		return nil, &MalformedRuleShapeError{Detail: "queue produced a patch of unknown kind"}
	}
}

// learnConclusion inserts p into the database (normalizing it through
// the evaluator first, since a rule's conclusion may still mention an
// unreduced Application over now-ground arguments). If p was redundant,
// nothing further happens. Otherwise every live rule is tried against
// it.
func (env *FixpointEnv) learnConclusion(p GroundProposition) ([]Patch, error) {
	evaluated, err := env.ev.EvaluateProposition(p.Proposition())
	if err != nil {
		return nil, err
	}
	inserted := env.database.Insert(evaluated)
	env.tracer.FactLearned(evaluated, inserted)
	if !inserted {
		return nil, nil
	}

	var children []Patch
	for _, r := range env.rules {
		grandchildren, err := applyRule(env.ev, r.Name, r.Body, evaluated.Proposition())
		if err != nil {
			return nil, err
		}
		children = append(children, grandchildren...)
	}
	return children, nil
}

// learnApply registers r as live (so every future fact, not just facts
// already present, will be tried against it) and tries it against every
// candidate already in the database.
func (env *FixpointEnv) learnApply(r PartialRule) ([]Patch, error) {
	env.rules = append(env.rules, r)

	var children []Patch
	for _, p := range env.database.Candidates() {
		grandchildren, err := applyRule(env.ev, r.Name, r.Body, p.Proposition())
		if err != nil {
			return nil, err
		}
		children = append(children, grandchildren...)
	}
	return children, nil
}

// applyRule tries to discharge rule's next Premise against prop, then
// performs the residual walk over whatever clauses remain. Leading
// Quantification and Let clauses ahead of the first Premise are
// resolved first; they only arise here for a rule's full (unconsumed)
// body, since a residual PartialRule produced by residualWalk always
// begins directly at a Premise.
func applyRule(ev *Evaluator, name Name, rule *Rule, prop Proposition) ([]Patch, error) {
	switch rule.Kind() {
	case ClauseQuantification:
		return applyRule(ev, name, rule.Rest(), prop)
	case ClauseLet:
		val, err := ev.EvaluateTerm(rule.LetTerm())
		if err != nil {
			return nil, err
		}
		sigma := Substitution{rule.LetName(): val}
		return applyRule(ev, name, substituteRule(sigma, rule.Rest()), prop)
	case ClauseFilter:
		return nil, &MalformedRuleShapeError{Detail: "apply_rule reached a Filter before any Premise was consumed"}
	case ClausePremise:
		sigma, err := UnifyPropositions(ev, Substitution{}, rule.Premise(), prop)
		if err != nil {
			if errors.Is(err, ErrSortMismatch) {
				panic("fixlat: " + err.Error() + " — a validated module should never offer a candidate whose argument sort disagrees with its relation's declared sort")
			}
			return nil, nil
		}
		return residualWalk(ev, name, substituteRule(sigma, rule.Rest()))
	case ClauseConclusion:
		return nil, &MalformedRuleShapeError{Detail: "apply_rule called on a rule with no Premise left to consume"}
	default:
		return nil, &MalformedRuleShapeError{Detail: "apply_rule reached an unrecognized clause kind"}
	}
}

// residualWalk processes whatever is left of a rule after a Premise has
// just been discharged: any Let bindings and Filter guards are resolved
// immediately, and the walk stops (emitting a patch) at the next Premise
// or at the terminal Conclusion.
func residualWalk(ev *Evaluator, name Name, rule *Rule) ([]Patch, error) {
	switch rule.Kind() {
	case ClauseQuantification:
		return residualWalk(ev, name, rule.Rest())
	case ClauseLet:
		val, err := ev.EvaluateTerm(rule.LetTerm())
		if err != nil {
			return nil, err
		}
		sigma := Substitution{rule.LetName(): val}
		return residualWalk(ev, name, substituteRule(sigma, rule.Rest()))
	case ClauseFilter:
		cond, err := ev.EvaluateTerm(rule.FilterCond())
		if err != nil {
			return nil, err
		}
		if cond.Kind() != TermConstructor || !isBoolCtor(cond.Ctor()) {
			return nil, &MalformedRuleShapeError{Detail: "filter condition did not evaluate to a Bool"}
		}
		if cond.Ctor() == CtorFalse {
			return nil, nil
		}
		return residualWalk(ev, name, rule.Rest())
	case ClausePremise:
		return []Patch{NewApplyPatch(PartialRule{Name: name, Body: rule}, 0)}, nil
	case ClauseConclusion:
		g, ok := rule.Conclusion().AsGround()
		if !ok {
			return nil, &MalformedRuleShapeError{Detail: "conclusion was not concrete after substitution"}
		}
		return []Patch{NewConclusionPatch(g, 0)}, nil
	default:
		return nil, &MalformedRuleShapeError{Detail: "residual walk reached an unrecognized clause kind"}
	}
}
