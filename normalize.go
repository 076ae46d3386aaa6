package fixlat

import (
	"fmt"
	"sync/atomic"
)

// freshCounter hands out globally unique suffixes for alpha-renaming.
// It is a package-level atomic counter rather than a per-rule one so
// that names stay unique across every rule ever normalized in a
// process. Residual PartialRules are not re-normalized; they keep the
// names of the rule they were derived from.
var freshCounter uint64

func freshName(base Name) Name {
	n := atomic.AddUint64(&freshCounter, 1)
	return Name(fmt.Sprintf("%s#%d", base, n))
}

// NormalizeRule rewrites a rule into canonical form: every
// Quantification and Let-bound name is alpha-renamed to a fresh,
// globally unique name, avoiding any need for capture-avoiding
// substitution later, and every Quantification clause is hoisted to a
// contiguous prefix before the first Premise. Let,
// Filter, and Premise clauses keep their original relative order; the
// trailing Conclusion is unchanged in position.
//
// Hoisting is purely a reordering of Quantification nodes: since a
// Quantification only introduces a binder and has no other effect, and
// every bound name is already globally fresh, moving all of them to the
// front changes neither which ground conclusions are derivable nor in
// what order premises are matched.
func NormalizeRule(r *Rule) *Rule {
	renamed := alphaRename(r, Substitution{})

	var quants []Quantification
	var restClauses []*Rule // Let/Filter/Premise nodes, in source order, each with rest == nil
	var conclusion *Rule

	for node := renamed; node != nil; node = node.rest {
		switch node.kind {
		case ClauseQuantification:
			quants = append(quants, node.quantification)
		case ClauseConclusion:
			conclusion = ConclusionRule(node.conclusion)
		default:
			restClauses = append(restClauses, node)
		}
	}

	var built *Rule
	if conclusion != nil {
		built = conclusion
	}
	for i := len(restClauses) - 1; i >= 0; i-- {
		built = attachRest(restClauses[i], built)
	}
	for i := len(quants) - 1; i >= 0; i-- {
		built = QuantificationRule(quants[i], built)
	}
	return built
}

// attachRest rebuilds a single non-quantification clause node with a
// new rest pointer.
func attachRest(node *Rule, rest *Rule) *Rule {
	switch node.kind {
	case ClausePremise:
		return PremiseRule(node.premise, rest)
	case ClauseLet:
		return LetRule(node.letName, node.letTerm, rest)
	case ClauseFilter:
		return FilterRule(node.filterCond, rest)
	default:
		panic("fixlat: attachRest called on unexpected clause kind")
	}
}

// alphaRename walks r, renaming every Quantification and Let binder to a
// fresh name and threading the accumulated renaming substitution through
// the rest of the tree.
func alphaRename(r *Rule, renaming Substitution) *Rule {
	if r == nil {
		return nil
	}
	switch r.kind {
	case ClauseQuantification:
		fresh := freshName(r.quantification.Variable)
		next := bind(renaming, r.quantification.Variable, VarTerm(fresh, r.quantification.Sort))
		return QuantificationRule(Quantification{Variable: fresh, Sort: r.quantification.Sort}, alphaRename(r.rest, next))
	case ClauseLet:
		renamedTerm := substituteTerm(renaming, r.letTerm)
		fresh := freshName(r.letName)
		next := bind(renaming, r.letName, VarTerm(fresh, termSortOfLetName(r)))
		return LetRule(fresh, renamedTerm, alphaRename(r.rest, next))
	case ClausePremise:
		return PremiseRule(substituteProposition(renaming, r.premise), alphaRename(r.rest, renaming))
	case ClauseFilter:
		return FilterRule(substituteTerm(renaming, r.filterCond), alphaRename(r.rest, renaming))
	case ClauseConclusion:
		return ConclusionRule(substituteProposition(renaming, r.conclusion))
	default:
		return r
	}
}

// termSortOfLetName infers the sort a Let-bound name should carry when
// referenced later in the rule: the sort of the (pre-rename) bound term.
func termSortOfLetName(r *Rule) Sort {
	return r.letTerm.Sort()
}
