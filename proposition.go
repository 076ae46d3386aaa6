package fixlat

import "fmt"

// Proposition is a predicate applied to a single argument term:
// Proposition(relation_name, argument_term). The argument's sort must
// equal the declared argument sort of the relation.
type Proposition struct {
	Relation Name
	Arg      Term
}

func (p Proposition) String() string {
	return fmt.Sprintf("%s(%s)", p.Relation, p.Arg)
}

// Equal reports whether two propositions are structurally identical.
func (p Proposition) Equal(o Proposition) bool {
	return p.Relation == o.Relation && p.Arg.Equal(o.Arg)
}

// GroundProposition wraps a Proposition known to have a concrete
// argument.
type GroundProposition struct {
	Relation Name
	Arg      GroundTerm
}

func (p GroundProposition) String() string {
	return fmt.Sprintf("%s(%s)", p.Relation, p.Arg)
}

// Proposition forgets groundness, returning the underlying Proposition.
func (p GroundProposition) Proposition() Proposition {
	return Proposition{Relation: p.Relation, Arg: p.Arg.Term()}
}

// Equal reports whether two ground propositions are structurally
// identical.
func (p GroundProposition) Equal(o GroundProposition) bool {
	return p.Relation == o.Relation && p.Arg.Term().Equal(o.Arg.Term())
}

// AsGround wraps p as a GroundProposition if its argument is concrete.
func (p Proposition) AsGround() (GroundProposition, bool) {
	g, ok := AsGround(p.Arg)
	if !ok {
		return GroundProposition{}, false
	}
	return GroundProposition{Relation: p.Relation, Arg: g}, true
}

// MustGroundProposition wraps p as a GroundProposition, panicking if its
// argument is not concrete.
func MustGroundProposition(p Proposition) GroundProposition {
	g, ok := p.AsGround()
	if !ok {
		panic(fmt.Sprintf("fixlat: expected concrete proposition, got %s", p))
	}
	return g
}

// Quantification introduces a universally bound variable. Universal is
// the only supported quantifier kind in this core.
type Quantification struct {
	Variable Name
	Sort     Sort
}
