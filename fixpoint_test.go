package fixlat

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// propositionStrings returns the String() form of every proposition in
// db, sorted, so two runs can be compared order-independently with
// go-cmp regardless of insertion order.
func propositionStrings(db *Database) []string {
	var out []string
	for _, p := range db.Propositions() {
		out = append(out, p.String())
	}
	sort.Strings(out)
	return out
}

func natOf(g GroundTerm) int {
	t := g.Term()
	n := 0
	for t.Kind() == TermConstructor && t.Ctor() == CtorSuc {
		n++
		t = t.Args()[0]
	}
	return n
}

func plusFn(args []GroundTerm) (Term, error) {
	return NatTerm(natOf(args[0]) + natOf(args[1])), nil
}

// containsRelationNat reports whether db holds relation(n) for some fact.
func containsRelationNat(t *testing.T, db *Database, relation Name, n int) bool {
	t.Helper()
	for _, p := range db.Propositions() {
		if p.Relation == relation && natOf(p.Arg) == n {
			return true
		}
	}
	return false
}

// Scenario S1: successor-chain addition. even(0) plus a step rule
// deriving even(suc(suc(n))) from even(n) should reach even(6) within a
// handful of steps, and never derive an odd value. Each larger even(n)
// evicts the smaller one, so every derived fact is present only up to
// domination by the single surviving (largest) even fact.
func TestScenarioNatSuccession(t *testing.T) {
	m := NewModule()
	m.Relations["even"] = NatSort()
	m.Axioms["base"] = MustGroundProposition(Proposition{Relation: "even", Arg: NatTerm(0)})
	m.Rules["step"] = QuantificationRule(Quantification{Variable: "n", Sort: NatSort()},
		PremiseRule(Proposition{Relation: "even", Arg: VarTerm("n", NatSort())},
			ConclusionRule(Proposition{Relation: "even", Arg: SucTerm(SucTerm(VarTerm("n", NatSort())))})))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"base"}, RuleNames: []Name{"step"}}

	db, err := Generate(context.Background(), m, "default", 50)
	require.NoError(t, err)

	require.Len(t, db.Propositions(), 1, "the database is an anti-chain and even facts are totally ordered")
	for _, n := range []int{0, 2, 4, 6} {
		require.True(t, db.Contains(MustGroundProposition(Proposition{Relation: "even", Arg: NatTerm(n)})), "expected even(%d) present up to domination", n)
	}
	for _, p := range db.Propositions() {
		if p.Relation == "even" && natOf(p.Arg)%2 != 0 {
			t.Fatalf("derived a non-even fact: %s", p)
		}
	}
}

// Scenario S2: transitive closure over a Tuple(Lex, Nat, Nat) "path"
// relation, via a two-premise rule registering a residual PartialRule.
// Lexicographic pairs of Nats are totally ordered, so every base and
// derived pair is present only up to domination, and the final
// anti-chain is the single greatest pair, path(<2, 3>).
func TestScenarioTransitiveClosure(t *testing.T) {
	edge := func(a, b int) GroundProposition {
		return MustGroundProposition(Proposition{Relation: "path", Arg: TupleTerm(NatTerm(a), NatTerm(b))})
	}

	m := NewModule()
	m.Relations["path"] = TupleSort(Lexicographic, NatSort(), NatSort())
	m.Axioms["e01"] = edge(0, 1)
	m.Axioms["e12"] = edge(1, 2)
	m.Axioms["e23"] = edge(2, 3)

	x, y, z := Name("x"), Name("y"), Name("z")
	m.Rules["transitive"] = QuantificationRule(Quantification{Variable: x, Sort: NatSort()},
		QuantificationRule(Quantification{Variable: y, Sort: NatSort()},
			QuantificationRule(Quantification{Variable: z, Sort: NatSort()},
				PremiseRule(Proposition{Relation: "path", Arg: TupleTerm(VarTerm(x, NatSort()), VarTerm(y, NatSort()))},
					PremiseRule(Proposition{Relation: "path", Arg: TupleTerm(VarTerm(y, NatSort()), VarTerm(z, NatSort()))},
						ConclusionRule(Proposition{Relation: "path", Arg: TupleTerm(VarTerm(x, NatSort()), VarTerm(z, NatSort()))}))))))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"e01", "e12", "e23"}, RuleNames: []Name{"transitive"}}

	db, err := Generate(context.Background(), m, "default", 200)
	require.NoError(t, err)

	want := [][2]int{{0, 1}, {1, 2}, {2, 3}, {0, 2}, {1, 3}, {0, 3}}
	for _, w := range want {
		if !db.Contains(edge(w[0], w[1])) {
			t.Fatalf("expected path(%d, %d)", w[0], w[1])
		}
	}

	wantStrings := []string{edge(2, 3).String()}
	if diff := cmp.Diff(wantStrings, propositionStrings(db)); diff != "" {
		t.Fatalf("unexpected path set (-want +got):\n%s", diff)
	}
}

// Scenario S3: Bool subsumption. Deriving confirmed(true) after
// confirmed(false) is already present should evict the weaker fact.
func TestScenarioBoolSubsumption(t *testing.T) {
	m := NewModule()
	m.Relations["confirmed"] = BoolSort()
	m.Axioms["weak"] = MustGroundProposition(Proposition{Relation: "confirmed", Arg: FalseTerm()})
	m.Rules["upgrade"] = PremiseRule(Proposition{Relation: "confirmed", Arg: FalseTerm()},
		ConclusionRule(Proposition{Relation: "confirmed", Arg: TrueTerm()}))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"weak"}, RuleNames: []Name{"upgrade"}}

	db, err := Generate(context.Background(), m, "default", 20)
	require.NoError(t, err)

	props := db.Propositions()
	require.Len(t, props, 1, "the weaker confirmed(false) should have been subsumed")
	require.True(t, props[0].Arg.Term().Equal(TrueTerm()))
}

// Scenario S4: filter gating. A rule whose Filter clause never passes
// should contribute no conclusions, even though its premise matches.
func TestScenarioFilterGating(t *testing.T) {
	m := NewModule()
	m.Relations["seen"] = NatSort()
	m.Relations["flagged"] = NatSort()
	m.Axioms["a1"] = MustGroundProposition(Proposition{Relation: "seen", Arg: NatTerm(3)})
	m.Rules["gate"] = QuantificationRule(Quantification{Variable: "n", Sort: NatSort()},
		PremiseRule(Proposition{Relation: "seen", Arg: VarTerm("n", NatSort())},
			FilterRule(FalseTerm(),
				ConclusionRule(Proposition{Relation: "flagged", Arg: VarTerm("n", NatSort())}))))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"a1"}, RuleNames: []Name{"gate"}}

	db, err := Generate(context.Background(), m, "default", 20)
	require.NoError(t, err)

	for _, p := range db.Propositions() {
		if p.Relation == "flagged" {
			t.Fatalf("a Filter(false) rule should never conclude, but got %s", p)
		}
	}
}

// Scenario S5: let-bound doubling via a registered built-in function.
func TestScenarioLetBindingDoubling(t *testing.T) {
	m := NewModule()
	m.Relations["n"] = NatSort()
	m.Relations["doubled"] = NatSort()
	m.Functions["plus"] = FunctionDecl{ArgSorts: []Sort{NatSort(), NatSort()}, ReturnSort: NatSort(), Impl: plusFn}
	m.Axioms["three"] = MustGroundProposition(Proposition{Relation: "n", Arg: NatTerm(3)})

	x := Name("x")
	doubled := Name("doubled_x")
	m.Rules["double"] = QuantificationRule(Quantification{Variable: x, Sort: NatSort()},
		PremiseRule(Proposition{Relation: "n", Arg: VarTerm(x, NatSort())},
			LetRule(doubled, ApplicationTerm("plus", NatSort(), VarTerm(x, NatSort()), VarTerm(x, NatSort())),
				ConclusionRule(Proposition{Relation: "doubled", Arg: VarTerm(doubled, NatSort())}))))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"three"}, RuleNames: []Name{"double"}}

	db, err := Generate(context.Background(), m, "default", 20)
	require.NoError(t, err)

	require.True(t, containsRelationNat(t, db, "doubled", 6), "expected doubled(6)")
}

// Scenario S6: gas exhaustion ends the loop without error, returning
// whatever partial database was reached.
func TestScenarioGasExhaustionIsNotAnError(t *testing.T) {
	m := NewModule()
	m.Relations["even"] = NatSort()
	m.Axioms["base"] = MustGroundProposition(Proposition{Relation: "even", Arg: NatTerm(0)})
	m.Rules["step"] = QuantificationRule(Quantification{Variable: "n", Sort: NatSort()},
		PremiseRule(Proposition{Relation: "even", Arg: VarTerm("n", NatSort())},
			ConclusionRule(Proposition{Relation: "even", Arg: SucTerm(SucTerm(VarTerm("n", NatSort())))})))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"base"}, RuleNames: []Name{"step"}}

	db, err := Generate(context.Background(), m, "default", 1)
	require.NoError(t, err, "running out of gas must not be an error")
	require.True(t, containsRelationNat(t, db, "even", 0), "the seeded axiom should still be present")
}

func TestGenerateRejectsInvalidModule(t *testing.T) {
	m := NewModule()
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"missing"}}
	_, err := Generate(context.Background(), m, "default", 10)
	require.Error(t, err)
}

func TestGenerateRespectsContextCancellation(t *testing.T) {
	m := NewModule()
	m.Relations["even"] = NatSort()
	m.Axioms["base"] = MustGroundProposition(Proposition{Relation: "even", Arg: NatTerm(0)})
	m.Rules["step"] = QuantificationRule(Quantification{Variable: "n", Sort: NatSort()},
		PremiseRule(Proposition{Relation: "even", Arg: VarTerm("n", NatSort())},
			ConclusionRule(Proposition{Relation: "even", Arg: SucTerm(SucTerm(VarTerm("n", NatSort())))})))
	m.FixpointSpecs["default"] = FixpointSpec{AxiomNames: []Name{"base"}, RuleNames: []Name{"step"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db, err := Generate(ctx, m, "default", 1000)
	require.NoError(t, err)
	require.Empty(t, db.Propositions(), "a context cancelled before the first iteration leaves the seeded axiom unlearned")
}
