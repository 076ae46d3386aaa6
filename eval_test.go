package fixlat

import (
	"errors"
	"testing"
)

func TestEvaluateTermExpandsApplication(t *testing.T) {
	ev := NewEvaluator(map[Name]FunctionDecl{
		"plus": {Impl: func(args []GroundTerm) (Term, error) { return plusFn(args) }},
	})
	got, err := ev.EvaluateTerm(ApplicationTerm("plus", NatSort(), NatTerm(2), NatTerm(3)))
	if err != nil {
		t.Fatalf("EvaluateTerm returned error: %v", err)
	}
	if !got.Equal(NatTerm(5)) {
		t.Fatalf("expected 5, got %s", got)
	}
}

func TestEvaluateTermMissingFunction(t *testing.T) {
	ev := NewEvaluator(nil)
	_, err := ev.EvaluateTerm(ApplicationTerm("nope", NatSort()))
	var missing *MissingFunctionImplementationError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFunctionImplementationError, got %v", err)
	}
}

func TestEvaluateTermWrapsBuiltinError(t *testing.T) {
	sentinel := errors.New("boom")
	ev := NewEvaluator(map[Name]FunctionDecl{
		"fail": {Impl: func(args []GroundTerm) (Term, error) { return Term{}, sentinel }},
	})
	_, err := ev.EvaluateTerm(ApplicationTerm("fail", NatSort()))
	var wrapped *BuiltinEvaluationError
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected BuiltinEvaluationError, got %v", err)
	}
	if !errors.Is(err, sentinel) {
		t.Fatal("BuiltinEvaluationError should unwrap to the underlying error")
	}
}

func TestEvaluateTermPanicsOnUnboundVariable(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("EvaluateTerm should panic on a TermVar")
		}
	}()
	NewEvaluator(nil).EvaluateTerm(VarTerm("x", NatSort()))
}

func TestEvaluateTermRecursesIntoConstructorArgs(t *testing.T) {
	ev := NewEvaluator(map[Name]FunctionDecl{
		"plus": {Impl: func(args []GroundTerm) (Term, error) { return plusFn(args) }},
	})
	got, err := ev.EvaluateTerm(TupleTerm(ApplicationTerm("plus", NatSort(), NatTerm(1), NatTerm(1)), NatTerm(9)))
	if err != nil {
		t.Fatalf("EvaluateTerm returned error: %v", err)
	}
	want := TupleTerm(NatTerm(2), NatTerm(9))
	if !got.Equal(want) {
		t.Fatalf("got %s, want %s", got, want)
	}
}
