// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package builtins provides ready-made function implementations for the
// Nat, Bool, and Tuple sorts: small, independently testable values
// meant to be registered into a Module's Functions table rather than
// imported implicitly.
package builtins

import (
	"fmt"

	"fixlat"
)

// Plus computes a + b on Nat terms.
func Plus(args []fixlat.GroundTerm) (fixlat.Term, error) {
	a, b, err := twoNats("plus", args)
	if err != nil {
		return fixlat.Term{}, err
	}
	return fixlat.NatTerm(a + b), nil
}

// Minus computes the truncated subtraction a - b on Nat terms (clamped
// to zero rather than erroring, matching the natural numbers' lack of
// negative values).
func Minus(args []fixlat.GroundTerm) (fixlat.Term, error) {
	a, b, err := twoNats("minus", args)
	if err != nil {
		return fixlat.Term{}, err
	}
	if b > a {
		return fixlat.NatTerm(0), nil
	}
	return fixlat.NatTerm(a - b), nil
}

// Pred computes the predecessor of a Nat term, clamped to zero at zero.
func Pred(args []fixlat.GroundTerm) (fixlat.Term, error) {
	n, err := oneNat("pred", args)
	if err != nil {
		return fixlat.Term{}, err
	}
	if n == 0 {
		return fixlat.NatTerm(0), nil
	}
	return fixlat.NatTerm(n - 1), nil
}

// CompareNat returns True if a <= b, False otherwise.
func CompareNat(args []fixlat.GroundTerm) (fixlat.Term, error) {
	a, b, err := twoNats("compare_nat", args)
	if err != nil {
		return fixlat.Term{}, err
	}
	if a <= b {
		return fixlat.TrueTerm(), nil
	}
	return fixlat.FalseTerm(), nil
}

// And computes the conjunction of two Bool terms.
func And(args []fixlat.GroundTerm) (fixlat.Term, error) {
	a, b, err := twoBools("and", args)
	if err != nil {
		return fixlat.Term{}, err
	}
	if a && b {
		return fixlat.TrueTerm(), nil
	}
	return fixlat.FalseTerm(), nil
}

// Not computes the negation of a Bool term.
func Not(args []fixlat.GroundTerm) (fixlat.Term, error) {
	a, err := oneBool("not", args)
	if err != nil {
		return fixlat.Term{}, err
	}
	if a {
		return fixlat.FalseTerm(), nil
	}
	return fixlat.TrueTerm(), nil
}

// Fst projects the first element of a Tuple term.
func Fst(args []fixlat.GroundTerm) (fixlat.Term, error) {
	return projectTuple("fst", args, 0)
}

// Snd projects the second element of a Tuple term.
func Snd(args []fixlat.GroundTerm) (fixlat.Term, error) {
	return projectTuple("snd", args, 1)
}

func twoNats(name string, args []fixlat.GroundTerm) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := natValue(name, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := natValue(name, args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func oneNat(name string, args []fixlat.GroundTerm) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	return natValue(name, args[0])
}

func natValue(name string, g fixlat.GroundTerm) (int, error) {
	t := g.Term()
	n := 0
	for t.Kind() == fixlat.TermConstructor && t.Ctor() == fixlat.CtorSuc {
		n++
		t = t.Args()[0]
	}
	if t.Kind() != fixlat.TermConstructor || t.Ctor() != fixlat.CtorZero {
		return 0, fmt.Errorf("%s: argument %s is not a Nat", name, g)
	}
	return n, nil
}

func twoBools(name string, args []fixlat.GroundTerm) (bool, bool, error) {
	if len(args) != 2 {
		return false, false, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := boolValue(name, args[0])
	if err != nil {
		return false, false, err
	}
	b, err := boolValue(name, args[1])
	if err != nil {
		return false, false, err
	}
	return a, b, nil
}

func oneBool(name string, args []fixlat.GroundTerm) (bool, error) {
	if len(args) != 1 {
		return false, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	return boolValue(name, args[0])
}

func boolValue(name string, g fixlat.GroundTerm) (bool, error) {
	t := g.Term()
	if t.Kind() != fixlat.TermConstructor {
		return false, fmt.Errorf("%s: argument %s is not a Bool", name, g)
	}
	switch t.Ctor() {
	case fixlat.CtorTrue:
		return true, nil
	case fixlat.CtorFalse:
		return false, nil
	default:
		return false, fmt.Errorf("%s: argument %s is not a Bool", name, g)
	}
}

func projectTuple(name string, args []fixlat.GroundTerm, index int) (fixlat.Term, error) {
	if len(args) != 1 {
		return fixlat.Term{}, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
	}
	t := args[0].Term()
	if t.Kind() != fixlat.TermConstructor || t.Ctor() != fixlat.CtorTuple {
		return fixlat.Term{}, fmt.Errorf("%s: argument %s is not a Tuple", name, args[0])
	}
	if index >= len(t.Args()) {
		return fixlat.Term{}, fmt.Errorf("%s: tuple %s has no element %d", name, args[0], index)
	}
	return t.Args()[index], nil
}
