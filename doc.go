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

// Package fixlat is a semi-naive fixpoint evaluator for a Datalog-style
// deductive engine over a lattice-ordered term algebra. Given a set of
// axioms and Horn-clause rules, Generate computes the least fixpoint of
// the rules applied to the axioms, yielding a database of propositions
// closed under subsumption with respect to a partial order on terms.
//
// The package is deliberately narrow: it has no parser, no pretty
// printer, and no notion of loading a module from a file. Callers build
// a Module value directly (or generate one from some other
// representation) and hand it to Generate.
package fixlat
