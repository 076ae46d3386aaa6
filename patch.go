package fixlat

import "fmt"

// PatchKind identifies which variant of Patch a value holds.
type PatchKind int

const (
	// PatchConclusion carries a newly derived (or axiom) fact to be
	// inserted into the database and tried against every live rule.
	PatchConclusion PatchKind = iota
	// PatchApply carries a partially-matched rule to be tried against
	// every candidate already in the database, and then registered so
	// future facts are tried against it too.
	PatchApply
)

// BatchID tags the group of sibling patches produced by a single learn
// step, for tracing; DefaultComparePatch also uses it to order apply
// patches (newer batches first).
type BatchID int

// Patch is the work-list item of the fixpoint loop: either a concrete
// fact waiting to be learned, or a partially-applied rule waiting to be
// tried against the database.
type Patch struct {
	kind       PatchKind
	conclusion GroundProposition
	apply      PartialRule
	batch      BatchID
}

// NewConclusionPatch wraps a fact as a patch.
func NewConclusionPatch(p GroundProposition, batch BatchID) Patch {
	return Patch{kind: PatchConclusion, conclusion: p, batch: batch}
}

// NewApplyPatch wraps a partially-applied rule as a patch.
func NewApplyPatch(r PartialRule, batch BatchID) Patch {
	return Patch{kind: PatchApply, apply: r, batch: batch}
}

func (p Patch) Kind() PatchKind               { return p.kind }
func (p Patch) Conclusion() GroundProposition { return p.conclusion }
func (p Patch) Apply() PartialRule            { return p.apply }
func (p Patch) Batch() BatchID                { return p.batch }

func (p Patch) withBatch(b BatchID) Patch {
	p.batch = b
	return p
}

func (p Patch) String() string {
	switch p.kind {
	case PatchConclusion:
		return fmt.Sprintf("conclude(%s)", p.conclusion)
	case PatchApply:
		return fmt.Sprintf("apply(%s)", p.apply)
	default:
		return "?"
	}
}

// isSubsumed reports whether a patch is already redundant given db's
// current contents. A PatchApply is never subsumed: a partially-matched
// rule isn't a fact, and nothing in the database dominates it.
// A PatchConclusion is subsumed when some fact already in db subsumes
// its proposition.
func isSubsumed(p Patch, db *Database) bool {
	if p.kind != PatchConclusion {
		return false
	}
	return db.Contains(p.conclusion)
}
