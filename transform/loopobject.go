package transform

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/scope"
)

// LoopObject is spec.md §3's per-loop synthesized record: one per enclosing
// loop that contains any captured block-scoped variable. Its Vars set is
// insertion-ordered and idempotent, since the order the captured vars were
// first discovered in is also the order their property assignments appear
// in the synthesized update object literal (spec.md §4.2 step 2).
type LoopObject struct {
	Name string
	Root ast.Node // the loop scope's root node, the loop object's declare-before target

	vars []*scope.Var
	seen map[*scope.Var]bool
}

func newLoopObject(ids *scope.IDGen, root ast.Node) *LoopObject {
	return &LoopObject{
		Name: ids.Name("$jscomp$loop"),
		Root: root,
		seen: make(map[*scope.Var]bool),
	}
}

// Add inserts v into the loop object if not already present.
func (lo *LoopObject) Add(v *scope.Var) {
	if lo.seen[v] {
		return
	}
	lo.seen[v] = true
	lo.vars = append(lo.vars, v)
}

// Vars returns the captured vars in discovery order.
func (lo *LoopObject) Vars() []*scope.Var { return lo.vars }

// PropertyNameMap maps a captured Var to its unique loop-object property
// name (spec.md §3). It is a plain map, not a swiss.Map: it is keyed by
// pointer identity, stays small (bounded by the number of captured
// variables in one file), and nothing reads it in bulk the way
// ReferenceMap and ClosureWrapMap are read back in Phase B — see
// DESIGN.md for why this is the one table in this file built on the
// standard library.
type PropertyNameMap map[*scope.Var]string

// PropertyNameFor returns the property name assigned to v, creating one
// with the form `$jscomp$loop$prop$<origname>$<id>` (spec.md §6) if v has
// none yet.
func (m PropertyNameMap) PropertyNameFor(v *scope.Var, ids *scope.IDGen) string {
	if name, ok := m[v]; ok {
		return name
	}
	name := ids.Name(fmt.Sprintf("$jscomp$loop$prop$%s", v.OrigName))
	m[v] = name
	return name
}

// ReferenceMap is the multimap from Var to every identifier reference to
// it discovered during Phase A (spec.md §3). Backed by swiss.Map, mirroring
// the teacher's own choice for its machine.Map value type (lang/machine
// /map.go), since Phase A performs a large, statically-unknown number of
// inserts and Phase B reads the whole table back densely, one Var at a
// time.
type ReferenceMap struct {
	m *swiss.Map[*scope.Var, []*ast.Ident]
}

// NewReferenceMap creates an empty ReferenceMap sized for capacity entries.
func NewReferenceMap(capacity uint32) *ReferenceMap {
	return &ReferenceMap{m: swiss.NewMap[*scope.Var, []*ast.Ident](capacity)}
}

// Add records that ref is a reference to v.
func (r *ReferenceMap) Add(v *scope.Var, ref *ast.Ident) {
	refs, _ := r.m.Get(v)
	refs = append(refs, ref)
	r.m.Put(v, refs)
}

// Get returns every reference recorded for v.
func (r *ReferenceMap) Get(v *scope.Var) []*ast.Ident {
	refs, _ := r.m.Get(v)
	return refs
}

// closureWrapKey is ClosureWrapMap's per-insert dedup key (spec.md §3: "a
// wrap target is enqueued at most once per captured variable name").
type closureWrapKey struct {
	target  ast.Node
	varName string
}

// ClosureWrapMap is the multimap from a wrap target to the LoopObjects
// whose variables it captures (spec.md §3), backed by swiss.Map for the
// same reason as ReferenceMap: a statically-unknown, potentially large
// number of inserts during Phase A read back once per wrap target in
// Phase B step 5.
type ClosureWrapMap struct {
	m     *swiss.Map[ast.Node, []*LoopObject]
	added *swiss.Map[closureWrapKey, bool]
}

// NewClosureWrapMap creates an empty ClosureWrapMap sized for capacity
// wrap targets.
func NewClosureWrapMap(capacity uint32) *ClosureWrapMap {
	return &ClosureWrapMap{
		m:     swiss.NewMap[ast.Node, []*LoopObject](capacity),
		added: swiss.NewMap[closureWrapKey, bool](capacity),
	}
}

// Add records that target captures lo, the Var identified by varName. It is
// a no-op if (target, varName) was already recorded, and reports whether it
// was newly recorded. lo is listed once per target, however many of its
// vars target captures.
func (c *ClosureWrapMap) Add(target ast.Node, varName string, lo *LoopObject) bool {
	key := closureWrapKey{target: target, varName: varName}
	if _, ok := c.added.Get(key); ok {
		return false
	}
	c.added.Put(key, true)
	los, _ := c.m.Get(target)
	for _, have := range los {
		if have == lo {
			return true
		}
	}
	los = append(los, lo)
	c.m.Put(target, los)
	return true
}

// Get returns the LoopObjects captured by target, in discovery order.
func (c *ClosureWrapMap) Get(target ast.Node) []*LoopObject {
	los, _ := c.m.Get(target)
	return los
}

// Targets returns every wrap target recorded, in an arbitrary
// (swiss-map iteration) order; callers needing discovery order should track
// it themselves as targets are first added, which is what
// LoopClosureTransformer does.
func (c *ClosureWrapMap) Targets() []ast.Node {
	var out []ast.Node
	c.m.Iter(func(k ast.Node, _ []*LoopObject) bool {
		out = append(out, k)
		return false
	})
	return out
}
