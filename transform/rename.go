package transform

import (
	"golang.org/x/exp/slices"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/scope"
)

// RenameKey is the RenameTable's key of spec.md §3: "a mapping keyed by
// (scope_root_node, original_name)".
type RenameKey struct {
	Root ast.Node
	Name string
}

// RenameTable maps a (declaring scope root, original name) pair to the
// replacement name CollisionResolver assigned it. "No entry means 'do not
// rename'" (spec.md §3).
type RenameTable map[RenameKey]string

// RenameEntry is one row of a RenameTable, surfaced for reporting.
type RenameEntry struct {
	Name    string
	NewName string
}

// Sorted returns table's entries ordered alphabetically by original name,
// for deterministic diagnostic output: a RenameTable has no iteration
// order of its own, but a human reading a rename report (or a test
// asserting on one) needs one. This is purely a reporting concern — the
// rewrite itself (ApplyRenameTable, and CollisionResolver's own renaming)
// never depends on this order, since spec.md requires declarators to be
// processed in their own discovery order instead.
func (t RenameTable) Sorted() []RenameEntry {
	out := make([]RenameEntry, 0, len(t))
	for k, v := range t {
		out = append(out, RenameEntry{Name: k.Name, NewName: v})
	}
	slices.SortFunc(out, func(a, b RenameEntry) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		default:
			return 0
		}
	})
	return out
}

// ApplyRenameTable is the reference-rewriting pass spec.md §2 places
// between CollisionResolver and LoopClosureTransformer ("a renaming pass
// that removes identifier collisions... specified only at their
// interface"). It is the one external collaborator this module implements
// concretely (alongside the scope adapter), since without it the renames
// CollisionResolver records would never reach the identifier references
// that used the old name.
//
// For each reference it walks outward from the reference's scope and stops
// at the first scope that either has a RenameTable entry for the name (the
// binding declared there was renamed and moved to its hoist scope, so the
// reference takes the new name) or still binds the name itself (a closer,
// unrelated declaration of the same name, which wins). A plain Lookup by
// the old name would not do: when a rename was forced by a same-named
// binding in the hoist scope, that lookup finds the other binding.
func ApplyRenameTable(scopes *scope.Scopes, table RenameTable) {
	if len(table) == 0 {
		return
	}
	for _, ref := range scopes.References {
		s := scopes.Of(ref)
		if s == nil {
			continue
		}
		for cur := s; cur != nil; cur = cur.Parent() {
			if newName, ok := table[RenameKey{Root: cur.Root(), Name: ref.Name}]; ok {
				ref.Name = newName
				break
			}
			if cur.IsBound(ref.Name) {
				break
			}
		}
	}
}
