package transform

import "github.com/jscompat/blockscope/scope"

// NameSet is the small string-set type backing UndeclaredNames and
// ExternNames (spec.md §3). Both are populated once before the main
// traversal and only ever queried afterward, so a bare map is enough —
// neither needs the density or insert-heavy profile that justifies
// reaching for swiss.Map elsewhere in this package (see DESIGN.md).
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is a member of s. A nil NameSet behaves as empty.
func (s NameSet) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s[name]
	return ok
}

// Add inserts name into s.
func (s NameSet) Add(name string) { s[name] = struct{}{} }

// CollectUndeclaredNames implements spec.md §4.1.2: pre-traverse every
// reference and add its name to the result whenever it is not bound
// anywhere in its scope chain. Callers only need to run this when the
// driver indicates the AST may contain free identifiers; otherwise an
// empty NameSet is the correct, conservative input to CollisionResolver.
func CollectUndeclaredNames(scopes *scope.Scopes) NameSet {
	undeclared := make(NameSet)
	for _, ref := range scopes.References {
		s := scopes.Of(ref)
		if s == nil {
			continue
		}
		if v, _ := s.Lookup(ref.Name); v == nil {
			undeclared.Add(ref.Name)
		}
	}
	return undeclared
}
