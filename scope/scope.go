// Package scope implements the concrete Scope/AST Adapter the specification
// describes only as an external contract (spec.md §2, §3, §6): a scope
// tree answering "declared in which scope?" and "is name N bound in scope
// S?", plus the declare/undeclare/lookup primitives and the
// closest-hoist-scope walk the three transform components are built on.
//
// It is modeled on the teacher's lang/resolver package: a linked list of
// blocks with a per-function Function record, a Cell/Free-style capture
// classification replaced here by the simpler Kind enum this domain needs,
// and a push/pop traversal discipline.
package scope

import "github.com/jscompat/blockscope/ast"

// BlockKind classifies a Scope the way spec.md §3 describes: "global /
// function / block / function-parameter".
type BlockKind uint8

//nolint:revive
const (
	Global BlockKind = iota
	Function
	Block
	Param
)

// Scope is one node of the scope tree. Unlike the teacher's resolver.block,
// it is exported and its traversal primitives (Push, Declare, Undeclare,
// Lookup) are part of this package's public contract, since the rest of
// the module's components are the adapter's callers, not its
// implementation.
type Scope struct {
	parent   *Scope
	kind     BlockKind
	root     ast.Node
	isLoop   bool // true when this scope's root is a loop (or a loop's synthetic wrapper)
	bindings map[string]*Var
	children []*Scope
}

// NewRoot creates the outermost (global) scope for a file.
func NewRoot(root ast.Node) *Scope {
	return &Scope{kind: Global, root: root, bindings: make(map[string]*Var)}
}

// Push creates a child scope of s and returns it.
func (s *Scope) Push(kind BlockKind, root ast.Node, isLoop bool) *Scope {
	child := &Scope{parent: s, kind: kind, root: root, isLoop: isLoop, bindings: make(map[string]*Var)}
	s.children = append(s.children, child)
	return child
}

// Parent returns s's enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Root returns the AST node this scope was pushed for.
func (s *Scope) Root() ast.Node { return s.root }

// Kind reports the scope's kind.
func (s *Scope) Kind() BlockKind { return s.kind }

// IsLoopScope reports whether this scope's root is a loop (or a loop's
// synthetic head/body wrapper), used by the loop-containment predicate
// (spec.md §4.1.1) and by Phase A's enclosing-loop search (§4.2).
func (s *Scope) IsLoopScope() bool { return s.isLoop }

// IsGlobal reports whether s is the file's top-level scope.
func (s *Scope) IsGlobal() bool { return s.kind == Global }

// IsFunctionBlock reports whether s is a function's (or its parameter
// list's) own scope — the adapter's `is_function_block` predicate.
func (s *Scope) IsFunctionBlock() bool { return s.kind == Function || s.kind == Param }

// ClosestHoistScope walks up from s to the nearest function or global
// scope, the "hoist scope" that a `var`-style declaration would belong to
// (spec.md §4.1, Glossary).
func (s *Scope) ClosestHoistScope() *Scope {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.kind == Function || cur.kind == Param || cur.kind == Global {
			return cur
		}
	}
	return nil
}

// InLoop reports whether s lies inside a loop without crossing a function
// boundary first — the loop-containment predicate of spec.md §4.1.1,
// expressed over the scope chain because this adapter pushes a scope at
// exactly the positions the predicate's "nearest enclosing ancestor
// matching {any loop-kind, any function}" would stop at.
func (s *Scope) InLoop() bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.isLoop {
			return true
		}
		if cur.kind == Function || cur.kind == Param {
			return false
		}
	}
	return false
}

// EnclosingLoop returns the nearest ancestor scope (including s) whose
// IsLoopScope is true, stopping the search at the first function or global
// scope reached first — the "enclosing loop" search of spec.md §4.2 Phase
// A step 3. ok is false if no loop scope is reached before a function or
// the global scope.
func (s *Scope) EnclosingLoop() (loop *Scope, ok bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.isLoop {
			return cur, true
		}
		if cur.kind == Function || cur.kind == Global {
			return nil, false
		}
	}
	return nil, false
}

// Declare binds name in s to a fresh Var of the given kind, with origin as
// its declaring node. It does not check for collisions — that policy
// belongs to CollisionResolver, not the adapter.
func (s *Scope) Declare(name string, origin ast.Node, kind Kind) *Var {
	v := &Var{Name: name, OrigName: name, Decl: origin, Kind: kind}
	s.bindings[name] = v
	return v
}

// Undeclare removes name from s's own bindings (not its ancestors').
func (s *Scope) Undeclare(name string) {
	delete(s.bindings, name)
}

// Redeclare moves v into dst under its current Name, as CollisionResolver
// does when hoisting a block-scoped binding to its hoist scope (spec.md
// §4.1: "undeclare the var from its current scope and redeclare it...in
// hoistScope").
func (dst *Scope) Redeclare(v *Var) {
	dst.bindings[v.Name] = v
}

// IsBound reports whether name is bound directly in s (not its ancestors).
func (s *Scope) IsBound(name string) bool {
	_, ok := s.bindings[name]
	return ok
}

// Lookup walks s and its ancestors for name, returning the binding and the
// scope that owns it, or (nil, nil) if unbound anywhere in the chain.
func (s *Scope) Lookup(name string) (*Var, *Scope) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.bindings[name]; ok {
			return v, cur
		}
	}
	return nil, nil
}
