// Package ast defines the AST node contract the pass operates on. It is a
// concrete stand-in for the external, opaque AST adapter described by the
// specification: parsing, scope analysis and earlier lowering passes
// (destructuring, classes, for-of, arrow functions) are assumed to have
// already run and produced a tree of these nodes.
package ast

import (
	"github.com/jscompat/blockscope/token"
)

// Node is any node in the AST. Node kinds form a closed, tagged-union set
// (see the concrete types in exprs.go and stmts.go) rather than an open
// class hierarchy, so callers pattern-match with a type switch.
type Node interface {
	// Span reports the node's start and end source position. Nodes
	// synthesized by the pass (a loop object's declaration, an IIFE wrap)
	// report token.NoPos on one or both ends.
	Span() (start, end token.Pos)

	// Walk visits the node's children in source order.
	Walk(v Visitor)
}

// Expr is any node usable as an expression.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any node usable as a statement.
type Stmt interface {
	Node
	// IsLoop reports whether the statement is one of the four loop kinds,
	// or a label attached to one.
	IsLoop() bool
}

// Annotation is the opaque bundle of JSDoc/@const/type-color metadata the
// pass propagates but never interprets. CloneDeep copies it by value (a
// shallow struct copy), so a node and its clone never alias the same
// Annotation and a mutation to one (e.g. stamping @const) never leaks to
// the other.
type Annotation struct {
	JSDoc     string // opaque inline comment text, copied verbatim
	Const     bool   // stamped by declarator-list normalization (spec.md §4.2.2, §4.3)
	TypeColor any    // opaque type/color tag from the attribution system
}

// Clone returns a copy of a, or nil if a is nil.
func (a *Annotation) Clone() *Annotation {
	if a == nil {
		return nil
	}
	cp := *a
	return &cp
}

// File is a single parsed compilation unit. Its global scope is tracked
// separately by the scope package (scope.NewRoot), keeping the AST package
// free of a dependency on the scope adapter it is consumed by.
type File struct {
	Name  string
	Stmts []Stmt
}

// Walk visits every top-level statement in source order.
func (f *File) Walk(v Visitor) {
	for _, s := range f.Stmts {
		Walk(v, s)
	}
}

// Span reports the span of f's first and last top-level statement, or
// token.NoPos on both ends for an empty file. Implementing Node lets a File
// be passed directly to Walk/WalkPostOrder, as CollisionResolver.Run does.
func (f *File) Span() (start, end token.Pos) {
	if len(f.Stmts) == 0 {
		return token.NoPos, token.NoPos
	}
	start, _ = f.Stmts[0].Span()
	_, end = f.Stmts[len(f.Stmts)-1].Span()
	return start, end
}
