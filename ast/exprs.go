package ast

import "github.com/jscompat/blockscope/token"

type (
	// Ident is an identifier, either a reference to an existing binding or
	// the name half of a binding site (a declarator, a parameter, a catch
	// clause, a function name). Which role it plays is determined by its
	// parent node, not by a separate node kind, mirroring how a real parser
	// reuses one identifier node for both.
	Ident struct {
		Name  string
		Start token.Pos
	}

	// LiteralExpr is an opaque literal (number, string, boolean, null,
	// undefined, regex, template). The pass never inspects Raw; it exists so
	// test fixtures and real inputs have something to put in condition and
	// argument positions.
	LiteralExpr struct {
		Raw   string
		Start token.Pos
	}

	// BinOpExpr is an opaque binary operation (comparison, arithmetic,
	// logical). Like LiteralExpr, the pass clones and passes it through
	// without interpreting Op.
	BinOpExpr struct {
		Op          string
		Left, Right Expr
		OpPos       token.Pos
	}

	// UnaryOpExpr is an opaque unary or increment/decrement operation, e.g.
	// i++ in a for-loop's Post clause.
	UnaryOpExpr struct {
		Op      string
		Right   Expr
		Postfix bool
		OpPos   token.Pos
	}

	// PropKind distinguishes a plain value property from an accessor.
	PropKind uint8

	// Property is one entry of an ObjectLit. For Getter/Setter kinds, Value
	// is a *FuncLit with no Name and, respectively, zero or one Param.
	Property struct {
		Kind  PropKind
		Key   Expr // property-key; typically an Ident or LiteralExpr
		Value Expr
	}

	// ObjectLit is an object literal expression. A loop-captured getter or
	// setter causes the whole literal (not just the accessor function) to
	// become the IIFE wrap target (spec.md §4.2 step 6).
	ObjectLit struct {
		Props      []*Property
		Start, End token.Pos
	}

	// FuncLit is a function, used both as an expression (including an IIFE's
	// callee) and, when Name is non-nil, as a function declaration.
	FuncLit struct {
		Name   *Ident // nil for function expressions
		Params []*Ident
		Body   *BlockStmt
		Start  token.Pos
	}

	// CallExpr is a function call. FreeCall records whether the callee was
	// referenced without a receiver (e.g. `f()` vs `obj.f()`); rewriting a
	// callee identifier into a get-property expression changes receiver
	// semantics, so the rewrite clears this flag (spec.md §4.2 step 4).
	CallExpr struct {
		Fn       Expr
		Args     []Expr
		FreeCall bool
		Start    token.Pos
	}

	// GetPropertyExpr is `Object.Name`, the form captured variable
	// references are rewritten to (spec.md §4.2 step 4): `<loopobj>.<prop>`.
	GetPropertyExpr struct {
		Object Expr
		Name   string
		Dot    token.Pos
	}

	// AssignExpr is `Left = Right`, used both for ordinary assignment
	// expressions and for the synthesized loop-object update/reseat
	// expression (spec.md §4.2 step 2).
	AssignExpr struct {
		Left, Right Expr
		AssignPos   token.Pos
	}

	// CommaExpr is a parenthesized comma sequence, used to splice the
	// loop-object update in front of a C-style for loop's original update
	// clause (spec.md §4.2 step 3): `(update_assign, original_update)`.
	CommaExpr struct {
		Exprs []Expr
	}

	// CastExpr is an opaque type-cast wrapper carrying an annotation; the
	// pass only copies and propagates it along cloned nodes.
	CastExpr struct {
		Expr  Expr
		Ann   *Annotation
		Start token.Pos
	}
)

// Property kinds.
const (
	PropPlain PropKind = iota
	PropGetter
	PropSetter
)

func (*Ident) exprNode()           {}
func (*LiteralExpr) exprNode()     {}
func (*BinOpExpr) exprNode()       {}
func (*UnaryOpExpr) exprNode()     {}
func (*ObjectLit) exprNode()       {}
func (*FuncLit) exprNode()         {}
func (*CallExpr) exprNode()        {}
func (*GetPropertyExpr) exprNode() {}
func (*AssignExpr) exprNode()      {}
func (*CommaExpr) exprNode()       {}
func (*CastExpr) exprNode()        {}

func (n *Ident) Span() (token.Pos, token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Name))
}
func (n *Ident) Walk(Visitor) {}

func (n *LiteralExpr) Span() (token.Pos, token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *LiteralExpr) Walk(Visitor) {}

func (n *BinOpExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *UnaryOpExpr) Span() (start, end token.Pos) {
	rs, re := n.Right.Span()
	if n.Postfix {
		return rs, re
	}
	return n.OpPos, re
}
func (n *UnaryOpExpr) Walk(v Visitor) { Walk(v, n.Right) }

func (n *ObjectLit) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *ObjectLit) Walk(v Visitor) {
	for _, p := range n.Props {
		Walk(v, p.Key)
		Walk(v, p.Value)
	}
}

func (n *FuncLit) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *FuncLit) Walk(v Visitor) {
	if n.Name != nil {
		Walk(v, n.Name)
	}
	for _, p := range n.Params {
		Walk(v, p)
	}
	Walk(v, n.Body)
}

func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Fn.Span()
	end = start
	if len(n.Args) > 0 {
		_, end = n.Args[len(n.Args)-1].Span()
	}
	return start, end
}
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *GetPropertyExpr) Span() (start, end token.Pos) {
	start, _ = n.Object.Span()
	return start, n.Dot + token.Pos(len(n.Name)+1)
}
func (n *GetPropertyExpr) Walk(v Visitor) { Walk(v, n.Object) }

func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Left.Span()
	_, end = n.Right.Span()
	return start, end
}
func (n *AssignExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}

func (n *CommaExpr) Span() (start, end token.Pos) {
	if len(n.Exprs) == 0 {
		return token.NoPos, token.NoPos
	}
	start, _ = n.Exprs[0].Span()
	_, end = n.Exprs[len(n.Exprs)-1].Span()
	return start, end
}
func (n *CommaExpr) Walk(v Visitor) {
	for _, e := range n.Exprs {
		Walk(v, e)
	}
}

func (n *CastExpr) Span() (start, end token.Pos) {
	_, end = n.Expr.Span()
	return n.Start, end
}
func (n *CastExpr) Walk(v Visitor) { Walk(v, n.Expr) }
