package ast

import "github.com/jscompat/blockscope/token"

type (
	// Declarator is one `name` or `name = init` entry of a DeclaratorList. It
	// is not itself a Node (like the teacher's FuncSignature/ClassBody, it is
	// a plain supporting struct walked manually by its owner).
	Declarator struct {
		Name *Ident
		Init Expr // nil if no initializer
		Ann  *Annotation
	}

	// DeclaratorList is a `var`/`let`/`const` declaration statement, holding
	// one or more comma-separated declarators. This is the node kind
	// TokenFlipper and the loop-closure rewrite ultimately consume and
	// replace.
	DeclaratorList struct {
		Tok   token.DeclToken
		Decls []*Declarator
		Ann   *Annotation // inline JSDoc on the whole list
		Start token.Pos

		// ForInHead is true when this list is a for-in loop's head binding
		// (`for (let k in obj)`), which never takes an explicit initializer
		// and is excluded from the "insert undefined initializer" rule of
		// spec.md §4.1.
		ForInHead bool
	}

	// BlockStmt is a brace-delimited sequence of statements.
	BlockStmt struct {
		Stmts      []Stmt
		Start, End token.Pos
	}

	// ExprStmt is an expression used as a statement. Ann is non-nil only for
	// an expression statement synthesized by LoopClosureTransformer's step 4
	// declarator-list branch, carrying the inline JSDoc/constancy annotation
	// transferred from the declarator it replaced.
	ExprStmt struct {
		X   Expr
		Ann *Annotation
	}

	// WhileStmt is a pre-test loop.
	WhileStmt struct {
		Cond  Expr
		Body  *BlockStmt
		Start token.Pos
	}

	// DoWhileStmt is a post-test loop.
	DoWhileStmt struct {
		Body  *BlockStmt
		Cond  Expr
		Start token.Pos
	}

	// ForStmt is a 3-clause C-style for loop. Init/Post may be nil; Init, if
	// present, is a *DeclaratorList, an *AssignExpr wrapped in *ExprStmt, or
	// a plain *ExprStmt (a call).
	ForStmt struct {
		Init  Stmt
		Cond  Expr
		Post  Stmt
		Body  *BlockStmt
		Start token.Pos
	}

	// ForInStmt is a for-in loop. Decl is non-nil when the loop head
	// declares its binding (`for (let k in obj)`); otherwise Target is an
	// existing assignable expression.
	ForInStmt struct {
		Decl   *DeclaratorList // non-nil for `for (let k in obj)`
		Target Expr            // non-nil when Decl is nil
		Right  Expr
		Body   *BlockStmt
		Start  token.Pos
	}

	// IfStmt is a conditional. Else is nil when there is no else-clause, a
	// *BlockStmt for a plain else, or a nested *IfStmt for an else-if chain.
	IfStmt struct {
		Cond  Expr
		Then  *BlockStmt
		Else  Stmt
		Start token.Pos
	}

	// LabeledStmt attaches a label to a statement, most commonly a loop.
	LabeledStmt struct {
		Label string
		Stmt  Stmt
		Start token.Pos
	}

	// ContinueStmt is `continue` or `continue label`.
	ContinueStmt struct {
		Label string // empty if unlabeled
		Start token.Pos
	}

	// BreakStmt is `break` or `break label`.
	BreakStmt struct {
		Label string // empty if unlabeled
		Start token.Pos
	}

	// ReturnStmt is `return` or `return expr`.
	ReturnStmt struct {
		X     Expr // nil for bare return
		Start token.Pos
	}

	// EmptyStmt is a bare `;`.
	EmptyStmt struct {
		Start token.Pos
	}
)

func (n *DeclaratorList) IsLoop() bool { return false }
func (n *BlockStmt) IsLoop() bool      { return false }
func (n *ExprStmt) IsLoop() bool       { return false }
func (n *WhileStmt) IsLoop() bool      { return true }
func (n *DoWhileStmt) IsLoop() bool    { return true }
func (n *ForStmt) IsLoop() bool        { return true }
func (n *ForInStmt) IsLoop() bool      { return true }
func (n *IfStmt) IsLoop() bool         { return false }
func (n *LabeledStmt) IsLoop() bool    { return n.Stmt != nil && n.Stmt.IsLoop() }
func (n *ContinueStmt) IsLoop() bool   { return false }
func (n *BreakStmt) IsLoop() bool      { return false }
func (n *ReturnStmt) IsLoop() bool     { return false }
func (n *EmptyStmt) IsLoop() bool      { return false }

func (n *DeclaratorList) Span() (start, end token.Pos) {
	end = n.Start
	if len(n.Decls) > 0 {
		last := n.Decls[len(n.Decls)-1]
		if last.Init != nil {
			_, end = last.Init.Span()
		} else {
			_, end = last.Name.Span()
		}
	}
	return n.Start, end
}
func (n *DeclaratorList) Walk(v Visitor) {
	for _, d := range n.Decls {
		Walk(v, d.Name)
		if d.Init != nil {
			Walk(v, d.Init)
		}
	}
}

func (n *BlockStmt) Span() (token.Pos, token.Pos) { return n.Start, n.End }
func (n *BlockStmt) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

func (n *ExprStmt) Span() (start, end token.Pos) { return n.X.Span() }
func (n *ExprStmt) Walk(v Visitor)               { Walk(v, n.X) }

func (n *WhileStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *WhileStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Body)
}

func (n *DoWhileStmt) Span() (start, end token.Pos) {
	_, end = n.Cond.Span()
	return n.Start, end
}
func (n *DoWhileStmt) Walk(v Visitor) {
	Walk(v, n.Body)
	Walk(v, n.Cond)
}

func (n *ForStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *ForStmt) Walk(v Visitor) {
	if n.Init != nil {
		Walk(v, n.Init)
	}
	if n.Cond != nil {
		Walk(v, n.Cond)
	}
	if n.Post != nil {
		Walk(v, n.Post)
	}
	Walk(v, n.Body)
}

func (n *ForInStmt) Span() (start, end token.Pos) {
	_, end = n.Body.Span()
	return n.Start, end
}
func (n *ForInStmt) Walk(v Visitor) {
	if n.Decl != nil {
		Walk(v, n.Decl)
	} else {
		Walk(v, n.Target)
	}
	Walk(v, n.Right)
	Walk(v, n.Body)
}

func (n *IfStmt) Span() (start, end token.Pos) {
	end = n.Start
	if n.Else != nil {
		_, end = n.Else.Span()
	} else {
		_, end = n.Then.Span()
	}
	return n.Start, end
}
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}

func (n *LabeledStmt) Span() (start, end token.Pos) {
	_, end = n.Stmt.Span()
	return n.Start, end
}
func (n *LabeledStmt) Walk(v Visitor) { Walk(v, n.Stmt) }

func (n *ContinueStmt) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *ContinueStmt) Walk(Visitor)                 {}

func (n *BreakStmt) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *BreakStmt) Walk(Visitor)                 {}

func (n *ReturnStmt) Span() (start, end token.Pos) {
	end = n.Start
	if n.X != nil {
		_, end = n.X.Span()
	}
	return n.Start, end
}
func (n *ReturnStmt) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
}

func (n *EmptyStmt) Span() (token.Pos, token.Pos) { return n.Start, n.Start }
func (n *EmptyStmt) Walk(Visitor)                 {}
