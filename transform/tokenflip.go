package transform

import (
	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/token"
)

// TokenFlipper implements spec.md §4.3, the pass's last step: every
// DeclaratorList remaining in letConst (the letConstSet of spec.md §3) once
// LoopClosureTransformer has finished — a binding that was not captured,
// whether or not CollisionResolver renamed it, or the surviving non-captured declarators of a list that
// was only partly captured — gets retokened to VAR. A CONST list is split
// first (spec.md §4.2.2) so each declarator carries its own constancy
// annotation independently of its siblings, mirroring the split
// LoopClosureTransformer performs for a capture-touched list.
//
// It still walks the whole tree, including nested function bodies: unlike
// LoopClosureTransformer's structural rewrite, which only needs to reach
// loop-local statements (no declaration inside a function literal's own
// body can ever be loop-captured, since a function scope stops the
// enclosing-loop search), a remaining let/const declaration can live
// anywhere a function can nest one, and letConst was built by
// CollisionResolver's full-tree walk up front to cover exactly that. The
// walk here decides what to *do* at each DeclaratorList the tree still
// contains; letConst decides *which* of them still need it.
type TokenFlipper struct {
	letConst map[*ast.DeclaratorList]bool
}

// NewTokenFlipper builds a TokenFlipper consuming letConst, the same
// letConstSet map (spec.md §3) CollisionResolver populated and
// LoopClosureTransformer kept current as it rewrote.
func NewTokenFlipper(letConst map[*ast.DeclaratorList]bool) *TokenFlipper {
	return &TokenFlipper{letConst: letConst}
}

// Run retokens every remaining let/const declarator list in file to var.
func (tf *TokenFlipper) Run(file *ast.File) {
	file.Stmts = tf.flipList(file.Stmts)
}

func (tf *TokenFlipper) flipList(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, tf.flipStmt(s)...)
	}
	return out
}

func (tf *TokenFlipper) flipStmt(s ast.Stmt) []ast.Stmt {
	switch st := s.(type) {
	case *ast.DeclaratorList:
		for _, d := range st.Decls {
			if d.Init != nil {
				tf.flipExpr(&d.Init)
			}
		}
		if !tf.letConst[st] {
			return []ast.Stmt{st}
		}
		if len(st.Decls) > 1 {
			expanded := SplitDeclaratorList([]ast.Stmt{st}, 0, st)
			out := make([]ast.Stmt, len(expanded))
			for i, e := range expanded {
				dl := e.(*ast.DeclaratorList)
				dl.Tok = token.VAR
				out[i] = dl
			}
			return out
		}
		if st.Tok == token.CONST {
			stampConst(st)
		}
		st.Tok = token.VAR
		return []ast.Stmt{st}

	case *ast.BlockStmt:
		st.Stmts = tf.flipList(st.Stmts)
		return []ast.Stmt{st}

	case *ast.ExprStmt:
		tf.flipExpr(&st.X)
		return []ast.Stmt{st}

	case *ast.WhileStmt:
		tf.flipExpr(&st.Cond)
		st.Body.Stmts = tf.flipList(st.Body.Stmts)
		return []ast.Stmt{st}

	case *ast.DoWhileStmt:
		st.Body.Stmts = tf.flipList(st.Body.Stmts)
		tf.flipExpr(&st.Cond)
		return []ast.Stmt{st}

	case *ast.ForStmt:
		if st.Init != nil {
			res := tf.flipStmt(st.Init)
			st.Init = firstOrBlock(res)
		}
		if st.Cond != nil {
			tf.flipExpr(&st.Cond)
		}
		if st.Post != nil {
			tf.flipStmt(st.Post)
		}
		st.Body.Stmts = tf.flipList(st.Body.Stmts)
		return []ast.Stmt{st}

	case *ast.ForInStmt:
		if st.Decl != nil {
			if tf.letConst[st.Decl] {
				if st.Decl.Tok == token.CONST {
					stampConst(st.Decl)
				}
				st.Decl.Tok = token.VAR
			}
		} else {
			tf.flipExpr(&st.Target)
		}
		tf.flipExpr(&st.Right)
		st.Body.Stmts = tf.flipList(st.Body.Stmts)
		return []ast.Stmt{st}

	case *ast.IfStmt:
		tf.flipExpr(&st.Cond)
		st.Then.Stmts = tf.flipList(st.Then.Stmts)
		if st.Else != nil {
			st.Else = firstOrBlock(tf.flipStmt(st.Else))
		}
		return []ast.Stmt{st}

	case *ast.LabeledStmt:
		st.Stmt = firstOrBlock(tf.flipStmt(st.Stmt))
		return []ast.Stmt{st}

	case *ast.ReturnStmt:
		if st.X != nil {
			tf.flipExpr(&st.X)
		}
		return []ast.Stmt{st}

	default:
		return []ast.Stmt{s}
	}
}

func firstOrBlock(stmts []ast.Stmt) ast.Stmt {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ast.BlockStmt{Stmts: stmts}
}

// flipExpr descends into every expression slot looking for a nested
// *ast.FuncLit whose body may itself contain remaining let/const
// declarations.
func (tf *TokenFlipper) flipExpr(ep *ast.Expr) {
	switch e := (*ep).(type) {
	case *ast.BinOpExpr:
		tf.flipExpr(&e.Left)
		tf.flipExpr(&e.Right)
	case *ast.UnaryOpExpr:
		tf.flipExpr(&e.Right)
	case *ast.ObjectLit:
		for _, p := range e.Props {
			tf.flipExpr(&p.Key)
			tf.flipExpr(&p.Value)
		}
	case *ast.FuncLit:
		e.Body.Stmts = tf.flipList(e.Body.Stmts)
	case *ast.CallExpr:
		tf.flipExpr(&e.Fn)
		for i := range e.Args {
			tf.flipExpr(&e.Args[i])
		}
	case *ast.GetPropertyExpr:
		tf.flipExpr(&e.Object)
	case *ast.AssignExpr:
		tf.flipExpr(&e.Left)
		tf.flipExpr(&e.Right)
	case *ast.CommaExpr:
		for i := range e.Exprs {
			tf.flipExpr(&e.Exprs[i])
		}
	case *ast.CastExpr:
		tf.flipExpr(&e.Expr)
	}
}
