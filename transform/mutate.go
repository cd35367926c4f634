package transform

import (
	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/token"
)

// exprMatcher decides whether an expression slot should be replaced, and
// with what. It is the concrete stand-in for the adapter's generic "replace"
// mutation primitive (spec.md §2, §6): substStmt/substExprPtr walk every
// statement and expression slot reachable from a root, asking match at each
// one. Function bodies are walked too — unlike the continue-rewrite's
// should_descend hook (§9), an ordinary reference or wrap-target replacement
// must reach into nested functions, since a captured reference or a nested
// closure is exactly what LoopClosureTransformer is looking for.
type exprMatcher func(ast.Expr) (ast.Expr, bool)

// identMatcher adapts a map keyed by identifier node identity to an
// exprMatcher, used by LoopClosureTransformer's step-4 reference rewrite.
func identMatcher(subst map[*ast.Ident]ast.Expr) exprMatcher {
	return func(e ast.Expr) (ast.Expr, bool) {
		if id, ok := e.(*ast.Ident); ok {
			if repl, ok := subst[id]; ok {
				return repl, true
			}
		}
		return nil, false
	}
}

// nodeMatcher matches a single expression node by identity, used by
// LoopClosureTransformer's step-5 wrap-target replacement.
func nodeMatcher(old, repl ast.Expr) exprMatcher {
	return func(e ast.Expr) (ast.Expr, bool) {
		if e == old {
			return repl, true
		}
		return nil, false
	}
}

// substIdents rewrites every identifier reference found in subst, reachable
// from root.
func substIdents(root ast.Stmt, subst map[*ast.Ident]ast.Expr) {
	if len(subst) == 0 {
		return
	}
	substStmt(root, identMatcher(subst))
}

// replaceExprEverywhere rewrites the single expression node old (matched by
// identity) to repl, wherever it appears among stmts.
func replaceExprEverywhere(stmts []ast.Stmt, old, repl ast.Expr) {
	match := nodeMatcher(old, repl)
	for _, s := range stmts {
		substStmt(s, match)
	}
}

func substStmt(s ast.Stmt, match exprMatcher) {
	switch s := s.(type) {
	case *ast.DeclaratorList:
		for _, d := range s.Decls {
			if d.Init != nil {
				substExprPtr(&d.Init, match)
			}
		}
	case *ast.BlockStmt:
		for i := range s.Stmts {
			substStmt(s.Stmts[i], match)
		}
	case *ast.ExprStmt:
		substExprPtr(&s.X, match)
	case *ast.WhileStmt:
		substExprPtr(&s.Cond, match)
		substStmt(s.Body, match)
	case *ast.DoWhileStmt:
		substStmt(s.Body, match)
		substExprPtr(&s.Cond, match)
	case *ast.ForStmt:
		if s.Init != nil {
			substStmt(s.Init, match)
		}
		if s.Cond != nil {
			substExprPtr(&s.Cond, match)
		}
		if s.Post != nil {
			substStmt(s.Post, match)
		}
		substStmt(s.Body, match)
	case *ast.ForInStmt:
		if s.Decl != nil {
			substStmt(s.Decl, match)
		} else {
			substExprPtr(&s.Target, match)
		}
		substExprPtr(&s.Right, match)
		substStmt(s.Body, match)
	case *ast.IfStmt:
		substExprPtr(&s.Cond, match)
		substStmt(s.Then, match)
		if s.Else != nil {
			substStmt(s.Else, match)
		}
	case *ast.LabeledStmt:
		substStmt(s.Stmt, match)
	case *ast.ReturnStmt:
		if s.X != nil {
			substExprPtr(&s.X, match)
		}
	case *ast.ContinueStmt, *ast.BreakStmt, *ast.EmptyStmt:
		// leaves
	}
}

func substExprPtr(ep *ast.Expr, match exprMatcher) {
	if repl, ok := match(*ep); ok {
		*ep = repl
		return
	}
	switch e := (*ep).(type) {
	case *ast.BinOpExpr:
		substExprPtr(&e.Left, match)
		substExprPtr(&e.Right, match)
	case *ast.UnaryOpExpr:
		substExprPtr(&e.Right, match)
	case *ast.ObjectLit:
		for _, p := range e.Props {
			substExprPtr(&p.Key, match)
			substExprPtr(&p.Value, match)
		}
	case *ast.FuncLit:
		substStmt(e.Body, match)
	case *ast.CallExpr:
		substExprPtr(&e.Fn, match)
		for i := range e.Args {
			substExprPtr(&e.Args[i], match)
		}
	case *ast.GetPropertyExpr:
		substExprPtr(&e.Object, match)
	case *ast.AssignExpr:
		substExprPtr(&e.Left, match)
		substExprPtr(&e.Right, match)
	case *ast.CommaExpr:
		for i := range e.Exprs {
			substExprPtr(&e.Exprs[i], match)
		}
	case *ast.CastExpr:
		substExprPtr(&e.Expr, match)
	}
}

// replaceExprStmtInList finds the *ast.ExprStmt whose expression is target
// (matched by identity — this is how a function-declaration statement,
// `function f() {...}`, is represented: an ExprStmt wrapping a named
// *ast.FuncLit) among stmts or the statement lists nested in blocks, if
// branches (a block else, not an else-if), loop bodies and labeled
// statements, and swaps it for replacement. Function bodies are not
// searched. It reports whether a replacement was made.
func replaceExprStmtInList(stmts []ast.Stmt, target ast.Expr, replacement ast.Stmt) bool {
	for i, s := range stmts {
		if es, ok := s.(*ast.ExprStmt); ok && es.X == target {
			stmts[i] = replacement
			return true
		}
	}
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.BlockStmt:
			if replaceExprStmtInList(st.Stmts, target, replacement) {
				return true
			}
		case *ast.IfStmt:
			if replaceExprStmtInList(st.Then.Stmts, target, replacement) {
				return true
			}
			if blk, ok := st.Else.(*ast.BlockStmt); ok {
				if replaceExprStmtInList(blk.Stmts, target, replacement) {
					return true
				}
			}
		case *ast.WhileStmt:
			if replaceExprStmtInList(st.Body.Stmts, target, replacement) {
				return true
			}
		case *ast.DoWhileStmt:
			if replaceExprStmtInList(st.Body.Stmts, target, replacement) {
				return true
			}
		case *ast.ForStmt:
			if replaceExprStmtInList(st.Body.Stmts, target, replacement) {
				return true
			}
		case *ast.ForInStmt:
			if replaceExprStmtInList(st.Body.Stmts, target, replacement) {
				return true
			}
		case *ast.LabeledStmt:
			wrapper := []ast.Stmt{st.Stmt}
			if replaceExprStmtInList(wrapper, target, replacement) {
				st.Stmt = wrapper[0]
				return true
			}
		}
	}
	return false
}

// SplitDeclaratorList implements spec.md §4.2.2: split dl's declarators
// right-to-left into single-declarator lists inserted after it in stmts
// (found at idx), stamping a constancy annotation onto every resulting list
// when dl was a const list. It is a no-op, returning stmts unchanged, when
// dl already has at most one declarator. Shared by LoopClosureTransformer's
// step-4 normalization and TokenFlipper's final pass (spec.md §4.3).
func SplitDeclaratorList(stmts []ast.Stmt, idx int, dl *ast.DeclaratorList) []ast.Stmt {
	if len(dl.Decls) <= 1 {
		if dl.Tok == token.CONST {
			stampConst(dl)
		}
		return stmts
	}
	isConst := dl.Tok == token.CONST
	rest := dl.Decls[1:]
	dl.Decls = dl.Decls[:1]
	if isConst {
		stampConst(dl)
	}

	inserted := make([]ast.Stmt, len(rest))
	for i, d := range rest {
		list := &ast.DeclaratorList{
			Tok:       dl.Tok,
			Decls:     []*ast.Declarator{d},
			Start:     dl.Start,
			ForInHead: dl.ForInHead,
		}
		if isConst {
			stampConst(list)
		}
		inserted[i] = list
	}

	out := make([]ast.Stmt, 0, len(stmts)+len(inserted))
	out = append(out, stmts[:idx+1]...)
	out = append(out, inserted...)
	out = append(out, stmts[idx+1:]...)
	return out
}

func stampConst(dl *ast.DeclaratorList) {
	if dl.Ann == nil {
		dl.Ann = &ast.Annotation{}
	}
	dl.Ann.Const = true
	for _, d := range dl.Decls {
		if d.Ann == nil {
			d.Ann = &ast.Annotation{}
		}
		d.Ann.Const = true
	}
}
