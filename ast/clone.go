package ast

// CloneDeep returns a deep copy of n: every descendant is itself cloned and
// every Annotation is copied (not shared). It is the adapter's clone
// primitive; none of the pass's own rewrite steps currently calls it.
func CloneDeep(n Node) Node {
	switch n := n.(type) {
	case nil:
		return nil

	case *Ident:
		cp := *n
		return &cp
	case *LiteralExpr:
		cp := *n
		return &cp
	case *BinOpExpr:
		cp := *n
		cp.Left = CloneDeep(n.Left).(Expr)
		cp.Right = CloneDeep(n.Right).(Expr)
		return &cp
	case *UnaryOpExpr:
		cp := *n
		cp.Right = CloneDeep(n.Right).(Expr)
		return &cp
	case *ObjectLit:
		cp := *n
		cp.Props = make([]*Property, len(n.Props))
		for i, p := range n.Props {
			pcp := *p
			pcp.Key = CloneDeep(p.Key).(Expr)
			pcp.Value = CloneDeep(p.Value).(Expr)
			cp.Props[i] = &pcp
		}
		return &cp
	case *FuncLit:
		cp := *n
		if n.Name != nil {
			cp.Name = CloneDeep(n.Name).(*Ident)
		}
		cp.Params = make([]*Ident, len(n.Params))
		for i, p := range n.Params {
			cp.Params[i] = CloneDeep(p).(*Ident)
		}
		cp.Body = CloneDeep(n.Body).(*BlockStmt)
		return &cp
	case *CallExpr:
		cp := *n
		cp.Fn = CloneDeep(n.Fn).(Expr)
		cp.Args = make([]Expr, len(n.Args))
		for i, a := range n.Args {
			cp.Args[i] = CloneDeep(a).(Expr)
		}
		return &cp
	case *GetPropertyExpr:
		cp := *n
		cp.Object = CloneDeep(n.Object).(Expr)
		return &cp
	case *AssignExpr:
		cp := *n
		cp.Left = CloneDeep(n.Left).(Expr)
		cp.Right = CloneDeep(n.Right).(Expr)
		return &cp
	case *CommaExpr:
		cp := *n
		cp.Exprs = make([]Expr, len(n.Exprs))
		for i, e := range n.Exprs {
			cp.Exprs[i] = CloneDeep(e).(Expr)
		}
		return &cp
	case *CastExpr:
		cp := *n
		cp.Expr = CloneDeep(n.Expr).(Expr)
		cp.Ann = n.Ann.Clone()
		return &cp

	case *DeclaratorList:
		cp := *n
		cp.Ann = n.Ann.Clone()
		cp.Decls = make([]*Declarator, len(n.Decls))
		for i, d := range n.Decls {
			dcp := *d
			dcp.Name = CloneDeep(d.Name).(*Ident)
			dcp.Ann = d.Ann.Clone()
			if d.Init != nil {
				dcp.Init = CloneDeep(d.Init).(Expr)
			}
			cp.Decls[i] = &dcp
		}
		return &cp
	case *BlockStmt:
		cp := *n
		cp.Stmts = make([]Stmt, len(n.Stmts))
		for i, s := range n.Stmts {
			cp.Stmts[i] = CloneDeep(s).(Stmt)
		}
		return &cp
	case *ExprStmt:
		cp := *n
		cp.X = CloneDeep(n.X).(Expr)
		cp.Ann = n.Ann.Clone()
		return &cp
	case *WhileStmt:
		cp := *n
		cp.Cond = CloneDeep(n.Cond).(Expr)
		cp.Body = CloneDeep(n.Body).(*BlockStmt)
		return &cp
	case *DoWhileStmt:
		cp := *n
		cp.Body = CloneDeep(n.Body).(*BlockStmt)
		cp.Cond = CloneDeep(n.Cond).(Expr)
		return &cp
	case *ForStmt:
		cp := *n
		if n.Init != nil {
			cp.Init = CloneDeep(n.Init).(Stmt)
		}
		if n.Cond != nil {
			cp.Cond = CloneDeep(n.Cond).(Expr)
		}
		if n.Post != nil {
			cp.Post = CloneDeep(n.Post).(Stmt)
		}
		cp.Body = CloneDeep(n.Body).(*BlockStmt)
		return &cp
	case *ForInStmt:
		cp := *n
		if n.Decl != nil {
			cp.Decl = CloneDeep(n.Decl).(*DeclaratorList)
		} else {
			cp.Target = CloneDeep(n.Target).(Expr)
		}
		cp.Right = CloneDeep(n.Right).(Expr)
		cp.Body = CloneDeep(n.Body).(*BlockStmt)
		return &cp
	case *IfStmt:
		cp := *n
		cp.Cond = CloneDeep(n.Cond).(Expr)
		cp.Then = CloneDeep(n.Then).(*BlockStmt)
		if n.Else != nil {
			cp.Else = CloneDeep(n.Else).(Stmt)
		}
		return &cp
	case *LabeledStmt:
		cp := *n
		cp.Stmt = CloneDeep(n.Stmt).(Stmt)
		return &cp
	case *ContinueStmt:
		cp := *n
		return &cp
	case *BreakStmt:
		cp := *n
		return &cp
	case *ReturnStmt:
		cp := *n
		if n.X != nil {
			cp.X = CloneDeep(n.X).(Expr)
		}
		return &cp
	case *EmptyStmt:
		cp := *n
		return &cp

	default:
		panic("ast.CloneDeep: unexpected node type")
	}
}
