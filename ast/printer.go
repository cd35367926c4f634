package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented, one-node-per-line description of n to w. It is
// meant for tests and debugging, not round-tripping; node descriptions are
// deliberately terse (kind + the fields that distinguish it).
func Dump(w io.Writer, n Node) error {
	d := &dumper{w: w}
	Walk(d, n)
	return d.err
}

type dumper struct {
	w     io.Writer
	depth int
	err   error
}

func (d *dumper) Visit(n Node, dir VisitDirection) Visitor {
	if dir == VisitExit {
		d.depth--
		return d
	}
	if d.err != nil {
		return nil
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat(". ", d.depth), describe(n))
	d.depth++
	return d
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Ident:
		return "ident " + n.Name
	case *LiteralExpr:
		return "literal " + n.Raw
	case *BinOpExpr:
		return "binop " + n.Op
	case *UnaryOpExpr:
		return "unop " + n.Op
	case *ObjectLit:
		return fmt.Sprintf("object {props=%d}", len(n.Props))
	case *FuncLit:
		name := "<anon>"
		if n.Name != nil {
			name = n.Name.Name
		}
		return "func " + name
	case *CallExpr:
		return fmt.Sprintf("call {args=%d, free=%v}", len(n.Args), n.FreeCall)
	case *GetPropertyExpr:
		return "getprop ." + n.Name
	case *AssignExpr:
		return "assign"
	case *CommaExpr:
		return fmt.Sprintf("comma {n=%d}", len(n.Exprs))
	case *CastExpr:
		return "cast"
	case *DeclaratorList:
		return fmt.Sprintf("%s decl {n=%d}", n.Tok, len(n.Decls))
	case *BlockStmt:
		return fmt.Sprintf("block {stmts=%d}", len(n.Stmts))
	case *ExprStmt:
		return "expr stmt"
	case *WhileStmt:
		return "while"
	case *DoWhileStmt:
		return "do-while"
	case *ForStmt:
		return "for"
	case *ForInStmt:
		return "for-in"
	case *IfStmt:
		return "if"
	case *LabeledStmt:
		return "label " + n.Label
	case *ContinueStmt:
		return "continue " + n.Label
	case *BreakStmt:
		return "break " + n.Label
	case *ReturnStmt:
		return "return"
	case *EmptyStmt:
		return "empty"
	default:
		return fmt.Sprintf("%T", n)
	}
}
