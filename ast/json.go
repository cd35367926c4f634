package ast

import (
	"encoding/json"
	"fmt"

	"github.com/jscompat/blockscope/token"
)

// FromJSON decodes the minimal JSON AST encoding cmd/blockscope's run
// command accepts as input: every node is an object with a "kind"
// discriminator matching the unqualified Go type name (e.g.
// "DeclaratorList", "Ident"). There is no companion MarshalJSON — output
// goes through Dump instead, since a human running the CLI wants to read
// the result, not round-trip it.
func FromJSON(data []byte) (*File, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ast: decoding file: %w", err)
	}
	name, _ := raw["name"].(string)
	stmts, err := decodeStmtList(listField(raw, "stmts"))
	if err != nil {
		return nil, err
	}
	return &File{Name: name, Stmts: stmts}, nil
}

func kindOf(m map[string]interface{}) string {
	k, _ := m["kind"].(string)
	return k
}

func strField(m map[string]interface{}, k string) string {
	s, _ := m[k].(string)
	return s
}

func boolField(m map[string]interface{}, k string) bool {
	b, _ := m[k].(bool)
	return b
}

func objField(m map[string]interface{}, k string) (map[string]interface{}, bool) {
	o, ok := m[k].(map[string]interface{})
	return o, ok
}

func listField(m map[string]interface{}, k string) []interface{} {
	l, _ := m[k].([]interface{})
	return l
}

func decodeAnn(m map[string]interface{}) *Annotation {
	o, ok := objField(m, "ann")
	if !ok {
		return nil
	}
	return &Annotation{
		JSDoc:     strField(o, "jsdoc"),
		Const:     boolField(o, "const"),
		TypeColor: o["type_color"],
	}
}

func decodeStmtList(items []interface{}) ([]Stmt, error) {
	out := make([]Stmt, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("ast: statement is not an object")
		}
		s, err := decodeStmt(m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeBody(m map[string]interface{}, k string) (*BlockStmt, error) {
	stmts, err := decodeStmtList(listField(m, k))
	if err != nil {
		return nil, err
	}
	return &BlockStmt{Stmts: stmts}, nil
}

func decodeTok(s string) (token.DeclToken, error) {
	switch s {
	case "var":
		return token.VAR, nil
	case "let":
		return token.LET, nil
	case "const":
		return token.CONST, nil
	default:
		return token.ILLEGAL, fmt.Errorf("ast: unknown declarator token %q", s)
	}
}

func decodeStmt(m map[string]interface{}) (Stmt, error) {
	switch kindOf(m) {
	case "DeclaratorList":
		return decodeDeclaratorList(m)

	case "BlockStmt":
		body, err := decodeBody(m, "stmts")
		if err != nil {
			return nil, err
		}
		return body, nil

	case "ExprStmt":
		xo, ok := objField(m, "x")
		if !ok {
			return nil, fmt.Errorf("ast: ExprStmt missing x")
		}
		x, err := decodeExpr(xo)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{X: x}, nil

	case "WhileStmt":
		co, ok := objField(m, "cond")
		if !ok {
			return nil, fmt.Errorf("ast: WhileStmt missing cond")
		}
		cond, err := decodeExpr(co)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(m, "body")
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, Body: body}, nil

	case "DoWhileStmt":
		co, ok := objField(m, "cond")
		if !ok {
			return nil, fmt.Errorf("ast: DoWhileStmt missing cond")
		}
		cond, err := decodeExpr(co)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(m, "body")
		if err != nil {
			return nil, err
		}
		return &DoWhileStmt{Cond: cond, Body: body}, nil

	case "ForStmt":
		var init Stmt
		if io, ok := objField(m, "init"); ok {
			var err error
			init, err = decodeStmt(io)
			if err != nil {
				return nil, err
			}
		}
		var cond Expr
		if co, ok := objField(m, "cond"); ok {
			var err error
			cond, err = decodeExpr(co)
			if err != nil {
				return nil, err
			}
		}
		var post Stmt
		if po, ok := objField(m, "post"); ok {
			var err error
			post, err = decodeStmt(po)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeBody(m, "body")
		if err != nil {
			return nil, err
		}
		return &ForStmt{Init: init, Cond: cond, Post: post, Body: body}, nil

	case "ForInStmt":
		var decl *DeclaratorList
		if do, ok := objField(m, "decl"); ok {
			dl, err := decodeDeclaratorList(do)
			if err != nil {
				return nil, err
			}
			dl.ForInHead = true
			decl = dl
		}
		var target Expr
		if to, ok := objField(m, "target"); ok {
			var err error
			target, err = decodeExpr(to)
			if err != nil {
				return nil, err
			}
		}
		ro, ok := objField(m, "right")
		if !ok {
			return nil, fmt.Errorf("ast: ForInStmt missing right")
		}
		right, err := decodeExpr(ro)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(m, "body")
		if err != nil {
			return nil, err
		}
		return &ForInStmt{Decl: decl, Target: target, Right: right, Body: body}, nil

	case "IfStmt":
		co, ok := objField(m, "cond")
		if !ok {
			return nil, fmt.Errorf("ast: IfStmt missing cond")
		}
		cond, err := decodeExpr(co)
		if err != nil {
			return nil, err
		}
		then, err := decodeBody(m, "then")
		if err != nil {
			return nil, err
		}
		var els Stmt
		if eo, ok := objField(m, "else"); ok {
			els, err = decodeStmt(eo)
			if err != nil {
				return nil, err
			}
		}
		return &IfStmt{Cond: cond, Then: then, Else: els}, nil

	case "LabeledStmt":
		inner, ok := objField(m, "stmt")
		if !ok {
			return nil, fmt.Errorf("ast: LabeledStmt missing stmt")
		}
		s, err := decodeStmt(inner)
		if err != nil {
			return nil, err
		}
		return &LabeledStmt{Label: strField(m, "label"), Stmt: s}, nil

	case "ContinueStmt":
		return &ContinueStmt{Label: strField(m, "label")}, nil

	case "BreakStmt":
		return &BreakStmt{Label: strField(m, "label")}, nil

	case "ReturnStmt":
		var x Expr
		if xo, ok := objField(m, "x"); ok {
			var err error
			x, err = decodeExpr(xo)
			if err != nil {
				return nil, err
			}
		}
		return &ReturnStmt{X: x}, nil

	case "EmptyStmt":
		return &EmptyStmt{}, nil

	default:
		return nil, fmt.Errorf("ast: unknown statement kind %q", kindOf(m))
	}
}

func decodeDeclaratorList(m map[string]interface{}) (*DeclaratorList, error) {
	tok, err := decodeTok(strField(m, "tok"))
	if err != nil {
		return nil, err
	}
	declsRaw := listField(m, "decls")
	decls := make([]*Declarator, 0, len(declsRaw))
	for _, dr := range declsRaw {
		dm, ok := dr.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("ast: declarator is not an object")
		}
		nameObj, ok := objField(dm, "name")
		if !ok {
			return nil, fmt.Errorf("ast: declarator missing name")
		}
		var init Expr
		if io, ok := objField(dm, "init"); ok {
			var err error
			init, err = decodeExpr(io)
			if err != nil {
				return nil, err
			}
		}
		decls = append(decls, &Declarator{
			Name: &Ident{Name: strField(nameObj, "name")},
			Init: init,
			Ann:  decodeAnn(dm),
		})
	}
	return &DeclaratorList{
		Tok:       tok,
		Decls:     decls,
		Ann:       decodeAnn(m),
		ForInHead: boolField(m, "for_in_head"),
	}, nil
}

func decodeExpr(m map[string]interface{}) (Expr, error) {
	switch kindOf(m) {
	case "Ident":
		return &Ident{Name: strField(m, "name")}, nil

	case "LiteralExpr":
		return &LiteralExpr{Raw: strField(m, "raw")}, nil

	case "BinOpExpr":
		lo, _ := objField(m, "left")
		left, err := decodeExpr(lo)
		if err != nil {
			return nil, err
		}
		ro, _ := objField(m, "right")
		right, err := decodeExpr(ro)
		if err != nil {
			return nil, err
		}
		return &BinOpExpr{Op: strField(m, "op"), Left: left, Right: right}, nil

	case "UnaryOpExpr":
		ro, _ := objField(m, "right")
		right, err := decodeExpr(ro)
		if err != nil {
			return nil, err
		}
		return &UnaryOpExpr{Op: strField(m, "op"), Right: right, Postfix: boolField(m, "postfix")}, nil

	case "ObjectLit":
		propsRaw := listField(m, "props")
		props := make([]*Property, 0, len(propsRaw))
		for _, pr := range propsRaw {
			pm, ok := pr.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("ast: property is not an object")
			}
			ko, ok := objField(pm, "key")
			if !ok {
				return nil, fmt.Errorf("ast: property missing key")
			}
			key, err := decodeExpr(ko)
			if err != nil {
				return nil, err
			}
			vo, ok := objField(pm, "value")
			if !ok {
				return nil, fmt.Errorf("ast: property missing value")
			}
			val, err := decodeExpr(vo)
			if err != nil {
				return nil, err
			}
			kind := PropPlain
			switch strField(pm, "prop_kind") {
			case "get":
				kind = PropGetter
			case "set":
				kind = PropSetter
			}
			props = append(props, &Property{Kind: kind, Key: key, Value: val})
		}
		return &ObjectLit{Props: props}, nil

	case "FuncLit":
		paramsRaw := listField(m, "params")
		params := make([]*Ident, 0, len(paramsRaw))
		for _, pr := range paramsRaw {
			pm, ok := pr.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("ast: param is not an object")
			}
			params = append(params, &Ident{Name: strField(pm, "name")})
		}
		var name *Ident
		if no, ok := objField(m, "name"); ok {
			name = &Ident{Name: strField(no, "name")}
		}
		body, err := decodeBody(m, "body")
		if err != nil {
			return nil, err
		}
		return &FuncLit{Name: name, Params: params, Body: body}, nil

	case "CallExpr":
		fo, ok := objField(m, "fn")
		if !ok {
			return nil, fmt.Errorf("ast: CallExpr missing fn")
		}
		fn, err := decodeExpr(fo)
		if err != nil {
			return nil, err
		}
		argsRaw := listField(m, "args")
		args := make([]Expr, 0, len(argsRaw))
		for _, ar := range argsRaw {
			am, ok := ar.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("ast: argument is not an object")
			}
			arg, err := decodeExpr(am)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &CallExpr{Fn: fn, Args: args, FreeCall: boolField(m, "free_call")}, nil

	case "GetPropertyExpr":
		oo, ok := objField(m, "object")
		if !ok {
			return nil, fmt.Errorf("ast: GetPropertyExpr missing object")
		}
		obj, err := decodeExpr(oo)
		if err != nil {
			return nil, err
		}
		return &GetPropertyExpr{Object: obj, Name: strField(m, "name")}, nil

	case "AssignExpr":
		lo, ok := objField(m, "left")
		if !ok {
			return nil, fmt.Errorf("ast: AssignExpr missing left")
		}
		left, err := decodeExpr(lo)
		if err != nil {
			return nil, err
		}
		ro, ok := objField(m, "right")
		if !ok {
			return nil, fmt.Errorf("ast: AssignExpr missing right")
		}
		right, err := decodeExpr(ro)
		if err != nil {
			return nil, err
		}
		return &AssignExpr{Left: left, Right: right}, nil

	case "CommaExpr":
		itemsRaw := listField(m, "exprs")
		exprs := make([]Expr, 0, len(itemsRaw))
		for _, ir := range itemsRaw {
			im, ok := ir.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("ast: comma element is not an object")
			}
			e, err := decodeExpr(im)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		}
		return &CommaExpr{Exprs: exprs}, nil

	case "CastExpr":
		eo, ok := objField(m, "expr")
		if !ok {
			return nil, fmt.Errorf("ast: CastExpr missing expr")
		}
		e, err := decodeExpr(eo)
		if err != nil {
			return nil, err
		}
		return &CastExpr{Expr: e, Ann: decodeAnn(m)}, nil

	default:
		return nil, fmt.Errorf("ast: unknown expression kind %q", kindOf(m))
	}
}
