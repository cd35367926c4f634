package transform_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/scope"
	"github.com/jscompat/blockscope/token"
	"github.com/jscompat/blockscope/transform"
)

// runPipeline drives CollisionResolver -> ApplyRenameTable ->
// LoopClosureTransformer -> TokenFlipper over file, the same order
// Pass.Run uses, without depending on the root package (avoiding an
// import cycle from this _test package back into it).
func runPipeline(t *testing.T, file *ast.File) *scope.Scopes {
	t.Helper()
	scopes := scope.Build(file)
	ids := scope.NewIDGen()

	cr := transform.NewCollisionResolver(scopes, ids, nil, nil, nil)
	require.NoError(t, cr.Run(file))
	transform.ApplyRenameTable(scopes, cr.Renames)

	lct := transform.NewLoopClosureTransformer(scopes, ids, cr.LetConst, nil)
	require.NoError(t, lct.Run(file))

	transform.NewTokenFlipper(cr.LetConst).Run(file)
	return scopes
}

func dump(t *testing.T, n ast.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ast.Dump(&buf, n))
	return buf.String()
}

// for (let i = 0; i < 3; i++) { setTimeout(function() { use(i); }); }
func captureForLoop() *ast.File {
	i := &ast.Ident{Name: "i"}
	return &ast.File{Stmts: []ast.Stmt{
		&ast.ForStmt{
			Init: &ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
				{Name: i, Init: &ast.LiteralExpr{Raw: "0"}},
			}},
			Cond: &ast.BinOpExpr{Op: "<", Left: &ast.Ident{Name: "i"}, Right: &ast.LiteralExpr{Raw: "3"}},
			Post: &ast.ExprStmt{X: &ast.UnaryOpExpr{Op: "++", Right: &ast.Ident{Name: "i"}, Postfix: true}},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.CallExpr{
					Fn: &ast.Ident{Name: "setTimeout"},
					Args: []ast.Expr{&ast.FuncLit{Body: &ast.BlockStmt{Stmts: []ast.Stmt{
						&ast.ExprStmt{X: &ast.CallExpr{Fn: &ast.Ident{Name: "use"}, Args: []ast.Expr{&ast.Ident{Name: "i"}}, FreeCall: true}},
					}}}},
					FreeCall: true,
				}},
			}},
		},
	}}
}

func TestLoopClosureCaptureRewritesForLoop(t *testing.T) {
	file := captureForLoop()
	runPipeline(t, file)

	// the for-loop's own init declarator is gone, replaced by a loop
	// object declaration ahead of it (spec.md §4.2 steps 1 and 4).
	require.Len(t, file.Stmts, 2)
	loopObjDecl, ok := file.Stmts[0].(*ast.DeclaratorList)
	require.True(t, ok, "expected a var declaration for the loop object, got %T", file.Stmts[0])
	assert.Equal(t, token.VAR, loopObjDecl.Tok)
	require.Len(t, loopObjDecl.Decls, 1)
	loopObjName := loopObjDecl.Decls[0].Name.Name

	forStmt, ok := file.Stmts[1].(*ast.ForStmt)
	require.True(t, ok, "expected the original for statement, got %T", file.Stmts[1])

	// the init clause's declarator was replaced by an assignment setting
	// the loop object's property instead of a plain var.
	assign, ok := forStmt.Init.(*ast.ExprStmt)
	require.True(t, ok, "expected init to become an assignment statement, got %T", forStmt.Init)
	assignExpr, ok := assign.X.(*ast.AssignExpr)
	require.True(t, ok)
	getProp, ok := assignExpr.Left.(*ast.GetPropertyExpr)
	require.True(t, ok)
	ident, ok := getProp.Object.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, loopObjName, ident.Name)

	// the closure argument to setTimeout was wrapped in an IIFE.
	exprStmt := forStmt.Body.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.X.(*ast.CallExpr)
	iifeCall, ok := call.Args[0].(*ast.CallExpr)
	require.True(t, ok, "expected the closure argument to become an IIFE call, got %T", call.Args[0])
	assert.True(t, iifeCall.FreeCall)
	fn, ok := iifeCall.Fn.(*ast.FuncLit)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, loopObjName, fn.Params[0].Name)

	t.Logf("dump:\n%s", dump(t, file))
}

// while (cond) { let x = compute(); arr.push(function() { return x; }); }
func captureWhileLoop() (*ast.File, *ast.WhileStmt) {
	ws := &ast.WhileStmt{
		Cond: &ast.Ident{Name: "cond"},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
				{Name: &ast.Ident{Name: "x"}, Init: &ast.CallExpr{Fn: &ast.Ident{Name: "compute"}, FreeCall: true}},
			}},
			&ast.ExprStmt{X: &ast.CallExpr{
				Fn: &ast.GetPropertyExpr{Object: &ast.Ident{Name: "arr"}, Name: "push"},
				Args: []ast.Expr{&ast.FuncLit{Body: &ast.BlockStmt{Stmts: []ast.Stmt{
					&ast.ReturnStmt{X: &ast.Ident{Name: "x"}},
				}}}},
			}},
		}},
	}
	return &ast.File{Stmts: []ast.Stmt{ws}}, ws
}

func TestLoopClosureCaptureRewritesWhileLoop(t *testing.T) {
	file, _ := captureWhileLoop()
	runPipeline(t, file)

	require.Len(t, file.Stmts, 2)
	_, ok := file.Stmts[0].(*ast.DeclaratorList)
	require.True(t, ok, "expected loop object declaration ahead of the while loop")

	ws, ok := file.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)

	// the update assignment was appended to the loop body (spec.md §4.2
	// step 3's non-C-style case).
	last := ws.Body.Stmts[len(ws.Body.Stmts)-1]
	exprStmt, ok := last.(*ast.ExprStmt)
	require.True(t, ok, "expected the final body statement to be the loop-object update, got %T", last)
	_, ok = exprStmt.X.(*ast.AssignExpr)
	require.True(t, ok)

	t.Logf("dump:\n%s", dump(t, file))
}

// { let x = 1; { var x = 2; } } — the inner var hoists to the function
// scope and collides with the outer let, forcing a rename.
func hoistCollisionFixture() *ast.File {
	return &ast.File{Stmts: []ast.Stmt{
		&ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
				{Name: &ast.Ident{Name: "x"}, Init: &ast.LiteralExpr{Raw: "1"}},
			}},
			&ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.DeclaratorList{Tok: token.VAR, Decls: []*ast.Declarator{
					{Name: &ast.Ident{Name: "x"}, Init: &ast.LiteralExpr{Raw: "2"}},
				}},
			}},
			&ast.ExprStmt{X: &ast.CallExpr{Fn: &ast.Ident{Name: "use"}, Args: []ast.Expr{&ast.Ident{Name: "x"}}, FreeCall: true}},
		}},
	}}
}

func TestCollisionResolverRenamesHoistedBinding(t *testing.T) {
	file := hoistCollisionFixture()
	runPipeline(t, file)

	outer := file.Stmts[0].(*ast.BlockStmt)
	letDecl := outer.Stmts[0].(*ast.DeclaratorList)
	assert.Equal(t, token.VAR, letDecl.Tok, "let should have flipped to var")
	assert.NotEqual(t, "x", letDecl.Decls[0].Name.Name, "the let binding should have been renamed off of the hoist collision")

	useCall := outer.Stmts[2].(*ast.ExprStmt).X.(*ast.CallExpr)
	ref := useCall.Args[0].(*ast.Ident)
	assert.Equal(t, letDecl.Decls[0].Name.Name, ref.Name, "the reference should follow the rename")
}

// for (const k in obj) { fns.push(function() { return k; }); }
func captureForInLoop() *ast.File {
	return &ast.File{Stmts: []ast.Stmt{
		&ast.ForInStmt{
			Decl: &ast.DeclaratorList{Tok: token.CONST, ForInHead: true, Decls: []*ast.Declarator{
				{Name: &ast.Ident{Name: "k"}},
			}},
			Right: &ast.Ident{Name: "obj"},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.CallExpr{
					Fn: &ast.GetPropertyExpr{Object: &ast.Ident{Name: "fns"}, Name: "push"},
					Args: []ast.Expr{&ast.FuncLit{Body: &ast.BlockStmt{Stmts: []ast.Stmt{
						&ast.ReturnStmt{X: &ast.Ident{Name: "k"}},
					}}}},
				}},
			}},
		},
	}}
}

func TestLoopClosureCaptureRewritesForInHead(t *testing.T) {
	file := captureForInLoop()
	runPipeline(t, file)

	require.Len(t, file.Stmts, 2)
	forIn, ok := file.Stmts[1].(*ast.ForInStmt)
	require.True(t, ok)
	require.NotNil(t, forIn.Decl)
	assert.Equal(t, token.VAR, forIn.Decl.Tok)

	// the head var is copied onto the loop object at the top of the body
	// (LoopClosureTransformer.rewriteCapturedVars's headVar branch).
	first := forIn.Body.Stmts[0].(*ast.ExprStmt)
	assignExpr, ok := first.X.(*ast.AssignExpr)
	require.True(t, ok, "expected the first body statement to copy the head var onto the loop object, got %T", forIn.Body.Stmts[0])
	_, ok = assignExpr.Left.(*ast.GetPropertyExpr)
	require.True(t, ok)
	headRef, ok := assignExpr.Right.(*ast.Ident)
	require.True(t, ok)
	assert.Equal(t, "k", headRef.Name)
}

// while (cond) { let x = next(); if (skip(x)) continue; fns.push(function() { return x; }); }
//
// A while loop, since a C-style for loop installs its update in the update
// clause, which a continue already reaches, and so never rewrites continues.
func captureWhileLoopWithContinue() *ast.File {
	return &ast.File{Stmts: []ast.Stmt{
		&ast.WhileStmt{
			Cond: &ast.Ident{Name: "cond"},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
					{Name: &ast.Ident{Name: "x"}, Init: &ast.CallExpr{Fn: &ast.Ident{Name: "next"}, FreeCall: true}},
				}},
				&ast.IfStmt{
					Cond: &ast.CallExpr{Fn: &ast.Ident{Name: "skip"}, Args: []ast.Expr{&ast.Ident{Name: "x"}}, FreeCall: true},
					Then: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ContinueStmt{}}},
				},
				&ast.ExprStmt{X: &ast.CallExpr{
					Fn: &ast.GetPropertyExpr{Object: &ast.Ident{Name: "fns"}, Name: "push"},
					Args: []ast.Expr{&ast.FuncLit{Body: &ast.BlockStmt{Stmts: []ast.Stmt{
						&ast.ReturnStmt{X: &ast.Ident{Name: "x"}},
					}}}},
				}},
			}},
		},
	}}
}

func TestContinueRewrittenToBreakInnerLabel(t *testing.T) {
	file := captureWhileLoopWithContinue()
	runPipeline(t, file)

	// the body is wrapped in a block labeled with the loop object's name,
	// followed by the loop-object update
	ws := file.Stmts[1].(*ast.WhileStmt)
	labeled, ok := ws.Body.Stmts[0].(*ast.LabeledStmt)
	require.True(t, ok, "expected the loop body to be wrapped in a labeled block, got %T", ws.Body.Stmts[0])
	inner := labeled.Stmt.(*ast.BlockStmt)
	ifStmt := inner.Stmts[1].(*ast.IfStmt)
	brk, ok := ifStmt.Then.Stmts[0].(*ast.BreakStmt)
	require.True(t, ok, "expected the continue to become a break, got %T", ifStmt.Then.Stmts[0])
	assert.NotEmpty(t, brk.Label)
}

// const {a, b} shape is not modeled by this AST (destructuring is out of
// scope, spec.md non-goals); instead this checks a plain multi-declarator
// const list splits into independent single-declarator var lists, each
// still marked const via its annotation (spec.md §4.2.2 / §4.3).
func TestMultiDeclaratorConstListSplits(t *testing.T) {
	file := &ast.File{Stmts: []ast.Stmt{
		&ast.DeclaratorList{Tok: token.CONST, Decls: []*ast.Declarator{
			{Name: &ast.Ident{Name: "a"}, Init: &ast.LiteralExpr{Raw: "1"}},
			{Name: &ast.Ident{Name: "b"}, Init: &ast.LiteralExpr{Raw: "2"}},
		}},
	}}
	runPipeline(t, file)

	require.Len(t, file.Stmts, 2)
	for i, name := range []string{"a", "b"} {
		dl, ok := file.Stmts[i].(*ast.DeclaratorList)
		require.True(t, ok, "statement %d: expected a DeclaratorList, got %T", i, file.Stmts[i])
		assert.Equal(t, token.VAR, dl.Tok)
		require.Len(t, dl.Decls, 1)
		assert.Equal(t, name, dl.Decls[0].Name.Name)
		require.NotNil(t, dl.Ann)
		assert.True(t, dl.Ann.Const)
	}
}

// for (let i = 0; i < 3; i++) { arr.push({ get val() { return i; } }); }
func captureForLoopWithGetter() (*ast.File, *ast.ObjectLit) {
	obj := &ast.ObjectLit{Props: []*ast.Property{
		{
			Kind: ast.PropGetter,
			Key:  &ast.Ident{Name: "val"},
			Value: &ast.FuncLit{Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ReturnStmt{X: &ast.Ident{Name: "i"}},
			}}},
		},
	}}
	file := &ast.File{Stmts: []ast.Stmt{
		&ast.ForStmt{
			Init: &ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
				{Name: &ast.Ident{Name: "i"}, Init: &ast.LiteralExpr{Raw: "0"}},
			}},
			Cond: &ast.BinOpExpr{Op: "<", Left: &ast.Ident{Name: "i"}, Right: &ast.LiteralExpr{Raw: "3"}},
			Post: &ast.ExprStmt{X: &ast.UnaryOpExpr{Op: "++", Right: &ast.Ident{Name: "i"}, Postfix: true}},
			Body: &ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.ExprStmt{X: &ast.CallExpr{
					Fn:       &ast.GetPropertyExpr{Object: &ast.Ident{Name: "arr"}, Name: "push"},
					Args:     []ast.Expr{obj},
					FreeCall: true,
				}},
			}},
		},
	}}
	return file, obj
}

// a variable captured inside a getter/setter wraps the enclosing
// object-literal in the IIFE, not the accessor function alone (spec.md §4.2
// step 6, spec.md §8's getter/setter Boundary property;
// scope.GetterSetterOwner -> LoopClosureTransformer.phaseA's wrapTarget
// override).
func TestLoopClosureCaptureWrapsEnclosingObjectLiteralForGetter(t *testing.T) {
	file, obj := captureForLoopWithGetter()
	runPipeline(t, file)

	require.Len(t, file.Stmts, 2)
	forStmt, ok := file.Stmts[1].(*ast.ForStmt)
	require.True(t, ok, "expected the original for statement, got %T", file.Stmts[1])

	exprStmt := forStmt.Body.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.X.(*ast.CallExpr)
	iifeCall, ok := call.Args[0].(*ast.CallExpr)
	require.True(t, ok, "expected the getter's object-literal argument to become an IIFE call, got %T", call.Args[0])
	assert.True(t, iifeCall.FreeCall)
	fn, ok := iifeCall.Fn.(*ast.FuncLit)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)

	retStmt := fn.Body.Stmts[0].(*ast.ReturnStmt)
	wrapped, ok := retStmt.X.(*ast.ObjectLit)
	require.True(t, ok, "expected the IIFE to return the whole object literal, got %T", retStmt.X)
	assert.Same(t, obj, wrapped, "the wrap target must be the enclosing object literal, not the getter function alone")

	// the getter body's captured reference now reads through the loop
	// object's property, not the bare loop variable.
	getterFn := wrapped.Props[0].Value.(*ast.FuncLit)
	getterReturn := getterFn.Body.Stmts[0].(*ast.ReturnStmt)
	getProp, ok := getterReturn.X.(*ast.GetPropertyExpr)
	require.True(t, ok, "expected the getter's return to read the loop object property, got %T", getterReturn.X)
	assert.Equal(t, fn.Params[0].Name, getProp.Object.(*ast.Ident).Name)
}

func TestRenameTableSortedIsDeterministic(t *testing.T) {
	table := transform.RenameTable{
		{Root: nil, Name: "b"}: "b$1",
		{Root: nil, Name: "a"}: "a$2",
	}
	entries := table.Sorted()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "b", entries[1].Name)
}
