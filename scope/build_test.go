package scope_test

import (
	"testing"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/scope"
	"github.com/jscompat/blockscope/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// for (let i = 0; i < 3; i++) { use(i); }
func forLoopFixture() *ast.ForStmt {
	i := &ast.Ident{Name: "i"}
	return &ast.ForStmt{
		Init: &ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
			{Name: i, Init: &ast.LiteralExpr{Raw: "0"}},
		}},
		Cond: &ast.BinOpExpr{Op: "<", Left: &ast.Ident{Name: "i"}, Right: &ast.LiteralExpr{Raw: "3"}},
		Post: &ast.ExprStmt{X: &ast.UnaryOpExpr{Op: "++", Right: &ast.Ident{Name: "i"}, Postfix: true}},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.CallExpr{Fn: &ast.Ident{Name: "use"}, Args: []ast.Expr{&ast.Ident{Name: "i"}}, FreeCall: true}},
		}},
	}
}

func TestBuildForLoopDeclaresInLoopScope(t *testing.T) {
	forStmt := forLoopFixture()
	file := &ast.File{Stmts: []ast.Stmt{forStmt}}
	scopes := scope.Build(file)

	loopScope := scopes.Of(forStmt)
	require.NotNil(t, loopScope)
	v, owner := loopScope.Lookup("i")
	require.NotNil(t, v)
	assert.Equal(t, scope.KindLet, v.Kind)
	assert.True(t, owner.InLoop())
	assert.True(t, owner.IsLoopScope())
	assert.Equal(t, scopes.Root, owner.ClosestHoistScope())
}

func TestClosestHoistScopeCrossesBlocksNotFunctions(t *testing.T) {
	inner := &ast.BlockStmt{Stmts: []ast.Stmt{
		&ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{{Name: &ast.Ident{Name: "x"}}}},
	}}
	fn := &ast.FuncLit{Body: &ast.BlockStmt{Stmts: []ast.Stmt{inner}}}
	file := &ast.File{Stmts: []ast.Stmt{&ast.ExprStmt{X: fn}}}
	scopes := scope.Build(file)

	declScope := scopes.Of(inner.Stmts[0])
	require.NotNil(t, declScope)
	hoist := declScope.ClosestHoistScope()
	assert.Equal(t, scopes.Of(fn), hoist)
	assert.True(t, hoist.IsFunctionBlock())
}

func TestInLoopFalseOutsideLoop(t *testing.T) {
	dl := &ast.DeclaratorList{Tok: token.CONST, Decls: []*ast.Declarator{{Name: &ast.Ident{Name: "x"}}}}
	file := &ast.File{Stmts: []ast.Stmt{dl}}
	scopes := scope.Build(file)
	assert.False(t, scopes.Of(dl).InLoop())
}

// DeclInitParent must be keyed by a block-scoped declarator's own binding
// identifier, not by some other declarator's bare-identifier initializer,
// so LoopClosureTransformer can find a captured variable's own declaring
// occurrence (spec.md §4.2 step 4) directly from scope.Var.Decl.
func TestDeclInitParentKeyedByOwnBindingIdent(t *testing.T) {
	iIdent := &ast.Ident{Name: "i"}
	xIdent := &ast.Ident{Name: "x"}
	letDecl := &ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
		{Name: iIdent, Init: &ast.LiteralExpr{Raw: "0"}},
	}}
	varDecl := &ast.DeclaratorList{Tok: token.VAR, Decls: []*ast.Declarator{
		{Name: xIdent, Init: &ast.LiteralExpr{Raw: "0"}},
	}}
	file := &ast.File{Stmts: []ast.Stmt{letDecl, varDecl}}
	scopes := scope.Build(file)

	info, ok := scopes.DeclInitParent[iIdent]
	require.True(t, ok, "expected a let declarator's own name to be registered in DeclInitParent")
	assert.Same(t, letDecl, info.List)
	assert.Same(t, letDecl.Decls[0], info.Decl)

	_, ok = scopes.DeclInitParent[xIdent]
	assert.False(t, ok, "a var declarator is not block-scoped and should not be registered")
}
