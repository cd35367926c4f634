package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/token"
)

func TestCloneDeepDoesNotAliasAnnotations(t *testing.T) {
	orig := &ast.DeclaratorList{
		Tok: token.CONST,
		Ann: &ast.Annotation{Const: true},
		Decls: []*ast.Declarator{
			{Name: &ast.Ident{Name: "x"}, Init: &ast.LiteralExpr{Raw: "1"}, Ann: &ast.Annotation{Const: true}},
		},
	}
	cp := ast.CloneDeep(orig).(*ast.DeclaratorList)

	require.NotSame(t, orig, cp)
	require.NotSame(t, orig.Ann, cp.Ann)
	require.NotSame(t, orig.Decls[0], cp.Decls[0])
	require.NotSame(t, orig.Decls[0].Name, cp.Decls[0].Name)
	require.NotSame(t, orig.Decls[0].Ann, cp.Decls[0].Ann)

	cp.Ann.Const = false
	assert.True(t, orig.Ann.Const, "mutating the clone's annotation must not affect the original")

	cp.Decls[0].Name.Name = "y"
	assert.Equal(t, "x", orig.Decls[0].Name.Name)
}

func TestCloneDeepPreservesShape(t *testing.T) {
	orig := &ast.ForStmt{
		Init: &ast.DeclaratorList{Tok: token.LET, Decls: []*ast.Declarator{
			{Name: &ast.Ident{Name: "i"}, Init: &ast.LiteralExpr{Raw: "0"}},
		}},
		Cond: &ast.BinOpExpr{Op: "<", Left: &ast.Ident{Name: "i"}, Right: &ast.LiteralExpr{Raw: "3"}},
		Post: &ast.ExprStmt{X: &ast.UnaryOpExpr{Op: "++", Right: &ast.Ident{Name: "i"}, Postfix: true}},
		Body: &ast.BlockStmt{Stmts: []ast.Stmt{
			&ast.ExprStmt{X: &ast.CallExpr{Fn: &ast.Ident{Name: "use"}, FreeCall: true}},
		}},
	}
	cp := ast.CloneDeep(orig).(*ast.ForStmt)

	require.NotSame(t, orig.Body, cp.Body)
	require.Len(t, cp.Body.Stmts, 1)
	cond := cp.Cond.(*ast.BinOpExpr)
	assert.Equal(t, "<", cond.Op)
	assert.NotSame(t, orig.Cond.(*ast.BinOpExpr).Left, cond.Left)
}

func TestAnnotationCloneNilIsNil(t *testing.T) {
	var a *ast.Annotation
	assert.Nil(t, a.Clone())
}
