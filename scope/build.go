package scope

import (
	"fmt"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/token"
)

// Scopes maps every statement, declarator-list and identifier node to the
// scope that was active when the builder visited it, the "traversal
// callbacks visiting each node with its enclosing scope" half of the
// adapter contract (spec.md §6). Reference identifiers are the only node
// kind the rest of the pass actually needs this for (scope.of(reference)),
// but the builder records it for every node it visits, for uniformity and
// debuggability.
type Scopes struct {
	Root *Scope
	// References holds every identifier node encountered in reference
	// (non-binding) position, in traversal order — the set Phase A of the
	// loop-closure transformer and the reference-renaming step walk.
	References []*ast.Ident
	// GetterSetterOwner maps a getter/setter's function literal to the
	// object literal that declares it, needed by LoopClosureTransformer's
	// wrap-target computation (spec.md §4.2 step 6: "if the enclosing
	// function is a getter or setter definition, the wrap target is the
	// enclosing object-literal").
	GetterSetterOwner map[*ast.FuncLit]*ast.ObjectLit
	// DeclInitParent maps a block-scoped declarator's own binding identifier
	// back to the declarator (and its owning list) it names, letting
	// LoopClosureTransformer recognize spec.md §4.2 step 4's "R's parent is
	// a declarator-list" case — R there is the captured variable's own
	// declaring occurrence, not a plain reference — without the adapter
	// needing parent pointers.
	DeclInitParent map[*ast.Ident]*DeclInitInfo
	// CallFnOf maps a bare-identifier callee expression back to its call,
	// so clearing the "free call" flag (spec.md §4.2 step 4) doesn't need
	// parent pointers either.
	CallFnOf map[*ast.Ident]*ast.CallExpr
	of       map[ast.Node]*Scope
}

// DeclInitInfo identifies the declarator a block-scoped binding identifier
// names, and the declarator list that owns it.
type DeclInitInfo struct {
	List *ast.DeclaratorList
	Decl *ast.Declarator
}

// Of returns the scope active at n, or nil if n was never visited by Build.
func (s *Scopes) Of(n ast.Node) *Scope { return s.of[n] }

// kindForDecl maps a declaration token to the Var kind the builder records.
func kindForDecl(tok token.DeclToken) Kind {
	switch tok {
	case token.LET:
		return KindLet
	case token.CONST:
		return KindConst
	default:
		return KindVar
	}
}

// Build walks file and constructs its scope tree, declaring every binding
// it introduces. It is the concrete stand-in for the external scope
// analysis the specification assumes has already run (spec.md §1: "the
// core *consumes* a scope structure"); grounded on the shape of the
// teacher's resolver.ResolveFiles / resolver.block / resolver.stmt.
//
// Function bodies are not given their own nested block scope distinct from
// their parameter scope — parameters and top-level body declarations share
// one Function-kind scope — since this pass only needs "nearest function
// or global scope", not the finer per-block nesting a full resolver would
// track for shadowing diagnostics.
func Build(file *ast.File) *Scopes {
	root := NewRoot(nil)
	b := &builder{scopes: &Scopes{
		Root:              root,
		of:                make(map[ast.Node]*Scope),
		GetterSetterOwner: make(map[*ast.FuncLit]*ast.ObjectLit),
		DeclInitParent:    make(map[*ast.Ident]*DeclInitInfo),
		CallFnOf:          make(map[*ast.Ident]*ast.CallExpr),
	}}
	b.cur = root
	for _, s := range file.Stmts {
		b.stmt(s)
	}
	return b.scopes
}

type builder struct {
	cur    *Scope
	scopes *Scopes
}

func (b *builder) mark(n ast.Node) { b.scopes.of[n] = b.cur }

func (b *builder) push(kind BlockKind, root ast.Node, isLoop bool) {
	b.cur = b.cur.Push(kind, root, isLoop)
}

func (b *builder) pop() { b.cur = b.cur.Parent() }

func (b *builder) declList(dl *ast.DeclaratorList) {
	b.mark(dl)
	kind := kindForDecl(dl.Tok)
	for _, d := range dl.Decls {
		if d.Init != nil {
			b.expr(d.Init)
		}
		b.mark(d.Name)
		if kind.IsBlockScoped() {
			b.cur.Declare(d.Name.Name, d.Name, kind)
		} else {
			// a var binds in the nearest function or global scope
			b.cur.ClosestHoistScope().Declare(d.Name.Name, d.Name, kind)
		}
		if kind.IsBlockScoped() {
			b.scopes.DeclInitParent[d.Name] = &DeclInitInfo{List: dl, Decl: d}
		}
	}
}

func (b *builder) block(body *ast.BlockStmt, isLoop bool) {
	b.push(Block, body, isLoop)
	for _, s := range body.Stmts {
		b.stmt(s)
	}
	b.pop()
}

func (b *builder) function(fn *ast.FuncLit) {
	b.push(Function, fn, false)
	b.mark(fn) // fn owns the function scope just pushed, not its enclosing one
	for _, p := range fn.Params {
		b.mark(p)
		b.cur.Declare(p.Name, p, KindParam)
	}
	for _, s := range fn.Body.Stmts {
		b.stmt(s)
	}
	b.pop()
}

func (b *builder) stmt(s ast.Stmt) {
	b.mark(s)
	switch s := s.(type) {
	case *ast.DeclaratorList:
		b.declList(s)

	case *ast.BlockStmt:
		b.block(s, false)

	case *ast.ExprStmt:
		b.expr(s.X)

	case *ast.WhileStmt:
		b.expr(s.Cond)
		b.block(s.Body, true)

	case *ast.DoWhileStmt:
		b.block(s.Body, true)
		b.expr(s.Cond)

	case *ast.ForStmt:
		b.push(Block, s, true)
		b.mark(s) // re-mark: s owns the loop scope just pushed, not its enclosing one
		if s.Init != nil {
			b.stmt(s.Init)
		}
		if s.Cond != nil {
			b.expr(s.Cond)
		}
		if s.Post != nil {
			b.stmt(s.Post)
		}
		for _, st := range s.Body.Stmts {
			b.stmt(st)
		}
		b.pop()

	case *ast.ForInStmt:
		b.expr(s.Right)
		b.push(Block, s, true)
		b.mark(s) // re-mark: s owns the loop scope just pushed, not its enclosing one
		if s.Decl != nil {
			s.Decl.ForInHead = true
			kind := kindForDecl(s.Decl.Tok)
			for _, d := range s.Decl.Decls {
				b.mark(d.Name)
				b.cur.Declare(d.Name.Name, d.Name, kind)
			}
			b.mark(s.Decl)
		} else {
			b.expr(s.Target)
		}
		for _, st := range s.Body.Stmts {
			b.stmt(st)
		}
		b.pop()

	case *ast.IfStmt:
		b.expr(s.Cond)
		b.block(s.Then, false)
		if s.Else != nil {
			b.stmt(s.Else)
		}

	case *ast.LabeledStmt:
		b.stmt(s.Stmt)

	case *ast.ContinueStmt, *ast.BreakStmt, *ast.EmptyStmt:
		// no sub-nodes

	case *ast.ReturnStmt:
		if s.X != nil {
			b.expr(s.X)
		}

	default:
		panic(fmt.Sprintf("scope: unexpected stmt %T", s))
	}
}

func (b *builder) expr(e ast.Expr) {
	b.mark(e)
	switch e := e.(type) {
	case *ast.Ident:
		// a reference; resolution happens lazily via Scopes.Of + Scope.Lookup
		b.scopes.References = append(b.scopes.References, e)

	case *ast.LiteralExpr:

	case *ast.BinOpExpr:
		b.expr(e.Left)
		b.expr(e.Right)

	case *ast.UnaryOpExpr:
		b.expr(e.Right)

	case *ast.ObjectLit:
		for _, p := range e.Props {
			// a plain identifier key names a property, not a binding
			if _, isName := p.Key.(*ast.Ident); !isName {
				b.expr(p.Key)
			}
			if (p.Kind == ast.PropGetter || p.Kind == ast.PropSetter) {
				if fn, ok := p.Value.(*ast.FuncLit); ok {
					b.scopes.GetterSetterOwner[fn] = e
				}
			}
			b.expr(p.Value)
		}

	case *ast.FuncLit:
		b.function(e)

	case *ast.CallExpr:
		b.expr(e.Fn)
		if id, ok := e.Fn.(*ast.Ident); ok {
			b.scopes.CallFnOf[id] = e
		}
		for _, a := range e.Args {
			b.expr(a)
		}

	case *ast.GetPropertyExpr:
		b.expr(e.Object)

	case *ast.AssignExpr:
		b.expr(e.Right)
		b.expr(e.Left)

	case *ast.CommaExpr:
		for _, x := range e.Exprs {
			b.expr(x)
		}

	case *ast.CastExpr:
		b.expr(e.Expr)

	default:
		panic(fmt.Sprintf("scope: unexpected expr %T", e))
	}
}
