package transform

import (
	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/errs"
	"github.com/jscompat/blockscope/log"
	"github.com/jscompat/blockscope/scope"
)

// CollisionResolver implements spec.md §4.1: when a block-scoped binding is
// hoisted to its enclosing function/global scope, rename it if needed to
// avoid colliding with an existing name there, and insert an explicit
// `undefined` initializer on loop-bound, uninitialized let/const bindings
// so a later loop-object rewrite can re-set the property every iteration.
//
// Function declarations and catch-parameters are named in spec.md §4.1 as
// additional binding sites CollisionResolver walks, but this module's AST
// (package ast) has no dedicated function-declaration statement or catch
// clause node — a function's declared name and a caught exception are not
// modeled as distinct binding sites from an ordinary declarator. Only
// DeclaratorList nodes are walked here; see DESIGN.md for this scope
// limitation.
type CollisionResolver struct {
	scopes          *scope.Scopes
	ids             *scope.IDGen
	undeclaredNames NameSet
	externNames     NameSet
	logger          log.Logger

	// Renames is populated as collisions are resolved; ApplyRenameTable
	// consumes it to rewrite the references CollisionResolver itself does
	// not touch (spec.md §2: "a separate reference-rewriting pass consumes
	// this table").
	Renames RenameTable
	// LetConst is the letConstSet of spec.md §3: every DeclaratorList node
	// observed to be let or const, for TokenFlipper to retoken at the end.
	LetConst map[*ast.DeclaratorList]bool
}

// NewCollisionResolver builds a CollisionResolver. undeclared and extern may
// be nil, which is treated as an empty NameSet. A nil logger defaults to
// log.NopLogger.
func NewCollisionResolver(scopes *scope.Scopes, ids *scope.IDGen, undeclared, extern NameSet, logger log.Logger) *CollisionResolver {
	if logger == nil {
		logger = log.NopLogger
	}
	return &CollisionResolver{
		scopes:          scopes,
		ids:             ids,
		undeclaredNames: undeclared,
		externNames:     extern,
		logger:          logger,
		Renames:         make(RenameTable),
		LetConst:        make(map[*ast.DeclaratorList]bool),
	}
}

// Run walks file's declarator lists and resolves every block-scoped binding
// per spec.md §4.1. It returns the first assertion error raised, if any.
func (cr *CollisionResolver) Run(file *ast.File) error {
	var firstErr error
	ast.WalkPostOrder(file, func(n ast.Node) {
		if firstErr != nil {
			return
		}
		dl, ok := n.(*ast.DeclaratorList)
		if !ok {
			return
		}
		if err := cr.resolveList(dl); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

func (cr *CollisionResolver) resolveList(dl *ast.DeclaratorList) error {
	if !dl.Tok.IsBlockScoped() {
		return nil
	}
	cr.LetConst[dl] = true

	curScope := cr.scopes.Of(dl)
	if curScope == nil {
		return errs.NewInternal("declarator list has no recorded scope")
	}
	hoistScope := curScope.ClosestHoistScope()
	if hoistScope == nil {
		return errs.NewInternal("no hoist scope reachable from declarator list's scope")
	}
	inLoop := curScope.InLoop()

	for _, d := range dl.Decls {
		if d.Init == nil && inLoop && !dl.ForInHead {
			// Rationale (spec.md §4.1): once rewritten to a loop-object
			// property, the property must be re-set to undefined on each
			// iteration to mirror lexical re-binding.
			d.Init = &ast.LiteralExpr{Raw: "undefined", Start: d.Name.Start}
		}

		origName := d.Name.Name
		v, owner := curScope.Lookup(origName)
		if v == nil {
			return errs.NewInternal("declarator %q not bound in its own declaring scope", origName)
		}
		if owner != curScope {
			return errs.NewInternal("declarator %q resolved to an unexpected scope", origName)
		}

		if curScope != hoistScope {
			newName := origName
			if hoistScope.IsBound(origName) || cr.undeclaredNames.Has(origName) || cr.externNames.Has(origName) {
				for {
					newName = cr.ids.Name(origName)
					if !hoistScope.IsBound(newName) {
						break
					}
				}
				d.Name.Name = newName
				v.Name = newName
				cr.Renames[RenameKey{Root: curScope.Root(), Name: origName}] = newName
				cr.logger.Debugf("renamed %q to %q hoisting into outer scope", origName, newName)
			}
			curScope.Undeclare(origName)
			hoistScope.Redeclare(v)
		}
	}
	return nil
}
