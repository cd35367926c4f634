// Package blockscope drives the block-scoped declaration lowering pass:
// CollisionResolver, LoopClosureTransformer, and TokenFlipper run in order
// over one already-parsed, already-scope-resolved file, mirroring the
// teacher's resolver.ResolveFiles/compiler.CompileFiles top-level
// functions.
package blockscope

import (
	"context"
	"fmt"

	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/log"
	"github.com/jscompat/blockscope/scope"
	"github.com/jscompat/blockscope/transform"
)

// Pass holds the configuration shared across every file a caller runs
// through Run: a logger and whether to collect undeclared names before
// resolving collisions. It carries no rewrite state between files — a fresh
// scope.Scopes and scope.IDGen are built per call to Run — so one Pass
// value can drive many files in sequence. Every call to Run overwrites
// LastRenames, so concurrent calls on the same Pass race on that field.
type Pass struct {
	Logger            log.Logger
	CollectUndeclared bool
	ExternNames       transform.NameSet

	// NameBlocks embeds each file's own Name into every id-bearing
	// generated name (config.Config.NameBlocks), for telling loop objects
	// and renamed bindings apart across files in a batch run.
	NameBlocks bool

	// LastRenames is overwritten by every call to Run with that call's
	// CollisionResolver.Renames, for a caller (cmd/blockscope's run
	// subcommand) that wants to report what got renamed.
	LastRenames transform.RenameTable
}

// New builds a Pass. A nil logger defaults to log.NopLogger.
func New(logger log.Logger) *Pass {
	if logger == nil {
		logger = log.NopLogger
	}
	return &Pass{Logger: logger, CollectUndeclared: true}
}

// Run lowers every let/const declaration in file to var, in place. It
// returns the first errs.Assertion raised by any of the three stages,
// which aborts the rewrite for this file (spec.md §7: "aborts the
// compile"); file is left partially rewritten in that case and should be
// discarded by the caller.
func (p *Pass) Run(ctx context.Context, file *ast.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scopes := scope.Build(file)
	ids := scope.NewIDGen()
	if p.NameBlocks {
		ids.Prefix = file.Name
	}

	var undeclared transform.NameSet
	if p.CollectUndeclared {
		undeclared = transform.CollectUndeclaredNames(scopes)
	}

	cr := transform.NewCollisionResolver(scopes, ids, undeclared, p.ExternNames, p.Logger)
	if err := cr.Run(file); err != nil {
		return fmt.Errorf("blockscope: collision resolution: %w", err)
	}
	p.LastRenames = cr.Renames
	transform.ApplyRenameTable(scopes, cr.Renames)

	lct := transform.NewLoopClosureTransformer(scopes, ids, cr.LetConst, p.Logger)
	if err := lct.Run(file); err != nil {
		return fmt.Errorf("blockscope: loop closure rewrite: %w", err)
	}

	transform.NewTokenFlipper(cr.LetConst).Run(file)

	return nil
}

// RunAll drives Run over files in order, stopping at the first error or
// the first ctx.Done() observed between files — the pass itself has no
// internal suspension points (spec.md §5), but a multi-file batch must
// still be cancellable between them.
func (p *Pass) RunAll(ctx context.Context, files []*ast.File) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Run(ctx, file); err != nil {
			return err
		}
	}
	return nil
}
