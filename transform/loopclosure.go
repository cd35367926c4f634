package transform

import (
	"github.com/jscompat/blockscope/ast"
	"github.com/jscompat/blockscope/errs"
	"github.com/jscompat/blockscope/log"
	"github.com/jscompat/blockscope/scope"
	"github.com/jscompat/blockscope/token"
)

// LoopClosureTransformer is the hard core of the pass (spec.md §4.2):
// detecting let/const variables captured by a function nested inside their
// enclosing loop, and rewriting every such variable as a property of a
// per-iteration loop object so a capturing closure's reference always
// resolves through the current iteration's object.
type LoopClosureTransformer struct {
	scopes *scope.Scopes
	ids    *scope.IDGen
	logger log.Logger

	letConst map[*ast.DeclaratorList]bool

	loopObjects map[ast.Node]*LoopObject // keyed by the loop scope's root node
	loopOrder   []ast.Node

	propNames PropertyNameMap
	refs      *ReferenceMap
	wraps     *ClosureWrapMap
	wrapOrder []ast.Node

	// pendingReplacement holds, per declarator touched by replaceDeclInit,
	// the assignment statement that should stand in for its (by then
	// single-declarator, per SplitDeclaratorList) owning list once
	// rewriteStmtList reaches it. Keyed by *ast.Declarator rather than by
	// the owning list, since a captured declarator may not be decls[0] and
	// SplitDeclaratorList re-houses the same declarator pointer into a new
	// list — keyed by list, a post-split lookup would miss it. Kept here
	// rather than as a field on ast.DeclaratorList: it is this pass's own
	// transient bookkeeping, not a property of the AST node itself.
	pendingReplacement map[*ast.Declarator]ast.Stmt
}

// NewLoopClosureTransformer builds a transformer sharing letConst (the
// letConstSet of spec.md §3) with the CollisionResolver that ran before it.
// It keeps letConst's membership current as it rewrites: a captured
// declarator's list is removed once replaced, and a split multi-declarator
// list's pieces (spec.md §4.2.2) are added, so TokenFlipper can later consume
// the same map as the exact set of nodes still needing retokening (spec.md
// §4.3) rather than rediscovering them with its own predicate.
func NewLoopClosureTransformer(scopes *scope.Scopes, ids *scope.IDGen, letConst map[*ast.DeclaratorList]bool, logger log.Logger) *LoopClosureTransformer {
	if logger == nil {
		logger = log.NopLogger
	}
	return &LoopClosureTransformer{
		scopes:             scopes,
		ids:                ids,
		logger:             logger,
		letConst:           letConst,
		loopObjects:        make(map[ast.Node]*LoopObject),
		propNames:          make(PropertyNameMap),
		refs:               NewReferenceMap(64),
		wraps:              NewClosureWrapMap(16),
		pendingReplacement: make(map[*ast.Declarator]ast.Stmt),
	}
}

// Run executes Phase A (reference discovery) followed by Phase B (per-loop
// rewrite) over file, per spec.md §5's ordering guarantee that Phase A
// completes for the entire AST before any Phase B rewrite begins.
func (t *LoopClosureTransformer) Run(file *ast.File) error {
	if err := t.phaseA(file); err != nil {
		return err
	}
	return t.phaseB(file)
}

// phaseA is spec.md §4.2's Phase A: for every identifier reference to a
// let/const var, determine whether it is loop-bound and, if captured by a
// nested closure, register the loop object, property name, and wrap target.
func (t *LoopClosureTransformer) phaseA(file *ast.File) error {
	for _, ref := range t.scopes.References {
		r := t.scopes.Of(ref)
		if r == nil {
			continue
		}
		v, declScope := r.Lookup(ref.Name)
		if v == nil || !v.Kind.IsBlockScoped() {
			continue
		}
		// CollisionResolver has already moved v into its hoist scope; the
		// scope Build recorded for v's declaring identifier is the one it
		// was declared in.
		if s := t.scopes.Of(v.Decl); s != nil {
			declScope = s
		}

		loopScope, ok := declScope.EnclosingLoop()
		if !ok {
			continue
		}
		t.refs.Add(v, ref)

		lastFn := outermostFunctionBetween(r, loopScope)
		if lastFn == nil {
			continue // referenced within the same iteration's synchronous code, not captured
		}
		fn, ok := lastFn.Root().(*ast.FuncLit)
		if !ok {
			return errs.NewInternal("enclosing function scope's root is not a function literal")
		}

		var wrapTarget ast.Node = fn
		if owner, ok := t.scopes.GetterSetterOwner[fn]; ok {
			wrapTarget = owner
		}

		lo := t.loopObjects[loopScope.Root()]
		if lo == nil {
			lo = newLoopObject(t.ids, loopScope.Root())
			t.loopObjects[loopScope.Root()] = lo
			t.loopOrder = append(t.loopOrder, loopScope.Root())
		}
		lo.Add(v)
		t.propNames.PropertyNameFor(v, t.ids)

		firstForTarget := len(t.wraps.Get(wrapTarget)) == 0
		if t.wraps.Add(wrapTarget, v.Name, lo) && firstForTarget {
			t.wrapOrder = append(t.wrapOrder, wrapTarget)
		}
	}
	return nil
}

// outermostFunctionBetween walks from r up to (but not through) stop,
// returning the outermost function-kind scope encountered, or nil if none
// (spec.md §4.2 step 5).
func outermostFunctionBetween(r, stop *scope.Scope) *scope.Scope {
	var lastFn *scope.Scope
	for cur := r; cur != nil && cur != stop; cur = cur.Parent() {
		if cur.Kind() == scope.Function || cur.Kind() == scope.Param {
			lastFn = cur
		}
	}
	return lastFn
}

// phaseB is spec.md §4.2's Phase B, run in discovery order. For each loop it
// rewrites captured-variable references first (step 4, since that is purely
// reference-local), then declares and installs the loop object and its
// per-kind update (steps 1-3); closure wrapping (step 5) runs once globally
// afterward, since a wrap target's captured set is only complete once every
// loop has been visited.
func (t *LoopClosureTransformer) phaseB(file *ast.File) error {
	for _, root := range t.loopOrder {
		lo := t.loopObjects[root]
		if err := t.rewriteCapturedVars(root, lo); err != nil {
			return err
		}
	}

	file.Stmts = t.rewriteStmtList(file.Stmts)

	return t.wrapClosures(file)
}

// rewriteCapturedVars performs step 4 for every var captured by the loop
// rooted at root: replacing references either with the list-level
// assignment-statement form (declarator-initializer position) or with a
// generic get-property expression everywhere else.
func (t *LoopClosureTransformer) rewriteCapturedVars(root ast.Node, lo *LoopObject) error {
	forIn, isForIn := root.(*ast.ForInStmt)
	var headVar *scope.Var
	if isForIn && forIn.Decl != nil {
		headVar, _ = t.scopes.Of(forIn.Decl).Lookup(forIn.Decl.Decls[0].Name.Name)
	}

	generic := make(map[*ast.Ident]ast.Expr)
	for _, v := range lo.Vars() {
		prop := t.propNames.PropertyNameFor(v, t.ids)

		// V's own declaring occurrence (spec.md §4.2 step 4, "R's parent is
		// a declarator-list") is never itself a reference (scope.Build only
		// records non-binding identifiers in References), so it is looked
		// up directly via the Var's declaring node rather than found among
		// t.refs.Get(v).
		if declIdent, ok := v.Decl.(*ast.Ident); ok {
			if info, ok := t.scopes.DeclInitParent[declIdent]; ok {
				if err := t.replaceDeclInit(info, lo, prop); err != nil {
					return err
				}
			}
		}

		for _, ref := range t.refs.Get(v) {
			if call, ok := t.scopes.CallFnOf[ref]; ok {
				call.FreeCall = false
			}
			generic[ref] = &ast.GetPropertyExpr{Object: &ast.Ident{Name: lo.Name}, Name: prop, Dot: ref.Start}
		}
		if headVar != nil && v == headVar {
			copyStmt := &ast.ExprStmt{X: &ast.AssignExpr{
				Left:  &ast.GetPropertyExpr{Object: &ast.Ident{Name: lo.Name}, Name: prop},
				Right: &ast.Ident{Name: headVar.Name},
			}}
			forIn.Body.Stmts = append([]ast.Stmt{copyStmt}, forIn.Body.Stmts...)
		}
	}
	substIdents(wrapAsBlock(root), generic)
	return nil
}

// wrapAsBlock adapts a loop's own scope root into the single-statement
// shape substIdents expects. WhileStmt/DoWhileStmt key their LoopObject by
// their body already, so this wraps any root into a BlockStmt containing
// just it, which is enough for substIdents to reach every expression beneath.
func wrapAsBlock(root ast.Node) ast.Stmt {
	if s, ok := root.(ast.Stmt); ok {
		return &ast.BlockStmt{Stmts: []ast.Stmt{s}}
	}
	return &ast.BlockStmt{}
}

// replaceDeclInit implements step 4's declarator-list branch: the captured
// variable's own declaration becomes an assignment onto the loop object
// (`<L.name>.<P> = <initializer>`) when it has an initializer, preserving
// its inline annotation, or is simply detached when it has none — the
// property then reads `undefined` on entry, since the loop object's own
// declaration (step 1) starts from an empty object literal.
func (t *LoopClosureTransformer) replaceDeclInit(info *scope.DeclInitInfo, lo *LoopObject, prop string) error {
	delete(t.letConst, info.List)

	if info.Decl.Init == nil {
		t.pendingReplacement[info.Decl] = nil
		return nil
	}

	assign := &ast.ExprStmt{X: &ast.AssignExpr{
		Left:  &ast.GetPropertyExpr{Object: &ast.Ident{Name: lo.Name}, Name: prop},
		Right: info.Decl.Init,
	}}
	t.pendingReplacement[info.Decl] = assign
	return nil
}

// rewriteStmtList performs the statement-list-level half of Phase B:
// splicing declarator-list normalizations and their replacements in place,
// recursing into nested blocks, and installing each loop's declaration and
// per-kind update (steps 1-3).
func (t *LoopClosureTransformer) rewriteStmtList(stmts []ast.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for i := 0; i < len(stmts); i++ {
		out = append(out, t.rewriteOneStmt(stmts, i)...)
	}
	return out
}

func (t *LoopClosureTransformer) rewriteOneStmt(stmts []ast.Stmt, i int) []ast.Stmt {
	s := stmts[i]
	switch st := s.(type) {
	case *ast.DeclaratorList:
		return t.finishDeclaratorListStmts(st)

	case *ast.BlockStmt:
		st.Stmts = t.rewriteStmtList(st.Stmts)
		return []ast.Stmt{st}

	case *ast.IfStmt:
		st.Then.Stmts = t.rewriteStmtList(st.Then.Stmts)
		if st.Else != nil {
			st.Else = t.rewriteSingle(st.Else)
		}
		return []ast.Stmt{st}

	case *ast.LabeledStmt:
		updated, lo, extra := t.rewriteLoopBody(st.Stmt, st.Label)
		st.Stmt = updated
		return t.finishLoopWrap(st, lo, extra)

	case *ast.WhileStmt, *ast.DoWhileStmt, *ast.ForStmt, *ast.ForInStmt:
		updated, lo, extra := t.rewriteLoopBody(s, "")
		return t.finishLoopWrap(updated, lo, extra)

	default:
		return []ast.Stmt{s}
	}
}

func (t *LoopClosureTransformer) rewriteSingle(s ast.Stmt) ast.Stmt {
	res := t.rewriteOneStmt([]ast.Stmt{s}, 0)
	if len(res) == 1 {
		return res[0]
	}
	return &ast.BlockStmt{Stmts: res}
}

// finishDeclaratorListStmts normalizes a declarator-list statement (body or
// pulled-out C-style for-init) into the 0-or-more replacement statements it
// becomes once any pending captured-initializer replacements are applied:
// splitting multi-declarator lists first (spec.md §4.2.2) so each captured
// declarator stands alone before being swapped for its assignment.
func (t *LoopClosureTransformer) finishDeclaratorListStmts(dl *ast.DeclaratorList) []ast.Stmt {
	if dl.Tok.IsBlockScoped() && len(dl.Decls) > 1 {
		expanded := SplitDeclaratorList([]ast.Stmt{dl}, 0, dl)
		out := make([]ast.Stmt, 0, len(expanded))
		for _, e := range expanded {
			edl := e.(*ast.DeclaratorList)
			// SplitDeclaratorList reuses dl itself for the first piece and
			// allocates a fresh list per remaining declarator; either way
			// letConst (spec.md §3's letConstSet) must track the node that
			// now actually sits in the tree, not the pre-split one.
			t.letConst[edl] = true
			if s := t.finishDeclaratorList(edl); s != nil {
				out = append(out, s)
			}
		}
		return out
	}
	if s := t.finishDeclaratorList(dl); s != nil {
		return []ast.Stmt{s}
	}
	return nil
}

// finishDeclaratorList resolves a single-declarator list that may carry a
// pending captured-initializer replacement (set by replaceDeclInit against
// its sole declarator): the assignment statement it was replaced by, nil if
// the declarator had no initializer and was simply detached, or the list
// itself unchanged if nothing captured it. Callers split multi-declarator
// lists via SplitDeclaratorList before calling this, per spec.md §4.2.2.
func (t *LoopClosureTransformer) finishDeclaratorList(dl *ast.DeclaratorList) ast.Stmt {
	if len(dl.Decls) != 1 {
		return dl
	}
	repl, ok := t.pendingReplacement[dl.Decls[0]]
	if !ok {
		return dl
	}
	delete(t.pendingReplacement, dl.Decls[0])
	delete(t.letConst, dl) // dl's sole declarator was captured; it no longer stands as a DeclaratorList in the tree
	if repl == nil {
		return nil
	}
	if dl.Ann != nil {
		if es, ok := repl.(*ast.ExprStmt); ok {
			es.Ann = dl.Ann.Clone()
		}
	}
	return repl
}

// rewriteLoopBody recurses into a loop statement's body and, when it has a
// LoopObject, installs the per-kind update (spec.md §4.2 step 3). label is
// the loop's own label, if any, used by the continue-rewrite rule. extra
// holds statements (the C-style loop's pulled-out, possibly captured-var-
// converted init) that must be spliced in front of the returned statement.
func (t *LoopClosureTransformer) rewriteLoopBody(s ast.Stmt, label string) (ast.Stmt, *LoopObject, []ast.Stmt) {
	switch st := s.(type) {
	case *ast.WhileStmt:
		st.Body.Stmts = t.rewriteStmtList(st.Body.Stmts)
		lo := t.loopObjects[st.Body]
		if lo != nil {
			t.installNonForUpdate(st.Body, lo, label)
		}
		return st, lo, nil

	case *ast.DoWhileStmt:
		st.Body.Stmts = t.rewriteStmtList(st.Body.Stmts)
		lo := t.loopObjects[st.Body]
		if lo != nil {
			t.installNonForUpdate(st.Body, lo, label)
		}
		return st, lo, nil

	case *ast.ForStmt:
		st.Body.Stmts = t.rewriteStmtList(st.Body.Stmts)
		lo := t.loopObjects[st]
		if lo == nil {
			return st, nil, nil
		}
		pulled := t.installForUpdate(st, lo)
		return st, lo, pulled

	case *ast.ForInStmt:
		st.Body.Stmts = t.rewriteStmtList(st.Body.Stmts)
		lo := t.loopObjects[st]
		if lo != nil {
			t.installNonForUpdate(st.Body, lo, label)
		}
		return st, lo, nil

	default:
		return t.rewriteSingle(s), nil, nil
	}
}

// finishLoopWrap assembles the final statement sequence for a (possibly
// labeled) loop: the loop object's declaration (spec.md §4.2 step 1,
// "hoisting through enclosing labels"), any pulled-out C-style init
// statements, then the loop itself.
func (t *LoopClosureTransformer) finishLoopWrap(s ast.Stmt, lo *LoopObject, extra []ast.Stmt) []ast.Stmt {
	if lo == nil {
		return append(extra, s)
	}
	decl := &ast.DeclaratorList{
		Tok:   token.VAR,
		Decls: []*ast.Declarator{{Name: &ast.Ident{Name: lo.Name}, Init: &ast.ObjectLit{}}},
	}
	out := make([]ast.Stmt, 0, len(extra)+2)
	out = append(out, decl)
	out = append(out, extra...)
	return append(out, s)
}

// buildUpdateAssign constructs spec.md §4.2 step 2's next-iteration update
// expression: `<L.name> = { <prop>: <L.name>.<prop>, ... }`.
func (t *LoopClosureTransformer) buildUpdateAssign(lo *LoopObject) ast.Expr {
	vars := lo.Vars()
	props := make([]*ast.Property, len(vars))
	for i, v := range vars {
		prop := t.propNames.PropertyNameFor(v, t.ids)
		props[i] = &ast.Property{
			Kind:  ast.PropPlain,
			Key:   &ast.Ident{Name: prop},
			Value: &ast.GetPropertyExpr{Object: &ast.Ident{Name: lo.Name}, Name: prop},
		}
	}
	return &ast.AssignExpr{Left: &ast.Ident{Name: lo.Name}, Right: &ast.ObjectLit{Props: props}}
}

// installForUpdate implements spec.md §4.2 step 3's C-style case. A
// DeclaratorList init runs through the same finishDeclaratorListStmts as a
// body declaration, so a captured declarator in the loop's own head (e.g.
// `for (let i = 0; ...)`) becomes `<L.name>.<P> = 0;` in place of the
// declaration, left standing in the for-loop's own init clause (valid,
// since ForStmt.Init accepts an *ExprStmt) rather than pulled out ahead of
// it — required for per-iteration binding preservation (spec.md §8), since
// every other reference to the captured variable, including the loop's own
// condition and update clauses, is rewritten by rewriteCapturedVars to read
// through the loop object, which starts out empty. A non-declaration init
// (already an assignment, or absent) is left untouched: nothing in it needs
// converting. It returns any leftover statements that must be pulled out
// ahead of the loop — every statement after the first that normalizing the
// init produced, which is only possible when the init declared more than
// one variable.
func (t *LoopClosureTransformer) installForUpdate(st *ast.ForStmt, lo *LoopObject) []ast.Stmt {
	update := t.buildUpdateAssign(lo)
	if st.Post == nil {
		st.Post = &ast.ExprStmt{X: update}
	} else if es, ok := st.Post.(*ast.ExprStmt); ok {
		es.X = &ast.CommaExpr{Exprs: []ast.Expr{update, es.X}}
	} else {
		st.Post = &ast.ExprStmt{X: update}
	}

	dl, ok := st.Init.(*ast.DeclaratorList)
	if !ok {
		return nil
	}

	stmts := t.finishDeclaratorListStmts(dl)
	switch len(stmts) {
	case 0:
		st.Init = nil
		return nil
	case 1:
		st.Init = stmts[0]
		return nil
	default:
		st.Init = stmts[0]
		return stmts[1:]
	}
}

// installNonForUpdate implements spec.md §4.2 step 3's while/do-while/for-in
// case: append the update at the end of the body, wrapping the body in a
// labeled block first if any continue needed rewriting to break it.
func (t *LoopClosureTransformer) installNonForUpdate(body *ast.BlockStmt, lo *LoopObject, outerLabel string) {
	innerLabel := lo.Name
	update := &ast.ExprStmt{X: t.buildUpdateAssign(lo)}
	if rewriteContinues(body.Stmts, outerLabel, innerLabel) {
		wrapped := &ast.LabeledStmt{Label: innerLabel, Stmt: &ast.BlockStmt{Stmts: body.Stmts}}
		body.Stmts = []ast.Stmt{wrapped, update}
	} else {
		body.Stmts = append(body.Stmts, update)
	}
}

// wrapClosures implements spec.md §4.2 step 5: build one IIFE per wrap
// target and replace the target in place.
func (t *LoopClosureTransformer) wrapClosures(file *ast.File) error {
	for _, target := range t.wrapOrder {
		los := t.wraps.Get(target)
		if len(los) == 0 {
			continue
		}
		iife := t.buildIIFE(target, los)

		if fn, ok := target.(*ast.FuncLit); ok && fn.Name != nil {
			// a function declaration: preserve the declared name
			// (spec.md §4.2 step 5, "wrap the replacement in
			// `var <fname> = <call>;`").
			decl := &ast.DeclaratorList{
				Tok:   token.VAR,
				Decls: []*ast.Declarator{{Name: fn.Name, Init: iife}},
			}
			if !replaceExprStmtInList(file.Stmts, fn, decl) {
				return errs.NewInternal("wrap target function declaration not found as a statement")
			}
			continue
		}

		targetExpr, ok := target.(ast.Expr)
		if !ok {
			return errs.NewInternal("wrap target is neither an expression nor a named function literal")
		}
		replaceExprEverywhere(file.Stmts, targetExpr, iife)
	}
	return nil
}

// rewriteContinues implements spec.md §4.2 step 3's continue-rewrite rule:
// an unlabeled continue at loop-body depth 0 becomes `break <innerLabel>`;
// a labeled continue naming outerLabel (the loop's own label, if any)
// becomes the same, even through nested loops, since it targets this loop
// specifically; every other continue is left untouched. It descends into
// nested loops only when outerLabel is non-empty (an unlabeled continue in a
// nested loop targets that inner loop, not this one, so there is nothing to
// rewrite there unless hunting for a label match). It reports whether any
// statement was rewritten.
func rewriteContinues(stmts []ast.Stmt, outerLabel, innerLabel string) bool {
	rewritten := false
	for i, s := range stmts {
		ns, did := rewriteContinueIn(s, outerLabel, innerLabel, true)
		stmts[i] = ns
		rewritten = rewritten || did
	}
	return rewritten
}

// rewriteContinueIn rewrites continues within a single statement s, where
// atDepthZero is true if s sits directly in the loop body currently being
// installed (as opposed to inside a nested loop found while hunting for a
// label match).
func rewriteContinueIn(s ast.Stmt, outerLabel, innerLabel string, atDepthZero bool) (ast.Stmt, bool) {
	switch st := s.(type) {
	case *ast.ContinueStmt:
		if atDepthZero && st.Label == "" {
			return &ast.BreakStmt{Label: innerLabel}, true
		}
		if st.Label != "" && outerLabel != "" && st.Label == outerLabel {
			return &ast.BreakStmt{Label: innerLabel}, true
		}
		return st, false

	case *ast.BlockStmt:
		rewritten := false
		for i, inner := range st.Stmts {
			ns, did := rewriteContinueIn(inner, outerLabel, innerLabel, atDepthZero)
			st.Stmts[i] = ns
			rewritten = rewritten || did
		}
		return st, rewritten

	case *ast.IfStmt:
		rewritten := false
		for i, inner := range st.Then.Stmts {
			ns, did := rewriteContinueIn(inner, outerLabel, innerLabel, atDepthZero)
			st.Then.Stmts[i] = ns
			rewritten = rewritten || did
		}
		if st.Else != nil {
			ns, did := rewriteContinueIn(st.Else, outerLabel, innerLabel, atDepthZero)
			st.Else = ns
			rewritten = rewritten || did
		}
		return st, rewritten

	case *ast.LabeledStmt:
		ns, did := rewriteContinueIn(st.Stmt, outerLabel, innerLabel, atDepthZero)
		st.Stmt = ns
		return st, did

	case *ast.WhileStmt, *ast.DoWhileStmt, *ast.ForStmt, *ast.ForInStmt:
		if outerLabel == "" {
			// an unlabeled continue inside this nested loop targets it,
			// not the loop being installed here; nothing to hunt for.
			return s, false
		}
		return rewriteContinueInNestedLoop(st, outerLabel, innerLabel)

	default:
		return s, false
	}
}

// rewriteContinueInNestedLoop descends into a nested loop hunting only for
// continues labeled outerLabel — an unlabeled continue here belongs to the
// nested loop itself and must not be touched.
func rewriteContinueInNestedLoop(s ast.Stmt, outerLabel, innerLabel string) (ast.Stmt, bool) {
	var body *ast.BlockStmt
	switch st := s.(type) {
	case *ast.WhileStmt:
		body = st.Body
	case *ast.DoWhileStmt:
		body = st.Body
	case *ast.ForStmt:
		body = st.Body
	case *ast.ForInStmt:
		body = st.Body
	}
	rewritten := false
	for i, inner := range body.Stmts {
		ns, did := rewriteContinueAtNonZeroDepth(inner, outerLabel, innerLabel)
		body.Stmts[i] = ns
		rewritten = rewritten || did
	}
	return s, rewritten
}

// rewriteContinueAtNonZeroDepth is rewriteContinueIn with atDepthZero
// permanently false: only a labeled continue matching outerLabel can ever
// be rewritten past the first nested-loop boundary.
func rewriteContinueAtNonZeroDepth(s ast.Stmt, outerLabel, innerLabel string) (ast.Stmt, bool) {
	return rewriteContinueIn(s, outerLabel, innerLabel, false)
}

// buildIIFE constructs spec.md §4.2 step 5's immediately-invoked function
// expression: `(function(L1, ..., Lk) { return T; })(L1, ..., Lk)`.
func (t *LoopClosureTransformer) buildIIFE(target ast.Node, los []*LoopObject) ast.Expr {
	params := make([]*ast.Ident, len(los))
	args := make([]ast.Expr, len(los))
	for i, lo := range los {
		params[i] = &ast.Ident{Name: lo.Name}
		args[i] = &ast.Ident{Name: lo.Name}
	}
	retExpr, ok := target.(ast.Expr)
	if !ok {
		retExpr = &ast.Ident{Name: "undefined"}
	}
	fn := &ast.FuncLit{
		Params: params,
		Body:   &ast.BlockStmt{Stmts: []ast.Stmt{&ast.ReturnStmt{X: retExpr}}},
	}
	return &ast.CallExpr{Fn: fn, Args: args, FreeCall: true}
}
