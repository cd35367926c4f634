package scope

import "github.com/jscompat/blockscope/ast"

// Kind is the declaration kind a Var originated from (spec.md §3: "Var: an
// opaque binding record — (name, declaring_node, origin_input, kind ∈
// {var, let, const, param, catch})").
type Kind uint8

//nolint:revive
const (
	KindUndefined Kind = iota
	KindVar
	KindLet
	KindConst
	KindParam
	KindCatch
)

func (k Kind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindLet:
		return "let"
	case KindConst:
		return "const"
	case KindParam:
		return "param"
	case KindCatch:
		return "catch"
	default:
		return "undefined"
	}
}

// IsBlockScoped reports whether the binding is a let or const, the two
// kinds this pass's components care about.
func (k Kind) IsBlockScoped() bool { return k == KindLet || k == KindConst }

// Var is a binding record. Name is the variable's current name, which
// CollisionResolver may change in place when it renames to avoid a hoist
// collision; OrigName keeps the name as first declared (spec.md's
// "origin_input"), used only for diagnostics and for deriving generated
// property names so they stay readable (`$jscomp$loop$prop$<origname>$<id>`).
type Var struct {
	Name     string
	OrigName string
	Decl     ast.Node // the *ast.Ident of the declarator, parameter or catch clause
	Kind     Kind
}
