// Package errs provides the two assertion error categories of spec.md §7:
// pre-condition assertions (a required earlier lowering pass did not run)
// and internal consistency assertions (the pass's own invariants broke).
// Both are programmer errors, not user-recoverable conditions; raising
// either aborts the current file's pass.
//
// Grounded on the teacher's lang/scanner package, which type-aliases the
// standard library's go/scanner error types (`type Error = scanner.Error`)
// rather than inventing a parallel error-list type from scratch.
package errs

import "fmt"

// Kind distinguishes the two assertion categories of spec.md §7.
type Kind uint8

//nolint:revive
const (
	// PreCondition is raised when the AST contains a construct this pass
	// assumes was already lowered away: for-of, a class declaration, a
	// destructuring declarator (spec.md §4.1 "Error conditions", §7.1).
	PreCondition Kind = iota
	// Internal is raised when the pass's own invariants are violated: a
	// for-in head reference that isn't the declaring name-node, a loop body
	// with no block (spec.md §7.2).
	Internal
)

func (k Kind) String() string {
	if k == PreCondition {
		return "pre-condition"
	}
	return "internal"
}

// Assertion is a raised programmer-error assertion. It implements error so
// it can be returned up through Pass.Run and wrapped/inspected with the
// standard errors package.
type Assertion struct {
	Kind Kind
	Msg  string
}

func (a *Assertion) Error() string { return fmt.Sprintf("%s assertion: %s", a.Kind, a.Msg) }

// NewPreCondition builds a PreCondition Assertion with a formatted message.
func NewPreCondition(format string, args ...any) *Assertion {
	return &Assertion{Kind: PreCondition, Msg: fmt.Sprintf(format, args...)}
}

// NewInternal builds an Internal Assertion with a formatted message.
func NewInternal(format string, args ...any) *Assertion {
	return &Assertion{Kind: Internal, Msg: fmt.Sprintf(format, args...)}
}
