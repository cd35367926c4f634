package errs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jscompat/blockscope/errs"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "pre-condition", errs.PreCondition.String())
	assert.Equal(t, "internal", errs.Internal.String())
}

func TestNewPreConditionFormatsMessage(t *testing.T) {
	a := errs.NewPreCondition("unexpected %s in %s", "for-of", "loop head")
	assert.Equal(t, errs.PreCondition, a.Kind)
	assert.Equal(t, "unexpected for-of in loop head", a.Msg)
	assert.Equal(t, "pre-condition assertion: unexpected for-of in loop head", a.Error())
}

func TestNewInternalFormatsMessage(t *testing.T) {
	a := errs.NewInternal("loop body %q has no block", "x")
	assert.Equal(t, errs.Internal, a.Kind)
	assert.Equal(t, `internal assertion: loop body "x" has no block`, a.Error())
}

func TestAssertionSatisfiesStdlibErrorInterface(t *testing.T) {
	var err error = errs.NewInternal("boom")
	assert.True(t, errors.As(err, new(*errs.Assertion)))
}
