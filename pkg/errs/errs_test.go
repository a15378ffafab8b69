package errs_test

import (
	"strings"
	"testing"

	"github.com/chazu/geop/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesKind(t *testing.T) {
	root := errs.New(errs.DegenerateConfiguration, "knot span has zero width")
	wrapped := errs.Wrap(root, "inserting knot at t=0.5")
	wrapped = errs.Wrap(wrapped, "subdividing b-spline curve")

	require.Equal(t, errs.DegenerateConfiguration, wrapped.Kind())
	assert.True(t, errs.Is(wrapped, errs.DegenerateConfiguration))
	assert.False(t, errs.Is(wrapped, errs.InvalidTopology))
}

func TestWrapNilIsNil(t *testing.T) {
	require.Nil(t, errs.Wrap(nil, "no-op"))
}

func TestNonKernelErrorWrapsAsNumerical(t *testing.T) {
	wrapped := errs.Wrap(assertErr{}, "doing something")
	require.Equal(t, errs.NumericalError, wrapped.Kind())
}

func TestReportContainsContextChain(t *testing.T) {
	root := errs.New(errs.InvalidTopology, "edge multiplicities != 2")
	wrapped := errs.Wrap(root, "assembling shell")
	wrapped = wrapped.WithSnapshot(errs.Snapshot{"edgeID": "e-42"})

	report := wrapped.Report()
	assert.True(t, strings.Contains(report, "InvalidTopology"))
	assert.True(t, strings.Contains(report, "edge multiplicities"))
	assert.True(t, strings.Contains(report, "assembling shell"))
	assert.True(t, strings.Contains(report, "e-42"))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
