package vector_test

import (
	"math"
	"testing"

	"github.com/chazu/geop/pkg/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityIsNoOp(t *testing.T) {
	p := vector.New(1, 2, 3)
	out, err := vector.Identity().Apply(p)
	require.NoError(t, err)
	assert.InDelta(t, 1, out.X.Mid(), 1e-9)
	assert.InDelta(t, 2, out.Y.Mid(), 1e-9)
	assert.InDelta(t, 3, out.Z.Mid(), 1e-9)
}

func TestTranslationMovesPoint(t *testing.T) {
	p := vector.New(0, 0, 0)
	tr := vector.Translation(5, -2, 1)
	out, err := tr.Apply(p)
	require.NoError(t, err)
	assert.InDelta(t, 5, out.X.Mid(), 1e-9)
	assert.InDelta(t, -2, out.Y.Mid(), 1e-9)
	assert.InDelta(t, 1, out.Z.Mid(), 1e-9)
}

func TestRotationZQuarterTurn(t *testing.T) {
	p := vector.New(1, 0, 0)
	rot := vector.RotationZ(math.Pi / 2)
	out, err := rot.Apply(p)
	require.NoError(t, err)
	assert.InDelta(t, 0, out.X.Mid(), 1e-9)
	assert.InDelta(t, 1, out.Y.Mid(), 1e-9)
	assert.InDelta(t, 0, out.Z.Mid(), 1e-9)
}

func TestComposedTransformMatchesSequentialApplication(t *testing.T) {
	p := vector.New(1, 0, 0)
	rot := vector.RotationZ(math.Pi / 2)
	trans := vector.Translation(10, 0, 0)

	composed := vector.Mul(trans, rot)
	viaCompose, err := composed.Apply(p)
	require.NoError(t, err)

	viaSequence, err := rot.Apply(p)
	require.NoError(t, err)
	viaSequence, err = trans.Apply(viaSequence)
	require.NoError(t, err)

	assert.InDelta(t, viaSequence.X.Mid(), viaCompose.X.Mid(), 1e-9)
	assert.InDelta(t, viaSequence.Y.Mid(), viaCompose.Y.Mid(), 1e-9)
	assert.InDelta(t, viaSequence.Z.Mid(), viaCompose.Z.Mid(), 1e-9)
}

func TestIsRigid(t *testing.T) {
	assert.True(t, vector.Identity().IsRigid())
	assert.True(t, vector.RotationX(1.23).IsRigid())
	assert.True(t, vector.Mul(vector.Translation(1, 2, 3), vector.RotationY(0.5)).IsRigid())
	assert.False(t, vector.Scaling(2, 1, 1).IsRigid())
}

func TestApplyDirectionIgnoresTranslation(t *testing.T) {
	d := vector.New(1, 0, 0)
	tr := vector.Translation(100, 200, 300)
	out := tr.ApplyDirection(d)
	assert.InDelta(t, 1, out.X.Mid(), 1e-9)
	assert.InDelta(t, 0, out.Y.Mid(), 1e-9)
	assert.InDelta(t, 0, out.Z.Mid(), 1e-9)
}
