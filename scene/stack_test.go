package scene

import (
	"testing"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestStackRoundTrip(t *testing.T) {
	s := NewTransformStack()
	require.NoError(t, s.Reset(RootRotation(37)))
	before := s.Current()

	s.Push()
	s.Translate(vm.Vec3{X: 1, Y: 2, Z: 3})
	s.Push()
	s.Scale(vm.Vec3{X: 2, Y: 0.5, Z: 4})
	s.Rotate(90, vm.Vec3{X: 1})
	require.NoError(t, s.Pop())
	s.Scale(vm.Vec3{X: 3, Y: 3, Z: 3})
	require.NoError(t, s.Pop())

	after := s.Current()
	assert.True(t, before.Equals(&after), "before:\n%s\nafter:\n%s", before.ToString(), after.ToString())
	assert.Equal(t, 0, s.Depth())
}

func TestPushDoesNotAlias(t *testing.T) {
	s := NewTransformStack()
	s.Push()
	s.Translate(vm.Vec3{X: 5})
	cur := s.Current()
	cur[0][0] = 42
	require.NoError(t, s.Pop())
	restored := s.Current()
	unit := vm.NewUnitMat(4)
	assert.True(t, restored.Equals(&unit))
}

func TestPopUnderflow(t *testing.T) {
	s := NewTransformStack()
	err := s.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Panics(t, s.MustPop)
}

func TestTransformOrder(t *testing.T) {
	a := NewTransformStack()
	a.Translate(vm.Vec3{X: 1})
	a.Rotate(90, vm.Vec3{Y: 1})

	b := NewTransformStack()
	b.Rotate(90, vm.Vec3{Y: 1})
	b.Translate(vm.Vec3{X: 1})

	ma, mb := a.Current(), b.Current()
	assert.False(t, ma.ApproxEquals(&mb, tol))

	// translate then rotate keeps the translation untouched
	assert.InDelta(t, 1, ma[0][3], tol)
	// rotate then translate moves the offset into -z
	assert.InDelta(t, -1, mb[2][3], tol)
}

func TestNormalMatrixRigid(t *testing.T) {
	s := NewTransformStack()
	s.Translate(vm.Vec3{X: 3, Y: -1, Z: 2})
	s.Rotate(33, vm.Vec3{X: 1, Y: 2, Z: 0.5})
	s.Translate(vm.Vec3{Z: 7})
	s.Rotate(-120, vm.Vec3{Y: 1})

	n, err := s.NormalMatrix()
	require.NoError(t, err)
	cur := s.Current()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, cur[i][j], n[i][j], tol)
		}
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	s := NewTransformStack()
	s.Rotate(20, vm.Vec3{Z: 1})
	s.Scale(vm.Vec3{X: 2, Y: 0.5, Z: 3})

	n, err := s.NormalMatrix()
	require.NoError(t, err)
	cur := s.Current()
	lin := cur.Linear3()
	nLin := n.Linear3()
	assert.False(t, lin.ApproxEquals(&nLin, 1e-3))

	tangent := vm.Vec3{X: 1, Y: 1}
	normal := vm.Vec3{X: 1, Y: -1}
	require.InDelta(t, 0, tangent.Dot(normal), tol)

	tt := vm.Apply(tangent, 0, cur)
	tn := vm.Apply(normal, 0, n)
	naive := vm.Apply(normal, 0, cur)
	assert.InDelta(t, 0, tt.Dot(tn), 1e-4)
	assert.Greater(t, abs(tt.Dot(naive)), float32(0.1))
}

func TestNormalMatrixSingular(t *testing.T) {
	s := NewTransformStack()
	s.Scale(vm.Vec3{X: 1, Y: 1, Z: 0})
	_, err := s.NormalMatrix()
	assert.True(t, errors.Is(err, vm.ErrSingular))
}

func TestResetRejectsNon4x4(t *testing.T) {
	s := NewTransformStack()
	s.Translate(vm.Vec3{X: 3})
	before := s.Current()

	assert.Error(t, s.Reset(vm.NewUnitMat(3)))
	ragged := vm.NewUnitMat(4)
	ragged[2] = ragged[2][:3]
	assert.Error(t, s.Reset(ragged))

	// the stack keeps working on its previous transform
	cur := s.Current()
	assert.True(t, cur.Equals(&before))
	s.Scale(vm.Vec3{X: 2, Y: 2, Z: 2})
	assert.Equal(t, float32(3), s.Current()[0][3])
}

func TestCheckDepth(t *testing.T) {
	s := NewTransformStack()
	s.Push()
	err := s.CheckDepth(0)
	assert.True(t, errors.Is(err, ErrUnbalanced))
	assert.NoError(t, s.CheckDepth(1))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
