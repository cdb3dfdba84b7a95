package scene

import (
	"strings"
	"testing"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallScene() *Node {
	m := &Material{Name: "m"}
	return NewGroup("root").Add(
		NewGroup("a", Translate(1, 0, 0)).Add(
			NewPrimitive("a1", Cube, m, Scale(2, 2, 2)),
			NewPrimitive("a2", Cube, m, Translate(0, 1, 0)),
		),
		NewPrimitive("b", Cube, m, Translate(0, 0, -1)),
	)
}

func TestWalkOrderAndTransforms(t *testing.T) {
	list, err := Flatten(smallScene(), vm.NewUnitMat(4))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "root/a/a1", list[0].Path)
	assert.Equal(t, "root/a/a2", list[1].Path)
	assert.Equal(t, "root/b", list[2].Path)

	// a2 inherits a's translation but not a1's scale
	assert.Equal(t, float32(1), list[1].Model[0][3])
	assert.Equal(t, float32(1), list[1].Model[1][3])
	assert.Equal(t, float32(1), list[1].Model[0][0])
	// b is a sibling of a and sees none of it
	assert.Equal(t, float32(0), list[2].Model[0][3])
	assert.Equal(t, float32(-1), list[2].Model[2][3])
}

func TestWalkBalanced(t *testing.T) {
	s := NewTransformStack()
	s.Push()
	require.NoError(t, Walk(smallScene(), s, func(DrawCmd) error { return nil }))
	assert.Equal(t, 1, s.Depth())
}

func TestWalkDetectsResidualDepth(t *testing.T) {
	s := NewTransformStack()
	leaked := false
	err := Walk(smallScene(), s, func(c DrawCmd) error {
		if !leaked {
			leaked = true
			s.Push()
		}
		return nil
	})
	assert.True(t, errors.Is(err, ErrUnbalanced), "%v", err)
}

func TestWalkSingular(t *testing.T) {
	root := NewGroup("root").Add(
		NewPrimitive("flat", Cube, nil, Scale(1, 0, 1)),
	)
	s := NewTransformStack()
	err := Walk(root, s, func(DrawCmd) error { return nil })
	assert.True(t, errors.Is(err, vm.ErrSingular))
	assert.True(t, strings.Contains(err.Error(), "root/flat"))
	assert.Equal(t, 0, s.Depth())

	assert.Error(t, root.Validate())
}

func TestWalkVisitError(t *testing.T) {
	stop := errors.New("stop")
	s := NewTransformStack()
	err := Walk(smallScene(), s, func(DrawCmd) error { return stop })
	assert.Equal(t, stop, errors.Cause(err))
	assert.Equal(t, 0, s.Depth())
}

func TestWalkRootTransform(t *testing.T) {
	list, err := Flatten(smallScene(), RootRotation(90))
	require.NoError(t, err)
	// b at z=-1 rotated by 90 degree around y lands on x=-1
	assert.InDelta(t, -1, list[2].Model[0][3], tol)
	assert.InDelta(t, 0, list[2].Model[2][3], tol)
}

func TestOffsetLeadsOps(t *testing.T) {
	n := NewGroup("g", Rotate(90, 0, 1, 0), Translate(1, 0, 0))
	n.SetOffset(0, 2)
	local := n.Local()
	// offset in parent space, ops after it
	assert.InDelta(t, 0, local[0][3], tol)
	assert.InDelta(t, 1, local[2][3], tol)
}

func TestFind(t *testing.T) {
	root := smallScene()
	assert.Equal(t, "a2", root.Find("a2").Name)
	assert.Nil(t, root.Find("nope"))
	assert.Equal(t, 3, root.Count())
}

func TestValidateRotationAxis(t *testing.T) {
	n := NewGroup("r", Rotate(10, 0, 0, 0))
	assert.Error(t, n.Validate())
	assert.NoError(t, smallScene().Validate())
}

func TestFlattenTinyScale(t *testing.T) {
	m := &Material{Name: "m"}
	root := NewGroup("root").Add(NewPrimitive("tiny", Cube, m, Scale(0.002, 0.002, 0.002)))
	require.NoError(t, root.Validate())
	list, err := Flatten(root, RootRotation(20))
	require.NoError(t, err)
	require.Len(t, list, 1)
	// uniform scale leaves the normal matrix a pure rotation scaled by 1/0.002
	assert.InDelta(t, 500, list[0].Normal[1][1], 1e-2)

	flat := NewGroup("root").Add(NewPrimitive("flat", Cube, m, Scale(1, 0, 1)))
	_, err = Flatten(flat, vm.NewUnitMat(4))
	assert.True(t, errors.Is(err, vm.ErrSingular))
}

func TestFlattenRejectsBadRoot(t *testing.T) {
	_, err := Flatten(smallScene(), vm.NewUnitMat(3))
	assert.Error(t, err)
}
