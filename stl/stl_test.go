package stl

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"classroom/scene"
	vm "classroom/vector_math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDrawListRoundTrip(t *testing.T) {
	m := &scene.Material{Name: "m"}
	root := scene.NewGroup("root").Add(
		scene.NewPrimitive("moved", scene.Cube, m, scene.Translate(2, 0, 0)),
		scene.NewPrimitive("flat", scene.Cube, m, scene.Scale(4, 1, 1)),
	)
	list, err := scene.Flatten(root, vm.NewUnitMat(4))
	require.NoError(t, err)

	cube := scene.UnitCube()
	buf := bytes.Buffer{}
	require.NoError(t, WriteDrawList(&buf, list, cube))
	assert.Equal(t, headerSize+4+2*12*triangleSize, buf.Len())

	g, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, g.Positions, 2*36)
	require.Len(t, g.Indices, 2*36)

	// first face of the first cube is +z, moved by 2 along x
	assert.True(t, g.Positions[0].ApproxEquals(vm.Vec3{X: 2.5, Y: .5, Z: .5}, 1e-6), "got %v", g.Positions[0])
	assert.True(t, g.Normals[0].ApproxEquals(vm.Vec3{Z: 1}, 1e-6))

	// the scaled cube keeps unit normals
	scaled := g.Normals[36+6]
	assert.True(t, scaled.ApproxEquals(vm.Vec3{X: 1}, 1e-6), "got %v", scaled)
	assert.InDelta(t, 2.0, g.Positions[36+6].X, 1e-6)
}

func TestReadStlFile(t *testing.T) {
	list, err := scene.Flatten(scene.NewPrimitive("c", scene.Cube, &scene.Material{}), vm.NewUnitMat(4))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cube.stl")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteDrawList(f, list, scene.UnitCube()))
	require.NoError(t, f.Close())

	g, err := ReadStlFile(path)
	require.NoError(t, err)
	assert.Len(t, g.Positions, 36)
}

func TestReadTruncated(t *testing.T) {
	b := make([]byte, headerSize+4)
	b[headerSize] = 2
	_, err := Read(bytes.NewReader(append(b, make([]byte, triangleSize)...)))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader(b[:10]))
	assert.Error(t, err)
}

func TestWriteRejectsMismatchedNormals(t *testing.T) {
	g := scene.UnitCube()
	g.Normals = g.Normals[:3]
	err := WriteDrawList(&bytes.Buffer{}, nil, g)
	assert.Error(t, err)
}
