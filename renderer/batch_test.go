package renderer

import (
	"testing"

	"classroom/scene"
	vm "classroom/vector_math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchDraws(t *testing.T) {
	wood := &scene.Material{Name: "wood"}
	grey := &scene.Material{Name: "grey"}
	list := scene.DrawList{
		{Path: "a", Primitive: scene.Cube, Material: wood},
		{Path: "b", Primitive: scene.Cube, Material: grey},
		{Path: "c", Primitive: scene.Cube, Material: wood},
		{Path: "d", Primitive: "sphere", Material: wood},
	}
	batches := batchDraws(list)
	require.Len(t, batches, 3)
	assert.Equal(t, wood, batches[0].material)
	require.Len(t, batches[0].draws, 2)
	assert.Equal(t, "a", batches[0].draws[0].Path)
	assert.Equal(t, "c", batches[0].draws[1].Path)
	assert.Equal(t, grey, batches[1].material)
	assert.Equal(t, "sphere", batches[2].primitive)
}

func TestBatchClassroom(t *testing.T) {
	root := scene.BuildClassroom(scene.DefaultDimensions(), scene.DefaultPalette())
	list, err := scene.Flatten(root, vm.NewUnitMat(4))
	require.NoError(t, err)

	batches := batchDraws(list)
	assert.Len(t, batches, len(scene.Materials(root)))
	n := 0
	for _, b := range batches {
		n += len(b.draws)
	}
	assert.Equal(t, len(list), n)
}

func TestBatchEmpty(t *testing.T) {
	assert.Empty(t, batchDraws(nil))
}
