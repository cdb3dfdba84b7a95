package model

import (
	"classroom/scene"
	vm "classroom/vector_math"
)

type Mesh struct {
	Vertices []Vertex
	VIndices []uint32
}

func NewMesh(v []Vertex, id []uint32) *Mesh {
	return &Mesh{
		Vertices: v,
		VIndices: id,
	}
}

// NewGeometryMesh turns scene geometry into vertices of the given colour. The final colour of a fragment is the
// vertex colour times the material colour, so white leaves the material untouched.
func NewGeometryMesh(g scene.Geometry, color vm.Vec3) *Mesh {
	v := make([]Vertex, len(g.Positions))
	for i := range g.Positions {
		v[i] = Vertex{Pos: g.Positions[i], Color: color, Normal: g.Normals[i]}
	}
	id := make([]uint32, len(g.Indices))
	copy(id, g.Indices)
	return NewMesh(v, id)
}

// NewCubeMesh is the white unit cube every classroom primitive is drawn with.
func NewCubeMesh() *Mesh {
	return NewGeometryMesh(scene.UnitCube(), vm.Vec3{X: 1, Y: 1, Z: 1})
}
