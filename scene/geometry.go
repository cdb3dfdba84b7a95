package scene

import vm "classroom/vector_math"

// Geometry is an indexed triangle list with one normal per vertex.
type Geometry struct {
	Positions []vm.Vec3
	Normals   []vm.Vec3
	Indices   []uint32
}

// UnitCube returns the cube with edge length 1 centred at the origin. Every face has its own
// four vertices so the normals stay flat.
func UnitCube() Geometry {
	faces := []struct {
		normal  vm.Vec3
		corners [4]vm.Vec3
	}{
		{vm.Vec3{Z: 1}, [4]vm.Vec3{{X: .5, Y: .5, Z: .5}, {X: -.5, Y: .5, Z: .5}, {X: -.5, Y: -.5, Z: .5}, {X: .5, Y: -.5, Z: .5}}},
		{vm.Vec3{X: 1}, [4]vm.Vec3{{X: .5, Y: .5, Z: .5}, {X: .5, Y: -.5, Z: .5}, {X: .5, Y: -.5, Z: -.5}, {X: .5, Y: .5, Z: -.5}}},
		{vm.Vec3{Y: 1}, [4]vm.Vec3{{X: .5, Y: .5, Z: .5}, {X: .5, Y: .5, Z: -.5}, {X: -.5, Y: .5, Z: -.5}, {X: -.5, Y: .5, Z: .5}}},
		{vm.Vec3{X: -1}, [4]vm.Vec3{{X: -.5, Y: .5, Z: .5}, {X: -.5, Y: .5, Z: -.5}, {X: -.5, Y: -.5, Z: -.5}, {X: -.5, Y: -.5, Z: .5}}},
		{vm.Vec3{Y: -1}, [4]vm.Vec3{{X: -.5, Y: -.5, Z: -.5}, {X: .5, Y: -.5, Z: -.5}, {X: .5, Y: -.5, Z: .5}, {X: -.5, Y: -.5, Z: .5}}},
		{vm.Vec3{Z: -1}, [4]vm.Vec3{{X: .5, Y: -.5, Z: -.5}, {X: -.5, Y: -.5, Z: -.5}, {X: -.5, Y: .5, Z: -.5}, {X: .5, Y: .5, Z: -.5}}},
	}
	g := Geometry{}
	for i, f := range faces {
		base := uint32(i * 4)
		for _, c := range f.corners {
			g.Positions = append(g.Positions, c)
			g.Normals = append(g.Normals, f.normal)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Triangles calls fn for every triangle with its corner indices.
func (g Geometry) Triangles(fn func(a, b, c uint32)) {
	for i := 0; i+2 < len(g.Indices); i += 3 {
		fn(g.Indices[i], g.Indices[i+1], g.Indices[i+2])
	}
}
