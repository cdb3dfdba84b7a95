package scene

import (
	"io"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func toArr(v []vm.Vec3) [][3]float32 {
	res := make([][3]float32, len(v))
	for i := range v {
		res[i] = [3]float32{v[i].X, v[i].Y, v[i].Z}
	}
	return res
}

// NewGLTFDocument converts the scene graph into a glTF document. Every scene node becomes a
// glTF node carrying its local matrix; primitives share one cube mesh per material.
func NewGLTFDocument(root *Node, cube Geometry) (*gltf.Document, error) {
	if err := root.Validate(); err != nil {
		return nil, errors.Wrap(err, "gltf export")
	}
	doc := gltf.NewDocument()

	position := modeler.WritePosition(doc, toArr(cube.Positions))
	normal := modeler.WriteNormal(doc, toArr(cube.Normals))
	indices := modeler.WriteIndices(doc, cube.Indices)

	meshes := map[*Material]uint32{}
	meshFor := func(m *Material) uint32 {
		if idx, ok := meshes[m]; ok {
			return idx
		}
		name := "default"
		color := [4]float32{1, 1, 1, 1}
		if m != nil {
			name = m.Name
			color = [4]float32{m.Color.X, m.Color.Y, m.Color.Z, 1}
		}
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &color,
			},
		})
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: Cube + "-" + name,
			Primitives: []*gltf.Primitive{
				{
					Indices: gltf.Index(indices),
					Attributes: map[string]uint32{
						"POSITION": position,
						"NORMAL":   normal,
					},
					Material: gltf.Index(uint32(len(doc.Materials) - 1)),
				},
			},
		})
		idx := uint32(len(doc.Meshes) - 1)
		meshes[m] = idx
		return idx
	}

	var add func(n *Node) uint32
	add = func(n *Node) uint32 {
		local := n.Local()
		gn := &gltf.Node{Name: n.Name}
		copy(gn.Matrix[:], local.ColumnMajor())
		if n.Primitive != "" {
			gn.Mesh = gltf.Index(meshFor(n.Material))
		}
		doc.Nodes = append(doc.Nodes, gn)
		idx := uint32(len(doc.Nodes) - 1)
		for _, c := range n.Children {
			gn.Children = append(gn.Children, add(c))
		}
		return idx
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, add(root))
	return doc, nil
}

// ExportGLTF writes the scene as binary glTF.
func ExportGLTF(w io.Writer, root *Node) error {
	doc, err := NewGLTFDocument(root, UnitCube())
	if err != nil {
		return err
	}
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return errors.Wrap(encoder.Encode(doc), "encode glb")
}
