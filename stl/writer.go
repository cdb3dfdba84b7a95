package stl

import (
	"bufio"
	"encoding/binary"
	"io"

	"classroom/scene"
	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

type triangle struct {
	Normal  [3]float32
	Corners [3][3]float32
	Attr    uint16
}

func arr(v vm.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// WriteDrawList writes every command of list as geometry placed in world space. Face normals are the corner
// normals moved by the command's normal matrix.
func WriteDrawList(w io.Writer, list scene.DrawList, geometry scene.Geometry) error {
	if len(geometry.Normals) != len(geometry.Positions) {
		return errors.Errorf("geometry has %d normals for %d positions", len(geometry.Normals), len(geometry.Positions))
	}
	bw := bufio.NewWriter(w)
	header := make([]byte, headerSize)
	copy(header, "classroom "+scene.Cube)
	if _, err := bw.Write(header); err != nil {
		return errors.Wrap(err, "stl header")
	}
	count := uint32(len(list) * (len(geometry.Indices) / 3))
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return errors.Wrap(err, "stl triangle count")
	}

	for _, cmd := range list {
		var err error
		geometry.Triangles(func(a, b, c uint32) {
			if err != nil {
				return
			}
			n := geometry.Normals[a].Add(geometry.Normals[b]).Add(geometry.Normals[c])
			n = vm.Apply(n, 0, cmd.Normal)
			if !n.IsZero() {
				n = n.Norm()
			}
			t := triangle{Normal: arr(n)}
			for i, idx := range [3]uint32{a, b, c} {
				t.Corners[i] = arr(vm.Apply(geometry.Positions[idx], 1, cmd.Model))
			}
			err = binary.Write(bw, binary.LittleEndian, &t)
		})
		if err != nil {
			return errors.Wrapf(err, "stl triangles of %s", cmd.Path)
		}
	}
	return errors.Wrap(bw.Flush(), "flush stl")
}
