// Package stl reads and writes binary STL files.
package stl

import (
	"bytes"
	"encoding/binary"
	"io"
	"log"
	"math"
	"os"

	"classroom/scene"
	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

const (
	headerSize = 80
	// normal, three corners and the attribute byte count
	triangleSize = 50
)

// ReadStlFile reads the binary STL file at path.
func ReadStlFile(path string) (scene.Geometry, error) {
	log.Printf("Reading stl file %s", path)
	b, err := os.ReadFile(path)
	if err != nil {
		return scene.Geometry{}, errors.Wrap(err, "read stl")
	}
	return Read(bytes.NewReader(b))
}

// Read decodes binary STL. Every triangle gets its own three vertices carrying the stored face
// normal.
func Read(r io.Reader) (scene.Geometry, error) {
	header := make([]byte, headerSize+4)
	if _, err := io.ReadFull(r, header); err != nil {
		return scene.Geometry{}, errors.Wrap(err, "stl header")
	}
	tCnt := binary.LittleEndian.Uint32(header[headerSize:])
	body := make([]byte, int(tCnt)*triangleSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return scene.Geometry{}, errors.Wrapf(err, "stl body of %d triangles", tCnt)
	}
	log.Printf("Read stl, Header: '%s', Triangle Count: %d", bytes.TrimRight(header[:headerSize], "\x00 "), tCnt)

	g := scene.Geometry{
		Positions: make([]vm.Vec3, 0, tCnt*3),
		Normals:   make([]vm.Vec3, 0, tCnt*3),
		Indices:   make([]uint32, 0, tCnt*3),
	}
	for i := 0; i < len(body); i += triangleSize {
		normal := toVec3(body[i : i+12])
		for c := 0; c < 3; c++ {
			off := i + 12 + c*12
			g.Indices = append(g.Indices, uint32(len(g.Positions)))
			g.Positions = append(g.Positions, toVec3(body[off:off+12]))
			g.Normals = append(g.Normals, normal)
		}
	}
	return g, nil
}

func toVec3(bytes []byte) vm.Vec3 {
	return vm.Vec3{
		X: toFloat32(bytes[:4]),
		Y: toFloat32(bytes[4:8]),
		Z: toFloat32(bytes[8:12]),
	}
}

func toFloat32(bytes []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(bytes))
}
