package model

import (
	"classroom/common"
	"classroom/lighting"
	"classroom/scene"
	vm "classroom/vector_math"
)

// UniformBufferObject is the per frame camera state at set 0, binding 0. Root is the rotation of the whole room,
// the fragment shader moves the light positions with it.
type UniformBufferObject struct {
	View       vm.Mat
	Projection vm.Mat
	Root       vm.Mat
}

// SizeOfUbo is three column major 4x4 matrices.
func SizeOfUbo() uintptr {
	return 3 * 16 * 4
}

func (u *UniformBufferObject) Bytes() []byte {
	b := make([]byte, 0, SizeOfUbo())
	for _, m := range []vm.Mat{u.View, u.Projection, u.Root} {
		b = append(b, common.MatBytes(m)...)
	}
	return b
}

// LightsUniformBufferObject is set 0, binding 1. std140 pads every vec3 to 16 Byte.
type LightsUniformBufferObject struct {
	Colors    [lighting.Count]vm.Vec3
	Positions [lighting.Count]vm.Vec3
	Ambient   vm.Vec3
}

func NewLightsUbo(s *lighting.Set) *LightsUniformBufferObject {
	return &LightsUniformBufferObject{
		Colors:    s.Colors(),
		Positions: s.Positions(),
		Ambient:   s.Ambient(),
	}
}

func SizeOfLightsUbo() uintptr {
	return (2*lighting.Count + 1) * 16
}

func (u *LightsUniformBufferObject) Bytes() []byte {
	var f [2*lighting.Count + 1]vec4
	for i := 0; i < lighting.Count; i++ {
		f[i] = pad(u.Colors[i], 1)
		f[lighting.Count+i] = pad(u.Positions[i], 1)
	}
	f[2*lighting.Count] = pad(u.Ambient, 1)
	return common.MustRawBytes(f)
}

// MaterialUniformBufferObject is set 1, binding 0 and gets bound per material between draw calls.
type MaterialUniformBufferObject struct {
	Color vm.Vec3
}

func NewMaterialUbo(m *scene.Material) *MaterialUniformBufferObject {
	return &MaterialUniformBufferObject{Color: m.Color}
}

func SizeOfMaterialUbo() uintptr {
	return 16
}

func (u *MaterialUniformBufferObject) Bytes() []byte {
	return common.MustRawBytes(pad(u.Color, 1))
}

type vec4 [4]float32

func pad(v vm.Vec3, w float32) vec4 {
	return vec4{v.X, v.Y, v.Z, w}
}
