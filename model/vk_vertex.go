package model

import (
	"unsafe"

	vm "classroom/vector_math"

	vk "github.com/goki/vulkan"
)

// Vertex is tightly packed: 3 * 12 Byte, no padding.
type Vertex struct {
	Pos    vm.Vec3
	Color  vm.Vec3
	Normal vm.Vec3
}

func GetVertexBindingDescription() vk.VertexInputBindingDescription {
	return vk.VertexInputBindingDescription{
		Binding:   0,
		Stride:    uint32(unsafe.Sizeof(Vertex{})),
		InputRate: vk.VertexInputRateVertex,
	}
}

// GetVertexAttributeDescriptions matches the inputs at locations 0 (position), 1 (colour) and 2 (normal) of
// shaders/classroom.vert.
func GetVertexAttributeDescriptions() []vk.VertexInputAttributeDescription {
	offsets := []uintptr{
		unsafe.Offsetof(Vertex{}.Pos),
		unsafe.Offsetof(Vertex{}.Color),
		unsafe.Offsetof(Vertex{}.Normal),
	}
	attrs := make([]vk.VertexInputAttributeDescription, len(offsets))
	for i, off := range offsets {
		attrs[i] = vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  0,
			Format:   vk.FormatR32g32b32Sfloat,
			Offset:   uint32(off),
		}
	}
	return attrs
}
