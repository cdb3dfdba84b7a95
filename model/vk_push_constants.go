package model

import (
	"classroom/common"
	"classroom/scene"
	vm "classroom/vector_math"
)

// PushConstants are pushed once per draw. The normal matrix is a GLSL mat3, whose columns are aligned to 16 Byte.
type PushConstants struct {
	Model  vm.Mat
	Normal vm.Mat
}

func NewPushConstants(cmd *scene.DrawCmd) *PushConstants {
	return &PushConstants{Model: cmd.Model, Normal: cmd.Normal}
}

// PushConstantsSize is a mat4 followed by a padded mat3.
func PushConstantsSize() uint32 {
	return 16*4 + 3*16
}

func (p *PushConstants) Bytes() []byte {
	b := make([]byte, 0, PushConstantsSize())
	b = append(b, common.MatBytes(p.Model)...)
	var cols [3]vec4
	for c := 0; c < 3; c++ {
		cols[c] = vec4{p.Normal[0][c], p.Normal[1][c], p.Normal[2][c], 0}
	}
	return append(b, common.MustRawBytes(cols)...)
}
