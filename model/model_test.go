package model

import (
	"encoding/binary"
	"math"
	"testing"

	"classroom/config"
	"classroom/lighting"
	"classroom/scene"
	vm "classroom/vector_math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatAt(b []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
}

func TestVertexLayout(t *testing.T) {
	bd := GetVertexBindingDescription()
	assert.Equal(t, uint32(36), bd.Stride)

	attrs := GetVertexAttributeDescriptions()
	require.Len(t, attrs, 3)
	for i, off := range []uint32{0, 12, 24} {
		assert.Equal(t, uint32(i), attrs[i].Location)
		assert.Equal(t, off, attrs[i].Offset)
	}
}

func TestCubeModelBuffers(t *testing.T) {
	m := NewModel(NewCubeMesh(), scene.Cube)
	assert.Len(t, m.Mesh.Vertices, 24)
	assert.Equal(t, uint32(36), m.IndexCount())
	assert.Equal(t, m.GetVBufferSize(), len(m.GetVBufferBytes()))
	assert.Equal(t, m.GetIdxBufferSize(), len(m.GetIdxBufferBytes()))
	assert.False(t, m.IsUploaded())

	// second vertex attribute is the white colour, third the +z normal of the first face
	b := m.GetVBufferBytes()
	assert.Equal(t, float32(1), floatAt(b, 3))
	assert.Equal(t, float32(1), floatAt(b, 8))
}

func TestPushConstantsLayout(t *testing.T) {
	model := vm.NewTranslation(vm.Vec3{X: 1, Y: 2, Z: 3})
	normal := vm.NewScale(vm.Vec3{X: 2, Y: 3, Z: 4})
	normal[0][1] = 7
	pc := PushConstants{Model: model, Normal: normal}

	b := pc.Bytes()
	require.Len(t, b, int(PushConstantsSize()))
	assert.Equal(t, 112, len(b))

	// translation is the fourth column of the mat4
	assert.Equal(t, float32(1), floatAt(b, 12))
	assert.Equal(t, float32(2), floatAt(b, 13))
	assert.Equal(t, float32(3), floatAt(b, 14))

	// mat3 columns start at 64 Byte with a stride of 16 Byte
	assert.Equal(t, float32(2), floatAt(b, 16))
	assert.Equal(t, float32(7), floatAt(b, 20))
	assert.Equal(t, float32(3), floatAt(b, 21))
	assert.Equal(t, float32(4), floatAt(b, 26))
	assert.Equal(t, float32(0), floatAt(b, 19))
}

func TestUboSizes(t *testing.T) {
	u := UniformBufferObject{View: vm.NewUnitMat(4), Projection: vm.NewUnitMat(4), Root: vm.NewUnitMat(4)}
	assert.Len(t, u.Bytes(), int(SizeOfUbo()))
	assert.Equal(t, uintptr(192), SizeOfUbo())

	lights := lighting.NewSet(lighting.Default(2), lighting.DefaultAmbient)
	l := NewLightsUbo(lights)
	assert.Len(t, l.Bytes(), int(SizeOfLightsUbo()))
	assert.Equal(t, uintptr(144), SizeOfLightsUbo())

	mat := NewMaterialUbo(&scene.Material{Name: "coral", Color: vm.Vec3{X: 1, Y: 0.5, Z: 0.3}})
	assert.Len(t, mat.Bytes(), int(SizeOfMaterialUbo()))
}

func TestLightsUboFollowsToggle(t *testing.T) {
	lights := lighting.NewSet(lighting.Default(2), lighting.DefaultAmbient)
	_, err := lights.Toggle(1)
	require.NoError(t, err)

	b := NewLightsUbo(lights).Bytes()
	// colour of light 2 is the second vec4
	assert.Equal(t, float32(0), floatAt(b, 4))
	assert.Equal(t, float32(0.3), floatAt(b, 0))
	// positions follow the four colours
	assert.Equal(t, float32(-2.5), floatAt(b, 16))
	assert.Equal(t, float32(2), floatAt(b, 17))
	assert.Equal(t, float32(0.2), floatAt(b, 32))
}

func TestCameraView(t *testing.T) {
	cam := NewCamera(config.Default().Camera)
	view := cam.GetView()

	eye := vm.Apply(cam.Pos, 1, view)
	assert.True(t, eye.ApproxEquals(vm.Vec3{}, 1e-5), "eye maps to %v", eye)

	// the origin lies straight ahead, world up is screen up (negative y in Vulkan)
	origin := vm.Apply(vm.Vec3{}, 1, view)
	assert.InDelta(t, 27, origin.Z, 1e-4)
	up := vm.Apply(vm.Vec3{Y: 1}, 0, view)
	assert.InDelta(t, -1, up.Y, 1e-5)
	right := vm.Apply(vm.Vec3{X: 1}, 0, view)
	assert.InDelta(t, 1, right.X, 1e-5)
}

func project(m vm.Mat, p vm.Vec3) vm.Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	return vm.Vec3{X: x / w, Y: y / w, Z: z / w}
}

func TestProjectionDepthRange(t *testing.T) {
	for _, proj := range []string{config.Perspective, config.Orthographic} {
		t.Run(proj, func(t *testing.T) {
			cfg := config.Default().Camera
			cfg.Projection = proj
			cam := NewCamera(cfg)
			cam.Aspect = 16.0 / 9
			p := cam.GetProjection()

			assert.InDelta(t, 0, project(p, vm.Vec3{Z: cam.Near}).Z, 1e-5)
			assert.InDelta(t, 1, project(p, vm.Vec3{Z: cam.Far}).Z, 1e-5)
		})
	}
}

func TestOrthographicFramesOrigin(t *testing.T) {
	cfg := config.Default().Camera
	cfg.Projection = config.Orthographic
	cam := NewCamera(cfg)
	p := cam.GetProjection()

	h := cam.Pos.Len() * float32(math.Tan(vm.ToRad(float64(cam.Fov))/2))
	top := project(p, vm.Vec3{Y: h, Z: 27})
	assert.InDelta(t, 1, top.Y, 1e-5)
	assert.InDelta(t, 0, project(p, vm.Vec3{Z: 27}).X, 1e-5)
}
