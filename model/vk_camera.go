package model

import (
	"log"
	"math"

	"classroom/config"
	vm "classroom/vector_math"
)

type ProjectionType int

const (
	CAM_PERSPECTIVE_PROJECTION ProjectionType = iota
	CAM_ORTHOGRAPHIC_PROJECTION
)

// Camera is a look-at camera. Projections map into Vulkan's clip space, y pointing down and depth in [0, 1].
type Camera struct {
	ProjectionType ProjectionType

	Fov    float32
	Aspect float32
	Near   float32
	Far    float32

	Pos    vm.Vec3
	Target vm.Vec3
	Up     vm.Vec3
}

// NewCamera builds the camera described by cfg. The aspect ratio is set once the swap chain is known.
func NewCamera(cfg config.Camera) *Camera {
	pt := CAM_PERSPECTIVE_PROJECTION
	if cfg.Projection == config.Orthographic {
		pt = CAM_ORTHOGRAPHIC_PROJECTION
	}
	return &Camera{
		ProjectionType: pt,
		Fov:            cfg.FOV,
		Aspect:         1,
		Near:           cfg.Near,
		Far:            cfg.Far,
		Pos:            cfg.Eye,
		Target:         cfg.Target,
		Up:             cfg.Up,
	}
}

func (c *Camera) GetProjection() vm.Mat {
	switch c.ProjectionType {
	case CAM_PERSPECTIVE_PROJECTION:
		return newPerspectiveProjection(vm.ToRad(float64(c.Fov)), float64(c.Aspect), c.Near, c.Far)
	case CAM_ORTHOGRAPHIC_PROJECTION:
		// frame the origin the same way the perspective projection does
		h := c.Pos.Len() * float32(math.Tan(vm.ToRad(float64(c.Fov))/2))
		return newOrthographicProjection(
			vm.Vec3{X: -c.Aspect * h, Y: h, Z: c.Near}, vm.Vec3{X: c.Aspect * h, Y: -h, Z: c.Far},
		)
	default:
		log.Printf("Unknown projection type %d, returning identity.", c.ProjectionType)
		return vm.NewUnitMat(4)
	}
}

func (c *Camera) GetView() vm.Mat {
	return NewTargetView(c.Pos, c.Target, c.Up)
}

// newPerspectiveProjection implemented after: https://www.youtube.com/watch?v=U0_ONQQ5ZNM
func newPerspectiveProjection(fovy float64, aspect float64, near float32, far float32) vm.Mat {
	focalLen := 1 / math.Tan(fovy/2)
	m, _ := vm.NewMat(4, 4)
	m[0][0] = float32(focalLen / aspect)
	m[1][1] = float32(focalLen)
	m[2][2] = far / (far - near)
	m[2][3] = -(far * near) / (far - near)
	m[3][2] = 1
	return m
}

// newOrthographicProjection maps the cuboid spanning from lbn (left, bottom, near) to rtf (right, top, far) onto
// Vulkan's canonical view volume (-1, 1, 0) to (1, -1, 1). Keep "right - left = aspect * (bottom - top)" to avoid
// stretching.
func newOrthographicProjection(lbn vm.Vec3, rtf vm.Vec3) vm.Mat {
	mScale := vm.NewScale(vm.Vec3{
		X: 2 / abs(rtf.X-lbn.X),
		Y: 2 / abs(lbn.Y-rtf.Y),
		Z: 1 / abs(rtf.Z-lbn.Z),
	})
	mTrans := vm.NewTranslation(vm.Vec3{
		X: -(rtf.X + lbn.X) / 2,
		Y: -(rtf.Y + lbn.Y) / 2,
		Z: -lbn.Z,
	})
	mOrt, _ := mScale.Mult(&mTrans)
	return mOrt
}

func abs(f float32) float32 {
	return float32(math.Abs(float64(f)))
}

// NewDirectionView looks from pos along dir. The view basis rows are u (right), v (down) and w (forward).
func NewDirectionView(pos vm.Vec3, dir vm.Vec3, up vm.Vec3) vm.Mat {
	w := dir.Norm()
	u := w.Cross(up).Norm()
	v := w.Cross(u)
	m := vm.NewUnitMat(4)
	for col, f := range [3]func(vm.Vec3) float32{
		func(a vm.Vec3) float32 { return a.X },
		func(a vm.Vec3) float32 { return a.Y },
		func(a vm.Vec3) float32 { return a.Z },
	} {
		m[0][col] = f(u)
		m[1][col] = f(v)
		m[2][col] = f(w)
	}
	m[0][3] = -u.Dot(pos)
	m[1][3] = -v.Dot(pos)
	m[2][3] = -w.Dot(pos)
	return m
}

func NewTargetView(pos vm.Vec3, target vm.Vec3, up vm.Vec3) vm.Mat {
	d := target.Sub(pos)
	if d.Len() == 0 {
		log.Printf("Failed to calculate view direction, target - position = [0,0,0]. Setting d to z-axis.")
		d = vm.Vec3{Z: 1}
	}
	return NewDirectionView(pos, d, up)
}
