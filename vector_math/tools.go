package vector_math

import "math"

// ToRad turns degree into radians
func ToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Apply multiplies v, extended by the homogeneous coordinate w, with the 4x4 matrix m.
// Use w=1 for points and w=0 for directions.
func Apply(v Vec3, w float32, m Mat) Vec3 {
	return Vec3{
		(v.X * m[0][0]) + (v.Y * m[0][1]) + (v.Z * m[0][2]) + (w * m[0][3]),
		(v.X * m[1][0]) + (v.Y * m[1][1]) + (v.Z * m[1][2]) + (w * m[1][3]),
		(v.X * m[2][0]) + (v.Y * m[2][1]) + (v.Z * m[2][2]) + (w * m[2][3]),
	}
}
