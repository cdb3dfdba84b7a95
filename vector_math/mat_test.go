package vector_math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

// TestNewMat calls NewMat and confirms some general size constraints
func TestNewMat(t *testing.T) {
	mat0, err := NewMat(0, 0)
	if mat0 != nil || err == nil {
		t.Errorf("Should not be able to create mat0")
	}
	for s := uint(1); s <= 6; s++ {
		m, err := NewMat(s, s)
		if err != nil {
			t.Errorf("Error creating matrix of size %dx%d: %s", s, s, err)
			continue
		}
		if m.RowCnt() != int(s) || m.ColCnt() != int(s) {
			t.Errorf("mat%d should be %dx%d but was %dx%d", s, s, s, m.RowCnt(), m.ColCnt())
		}
	}
}

func TestRotationAxes(t *testing.T) {
	cases := []struct {
		name   string
		simple Mat
		axis   Vec3
	}{
		{"x", New4x4RotXMat(ToRad(90)), Vec3{X: 1}},
		{"y", New4x4RotYMat(ToRad(90)), Vec3{Y: 1}},
		{"z", New4x4RotZMat(ToRad(90)), Vec3{Z: 1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			generic := NewRotation(ToRad(90), c.axis)
			if !c.simple.ApproxEquals(&generic, tol) {
				t.Errorf(
					"Rot%s not equal to generic rotation. simple: \n%s\n generic: \n%s",
					c.name, c.simple.ToString(), generic.ToString(),
				)
			}
		})
	}
}

func TestArbitraryRotation(t *testing.T) {
	mr := NewRotation(ToRad(-74), Vec3{X: -0.5, Y: 1, Z: 1})
	mrExample := NewUnitMat(4)
	mrExample[0][0] = 0.3561221
	mrExample[0][1] = 0.47987163
	mrExample[0][2] = -0.8018106

	mrExample[1][0] = -0.8018106
	mrExample[1][1] = 0.5975763
	mrExample[1][2] = 0.0015183985

	mrExample[2][0] = 0.47987163
	mrExample[2][1] = 0.6423595
	mrExample[2][2] = 0.5975763

	if !mr.ApproxEquals(&mrExample, tol) {
		t.Errorf(
			"Arbitrary rotation didnt match expectations. expectation: \n%s\n actual: \n%s",
			mrExample.ToString(),
			mr.ToString(),
		)
	}
}

func TestRotateDoesNotTranspose(t *testing.T) {
	u := NewUnitMat(4)
	r, err := u.Rotate(ToRad(30), Vec3{Z: 1})
	require.NoError(t, err)
	expected := New4x4RotZMat(ToRad(30))
	assert.True(t, r.ApproxEquals(&expected, tol), r.ToString())
}

func TestMultSizeMismatch(t *testing.T) {
	a, _ := NewMat(2, 3)
	b, _ := NewMat(2, 3)
	_, err := a.Mult(&b)
	assert.Error(t, err)

	bT := b.Transpose()
	c, err := a.Mult(&bT)
	require.NoError(t, err)
	assert.Equal(t, 2, c.RowCnt())
	assert.Equal(t, 2, c.ColCnt())
}

func TestUnroll(t *testing.T) {
	m, _ := NewMat(2, 3)
	m[0] = []float32{1, 2, 3}
	m[1] = []float32{4, 5, 6}
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, m.Unroll())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, m.ColumnMajor())
}

func TestColumnMajorTranslation(t *testing.T) {
	m := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	cm := m.ColumnMajor()
	// GLSL expects translation in the last column, which is elements 12..14
	assert.Equal(t, []float32{1, 2, 3, 1}, cm[12:16])
}

func TestTranspose(t *testing.T) {
	m, _ := NewMat(3, 4)
	for i := range m {
		for j := range m[i] {
			m[i][j] = float32(i*4 + j)
		}
	}
	mT := m.Transpose()
	assert.Equal(t, 4, mT.RowCnt())
	assert.Equal(t, 3, mT.ColCnt())
	for i := range m {
		for j := range m[i] {
			assert.Equal(t, m[i][j], mT[j][i])
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	m := NewUnitMat(4)
	c := m.Copy()
	c[0][3] = 5
	assert.Equal(t, float32(0), m[0][3])
}

func TestInverse(t *testing.T) {
	m := NewTranslation(Vec3{X: 1, Y: -2, Z: 3})
	m, _ = m.Rotate(ToRad(40), Vec3{X: 1, Y: 1})
	m, _ = m.Scale(Vec3{X: 2, Y: 0.5, Z: 3})

	inv, err := m.Inverse()
	require.NoError(t, err)
	id, err := m.Mult(&inv)
	require.NoError(t, err)
	unit := NewUnitMat(4)
	assert.True(t, id.ApproxEquals(&unit, tol), id.ToString())
}

func TestInverseSingular(t *testing.T) {
	m := NewScale(Vec3{X: 1, Y: 0, Z: 1})
	_, err := m.Inverse()
	assert.True(t, errors.Is(err, ErrSingular))

	_, err = m.NormalMat()
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestInverseTinyScale(t *testing.T) {
	m := NewScale(Vec3{X: 0.002, Y: 0.002, Z: 0.002})
	m, _ = m.Rotate(ToRad(30), Vec3{Y: 1})
	inv, err := m.Inverse()
	require.NoError(t, err)
	id, _ := m.Mult(&inv)
	unit := NewUnitMat(4)
	assert.True(t, id.ApproxEquals(&unit, 1e-4), id.ToString())

	_, err = m.NormalMat()
	assert.NoError(t, err)
}

func TestInverseDependentRows(t *testing.T) {
	m := NewUnitMat(4)
	m[1][0], m[1][1], m[1][2] = 1, 0, 0
	_, err := m.Inverse()
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestNormalMatRigid(t *testing.T) {
	m := NewTranslation(Vec3{X: 4, Y: 1, Z: -7})
	m, _ = m.Rotate(ToRad(63), Vec3{X: 0.2, Y: 1, Z: -0.4})

	n, err := m.NormalMat()
	require.NoError(t, err)

	// rigid transforms map normals with their own rotation part
	rot := m.Copy()
	rot[0][3], rot[1][3], rot[2][3] = 0, 0, 0
	assert.True(t, n.ApproxEquals(&rot, tol), "normal:\n%s\nrotation:\n%s", n.ToString(), rot.ToString())
}

func TestNormalMatMatchesMathgl(t *testing.T) {
	axis := Vec3{X: 1, Y: -1, Z: 0.5}.Norm()
	m := NewTranslation(Vec3{X: 2, Y: 3, Z: 4})
	m, _ = m.Rotate(ToRad(25), axis)
	m, _ = m.Scale(Vec3{X: 3, Y: 0.2, Z: 1.5})

	ref := mgl32.Translate3D(2, 3, 4).
		Mul4(mgl32.HomogRotate3D(float32(ToRad(25)), mgl32.Vec3{axis.X, axis.Y, axis.Z})).
		Mul4(mgl32.Scale3D(3, 0.2, 1.5))
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			assert.InDelta(t, ref.At(r, c), m[r][c], tol, "model [%d][%d]", r, c)
		}
	}

	refNormal := ref.Mat3().Inv().Transpose()
	n, err := m.NormalMat()
	require.NoError(t, err)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, refNormal.At(r, c), n[r][c], 1e-4, "normal [%d][%d]", r, c)
		}
	}
	assert.Equal(t, float32(1), n[3][3])
}

func TestApply(t *testing.T) {
	m := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	p := Apply(Vec3{X: 1}, 1, m)
	d := Apply(Vec3{X: 1}, 0, m)
	assert.Equal(t, Vec3{X: 2, Y: 2, Z: 3}, p)
	assert.Equal(t, Vec3{X: 1}, d)
}
