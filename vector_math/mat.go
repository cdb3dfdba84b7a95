package vector_math

import (
	"fmt"
	"log"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/xlab/linmath"
)

// ErrSingular is returned whenever an inverse is requested for a matrix whose linear part has no inverse.
// This happens as soon as any scale factor along an axis is zero.
var ErrSingular = errors.New("matrix is singular")

// SingularEpsilon bounds |det| relative to the product of the row lengths of the linear part. The ratio is 1
// for any scaled rotation, however small the scale, and tends to 0 as rows become linearly dependent.
const SingularEpsilon = 1e-6

type Mat [][]float32

func NewMat(r uint, c uint) (Mat, error) {
	if r == 0 || c == 0 {
		return nil, errors.New("cannot construct 0-sized matrix")
	}
	m := make([][]float32, r)
	for i := range m {
		m[i] = make([]float32, c)
	}
	return m, nil
}

func (m *Mat) Mult(b *Mat) (Mat, error) {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if colsA != rowsB {
		return nil, errors.Errorf(
			"can't multiply %dx%d matrix with %dx%d matrix, size of columns and rows do not match",
			rowsA, colsA, rowsB, colsB,
		)
	}
	C, _ := NewMat(uint(rowsA), uint(colsB))
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsB; j++ {
			for k := 0; k < colsA; k++ {
				C[i][j] += (*m)[i][k] * (*b)[k][j]
			}
		}
	}
	return C, nil
}

func (m *Mat) Transpose() Mat {
	mT, _ := NewMat(uint(m.ColCnt()), uint(m.RowCnt()))
	for i := range *m {
		for j := range (*m)[i] {
			mT[j][i] = (*m)[i][j]
		}
	}
	return mT
}

// Copy returns a deep copy. Mat is a slice of rows, so plain assignment shares the backing arrays.
func (m *Mat) Copy() Mat {
	c := make(Mat, len(*m))
	for i := range *m {
		c[i] = make([]float32, len((*m)[i]))
		copy(c[i], (*m)[i])
	}
	return c
}

func (m *Mat) Equals(b *Mat) bool {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if rowsA != rowsB || colsA != colsB {
		return false
	}
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsA; j++ {
			if (*m)[i][j] != (*b)[i][j] {
				log.Printf("(*m)[i][j] != (*b)[i][j] -> %f != %f", (*m)[i][j], (*b)[i][j])
				return false
			}
		}
	}
	return true
}

// ApproxEquals compares element wise with an absolute tolerance.
func (m *Mat) ApproxEquals(b *Mat, tol float32) bool {
	rowsA, colsA := (*m).Size()
	rowsB, colsB := (*b).Size()
	if rowsA != rowsB || colsA != colsB {
		return false
	}
	for i := 0; i < rowsA; i++ {
		for j := 0; j < colsA; j++ {
			if math32.Abs((*m)[i][j]-(*b)[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

// Linear3 returns the upper left 3x3 block, which holds rotation and scale of an affine 4x4.
func (m *Mat) Linear3() Mat {
	l, _ := NewMat(3, 3)
	for i := 0; i < 3; i++ {
		copy(l[i], (*m)[i][:3])
	}
	return l
}

// Det3 is the determinant of the upper left 3x3 block.
func (m *Mat) Det3() float32 {
	a := *m
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inverse of an affine 4x4 matrix. The bottom row is expected to be [0 0 0 1], so the
// determinant of the whole matrix equals the one of its linear part.
func (m *Mat) Inverse() (Mat, error) {
	if m.RowCnt() != 4 || m.ColCnt() != 4 {
		return nil, errors.Errorf("can't invert %dx%d matrix, only 4x4 is supported", m.RowCnt(), m.ColCnt())
	}
	det := m.Det3()
	scale := m.rowLen(0) * m.rowLen(1) * m.rowLen(2)
	if scale == 0 || math32.Abs(det) <= SingularEpsilon*scale {
		return nil, errors.Wrapf(ErrSingular, "determinant %g", det)
	}
	// linmath stores columns, Mat stores rows
	var in, out linmath.Mat4x4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			in[c][r] = (*m)[r][c]
		}
	}
	out.Invert(&in)
	res, _ := NewMat(4, 4)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			res[r][c] = out[c][r]
		}
	}
	return res, nil
}

// rowLen is the euclidean length of row r of the linear part.
func (m *Mat) rowLen(r int) float32 {
	row := (*m)[r]
	return math32.Sqrt(row[0]*row[0] + row[1]*row[1] + row[2]*row[2])
}

// NormalMat derives the matrix that maps surface normals under m: the transposed inverse of its
// linear part, embedded in an otherwise identity 4x4. Translation does not affect normals.
func (m *Mat) NormalMat() (Mat, error) {
	inv, err := m.Inverse()
	if err != nil {
		return nil, errors.Wrap(err, "normal matrix")
	}
	n := NewUnitMat(4)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			n[i][j] = inv[j][i]
		}
	}
	return n, nil
}

// Helper functions

func (m *Mat) Rotate(rad float64, axis Vec3) (Mat, error) {
	rm := NewRotation(rad, axis)
	res, err := m.Mult(&rm)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Mat) Translate(move Vec3) (Mat, error) {
	tm := NewTranslation(move)
	res, err := m.Mult(&tm)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *Mat) Scale(factors Vec3) (Mat, error) {
	sm := NewScale(factors)
	res, err := m.Mult(&sm)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Description functions

func (m *Mat) RowCnt() int {
	return len(*m)
}

func (m *Mat) ColCnt() int {
	return len((*m)[0])
}

func (m *Mat) Size() (int, int) {
	return (*m).RowCnt(), (*m).ColCnt()
}

// Unroll flattens row by row.
func (m *Mat) Unroll() []float32 {
	cols := m.ColCnt()
	f := make([]float32, m.RowCnt()*cols)
	for i := range f {
		f[i] = (*m)[i/cols][i%cols]
	}
	return f
}

// ColumnMajor flattens column by column, which is the memory layout GLSL expects for mat4.
func (m *Mat) ColumnMajor() []float32 {
	mT := m.Transpose()
	return mT.Unroll()
}

func (m *Mat) ToString() string {
	mStr := strings.Builder{}
	for i := range *m {
		if i > 0 {
			mStr.WriteString("\n")
		}
		mStr.WriteString(fmt.Sprintf("%v", (*m)[i]))
	}
	return mStr.String()
}
