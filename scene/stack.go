package scene

import (
	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

var (
	// ErrStackUnderflow is returned by Pop when no snapshot is left to restore.
	ErrStackUnderflow = errors.New("transform stack underflow")
	// ErrUnbalanced reports a traversal that left pushed snapshots behind.
	ErrUnbalanced = errors.New("transform stack unbalanced")
)

// TransformStack owns the current model transform of a draw traversal together with the
// snapshots pushed above it. It is not safe for concurrent use; each traversal owns its own.
type TransformStack struct {
	current vm.Mat
	saved   []vm.Mat
}

func NewTransformStack() *TransformStack {
	return &TransformStack{current: vm.NewUnitMat(4)}
}

// Reset replaces the current transform with a copy of root and drops all snapshots. Anything but
// a 4x4 root is rejected and leaves the stack untouched.
func (s *TransformStack) Reset(root vm.Mat) error {
	if len(root) != 4 {
		return errors.Errorf("root transform has %d rows, want 4x4", len(root))
	}
	for i := range root {
		if len(root[i]) != 4 {
			return errors.Errorf("root transform row %d has %d columns, want 4x4", i, len(root[i]))
		}
	}
	s.current = root.Copy()
	s.saved = s.saved[:0]
	return nil
}

// Push saves a copy of the current transform. Current is unchanged.
func (s *TransformStack) Push() {
	s.saved = append(s.saved, s.current.Copy())
}

// Pop restores the most recently pushed transform.
func (s *TransformStack) Pop() error {
	n := len(s.saved)
	if n == 0 {
		return ErrStackUnderflow
	}
	s.current = s.saved[n-1]
	s.saved[n-1] = nil
	s.saved = s.saved[:n-1]
	return nil
}

// MustPop is Pop for hand written draw code where an underflow is a bug.
func (s *TransformStack) MustPop() {
	if err := s.Pop(); err != nil {
		panic(err)
	}
}

func (s *TransformStack) Translate(v vm.Vec3) {
	s.current, _ = s.current.Translate(v)
}

func (s *TransformStack) Scale(v vm.Vec3) {
	s.current, _ = s.current.Scale(v)
}

func (s *TransformStack) Rotate(deg float64, axis vm.Vec3) {
	s.current, _ = s.current.Rotate(vm.ToRad(deg), axis)
}

func (s *TransformStack) Apply(op Op) {
	switch op.Kind {
	case OpTranslate:
		s.Translate(op.V)
	case OpRotate:
		s.Rotate(op.Deg, op.V)
	case OpScale:
		s.Scale(op.V)
	}
}

// Current returns a copy of the current transform.
func (s *TransformStack) Current() vm.Mat {
	return s.current.Copy()
}

func (s *TransformStack) Depth() int {
	return len(s.saved)
}

// NormalMatrix is computed from the live current transform on every call.
func (s *TransformStack) NormalMatrix() (vm.Mat, error) {
	return s.current.NormalMat()
}

// CheckDepth returns ErrUnbalanced if the depth differs from want.
func (s *TransformStack) CheckDepth(want int) error {
	if d := s.Depth(); d != want {
		return errors.Wrapf(ErrUnbalanced, "residual depth %d, expected %d", d, want)
	}
	return nil
}
