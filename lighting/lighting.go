// Package lighting keeps the four point lights and the ambient term of the classroom.
package lighting

import (
	vm "classroom/vector_math"

	"github.com/pkg/errors"
)

const Count = 4

var ErrNoSuchLight = errors.New("no such light")

type Light struct {
	Position vm.Vec3 `yaml:"position"`
	Color    vm.Vec3 `yaml:"color"`
}

type state struct {
	Light
	on       bool
	original vm.Vec3
}

type Set struct {
	lights  [Count]state
	ambient vm.Vec3
}

// NewSet starts with every light switched on.
func NewSet(lights [Count]Light, ambient vm.Vec3) *Set {
	s := &Set{ambient: ambient}
	for i, l := range lights {
		s.lights[i] = state{Light: l, on: true, original: l.Color}
	}
	return s
}

// Toggle switches light i (zero based) off by zeroing its colour, or back on by restoring the
// exact colour it was created with.
func (s *Set) Toggle(i int) (bool, error) {
	if i < 0 || i >= Count {
		return false, errors.Wrapf(ErrNoSuchLight, "index %d", i)
	}
	l := &s.lights[i]
	if l.on {
		l.Color = vm.Vec3{}
	} else {
		l.Color = l.original
	}
	l.on = !l.on
	return l.on, nil
}

func (s *Set) On(i int) bool {
	if i < 0 || i >= Count {
		return false
	}
	return s.lights[i].on
}

func (s *Set) Colors() [Count]vm.Vec3 {
	var res [Count]vm.Vec3
	for i := range s.lights {
		res[i] = s.lights[i].Color
	}
	return res
}

func (s *Set) Positions() [Count]vm.Vec3 {
	var res [Count]vm.Vec3
	for i := range s.lights {
		res[i] = s.lights[i].Position
	}
	return res
}

func (s *Set) Ambient() vm.Vec3 {
	return s.ambient
}

// Default places the lights just below the four ceiling light boxes at height y.
func Default(y float32) [Count]Light {
	c := vm.Vec3{X: 0.3, Y: 0.3, Z: 0.3}
	return [Count]Light{
		{Position: vm.Vec3{X: -2.5, Y: y, Z: -2.5}, Color: c},
		{Position: vm.Vec3{X: -2.5, Y: y, Z: 2.5}, Color: c},
		{Position: vm.Vec3{X: 2.5, Y: y, Z: -2.5}, Color: c},
		{Position: vm.Vec3{X: 2.5, Y: y, Z: 2.5}, Color: c},
	}
}

// DefaultAmbient is the constant ambient term.
var DefaultAmbient = vm.Vec3{X: 0.2, Y: 0.2, Z: 0.2}
