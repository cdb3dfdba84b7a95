package lighting

import (
	"testing"

	vm "classroom/vector_math"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRestoresExactColor(t *testing.T) {
	lights := Default(2.31)
	lights[1].Color = vm.Vec3{X: 0.123456, Y: 0.7, Z: 0.3333333}
	s := NewSet(lights, DefaultAmbient)

	for i := 0; i < Count; i++ {
		on, err := s.Toggle(i)
		require.NoError(t, err)
		assert.False(t, on)
		assert.Equal(t, vm.Vec3{}, s.Colors()[i])

		on, err = s.Toggle(i)
		require.NoError(t, err)
		assert.True(t, on)
		assert.Equal(t, lights[i].Color, s.Colors()[i])
	}
}

func TestToggleOnlyAffectsOneLight(t *testing.T) {
	s := NewSet(Default(2.31), DefaultAmbient)
	_, err := s.Toggle(2)
	require.NoError(t, err)
	c := s.Colors()
	assert.Equal(t, vm.Vec3{}, c[2])
	for _, i := range []int{0, 1, 3} {
		assert.True(t, s.On(i))
		assert.Equal(t, vm.Vec3{X: 0.3, Y: 0.3, Z: 0.3}, c[i])
	}
	assert.False(t, s.On(2))
	assert.Equal(t, DefaultAmbient, s.Ambient())
}

func TestToggleOutOfRange(t *testing.T) {
	s := NewSet(Default(2.31), DefaultAmbient)
	_, err := s.Toggle(4)
	assert.True(t, errors.Is(err, ErrNoSuchLight))
	_, err = s.Toggle(-1)
	assert.True(t, errors.Is(err, ErrNoSuchLight))
	assert.False(t, s.On(9))
}

func TestPositionsStable(t *testing.T) {
	lights := Default(2.31)
	s := NewSet(lights, DefaultAmbient)
	_, _ = s.Toggle(0)
	p := s.Positions()
	for i := range lights {
		assert.Equal(t, lights[i].Position, p[i])
	}
}
