package controls

import (
	"testing"
	"time"

	"classroom/lighting"
	vm "classroom/vector_math"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newControls() (*Controls, *lighting.Set) {
	lights := lighting.NewSet(lighting.Default(2.31), lighting.DefaultAmbient)
	return New(lights, 30, 0.1), lights
}

func TestRotationWhileHeld(t *testing.T) {
	c, _ := newControls()
	require.NoError(t, c.KeyDown(KeyLeft, false))
	assert.InDelta(t, 15, c.Update(500*time.Millisecond), 1e-9)
	assert.Equal(t, 30.0, c.Velocity())

	c.KeyUp(KeyLeft)
	assert.Equal(t, 0.0, c.Velocity())
	assert.InDelta(t, 15, c.Update(time.Second), 1e-9)

	require.NoError(t, c.KeyDown(KeyRight, false))
	assert.InDelta(t, -15, c.Update(time.Second), 1e-9)
}

func TestRotationSumsShortFrames(t *testing.T) {
	for _, frames := range []int{144, 2000} {
		c, _ := newControls()
		require.NoError(t, c.KeyDown(KeyLeft, false))
		step := time.Second / time.Duration(frames)
		for i := 0; i < frames; i++ {
			c.Update(step)
		}
		assert.InDelta(t, 30, c.Angle(), 1e-4, "%d frames of %v", frames, step)
	}
}

func TestAnyKeyUpStopsRotation(t *testing.T) {
	c, _ := newControls()
	require.NoError(t, c.KeyDown(KeyLeft, false))
	c.Update(time.Second)
	c.KeyUp(KeyW)
	assert.Equal(t, 0.0, c.Velocity())
	// left is still held, the next tick picks it up again
	c.Update(0)
	assert.Equal(t, 30.0, c.Velocity())
}

func TestAngleWraps(t *testing.T) {
	c, _ := newControls()
	require.NoError(t, c.KeyDown(KeyLeft, false))
	assert.InDelta(t, 30, c.Update(13*time.Second), 1e-9)
	c.KeyUp(KeyLeft)
	require.NoError(t, c.KeyDown(KeyRight, false))
	assert.InDelta(t, -330, c.Update(12*time.Second), 1e-9)
	assert.InDelta(t, -330, c.Angle(), 1e-9)
}

func TestChairOffset(t *testing.T) {
	c, _ := newControls()
	require.NoError(t, c.KeyDown(KeyA, false))
	require.NoError(t, c.KeyDown(KeyA, true))
	require.NoError(t, c.KeyDown(KeyD, false))
	require.NoError(t, c.KeyDown(KeyW, false))
	x, z := c.Offset()
	assert.InDelta(t, -0.1, x, 1e-6)
	assert.InDelta(t, -0.1, z, 1e-6)

	require.NoError(t, c.KeyDown(KeyS, false))
	require.NoError(t, c.KeyDown(KeyS, false))
	_, z = c.Offset()
	assert.InDelta(t, 0.1, z, 1e-6)
}

func TestLightKeys(t *testing.T) {
	c, lights := newControls()
	require.NoError(t, c.KeyDown(KeyLight3, false))
	assert.False(t, lights.On(2))
	assert.Equal(t, vm.Vec3{}, lights.Colors()[2])

	// auto repeat must not switch it back
	require.NoError(t, c.KeyDown(KeyLight3, true))
	assert.False(t, lights.On(2))

	require.NoError(t, c.KeyDown(KeyLight3, false))
	assert.True(t, lights.On(2))
	assert.Equal(t, vm.Vec3{X: 0.3, Y: 0.3, Z: 0.3}, lights.Colors()[2])
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "w", KeyW.String())
	assert.Equal(t, "unknown", Key(99).String())
}
