package config

import (
	"os"
	"path/filepath"
	"testing"

	"classroom/lighting"
	"classroom/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "classroom.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultDimensions(), c.Room)
	assert.Equal(t, Perspective, c.Camera.Projection)
	assert.Equal(t, 30.0, c.Controls.RotationSpeed)
	assert.Equal(t, lighting.DefaultAmbient, c.Lighting.Ambient)
}

func TestDefaultLightsMatchRoom(t *testing.T) {
	c := Default()
	// lights hang just below the light boxes
	want := lighting.Default(scene.LightBoxHeight(c.Room) - 0.1)
	for i := range want {
		assert.InDelta(t, want[i].Position.X, c.Lighting.Lights[i].Position.X, 1e-5)
		assert.InDelta(t, want[i].Position.Y, c.Lighting.Lights[i].Position.Y, 1e-5)
		assert.InDelta(t, want[i].Position.Z, c.Lighting.Lights[i].Position.Z, 1e-5)
		assert.Equal(t, want[i].Color, c.Lighting.Lights[i].Color)
	}
}

func TestOverlay(t *testing.T) {
	p := writeConfig(t, `
window:
  width: 800
camera:
  projection: orthographic
room:
  door_x: 2
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 720, c.Window.Height)
	assert.Equal(t, Orthographic, c.Camera.Projection)
	assert.Equal(t, float32(2), c.Room.DoorX)
	assert.Equal(t, float32(5), c.Room.XDim)
}

func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"projection":  "camera:\n  projection: fisheye\n",
		"clip planes": "camera:\n  near: 10\n  far: 5\n",
		"zero room":   "room:\n  y_dim: 0\n",
		"door":        "room:\n  door_x: 4.5\n",
		"light":       "lighting:\n  lights:\n    - position: {x: 9, y: 0, z: 0}\n",
		"unknown key": "camera:\n  zoom: 3\n",
		"window":      "window:\n  height: -1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDump(t *testing.T) {
	assert.Contains(t, Default().Dump(), "Classroom")
}
