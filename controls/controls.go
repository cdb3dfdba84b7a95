// Package controls turns keyboard events into the state the classroom is drawn with:
// the room rotation, the offset of the student chairs and the light switches.
package controls

import (
	"log"
	"math"
	"time"

	"classroom/lighting"
)

type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeyLight1
	KeyLight2
	KeyLight3
	KeyLight4
)

var keyNames = map[Key]string{
	KeyNone:   "none",
	KeyLeft:   "left",
	KeyRight:  "right",
	KeyW:      "w",
	KeyA:      "a",
	KeyS:      "s",
	KeyD:      "d",
	KeyLight1: "1",
	KeyLight2: "2",
	KeyLight3: "3",
	KeyLight4: "4",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

type Controls struct {
	lights *lighting.Set
	speed  float64
	step   float32

	held     map[Key]bool
	velocity float64
	angle    float64
	offsetX  float32
	offsetZ  float32
}

// New creates controls rotating with speed degree per second and moving chairs by step per press.
func New(lights *lighting.Set, speed float64, step float32) *Controls {
	return &Controls{
		lights: lights,
		speed:  speed,
		step:   step,
		held:   map[Key]bool{},
	}
}

// KeyDown handles a key press. Auto repeated presses keep moving the chairs but do not
// flicker the lights.
func (c *Controls) KeyDown(k Key, repeat bool) error {
	c.held[k] = true
	switch k {
	case KeyA:
		c.offsetX -= c.step
	case KeyD:
		c.offsetX += c.step
	case KeyS:
		c.offsetZ += c.step
	case KeyW:
		c.offsetZ -= c.step
	case KeyLight1, KeyLight2, KeyLight3, KeyLight4:
		if repeat {
			return nil
		}
		idx := int(k - KeyLight1)
		on, err := c.lights.Toggle(idx)
		if err != nil {
			return err
		}
		if on {
			log.Printf("light %d turned on", idx+1)
		} else {
			log.Printf("light %d turned off", idx+1)
		}
	}
	return nil
}

// KeyUp releases k. Releasing any key stops the rotation.
func (c *Controls) KeyUp(k Key) {
	c.held[k] = false
	c.velocity = 0
}

// Update applies the held arrow keys and integrates the angle over elapsed. The angle stays
// within (-360, 360) and keeps its sign.
func (c *Controls) Update(elapsed time.Duration) float64 {
	if c.held[KeyLeft] {
		c.velocity = c.speed
	}
	if c.held[KeyRight] {
		c.velocity = -c.speed
	}
	c.angle = math.Mod(c.angle+c.velocity*elapsed.Seconds(), 360)
	return c.angle
}

func (c *Controls) Angle() float64 {
	return c.angle
}

func (c *Controls) Velocity() float64 {
	return c.velocity
}

// Offset is the accumulated chair movement in x and z.
func (c *Controls) Offset() (float32, float32) {
	return c.offsetX, c.offsetZ
}
