package renderer

import (
	"log"

	"classroom/lighting"
	"classroom/model"
	"classroom/scene"
	vm "classroom/vector_math"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
)

// These functions are part of the rendering core but are split into their own file for logical separation. Their
// focus is what is shown: the uploaded primitive models, the draw list of the current frame and the lights.

// AddToScene uploads m and registers it under its name as a primitive the draw list can refer to.
func (c *Core) AddToScene(m *model.Model) error {
	if _, ok := c.models[m.Name]; ok {
		return errors.Errorf("model '%s' already in scene", m.Name)
	}
	var err error
	if m.VertexBuffer, err = c.uploadDeviceLocal(m.GetVBufferBytes(), vk.BufferUsageVertexBufferBit); err != nil {
		return errors.Wrapf(err, "vertex buffer of %s", m.Name)
	}
	if m.IndexBuffer, err = c.uploadDeviceLocal(m.GetIdxBufferBytes(), vk.BufferUsageIndexBufferBit); err != nil {
		m.VertexBuffer.Destroy(c.device)
		m.VertexBuffer = nil
		return errors.Wrapf(err, "index buffer of %s", m.Name)
	}
	log.Printf("Uploaded model %q (%d vertices, %d indices)", m.Name, len(m.Mesh.Vertices), m.IndexCount())
	c.models[m.Name] = m
	return nil
}

// RemoveFromScene waits for the device and frees the buffers of the model registered as name.
func (c *Core) RemoveFromScene(name string) {
	m, ok := c.models[name]
	if !ok {
		return
	}
	c.device.WaitIdle()
	c.destroyModelBuffers(m)
	delete(c.models, name)
}

func (c *Core) ClearScene() {
	for name := range c.models {
		c.RemoveFromScene(name)
	}
}

func (c *Core) destroyModelBuffers(m *model.Model) {
	if m.VertexBuffer != nil {
		m.VertexBuffer.Destroy(c.device)
		m.VertexBuffer = nil
	}
	if m.IndexBuffer != nil {
		m.IndexBuffer.Destroy(c.device)
		m.IndexBuffer = nil
	}
}

// SetDrawList replaces what is drawn from the next recorded frame on. Every command has to name an uploaded
// model and a material the core was initialized with.
func (c *Core) SetDrawList(list scene.DrawList) error {
	for i := range list {
		if _, ok := c.models[list[i].Primitive]; !ok {
			return errors.Errorf("%s: unknown primitive %q", list[i].Path, list[i].Primitive)
		}
		if _, err := c.descriptors.MaterialSet(list[i].Material); err != nil {
			return errors.Wrap(err, list[i].Path)
		}
	}
	c.batches = batchDraws(list)
	return nil
}

func (c *Core) SetLights(l *lighting.Set) {
	c.lights = l
}

// SetRoot sets the room transform the fragment shader moves the lights with.
func (c *Core) SetRoot(root vm.Mat) {
	c.root = root.Copy()
}
