package renderer

import (
	"log"

	com "classroom/common"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
)

// These auxiliary functions abstract from the raw Vulkan API by assuming some reasonable defaults where possible.
// They differ from the VKS functions in common by being tied to the Core and its command pool.

func (c *Core) beginSingleTimeCommands() vk.CommandBuffer {
	cmdBuffer, err := com.VKSBeginSingleTimeCommands(c.device.D, c.commandPool)
	if err != nil {
		log.Panicf("Failed to create command buffer for single time use: %v", err)
	}
	return cmdBuffer
}

func (c *Core) endSingleTimeCommands(cmdBuf vk.CommandBuffer, queue vk.Queue) {
	err := com.VKSEndSingleTimeCommands(c.device.D, c.commandPool, queue, cmdBuf)
	if err != nil {
		log.Panicf("Failed to end single time use command buffer: %v", err)
	}
}

// copyBuffer records a single copy of s bytes from src to dst and waits for the graphics queue to execute it.
func (c *Core) copyBuffer(src *com.Buffer, dst *com.Buffer, s vk.DeviceSize) {
	cmdBuf := c.beginSingleTimeCommands()
	copyRegions := []vk.BufferCopy{{Size: s}}
	vk.CmdCopyBuffer(cmdBuf, src.Handle, dst.Handle, 1, copyRegions)
	c.endSingleTimeCommands(cmdBuf, c.device.GraphicsQ)
}

// uploadDeviceLocal moves payload into a new device local buffer of the given usage through a host visible staging
// buffer.
func (c *Core) uploadDeviceLocal(payload []byte, usage vk.BufferUsageFlagBits) (*com.Buffer, error) {
	size := vk.DeviceSize(len(payload))
	stgBuf, err := com.CreateBuffer(c.device, size, vk.BufferUsageFlags(vk.BufferUsageTransferSrcBit), com.HostVisible)
	if err != nil {
		return nil, errors.Wrap(err, "staging buffer")
	}
	defer stgBuf.Destroy(c.device)
	if err := stgBuf.Write(c.device, payload); err != nil {
		return nil, err
	}

	buf, err := com.CreateBuffer(
		c.device,
		size,
		vk.BufferUsageFlags(vk.BufferUsageTransferDstBit|usage),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	)
	if err != nil {
		return nil, errors.Wrap(err, "device local buffer")
	}
	c.copyBuffer(stgBuf, buf, size)
	return buf, nil
}
