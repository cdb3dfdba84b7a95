package common

import (
	"slices"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
)

// QueueFamilyIndices holds the families graphics and presentation work is submitted to. Both may point at the
// same family.
type QueueFamilyIndices struct {
	GraphicsFamily *uint32
	PresentFamily  *uint32
}

func findQueueFamilies(pd vk.PhysicalDevice, surf vk.Surface) (*QueueFamilyIndices, error) {
	indices := &QueueFamilyIndices{}
	for i, qf := range ReadQueueFamilies(pd) {
		idx := uint32(i)
		if indices.GraphicsFamily == nil && vk.QueueFlagBits(qf.QueueFlags)&vk.QueueGraphicsBit != 0 {
			indices.GraphicsFamily = &idx
		}
		if indices.PresentFamily == nil {
			var presentSupport vk.Bool32
			vk.GetPhysicalDeviceSurfaceSupport(pd, idx, surf, &presentSupport)
			if presentSupport == vk.True {
				indices.PresentFamily = &idx
			}
		}
		if indices.isAllQueuesFound() {
			break
		}
	}
	if indices.GraphicsFamily == nil {
		return nil, errors.New("unable to find graphics capable queue family")
	}
	if indices.PresentFamily == nil {
		return nil, errors.New("unable to find present capable queue family for given surface")
	}
	return indices, nil
}

func (q *QueueFamilyIndices) isAllQueuesFound() bool {
	return q.GraphicsFamily != nil && q.PresentFamily != nil
}

// unique returns the distinct family indices, graphics first.
func (q *QueueFamilyIndices) unique() []uint32 {
	uniq := []uint32{*q.GraphicsFamily}
	if !slices.Contains(uniq, *q.PresentFamily) {
		uniq = append(uniq, *q.PresentFamily)
	}
	return uniq
}

func (q *QueueFamilyIndices) toQueueCreateInfos() []vk.DeviceQueueCreateInfo {
	uniq := q.unique()
	infos := make([]vk.DeviceQueueCreateInfo, len(uniq))
	for i := range uniq {
		infos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: uniq[i],
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}
	}
	return infos
}
