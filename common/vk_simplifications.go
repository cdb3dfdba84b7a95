package common

import (
	"os"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
)

// Utility functions providing slightly altered versions of the raw go bindings and wrapped functions. These altered
// versions of common functions should only hide very obvious default values that will not need to change most of the
// time. Names are prefixed with VKS which stands for (V)ul(K)an (S)implified.

// VKSAllocateCommandBuffers simplifies vk.AllocateCommandBuffers(...) by assuming the number of desired CommandBuffers
// to create is provided in the vk.CommandBufferAllocateInfo parameter.
func VKSAllocateCommandBuffers(device vk.Device, pAllocateInfo *vk.CommandBufferAllocateInfo) ([]vk.CommandBuffer, error) {
	var buffers = make([]vk.CommandBuffer, pAllocateInfo.CommandBufferCount)
	err := vk.Error(vk.AllocateCommandBuffers(device, pAllocateInfo, buffers))
	if err != nil {
		return nil, err
	}
	return buffers, nil
}

// VKSAllocatePrimaryCommandBuffers allocates count primary level buffers from cmdPool.
func VKSAllocatePrimaryCommandBuffers(device vk.Device, cmdPool vk.CommandPool, count uint32) ([]vk.CommandBuffer, error) {
	return VKSAllocateCommandBuffers(device, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        cmdPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: count,
	})
}

// VKSCreateCommandPool implicitly instantiates the CreateInfo for the command pool based in the provided arguments.
func VKSCreateCommandPool(device vk.Device, flags vk.CommandPoolCreateFlags, QueueFamilyIndex uint32) (vk.CommandPool, error) {
	poolInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            flags,
		QueueFamilyIndex: QueueFamilyIndex,
	}
	return VkCreateCommandPool(device, &poolInfo, nil)
}

// VKSBeginSingleTimeCommands allocates a primary command buffer and starts recording into it for one time
// submission. Finish it with VKSEndSingleTimeCommands.
func VKSBeginSingleTimeCommands(device vk.Device, cmdPool vk.CommandPool) (vk.CommandBuffer, error) {
	buffers, err := VKSAllocatePrimaryCommandBuffers(device, cmdPool, 1)
	if err != nil {
		return nil, errors.Wrap(err, "allocate single time command buffer")
	}
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if err := vk.Error(vk.BeginCommandBuffer(buffers[0], &beginInfo)); err != nil {
		vk.FreeCommandBuffers(device, cmdPool, 1, buffers)
		return nil, errors.Wrap(err, "begin single time command buffer")
	}
	return buffers[0], nil
}

// VKSEndSingleTimeCommands submits cmdBuf to queue, waits for the queue to drain and frees the buffer again.
func VKSEndSingleTimeCommands(device vk.Device, cmdPool vk.CommandPool, queue vk.Queue, cmdBuf vk.CommandBuffer) error {
	defer vk.FreeCommandBuffers(device, cmdPool, 1, []vk.CommandBuffer{cmdBuf})
	if err := vk.Error(vk.EndCommandBuffer(cmdBuf)); err != nil {
		return errors.Wrap(err, "end single time command buffer")
	}
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmdBuf},
	}
	if err := vk.Error(vk.QueueSubmit(queue, 1, []vk.SubmitInfo{submitInfo}, nil)); err != nil {
		return errors.Wrap(err, "submit single time command buffer")
	}
	return vk.Error(vk.QueueWaitIdle(queue))
}

// VKSCreateShaderModule reads a SPIR-V file and wraps it into a shader module.
func VKSCreateShaderModule(device vk.Device, path string) (vk.ShaderModule, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read shader %s", path)
	}
	if len(code) == 0 || len(code)%4 != 0 {
		return nil, errors.Errorf("shader %s is not SPIR-V, size %d is no multiple of 4", path, len(code))
	}
	createInfo := &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    AsUint32Arr(code),
	}
	mod, err := VkCreateShaderModule(device, createInfo, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create shader module %s", path)
	}
	return mod, nil
}

// VKSCreateUniformSetLayout creates a descriptor set layout of uniform buffers, one per entry in stages, bound at
// increasing binding numbers.
func VKSCreateUniformSetLayout(device vk.Device, stages ...vk.ShaderStageFlags) (vk.DescriptorSetLayout, error) {
	bindings := make([]vk.DescriptorSetLayoutBinding, len(stages))
	for i, s := range stages {
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         uint32(i),
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			DescriptorCount: 1,
			StageFlags:      s,
		}
	}
	layoutInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}
	return VkCreateDescriptorSetLayout(device, &layoutInfo, nil)
}
