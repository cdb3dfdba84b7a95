package renderer

import (
	"log"

	com "classroom/common"

	vk "github.com/goki/vulkan"
)

// LoadVert reads a '.spv' file with the expectation of it containing a vertex shader. The shader module and the
// vk.PipelineShaderStageCreateInfo binding it to a pipeline are returned.
func LoadVert(d vk.Device, path string) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	return loadStage(d, path, vk.ShaderStageVertexBit)
}

// LoadFrag does the same as LoadVert for fragment shaders.
func LoadFrag(d vk.Device, path string) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	return loadStage(d, path, vk.ShaderStageFragmentBit)
}

// DeleteShaderMod discards a shader module. Modules only carry the code onto the device, so they can be destroyed
// right after the pipeline has been created.
func DeleteShaderMod(d vk.Device, mod vk.ShaderModule) {
	vk.DestroyShaderModule(d, mod, nil)
}

func loadStage(d vk.Device, path string, stage vk.ShaderStageFlagBits) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	mod, err := com.VKSCreateShaderModule(d, path)
	if err != nil {
		log.Panicf("Failed to load shader (run go generate to compile them): %v", err)
	}
	log.Printf("Created shader module for %s", path)
	return mod, vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: mod,
		PName:  "main\x00", // entrypoint -> function name in the shader
	}
}
