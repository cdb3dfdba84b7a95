package renderer

import (
	"log"

	com "classroom/common"
	"classroom/model"
	"classroom/scene"

	vk "github.com/goki/vulkan"
	"github.com/pkg/errors"
)

// DescriptorProvisioner owns the uniform buffers and the descriptor sets pointing at them.
//
// Set 0 is allocated once per frame in flight and holds the camera (binding 0) and the lights (binding 1). Set 1 is
// allocated once per material and holds its colour.
type DescriptorProvisioner struct {
	dc *com.Device

	frameSetLayout vk.DescriptorSetLayout
	framePool      vk.DescriptorPool
	frameSets      []vk.DescriptorSet
	cameraBuffers  []*com.Buffer
	lightBuffers   []*com.Buffer

	materialSetLayout vk.DescriptorSetLayout
	materialPool      vk.DescriptorPool
	materialSets      map[*scene.Material]vk.DescriptorSet
	materialBuffers   []*com.Buffer
}

func NewDescriptorProvisioner(dc *com.Device) *DescriptorProvisioner {
	dp := &DescriptorProvisioner{
		dc:           dc,
		materialSets: map[*scene.Material]vk.DescriptorSet{},
	}
	var err error
	dp.frameSetLayout, err = com.VKSCreateUniformSetLayout(dc.D,
		vk.ShaderStageFlags(vk.ShaderStageVertexBit|vk.ShaderStageFragmentBit),
		vk.ShaderStageFlags(vk.ShaderStageFragmentBit),
	)
	if err != nil {
		log.Panicf("Failed to create frame descriptor set layout: %v", err)
	}
	dp.materialSetLayout, err = com.VKSCreateUniformSetLayout(dc.D, vk.ShaderStageFlags(vk.ShaderStageFragmentBit))
	if err != nil {
		log.Panicf("Failed to create material descriptor set layout: %v", err)
	}
	return dp
}

// Layouts are the set layouts in set order, as the pipeline layout expects them.
func (dp *DescriptorProvisioner) Layouts() []vk.DescriptorSetLayout {
	return []vk.DescriptorSetLayout{dp.frameSetLayout, dp.materialSetLayout}
}

// CreateFrameSets allocates frames sets of camera and light buffers.
func (dp *DescriptorProvisioner) CreateFrameSets(frames int) {
	dp.framePool = dp.createPool(uint32(frames), 2)
	layouts := make([]vk.DescriptorSetLayout, frames)
	for i := range layouts {
		layouts[i] = dp.frameSetLayout
	}
	dp.frameSets = dp.allocDescriptorSets(dp.framePool, layouts)

	for i := 0; i < frames; i++ {
		cam := dp.uniformBuffer(model.SizeOfUbo())
		lights := dp.uniformBuffer(model.SizeOfLightsUbo())
		dp.cameraBuffers = append(dp.cameraBuffers, cam)
		dp.lightBuffers = append(dp.lightBuffers, lights)
		dp.write(dp.frameSets[i], cam, lights)
	}
	log.Printf("Provisioned %d frame descriptor sets", frames)
}

// CreateMaterialSets allocates one set per material and uploads its colour. Materials do not change afterwards.
func (dp *DescriptorProvisioner) CreateMaterialSets(materials []*scene.Material) {
	if len(materials) == 0 {
		log.Panicf("At least one material is required")
	}
	dp.materialPool = dp.createPool(uint32(len(materials)), 1)
	layouts := make([]vk.DescriptorSetLayout, len(materials))
	for i := range layouts {
		layouts[i] = dp.materialSetLayout
	}
	sets := dp.allocDescriptorSets(dp.materialPool, layouts)
	for i, m := range materials {
		buf := dp.uniformBuffer(model.SizeOfMaterialUbo())
		if err := buf.Write(dp.dc, model.NewMaterialUbo(m).Bytes()); err != nil {
			log.Panicf("Failed to upload material %q: %v", m.Name, err)
		}
		dp.materialBuffers = append(dp.materialBuffers, buf)
		dp.write(sets[i], buf)
		dp.materialSets[m] = sets[i]
	}
	log.Printf("Provisioned %d material descriptor sets", len(materials))
}

func (dp *DescriptorProvisioner) FrameSet(frameIdx int32) vk.DescriptorSet {
	return dp.frameSets[frameIdx]
}

func (dp *DescriptorProvisioner) MaterialSet(m *scene.Material) (vk.DescriptorSet, error) {
	set, ok := dp.materialSets[m]
	if !ok {
		name := "<nil>"
		if m != nil {
			name = m.Name
		}
		return nil, errors.Errorf("material %s has no descriptor set", name)
	}
	return set, nil
}

// UpdateFrame writes the camera and light state of frame frameIdx.
func (dp *DescriptorProvisioner) UpdateFrame(frameIdx int32, cam *model.UniformBufferObject, lights *model.LightsUniformBufferObject) error {
	if err := dp.cameraBuffers[frameIdx].Write(dp.dc, cam.Bytes()); err != nil {
		return errors.Wrap(err, "camera ubo")
	}
	return errors.Wrap(dp.lightBuffers[frameIdx].Write(dp.dc, lights.Bytes()), "lights ubo")
}

func (dp *DescriptorProvisioner) Destroy() {
	for _, bufs := range [][]*com.Buffer{dp.cameraBuffers, dp.lightBuffers, dp.materialBuffers} {
		for _, b := range bufs {
			b.Destroy(dp.dc)
		}
	}
	vk.DestroyDescriptorPool(dp.dc.D, dp.framePool, nil)
	vk.DestroyDescriptorPool(dp.dc.D, dp.materialPool, nil)
	vk.DestroyDescriptorSetLayout(dp.dc.D, dp.frameSetLayout, nil)
	vk.DestroyDescriptorSetLayout(dp.dc.D, dp.materialSetLayout, nil)
}

func (dp *DescriptorProvisioner) uniformBuffer(size uintptr) *com.Buffer {
	buf, err := com.CreateBuffer(dp.dc, vk.DeviceSize(size), vk.BufferUsageFlags(vk.BufferUsageUniformBufferBit), com.HostVisible)
	if err != nil {
		log.Panicf("Failed to create uniform buffer: %v", err)
	}
	return buf
}

// createPool sizes a pool for sets sets of uniformsPerSet uniform buffers each.
func (dp *DescriptorProvisioner) createPool(sets uint32, uniformsPerSet uint32) vk.DescriptorPool {
	poolInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       sets,
		PoolSizeCount: 1,
		PPoolSizes: []vk.DescriptorPoolSize{{
			Type:            vk.DescriptorTypeUniformBuffer,
			DescriptorCount: sets * uniformsPerSet,
		}},
	}
	pool, err := com.VkCreateDescriptorPool(dp.dc.D, &poolInfo, nil)
	if err != nil {
		log.Panicf("Failed to create descriptor pool: %v", err)
	}
	return pool
}

// allocDescriptorSets Allocates a list of descriptor sets of given layout from the stated pool
func (dp *DescriptorProvisioner) allocDescriptorSets(pool vk.DescriptorPool, layouts []vk.DescriptorSetLayout) []vk.DescriptorSet {
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: uint32(len(layouts)),
		PSetLayouts:        layouts,
	}
	sets, err := com.VkAllocateDescriptorSets(dp.dc.D, &allocInfo)
	if err != nil {
		log.Panicf("Failed to allocate %d descriptor sets: %v", len(layouts), err)
	}
	return sets
}

// write points the bindings of set at bufs, binding i at bufs[i].
func (dp *DescriptorProvisioner) write(set vk.DescriptorSet, bufs ...*com.Buffer) {
	writes := make([]vk.WriteDescriptorSet, len(bufs))
	for i, b := range bufs {
		writes[i] = vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      uint32(i),
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeUniformBuffer,
			PBufferInfo: []vk.DescriptorBufferInfo{{
				Buffer: b.Handle,
				Range:  b.Size,
			}},
		}
	}
	vk.UpdateDescriptorSets(dp.dc.D, uint32(len(writes)), writes, 0, nil)
}
