package renderer

import (
	"log"
	"math"
	"time"
	"unsafe"

	com "classroom/common"
	"classroom/config"
	"classroom/lighting"
	"classroom/model"
	"classroom/scene"
	vm "classroom/vector_math"

	vk "github.com/goki/vulkan"
	"github.com/veandco/go-sdl2/sdl"
)

const MAX_FRAMES_IN_FLIGHT = 3

var clearColor = []float32{0.01, 0.01, 0.01, 1}

type Core struct {
	cfg *config.Config

	// OS/Window level
	Win    *com.Window
	device *com.Device

	// Target level
	swapChain *com.SwapChain

	// Drawing infrastructure level
	renderPass     vk.RenderPass
	descriptors    *DescriptorProvisioner
	pipelineLayout vk.PipelineLayout
	pipelines      []vk.Pipeline
	commandPool    vk.CommandPool

	// Frame level
	commandBuffers     []vk.CommandBuffer
	currentFrameIdx    int32
	imageAvailableSems []vk.Semaphore
	renderFinishedSems []vk.Semaphore
	inFlightFens       []vk.Fence

	// 3D World
	Cam     *model.Camera
	models  map[string]*model.Model
	batches []batch
	lights  *lighting.Set
	root    vm.Mat

	depthImage     vk.Image
	depthImageMem  vk.DeviceMemory
	depthImageView vk.ImageView
}

// Externally facing functions

func NewRenderCore(cfg *config.Config) *Core {
	return &Core{
		cfg:    cfg,
		Cam:    model.NewCamera(cfg.Camera),
		models: map[string]*model.Model{},
		root:   vm.NewUnitMat(4),
	}
}

// Initialize opens the window and sets up everything up to the per frame sync objects. The materials get their
// descriptor sets here, draw commands may only use these.
func (c *Core) Initialize(materials []*scene.Material) {
	var layers []string
	if com.ENABLE_VALIDATION {
		layers = com.VALIDATION_LAYERS
	}
	c.Win = com.NewWindow(c.cfg.Window.Title, int32(c.cfg.Window.Width), int32(c.cfg.Window.Height), layers)
	c.device = com.NewDevice(c.Win)
	c.swapChain = com.NewSwapChain(c.device, c.Win)

	c.createRenderPass()
	c.descriptors = NewDescriptorProvisioner(c.device)
	c.createGraphicsPipeline()
	c.createCommandPool()
	c.createDepthResources()
	c.createFrameBuffers()

	c.descriptors.CreateFrameSets(MAX_FRAMES_IN_FLIGHT)
	c.descriptors.CreateMaterialSets(materials)
	c.createCommandBuffers()
	c.createSyncObjects()
}

type iterationHandler func(sdl.Event, *Core)

type drawHandler func(time.Duration, *Core)

// Loop this function represents the event-loop for user interaction and contains the primary draw call that
// renders each frame. The draw handler gets the time since the previous frame. Rendering pauses while the window is
// minimized, the window 'close button' and the ESC key end the loop.
func (c *Core) Loop(ih iterationHandler, dh drawHandler) {
	t0 := time.Now()
	last := t0
	frames := 0
	c.Win.Close = false
	for !c.Win.Close {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch ev := event.(type) {
			case *sdl.QuitEvent:
				c.Win.Close = true
			case *sdl.WindowEvent:
				switch ev.Event {
				case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
					c.Win.Resized = true
				case sdl.WINDOWEVENT_MINIMIZED:
					c.Win.Minimized = true
				case sdl.WINDOWEVENT_RESTORED:
					c.Win.Minimized = false
				}
			case *sdl.KeyboardEvent:
				if ev.Keysym.Sym == sdl.K_ESCAPE {
					c.Win.Close = true
				}
			}
			ih(event, c)
		}
		if c.Win.Minimized {
			// Idle until a polled restore event clears c.Win.Minimized
			sdl.Delay(16)
			last = time.Now()
			continue
		}
		now := time.Now()
		dh(now.Sub(last), c)
		last = now
		c.drawFrame()
		frames++
	}
	dt := time.Since(t0)
	log.Printf("Elapsed: %v, rough avg fps: %.1f fps", dt, float64(frames)/dt.Seconds())
}

func (c *Core) Destroy() {
	// We need to wait for the last asynchronous call to finish before tear down
	c.device.WaitIdle()
	c.ClearScene()
	c.destroySwapChainAndDerivatives()
	c.descriptors.Destroy()

	// Destroy all infrastructure up to the sdl window
	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		vk.DestroySemaphore(c.device.D, c.imageAvailableSems[i], nil)
		vk.DestroySemaphore(c.device.D, c.renderFinishedSems[i], nil)
		vk.DestroyFence(c.device.D, c.inFlightFens[i], nil)
	}
	vk.DestroyCommandPool(c.device.D, c.commandPool, nil)

	for i := range c.pipelines {
		vk.DestroyPipeline(c.device.D, c.pipelines[i], nil)
	}
	vk.DestroyPipelineLayout(c.device.D, c.pipelineLayout, nil)
	vk.DestroyRenderPass(c.device.D, c.renderPass, nil)

	c.device.Destroy()
	c.Win.Destroy()
}

func (c *Core) destroySwapChainAndDerivatives() {
	vk.DestroyImageView(c.device.D, c.depthImageView, nil)
	vk.DestroyImage(c.device.D, c.depthImage, nil)
	vk.FreeMemory(c.device.D, c.depthImageMem, nil)

	c.swapChain.Destroy(c.device)
}

func (c *Core) createRenderPass() {
	colorAttachment := vk.AttachmentDescription{
		Format:         c.swapChain.Format.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
	colorAttachmentRef := vk.AttachmentReference{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}
	// the render pass moves the depth image out of its undefined layout, no explicit barrier needed
	depthAttachment := vk.AttachmentDescription{
		Format:         c.findDepthFormat(),
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	depthAttachmentRef := vk.AttachmentReference{
		Attachment: 1,
		Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    1,
		PColorAttachments:       []vk.AttachmentReference{colorAttachmentRef},
		PDepthStencilAttachment: &depthAttachmentRef,
	}
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit | vk.PipelineStageEarlyFragmentTestsBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit | vk.AccessDepthStencilAttachmentWriteBit),
	}
	renderPassInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 2,
		PAttachments:    []vk.AttachmentDescription{colorAttachment, depthAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}
	var err error
	c.renderPass, err = com.VkCreateRenderPass(c.device.D, &renderPassInfo, nil)
	if err != nil {
		log.Panicf("Failed create render pass due to: %s", err)
	}
	log.Println("Successfully created render pass")
}

func (c *Core) createGraphicsPipeline() {
	// Shader mode deletion can be done right after pipeline creation
	vertShaderMod, vertStageInfo := LoadVert(c.device.D, c.cfg.Shaders.Vertex)
	defer DeleteShaderMod(c.device.D, vertShaderMod)
	fragShaderMod, fragStageInfo := LoadFrag(c.device.D, c.cfg.Shaders.Fragment)
	defer DeleteShaderMod(c.device.D, fragShaderMod)
	shaderStages := []vk.PipelineShaderStageCreateInfo{vertStageInfo, fragStageInfo}

	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicStateCreateInfo := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}
	bindingDesc := []vk.VertexInputBindingDescription{model.GetVertexBindingDescription()}
	attributeDesc := model.GetVertexAttributeDescriptions()
	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   1,
		PVertexBindingDescriptions:      bindingDesc,
		VertexAttributeDescriptionCount: uint32(len(attributeDesc)),
		PVertexAttributeDescriptions:    attributeDesc,
	}
	inputAssemblyInfo := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}
	viewportStateInfo := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}
	// Walls are seen from inside the room and furniture from outside, both sides of a face get drawn.
	rasterizerInfo := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(vk.CullModeNone),
		FrontFace:               vk.FrontFaceCounterClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}
	multisamplingInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		SampleShadingEnable:  vk.False,
		MinSampleShading:     1.0,
	}
	colorBlendAttachmentInfo := vk.PipelineColorBlendAttachmentState{
		BlendEnable:    vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	colorBlendingInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentInfo},
	}

	// Model and normal matrix are pushed per draw, camera, lights and material come from descriptor sets
	pushConstantRange := vk.PushConstantRange{
		StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
		Offset:     0,
		Size:       model.PushConstantsSize(),
	}
	setLayouts := c.descriptors.Layouts()
	pipelineLayoutInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(setLayouts)),
		PSetLayouts:            setLayouts,
		PushConstantRangeCount: 1,
		PPushConstantRanges:    []vk.PushConstantRange{pushConstantRange},
	}
	layout, err := com.VkCreatePipelineLayout(c.device.D, &pipelineLayoutInfo, nil)
	if err != nil {
		log.Panicf("Failed to create pipeline layout: %v", err)
	}
	c.pipelineLayout = layout

	// coplanar faces (skirting on walls, board on its border) resolve in draw order
	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       vk.True,
		DepthWriteEnable:      vk.True,
		DepthCompareOp:        vk.CompareOpLessOrEqual,
		DepthBoundsTestEnable: vk.False,
		StencilTestEnable:     vk.False,
		MinDepthBounds:        0,
		MaxDepthBounds:        1,
	}

	pipelineInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(shaderStages)),
		PStages:             shaderStages,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssemblyInfo,
		PViewportState:      &viewportStateInfo,
		PRasterizationState: &rasterizerInfo,
		PMultisampleState:   &multisamplingInfo,
		PDepthStencilState:  &depthStencil,
		PColorBlendState:    &colorBlendingInfo,
		PDynamicState:       &dynamicStateCreateInfo,
		Layout:              c.pipelineLayout,
		RenderPass:          c.renderPass,
		Subpass:             0,
		BasePipelineIndex:   -1,
	}
	pipelines, err := com.VkCreateGraphicsPipelines(c.device.D, nil, 1, []vk.GraphicsPipelineCreateInfo{pipelineInfo}, nil)
	if err != nil {
		log.Panicf("Failed to create graphics pipeline: %v", err)
	}
	c.pipelines = pipelines
	log.Printf("Successfully created graphics pipeline")
}

func (c *Core) createFrameBuffers() {
	c.swapChain.CreateFrameBuffers(c.device, c.renderPass, &c.depthImageView)
}

func (c *Core) createCommandPool() {
	commandPool, err := com.VKSCreateCommandPool(
		c.device.D,
		vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		*c.device.QFamilies.GraphicsFamily,
	)
	if err != nil {
		log.Panicf("Failed to create command pool: %v", err)
	}
	log.Printf("Successfully created command pool")
	c.commandPool = commandPool
}

func (c *Core) createCommandBuffers() {
	buffers, err := com.VKSAllocatePrimaryCommandBuffers(c.device.D, c.commandPool, MAX_FRAMES_IN_FLIGHT)
	if err != nil {
		log.Panicf("Failed to allocate command buffers: %v", err)
	}
	log.Printf("Successfully allocated %d command buffers", len(buffers))
	c.commandBuffers = buffers
}

func (c *Core) createSyncObjects() {
	semCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}
	fenCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
	c.imageAvailableSems = make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	c.renderFinishedSems = make([]vk.Semaphore, MAX_FRAMES_IN_FLIGHT)
	c.inFlightFens = make([]vk.Fence, MAX_FRAMES_IN_FLIGHT)
	for i := 0; i < MAX_FRAMES_IN_FLIGHT; i++ {
		var errs [3]error
		c.imageAvailableSems[i], errs[0] = com.VkCreateSemaphore(c.device.D, &semCreateInfo, nil)
		c.renderFinishedSems[i], errs[1] = com.VkCreateSemaphore(c.device.D, &semCreateInfo, nil)
		c.inFlightFens[i], errs[2] = com.VkCreateFence(c.device.D, &fenCreateInfo, nil)
		for _, err := range errs {
			if err != nil {
				log.Panicf("Failed to create sync objects for frame %d: %v", i, err)
			}
		}
	}
}

func (c *Core) createDepthResources() {
	dFormat := c.findDepthFormat()
	dImg, dImgMem, err := com.CreateImage(
		c.device,
		c.swapChain.Extend.Width,
		c.swapChain.Extend.Height,
		dFormat,
		vk.ImageTilingOptimal,
		vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit),
	)
	if err != nil {
		log.Panicf("Failed to create depth image: %v", err)
	}
	dImgView, err := com.CreateImageView(c.device, dImg, dFormat, vk.ImageAspectFlags(vk.ImageAspectDepthBit))
	if err != nil {
		log.Panicf("Failed to create depth image view: %v", err)
	}
	c.depthImage = dImg
	c.depthImageMem = dImgMem
	c.depthImageView = dImgView
}

func (c *Core) findDepthFormat() vk.Format {
	return c.findSupportedFormat(
		[]vk.Format{vk.FormatD32Sfloat, vk.FormatD32SfloatS8Uint, vk.FormatD24UnormS8Uint},
		vk.ImageTilingOptimal,
		vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit),
	)
}

func (c *Core) findSupportedFormat(candidates []vk.Format, tiling vk.ImageTiling, features vk.FormatFeatureFlags) vk.Format {
	for _, format := range candidates {
		fProps := com.ReadFormatProperties(c.device.PD, format)
		if tiling == vk.ImageTilingLinear && (fProps.LinearTilingFeatures&features) == features {
			return format
		} else if tiling == vk.ImageTilingOptimal && (fProps.OptimalTilingFeatures&features) == features {
			return format
		}
	}
	log.Panicf("No supported format found among %v", candidates)
	return vk.FormatUndefined
}

// Drawing and derivative functionality

func (c *Core) recordDrawCommands(buffer vk.CommandBuffer, imageIdx uint32) {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if vk.BeginCommandBuffer(buffer, &beginInfo) != vk.Success {
		log.Panicf("Failed to begin recording command buffer")
	}

	renderArea := vk.Rect2D{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: c.swapChain.Extend,
	}
	clearValues := []vk.ClearValue{
		vk.NewClearValue(clearColor),
		vk.NewClearDepthStencil(1, 0),
	}
	renderPassInfo := vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      c.renderPass,
		Framebuffer:     c.swapChain.FrameBuffers[imageIdx],
		RenderArea:      renderArea,
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(buffer, &renderPassInfo, vk.SubpassContentsInline)
	vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, c.pipelines[0])

	viewport := []vk.Viewport{{
		Width:    float32(c.swapChain.Extend.Width),
		Height:   float32(c.swapChain.Extend.Height),
		MinDepth: 0,
		MaxDepth: 1.0,
	}}
	vk.CmdSetViewport(buffer, 0, 1, viewport)
	vk.CmdSetScissor(buffer, 0, 1, []vk.Rect2D{renderArea})

	// camera and lights belong to the frame in flight, not to the swap chain image
	frameSet := c.descriptors.FrameSet(c.currentFrameIdx)
	vk.CmdBindDescriptorSets(buffer, vk.PipelineBindPointGraphics, c.pipelineLayout, 0, 1, []vk.DescriptorSet{frameSet}, 0, nil)

	for _, b := range c.batches {
		m := c.models[b.primitive]
		matSet, _ := c.descriptors.MaterialSet(b.material)
		vk.CmdBindDescriptorSets(buffer, vk.PipelineBindPointGraphics, c.pipelineLayout, 1, 1, []vk.DescriptorSet{matSet}, 0, nil)
		vk.CmdBindVertexBuffers(buffer, 0, 1, []vk.Buffer{m.VertexBuffer.Handle}, []vk.DeviceSize{0})
		vk.CmdBindIndexBuffer(buffer, m.IndexBuffer.Handle, 0, vk.IndexTypeUint32)
		for _, cmd := range b.draws {
			pc := model.NewPushConstants(cmd).Bytes()
			vk.CmdPushConstants(buffer, c.pipelineLayout, vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0, uint32(len(pc)), unsafe.Pointer(&pc[0]))
			vk.CmdDrawIndexed(buffer, m.IndexCount(), 1, 0, 0, 0)
		}
	}

	vk.CmdEndRenderPass(buffer)
	if vk.EndCommandBuffer(buffer) != vk.Success {
		log.Printf("Failed to record commandbuffer")
	}
}

func (c *Core) drawFrame() {
	// Wait for frame to be ready - signalled by the inFlightFens
	vk.WaitForFences(c.device.D, 1, []vk.Fence{c.inFlightFens[c.currentFrameIdx]}, vk.True, math.MaxUint64)

	var imgIdx uint32
	result := vk.AcquireNextImage(c.device.D, c.swapChain.Handle, math.MaxUint64, c.imageAvailableSems[c.currentFrameIdx], nil, &imgIdx)
	// React on surface changes and other possible causes for failure (e.g.: Window resizing)
	if result == vk.ErrorOutOfDate {
		c.recreateSwapChain()
		return
	} else if result != vk.Success && result != vk.Suboptimal {
		log.Panicf("Failed to aquire image, AcquireNextImage(...) result code: %d", result)
	}

	// Reset the fence only if we are actually going to execute work that will put the fence into the signalled state
	vk.ResetFences(c.device.D, 1, []vk.Fence{c.inFlightFens[c.currentFrameIdx]})

	c.updateUniformBuffers(c.currentFrameIdx)
	vk.ResetCommandBuffer(c.commandBuffers[c.currentFrameIdx], 0)
	c.recordDrawCommands(c.commandBuffers[c.currentFrameIdx], imgIdx)

	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.imageAvailableSems[c.currentFrameIdx]},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{c.commandBuffers[c.currentFrameIdx]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{c.renderFinishedSems[c.currentFrameIdx]},
	}
	if vk.QueueSubmit(c.device.GraphicsQ, 1, []vk.SubmitInfo{submitInfo}, c.inFlightFens[c.currentFrameIdx]) != vk.Success {
		log.Panicf("Failed to submit commandbuffer")
	}

	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{c.renderFinishedSems[c.currentFrameIdx]},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{c.swapChain.Handle},
		PImageIndices:      []uint32{imgIdx},
	}
	result = vk.QueuePresent(c.device.PresentQ, &presentInfo)
	if result == vk.ErrorOutOfDate || result == vk.Suboptimal || c.Win.Resized {
		c.Win.Resized = false
		c.recreateSwapChain()
	} else if result != vk.Success {
		log.Panicf("Failed to present image, QueuePresent(...) result code: %d", result)
	}

	c.currentFrameIdx = (c.currentFrameIdx + 1) % MAX_FRAMES_IN_FLIGHT
}

func (c *Core) recreateSwapChain() {
	// a minimized window has a zero sized surface, wait until it is back
	for w, h := c.Win.DrawableSize(); w == 0 || h == 0; w, h = c.Win.DrawableSize() {
		sdl.PumpEvents()
		sdl.Delay(16)
	}
	c.device.WaitIdle()
	c.destroySwapChainAndDerivatives()
	c.swapChain = com.NewSwapChain(c.device, c.Win)
	c.createDepthResources()
	c.createFrameBuffers()
}

func (c *Core) updateUniformBuffers(frameIdx int32) {
	c.Cam.Aspect = c.swapChain.Aspect
	ubo := model.UniformBufferObject{
		View:       c.Cam.GetView(),
		Projection: c.Cam.GetProjection(),
		Root:       c.root,
	}
	lights := &model.LightsUniformBufferObject{}
	if c.lights != nil {
		lights = model.NewLightsUbo(c.lights)
	}
	if err := c.descriptors.UpdateFrame(frameIdx, &ubo, lights); err != nil {
		log.Panicf("Failed to update uniform buffers of frame %d: %v", frameIdx, err)
	}
}
