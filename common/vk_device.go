package common

import (
	"log"

	vk "github.com/goki/vulkan"
)

const ENABLE_VALIDATION = true

var VALIDATION_LAYERS = []string{
	"VK_LAYER_KHRONOS_validation",
}

var DEVICE_EXTENSIONS = []string{
	"VK_KHR_swapchain",
}

// Device bundles the selected physical device, the logical device created on it and the queues the renderer
// submits to. It does not own the window or surface it was created for.
type Device struct {
	PD            vk.PhysicalDevice
	PdProps       vk.PhysicalDeviceProperties
	PdMemoryProps vk.PhysicalDeviceMemoryProperties
	QFamilies     QueueFamilyIndices

	D         vk.Device
	GraphicsQ vk.Queue
	PresentQ  vk.Queue
}

func NewDevice(w *Window) *Device {
	dc := &Device{}
	dc.selectPhysicalDevice(w.Inst, w.Surf)
	dc.createLogicalDevice()
	return dc
}

func (dc *Device) Destroy() {
	vk.DestroyDevice(dc.D, nil)
}

// WaitIdle blocks until the device finished all submitted work.
func (dc *Device) WaitIdle() {
	if err := vk.Error(vk.DeviceWaitIdle(dc.D)); err != nil {
		log.Printf("Waiting for device idle failed: %s", err)
	}
}

// selectPhysicalDevice picks the best rated suitable device. Discrete GPUs win over integrated ones, but a laptop
// with only an integrated GPU still gets to see the classroom.
func (dc *Device) selectPhysicalDevice(in *vk.Instance, su *vk.Surface) {
	var pd vk.PhysicalDevice
	best := 0
	for _, candidate := range ReadPhysicalDevices(*in) {
		if score := rateDevice(candidate, su); score > best {
			pd, best = candidate, score
		}
	}
	if pd == nil {
		log.Panicf("No suitable physical device (GPU) found")
	}
	dc.PD = pd

	qf, err := findQueueFamilies(dc.PD, *su)
	if err != nil {
		log.Panicf("Failed to read queue families from selected device due to: %s", err)
	}
	dc.QFamilies = *qf
	dc.PdProps = ReadPhysicalDeviceProperties(dc.PD)
	dc.PdProps.Limits.Deref()
	dc.PdMemoryProps = ReadDeviceMemoryProperties(dc.PD)
	log.Printf("Selected device %q", vk.ToString(dc.PdProps.DeviceName[:]))
}

// rateDevice returns 0 for devices that cannot present to su.
func rateDevice(pd vk.PhysicalDevice, su *vk.Surface) int {
	pdProps := ReadPhysicalDeviceProperties(pd)
	pdFeatures := ReadPhysicalDeviceFeatures(pd)
	log.Printf("Physical device\n%s", ToStringPhysicalDeviceTable(pdProps, pdFeatures, ReadQueueFamilies(pd)))

	indices, err := findQueueFamilies(pd, *su)
	if err != nil {
		log.Printf("Skipping device: %s", err)
		return 0
	}
	if !indices.isAllQueuesFound() || !checkDeviceExtensionSupport(pd, DEVICE_EXTENSIONS) {
		return 0
	}
	if !checkSwapChainAdequacy(pd, *su) {
		return 0
	}
	switch pdProps.DeviceType {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return 3
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return 2
	default:
		return 1
	}
}

func (dc *Device) createLogicalDevice() {
	queueInfos := dc.QFamilies.toQueueCreateInfos()
	deviceCreatInfo := &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(DEVICE_EXTENSIONS)),
		PpEnabledExtensionNames: TerminatedStrs(DEVICE_EXTENSIONS),
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{{}},
	}
	if ENABLE_VALIDATION {
		deviceCreatInfo.EnabledLayerCount = uint32(len(VALIDATION_LAYERS))
		deviceCreatInfo.PpEnabledLayerNames = TerminatedStrs(VALIDATION_LAYERS)
	}

	var err error
	dc.D, err = VkCreateDevice(dc.PD, deviceCreatInfo, nil)
	if err != nil {
		log.Panicf("Failed create logical device due to: %s", err)
	}
	dc.GraphicsQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.GraphicsFamily, 0)
	if err != nil {
		log.Panicf("Failed to get 'graphics' device queue: %s", err)
	}
	dc.PresentQ, err = VkGetDeviceQueue(dc.D, dc.QFamilies.PresentFamily, 0)
	if err != nil {
		log.Panicf("Failed to get 'present' device queue: %s", err)
	}
}

func checkDeviceExtensionSupport(pd vk.PhysicalDevice, requiredDeviceExt []string) bool {
	supportedExt := ReadDeviceExtensionProperties(pd)
	supportedExtNames := make([]string, len(supportedExt))
	for i, ext := range supportedExt {
		supportedExtNames[i] = vk.ToString(ext.ExtensionName[:])
	}
	return IsSubset(requiredDeviceExt, supportedExtNames)
}

func checkSwapChainAdequacy(pd vk.PhysicalDevice, surface vk.Surface) bool {
	scDetails := ReadSwapChainSupportDetails(pd, surface)
	return len(scDetails.formats) > 0 && len(scDetails.presentModes) > 0
}
