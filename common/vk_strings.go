package common

import (
	"encoding/hex"
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// Human readable renderings of driver reported structs for the startup log.

// ToStringPhysicalDeviceTable renders a device with its properties and one line per queue family.
func ToStringPhysicalDeviceTable(
	pdProps vk.PhysicalDeviceProperties,
	pdFeatures vk.PhysicalDeviceFeatures,
	qFamilies []vk.QueueFamilyProperties,
) string {
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "%s:\n", vk.ToString(pdProps.DeviceName[:]))
	fmt.Fprintf(&sb, "|_%s\n", toStringPhysicalDeviceProps(pdProps))
	fmt.Fprintf(&sb, "|_geometryShader: %t, samplerAnisotropy: %t\n",
		pdFeatures.GeometryShader == vk.True, pdFeatures.SamplerAnisotropy == vk.True)
	for i := range qFamilies {
		branch := "| "
		if i == len(qFamilies)-1 {
			branch = "|_"
		}
		fmt.Fprintf(&sb, "%sQfamily[%d] %s\n", branch, i, toStringQueueFamilyProps(qFamilies[i]))
	}
	return sb.String()
}

// vendorNames holds the handful of PCI vendor ids that ship Vulkan drivers.
var vendorNames = map[uint32]string{
	0x1002:  "AMD",
	0x1010:  "ImgTec",
	0x10DE:  "NVIDIA",
	0x13B5:  "ARM",
	0x5143:  "Qualcomm",
	0x8086:  "INTEL",
	0x10005: "Mesa",
}

func asVendorName(id uint32) string {
	if n, ok := vendorNames[id]; ok {
		return n
	}
	return "unknown"
}

// asDriverVersion decodes the packed driver version. NVIDIA uses its own 10.8.8.6 bit layout.
func asDriverVersion(vendor uint32, raw uint32) string {
	if vendor == 0x10DE {
		return fmt.Sprintf("%d.%d.%d.%d", (raw>>22)&0x3ff, (raw>>14)&0x0ff, (raw>>6)&0x0ff, raw&0x003f)
	}
	return vk.Version(raw).String()
}

func toStringPhysicalDeviceProps(pdProps vk.PhysicalDeviceProperties) string {
	return fmt.Sprintf("api: %s, driver: %s, vendorId: %d (%s), deviceId: %d, deviceType: %s, UUID: %v",
		vk.Version(pdProps.ApiVersion).String(),
		asDriverVersion(pdProps.VendorID, pdProps.DriverVersion),
		pdProps.VendorID,
		asVendorName(pdProps.VendorID),
		pdProps.DeviceID,
		toStringDeviceType(pdProps.DeviceType),
		hex.EncodeToString(pdProps.PipelineCacheUUID[:]),
	)
}

func toStringDeviceType(dt vk.PhysicalDeviceType) string {
	switch dt {
	case vk.PhysicalDeviceTypeOther:
		return "other"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated gpu"
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete gpu"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual gpu"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "unknown"
	}
}

func toStringQueueFamilyProps(q vk.QueueFamilyProperties) string {
	return fmt.Sprintf(
		"count: %2d, ts bits: %d, granularity: (%d,%d,%d), flags: %v",
		q.QueueCount,
		q.TimestampValidBits,
		q.MinImageTransferGranularity.Width,
		q.MinImageTransferGranularity.Height,
		q.MinImageTransferGranularity.Depth,
		toStringQueueFlags(q.QueueFlags),
	)
}

var queueFlagNames = []struct {
	bit  vk.QueueFlagBits
	name string
}{
	{vk.QueueGraphicsBit, "GRAPHICS"},
	{vk.QueueComputeBit, "COMPUTE"},
	{vk.QueueTransferBit, "TRANSFER"},
	{vk.QueueSparseBindingBit, "SPARSE_BINDING"},
	{vk.QueueProtectedBit, "PROTECTED"},
}

func toStringQueueFlags(bits vk.QueueFlags) []string {
	var names []string
	for _, f := range queueFlagNames {
		if vk.QueueFlagBits(bits)&f.bit != 0 {
			names = append(names, f.name)
		}
	}
	return names
}

func ToStringMemoryRequirements(mr vk.MemoryRequirements) string {
	return fmt.Sprintf("MemoryRequirements(Size:%d Byte, Alignment:%d Byte, MemTypeBits:[%032b])", mr.Size, mr.Alignment, mr.MemoryTypeBits)
}
