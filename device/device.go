// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"github.com/devblok/vkboot/core"
	vk "github.com/devblok/vulkan"
	units "github.com/docker/go-units"
)

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	ID            uint32            `json:"id"`
	VendorID      uint32            `json:"vendorId"`
	DriverVersion uint32            `json:"driverVersion"`
	APIVersion    string            `json:"apiVersion"`
	Invalid       bool              `json:"invalid,omitempty"`
	Extensions    []string          `json:"extensions"`
	Layers        []string          `json:"layers"`
	Memory        uint64            `json:"memory"`
	MemoryHuman   string            `json:"memoryHuman"`
	QueueFamilies []QueueFamilyInfo `json:"queueFamilies"`
}

// QueueFamilyInfo is one queue family in a PhysicalDeviceInfo.
type QueueFamilyInfo struct {
	Index    int    `json:"index"`
	Count    uint32 `json:"count"`
	Graphics bool   `json:"graphics"`
	Compute  bool   `json:"compute"`
	Transfer bool   `json:"transfer"`
}

// PhysicalDevice wraps a vk.PhysicalDevice. It implements core.PhysicalDevice.
type PhysicalDevice struct {
	handle vk.PhysicalDevice
}

// Handle returns the underlying vk.PhysicalDevice, for logical device creation.
func (p *PhysicalDevice) Handle() vk.PhysicalDevice {
	return p.handle
}

// Properties implements interface
func (p *PhysicalDevice) Properties() core.DeviceProperties {
	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(p.handle, &props)
	props.Deref()
	return core.DeviceProperties{
		Name:          vk.ToString(props.DeviceName[:]),
		Type:          deviceType(props.DeviceType),
		VendorID:      props.VendorID,
		DeviceID:      props.DeviceID,
		DriverVersion: props.DriverVersion,
		APIVersion:    parseVersion(props.ApiVersion),
	}
}

// QueueFamilies implements interface
func (p *PhysicalDevice) QueueFamilies() []core.QueueFamily {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(p.handle, &count, nil)
	if count == 0 {
		return nil
	}
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(p.handle, &count, props)

	families := make([]core.QueueFamily, 0, count)
	for _, f := range props[:count] {
		f.Deref()
		families = append(families, core.QueueFamily{
			Flags: queueFlags(f.QueueFlags),
			Count: f.QueueCount,
		})
	}
	return families
}

// Memory returns the total size of all memory heaps.
func (p *PhysicalDevice) Memory() uint64 {
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(p.handle, &memoryProperties)
	memoryProperties.Deref()
	var total uint64
	for i := uint32(0); i < memoryProperties.MemoryHeapCount; i++ {
		memoryProperties.MemoryHeaps[i].Deref()
		total += uint64(memoryProperties.MemoryHeaps[i].Size)
	}
	return total
}

// Info gathers a full report about the device. Failing queries mark
// the report Invalid instead of aborting it.
func (p *PhysicalDevice) Info() PhysicalDeviceInfo {
	props := p.Properties()
	info := PhysicalDeviceInfo{
		Name:          props.Name,
		Type:          props.Type.String(),
		ID:            props.DeviceID,
		VendorID:      props.VendorID,
		DriverVersion: props.DriverVersion,
		APIVersion:    props.APIVersion.String(),
	}

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.handle, "", &numDeviceExtensions, nil)); err != nil {
		info.Invalid = true
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.handle, "", &numDeviceExtensions, deviceExt)); err != nil {
		info.Invalid = true
	}
	for _, ext := range deviceExt {
		ext.Deref()
		info.Extensions = append(info.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get layers info
	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(p.handle, &numDeviceLayers, nil)); err != nil {
		info.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(p.handle, &numDeviceLayers, deviceLayers)); err != nil {
		info.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		info.Layers = append(info.Layers, vk.ToString(layer.LayerName[:]))
	}

	info.Memory = p.Memory()
	info.MemoryHuman = units.BytesSize(float64(info.Memory))

	for i, f := range p.QueueFamilies() {
		info.QueueFamilies = append(info.QueueFamilies, QueueFamilyInfo{
			Index:    i,
			Count:    f.Count,
			Graphics: f.Flags&core.QueueGraphics != 0,
			Compute:  f.Flags&core.QueueCompute != 0,
			Transfer: f.Flags&core.QueueTransfer != 0,
		})
	}
	return info
}

func deviceType(t vk.PhysicalDeviceType) core.DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return core.DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return core.DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return core.DeviceTypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return core.DeviceTypeCPU
	default:
		return core.DeviceTypeOther
	}
}

func queueFlags(f vk.QueueFlags) core.QueueFlags {
	var flags core.QueueFlags
	if f&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
		flags |= core.QueueGraphics
	}
	if f&vk.QueueFlags(vk.QueueComputeBit) != 0 {
		flags |= core.QueueCompute
	}
	if f&vk.QueueFlags(vk.QueueTransferBit) != 0 {
		flags |= core.QueueTransfer
	}
	return flags
}
