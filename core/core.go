// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package core stands up a validated connection to the graphics runtime
// and picks one physical device capable of rendering.
//
// The sequence is strictly ordered: extension and layer negotiation,
// instance creation, diagnostics subscription, device selection. Each
// step gates the next and any failure aborts the whole sequence.
// The package never calls the graphics API directly, it goes through
// the Runtime interface so the sequence can be driven by fakes.
package core

// Runtime is the entry point into a graphics API loader.
type Runtime interface {
	// InstanceLayers returns the names of layers available on the host
	InstanceLayers() ([]string, error)

	// InstanceExtensions returns the names of instance extensions
	// available on the host
	InstanceExtensions() ([]string, error)

	// CreateInstance creates the top level API connection
	CreateInstance(InstanceRequest) (Instance, error)
}

// InstanceRequest is a single instance creation request.
type InstanceRequest struct {
	App        AppInfo
	Extensions []string
	Layers     []string

	// Debug, when set, is chained onto the creation request so that
	// messages emitted while the instance itself is created are captured
	Debug *DebugDescriptor
}

// DiagnosticsRequested reports whether the instance created from r can
// carry debug messengers.
func (r InstanceRequest) DiagnosticsRequested() bool {
	return r.Debug != nil && contains(r.Extensions, DiagnosticsExtension)
}

// Instance is a live API connection. Once created it is ready to use.
type Instance interface {
	// PhysicalDevices enumerates the devices exposed by the instance
	PhysicalDevices() ([]PhysicalDevice, error)

	// DebugProvider returns the debug callback entry points resolved
	// when the instance was created, nil if the debug extension was not enabled
	DebugProvider() DebugProvider

	// Destroy destroys the instance. Every dependent object has to be
	// destroyed before calling this.
	Destroy()
}

// DebugProvider installs debug callbacks into an instance.
type DebugProvider interface {
	CreateMessenger(DebugDescriptor) (Messenger, error)
}

// Messenger is an installed debug callback.
type Messenger interface {
	Destroy()
}

// PhysicalDevice is a non-owning reference to a device exposed by the runtime.
type PhysicalDevice interface {
	Properties() DeviceProperties
	QueueFamilies() []QueueFamily
}

// DeviceType classifies a physical device.
type DeviceType int

// Known device types
const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeIntegratedGPU:
		return "integrated"
	case DeviceTypeDiscreteGPU:
		return "discrete"
	case DeviceTypeVirtualGPU:
		return "virtual"
	case DeviceTypeCPU:
		return "cpu"
	default:
		return "other"
	}
}

// DeviceProperties is general information about a physical device.
type DeviceProperties struct {
	Name          string
	Type          DeviceType
	VendorID      uint32
	DeviceID      uint32
	DriverVersion uint32
	APIVersion    Version
}

// QueueFlags are the capabilities of a queue family.
type QueueFlags uint32

// Queue family capabilities
const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
)

// QueueFamily describes a group of queues sharing the same capabilities.
type QueueFamily struct {
	Flags QueueFlags
	Count uint32
}
