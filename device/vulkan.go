// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device implements the core runtime interfaces on top of Vulkan.
package device

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/devblok/vkboot/core"
	vk "github.com/devblok/vulkan"
)

// NewVulkan loads the Vulkan API. procAddr is the vkGetInstanceProcAddr
// pointer handed out by the windowing system, if nil the system loader is used.
func NewVulkan(procAddr unsafe.Pointer) (*Vulkan, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.New("vk.SetDefaultGetInstanceProcAddr(): " + err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.New("vk.Init(): " + err.Error())
	}
	return &Vulkan{}, nil
}

// Vulkan is the Vulkan API loader. It implements core.Runtime.
type Vulkan struct{}

// InstanceLayers implements interface
func (Vulkan) InstanceLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceLayerProperties(): " + err.Error())
	}
	list := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, list)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceLayerProperties(): " + err.Error())
	}
	names := make([]string, 0, count)
	for _, layer := range list[:count] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// InstanceExtensions implements interface
func (Vulkan) InstanceExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceExtensionProperties(): " + err.Error())
	}
	list := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, list)); err != nil {
		return nil, errors.New("vk.EnumerateInstanceExtensionProperties(): " + err.Error())
	}
	names := make([]string, 0, count)
	for _, ext := range list[:count] {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// CreateInstance implements interface
func (Vulkan) CreateInstance(req core.InstanceRequest) (core.Instance, error) {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		PApplicationName:   safeString(req.App.Name),
		ApplicationVersion: makeVersion(req.App.Version),
		PEngineName:        safeString(req.App.EngineName),
		EngineVersion:      makeVersion(req.App.EngineVersion),
		ApiVersion:         makeVersion(req.App.APIVersion),
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(req.Extensions)),
		PpEnabledExtensionNames: safeStrings(req.Extensions),
		EnabledLayerCount:       uint32(len(req.Layers)),
		PpEnabledLayerNames:     safeStrings(req.Layers),
	}

	if req.Debug != nil {
		// The chained struct has to be in C memory, the callback
		// trampoline is registered by PassRef.
		dci := debugReportCreateInfo(*req.Debug)
		ref, allocs := dci.PassRef()
		defer allocs.Free()
		instanceInfo.PNext = unsafe.Pointer(ref)
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, errors.New("vk.CreateInstance(): " + err.Error())
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, errors.New("vk.InitInstance(): " + err.Error())
	}

	return &Instance{
		instance: instance,
		debug:    req.DiagnosticsRequested(),
	}, nil
}

// Instance describes a Vulkan API Instance
type Instance struct {
	instance vk.Instance
	debug    bool
}

// Inner returns the vk.Instance handle, for surface creation by the windowing system.
func (v *Instance) Inner() vk.Instance {
	return v.instance
}

// PhysicalDevices implements interface
func (v *Instance) PhysicalDevices() ([]core.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	if deviceCount == 0 {
		return nil, nil
	}
	handles := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, handles)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}

	devices := make([]core.PhysicalDevice, 0, deviceCount)
	for _, h := range handles[:deviceCount] {
		devices = append(devices, &PhysicalDevice{handle: h})
	}
	return devices, nil
}

// DebugProvider implements interface
func (v *Instance) DebugProvider() core.DebugProvider {
	if !v.debug {
		return nil
	}
	return debugReport{instance: v.instance}
}

// Destroy implements interface
func (v *Instance) Destroy() {
	vk.DestroyInstance(v.instance, nil)
}

func makeVersion(v core.Version) uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

func parseVersion(v uint32) core.Version {
	return core.Version{
		Major: int(v >> 22),
		Minor: int((v >> 12) & 0x3ff),
		Patch: int(v & 0xfff),
	}
}

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := make([]string, 0, len(sgs))
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}
