// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"

	"github.com/devblok/vkboot/core"
)

// events records calls made on fakes, in order.
type events []string

func (e *events) add(s string) { *e = append(*e, s) }

type fakeRuntime struct {
	log *events

	layers     []string
	extensions []string
	devices    []core.PhysicalDevice

	layersErr    error
	createErr    error
	enumerateErr error
	messengerErr error
	noProvider   bool

	requests []core.InstanceRequest
	instance *fakeInstance
}

func newRuntime(devices ...core.PhysicalDevice) *fakeRuntime {
	return &fakeRuntime{
		log:        &events{},
		layers:     []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_api_dump"},
		extensions: []string{"VK_KHR_surface", "VK_KHR_xcb_surface", core.DiagnosticsExtension},
		devices:    devices,
	}
}

func (r *fakeRuntime) InstanceLayers() ([]string, error) {
	r.log.add("layers")
	return r.layers, r.layersErr
}

func (r *fakeRuntime) InstanceExtensions() ([]string, error) {
	r.log.add("extensions")
	return r.extensions, nil
}

func (r *fakeRuntime) CreateInstance(req core.InstanceRequest) (core.Instance, error) {
	r.log.add("create instance")
	r.requests = append(r.requests, req)
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.instance = &fakeInstance{runtime: r, debug: req.Debug != nil && !r.noProvider}
	return r.instance, nil
}

type fakeInstance struct {
	runtime   *fakeRuntime
	debug     bool
	destroyed int
}

func (i *fakeInstance) PhysicalDevices() ([]core.PhysicalDevice, error) {
	i.runtime.log.add("enumerate")
	return i.runtime.devices, i.runtime.enumerateErr
}

func (i *fakeInstance) DebugProvider() core.DebugProvider {
	if !i.debug {
		return nil
	}
	return &fakeProvider{runtime: i.runtime}
}

func (i *fakeInstance) Destroy() {
	i.runtime.log.add("destroy instance")
	i.destroyed++
}

type fakeProvider struct {
	runtime *fakeRuntime
	desc    core.DebugDescriptor
}

func (p *fakeProvider) CreateMessenger(desc core.DebugDescriptor) (core.Messenger, error) {
	p.runtime.log.add("create messenger")
	if p.runtime.messengerErr != nil {
		return nil, p.runtime.messengerErr
	}
	p.desc = desc
	return &fakeMessenger{runtime: p.runtime, desc: desc}, nil
}

type fakeMessenger struct {
	runtime *fakeRuntime
	desc    core.DebugDescriptor
}

func (m *fakeMessenger) Destroy() {
	m.runtime.log.add("destroy messenger")
}

type fakeDevice struct {
	name     string
	families []core.QueueFamily
}

func (d *fakeDevice) Properties() core.DeviceProperties {
	return core.DeviceProperties{Name: d.name, Type: core.DeviceTypeDiscreteGPU}
}

func (d *fakeDevice) QueueFamilies() []core.QueueFamily {
	return d.families
}

func device(name string, flags ...core.QueueFlags) *fakeDevice {
	d := &fakeDevice{name: name}
	for _, f := range flags {
		d.families = append(d.families, core.QueueFamily{Flags: f, Count: 1})
	}
	return d
}

var errRuntime = errors.New("runtime failure")
