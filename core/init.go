// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Context holds the handles produced by Initialise. It is owned by the
// application shell, which must call Destroy before exiting.
type Context struct {
	Instance Instance

	// Messenger is nil when diagnostics are disabled
	Messenger Messenger

	Device PhysicalDevice
	Queues QueueFamilyIndices

	// DeviceIndex is the position of Device in the enumeration order
	DeviceIndex int
}

// Destroy tears down the debug messenger and then the instance.
// The physical device is owned by the runtime and is only dropped.
// Calling Destroy more than once is harmless.
func (c *Context) Destroy() {
	if c == nil {
		return
	}
	if c.Messenger != nil {
		c.Messenger.Destroy()
		c.Messenger = nil
	}
	if c.Instance != nil {
		c.Instance.Destroy()
		c.Instance = nil
	}
	c.Device = nil
}

// Initialise runs the bootstrap sequence: negotiation, instance creation,
// diagnostics subscription and device selection. On failure every handle
// created so far is released and no Context is returned.
func Initialise(rt Runtime, cfg InitConfig, logger log.FieldLogger) (*Context, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	extensions := RequiredExtensions(cfg.WindowExtensions, cfg.Diagnostics)
	var layers []string
	if cfg.Diagnostics {
		layers = append(layers, cfg.ValidationLayers...)
		available, err := rt.InstanceLayers()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationLayersUnavailable, err)
		}
		if !LayerSupportCheck(layers, available) {
			return nil, fmt.Errorf("%w: missing %v", ErrValidationLayersUnavailable, missing(layers, available))
		}
		for _, l := range layers {
			logger.WithField("layer", l).Debug("enabling layer")
		}
	}

	available, err := rt.InstanceExtensions()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreationFailed, err)
	}
	for _, e := range available {
		logger.WithField("extension", e).Debug("available instance extension")
	}
	if absent := ExtensionSupportCheck(extensions, available); len(absent) > 0 {
		return nil, fmt.Errorf("%w: missing extensions %v", ErrInstanceCreationFailed, absent)
	}

	instance, err := CreateInstance(rt, cfg.App, extensions, layers, cfg.Diagnostics, logger)
	if err != nil {
		return nil, err
	}
	ctx := &Context{Instance: instance}

	messenger, err := AttachDiagnostics(instance, cfg.Diagnostics, logger)
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	ctx.Messenger = messenger

	selection, err := SelectPhysicalDevice(instance, logger)
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	ctx.Device = selection.Device
	ctx.DeviceIndex = selection.Index
	ctx.Queues = selection.Queues

	return ctx, nil
}
