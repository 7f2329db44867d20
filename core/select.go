// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// QueueFamilyIndices records, per required capability, the index of the
// first queue family on a device that provides it.
type QueueFamilyIndices struct {
	Graphics    uint32
	HasGraphics bool
}

// Complete reports whether every required capability has an index.
func (q QueueFamilyIndices) Complete() bool {
	return q.HasGraphics
}

// FindQueueFamilies scans the queue families in order and stops as soon
// as every required capability is found.
func FindQueueFamilies(families []QueueFamily) QueueFamilyIndices {
	var indices QueueFamilyIndices
	for i, family := range families {
		if family.Flags&QueueGraphics != 0 {
			indices.Graphics = uint32(i)
			indices.HasGraphics = true
		}
		if indices.Complete() {
			break
		}
	}
	return indices
}

// DeviceIsSuitable checks if the device can be used for rendering.
// If not suitable the string contains the reason.
func DeviceIsSuitable(device PhysicalDevice) (QueueFamilyIndices, bool, string) {
	families := device.QueueFamilies()
	if len(families) == 0 {
		return QueueFamilyIndices{}, false, "no queue families"
	}
	indices := FindQueueFamilies(families)
	if !indices.Complete() {
		return indices, false, "no queue family with graphics capabilities"
	}
	return indices, true, ""
}

// Selection is the outcome of device selection.
type Selection struct {
	Device PhysicalDevice

	// Index is the position of Device in the enumeration order
	Index  int
	Queues QueueFamilyIndices
}

// SelectPhysicalDevice returns the first suitable device in enumeration order.
func SelectPhysicalDevice(instance Instance, logger log.FieldLogger) (Selection, error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %w", ErrNoDeviceFound, err)
	}
	if len(devices) == 0 {
		return Selection{}, ErrNoDeviceFound
	}

	for i, device := range devices {
		props := device.Properties()
		indices, suitable, reason := DeviceIsSuitable(device)
		if !suitable {
			logger.WithFields(log.Fields{
				"index":  i,
				"device": props.Name,
			}).Debugf("device rejected: %s", reason)
			continue
		}
		logger.WithFields(log.Fields{
			"index":       i,
			"device":      props.Name,
			"type":        props.Type,
			"queueFamily": indices.Graphics,
		}).Info("selected physical device")
		return Selection{Device: device, Index: i, Queues: indices}, nil
	}
	return Selection{}, fmt.Errorf("%w: none of %d devices has the required queue families", ErrNoSuitableDeviceFound, len(devices))
}
