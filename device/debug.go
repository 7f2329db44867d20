// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"unsafe"

	"github.com/devblok/vkboot/core"
	vk "github.com/devblok/vulkan"
)

// debugReport creates VK_EXT_debug_report callbacks on one instance.
type debugReport struct {
	instance vk.Instance
}

// CreateMessenger implements core.DebugProvider
func (d debugReport) CreateMessenger(desc core.DebugDescriptor) (core.Messenger, error) {
	dci := debugReportCreateInfo(desc)
	var callback vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(d.instance, &dci, nil, &callback)); err != nil {
		return nil, errors.New("vk.CreateDebugReportCallback(): " + err.Error())
	}
	return &debugMessenger{instance: d.instance, callback: callback}, nil
}

type debugMessenger struct {
	instance vk.Instance
	callback vk.DebugReportCallback
}

// Destroy implements core.Messenger
func (m *debugMessenger) Destroy() {
	vk.DestroyDebugReportCallback(m.instance, m.callback, nil)
}

func debugReportCreateInfo(desc core.DebugDescriptor) vk.DebugReportCallbackCreateInfo {
	cb := desc.Callback
	return vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: reportFlags(desc.Filter),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
			object uint, location uint, messageCode int32, pLayerPrefix string,
			pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

			severity, kind := classify(flags)
			if cb(core.Message{
				Severity: severity,
				Type:     kind,
				Layer:    pLayerPrefix,
				Code:     messageCode,
				Text:     pMessage,
			}) {
				return vk.True
			}
			return vk.False
		},
	}
}

// reportFlags maps a filter onto debug report flags. Debug report has no
// notion of message type beyond performance warnings, so types only
// decide between the two warning bits.
func reportFlags(f core.MessageFilter) vk.DebugReportFlags {
	var flags vk.DebugReportFlagBits
	if f.Severities&core.SeverityVerbose != 0 {
		flags |= vk.DebugReportDebugBit
	}
	if f.Severities&core.SeverityInfo != 0 {
		flags |= vk.DebugReportInformationBit
	}
	if f.Severities&core.SeverityWarning != 0 {
		if f.Types&(core.TypeGeneral|core.TypeValidation) != 0 {
			flags |= vk.DebugReportWarningBit
		}
		if f.Types&core.TypePerformance != 0 {
			flags |= vk.DebugReportPerformanceWarningBit
		}
	}
	if f.Severities&core.SeverityError != 0 {
		flags |= vk.DebugReportErrorBit
	}
	return vk.DebugReportFlags(flags)
}

func classify(flags vk.DebugReportFlags) (core.MessageSeverity, core.MessageType) {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		return core.SeverityError, core.TypeValidation
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		return core.SeverityWarning, core.TypePerformance
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		return core.SeverityWarning, core.TypeValidation
	case flags&vk.DebugReportFlags(vk.DebugReportInformationBit) != 0:
		return core.SeverityInfo, core.TypeGeneral
	default:
		return core.SeverityVerbose, core.TypeGeneral
	}
}
