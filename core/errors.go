// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "errors"

// Bootstrap errors. None of them are transient, a caller receiving
// one of these should abort startup.
var (
	ErrValidationLayersUnavailable  = errors.New("requested validation layers are not available")
	ErrInstanceCreationFailed       = errors.New("failed to create instance")
	ErrDebugMessengerCreationFailed = errors.New("failed to set up debug messenger")
	ErrNoDeviceFound                = errors.New("failed to find a device with graphics API support")
	ErrNoSuitableDeviceFound        = errors.New("failed to find a suitable device")
)
