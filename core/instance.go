// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// CreateInstance creates the API connection for app with the negotiated
// extensions. Layers are only requested with diagnostics enabled, in which
// case the layer support check must already have passed. A logging debug
// descriptor is chained onto the request so instance creation itself is covered.
func CreateInstance(rt Runtime, app AppInfo, extensions, layers []string, diagnostics bool, logger log.FieldLogger) (Instance, error) {
	req := InstanceRequest{
		App:        app,
		Extensions: extensions,
	}
	if diagnostics {
		req.Layers = layers
		dbg := NewDebugDescriptor(DefaultMessageFilter, LogCallback(logger))
		req.Debug = &dbg
	}

	instance, err := rt.CreateInstance(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreationFailed, err)
	}
	if instance == nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreationFailed, errors.New("runtime returned no instance"))
	}
	return instance, nil
}
