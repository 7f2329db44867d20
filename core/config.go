// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a major.minor.patch triple.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a "major.minor.patch" string. Missing
// trailing components are zero, so "1" and "1.0" are accepted.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AppInfo describes the application to the graphics runtime.
type AppInfo struct {
	Name          string
	Version       Version
	EngineName    string
	EngineVersion Version

	// APIVersion is the graphics API version the application targets
	APIVersion Version
}

// InitConfig is everything the bootstrap sequence needs from its caller.
// It is built once by the application shell and not modified afterwards.
type InitConfig struct {
	App AppInfo

	// Diagnostics enables validation layers and the debug callback
	Diagnostics bool

	// ValidationLayers are requested only when Diagnostics is set
	ValidationLayers []string

	// WindowExtensions are the instance extensions required by
	// the windowing system, in the order it reported them
	WindowExtensions []string
}

// DefaultValidationLayers is the layer set requested when diagnostics are enabled.
var DefaultValidationLayers = []string{"VK_LAYER_KHRONOS_validation"}
