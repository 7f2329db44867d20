// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

//go:build !release

package config

// DiagnosticsDefault enables validation in development builds.
const DiagnosticsDefault = true
