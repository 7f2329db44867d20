// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"

	"github.com/devblok/vkboot/config"
	"github.com/devblok/vkboot/core"
)

// unset clears key for the duration of the test.
func unset(t *testing.T, key string) {
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		config.KeyAppName, config.KeyAppVersion, config.KeyEngineName,
		config.KeyEngineVersion, config.KeyAPIVersion, config.KeyValidation,
		config.KeyValidationLayers, config.KeyLogLevel, config.KeyWindowTitle,
		config.KeyWindowWidth, config.KeyWindowHeight, config.KeyEventPollDelay,
	} {
		unset(t, key)
	}
}

func TestLoadDefaults(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)

	s, err := config.Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(s.Init.App, qt.Equals, core.AppInfo{
		Name:          "Hello Triangle",
		Version:       core.Version{Major: 1},
		EngineName:    "SoSy Game Engine",
		EngineVersion: core.Version{Major: 1},
		APIVersion:    core.Version{Major: 1},
	})
	c.Assert(s.Init.Diagnostics, qt.Equals, config.DiagnosticsDefault)
	c.Assert(s.Init.ValidationLayers, qt.DeepEquals, []string{"VK_LAYER_KHRONOS_validation"})
	c.Assert(s.Init.WindowExtensions, qt.HasLen, 0)
	c.Assert(s.Window, qt.Equals, config.WindowConfiguration{Title: "Vulkan", Width: 800, Height: 600})
	c.Assert(s.EventPollDelay, qt.Equals, 16*time.Millisecond)
	c.Assert(s.LogLevel, qt.Equals, logrus.InfoLevel)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv(config.KeyValidation, "false")
	t.Setenv(config.KeyAppVersion, "2.3.4")
	t.Setenv(config.KeyValidationLayers, "VK_LAYER_KHRONOS_validation, VK_LAYER_LUNARG_monitor,")
	t.Setenv(config.KeyLogLevel, "debug")

	s, err := config.Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(s.Init.Diagnostics, qt.IsFalse)
	c.Assert(s.Init.App.Version, qt.Equals, core.Version{Major: 2, Minor: 3, Patch: 4})
	c.Assert(s.Init.ValidationLayers, qt.DeepEquals, []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_monitor"})
	c.Assert(s.LogLevel, qt.Equals, logrus.DebugLevel)
}

func TestLoadDotenvFile(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv(config.KeyWindowWidth, "1024")

	path := filepath.Join(c.TempDir(), "test.env")
	err := os.WriteFile(path, []byte("KORU_WINDOW_TITLE=From file\nKORU_WINDOW_WIDTH=640\nKORU_VALIDATION=true\n"), 0o600)
	c.Assert(err, qt.IsNil)

	s, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Window.Title, qt.Equals, "From file")
	c.Assert(s.Window.Width, qt.Equals, int32(1024))
	c.Assert(s.Init.Diagnostics, qt.IsTrue)
}

func TestLoadMissingDotenvFile(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)

	_, err := config.Load(filepath.Join(c.TempDir(), "absent.env"))
	c.Assert(err, qt.IsNil)
}

func TestLoadInvalidValues(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv(config.KeyAPIVersion, "one")
	t.Setenv(config.KeyValidation, "maybe")
	t.Setenv(config.KeyWindowHeight, "-1")
	t.Setenv(config.KeyLogLevel, "loud")

	_, err := config.Load("")
	c.Assert(err, qt.ErrorMatches, "config: .*KORU_API_VERSION.*KORU_VALIDATION.*KORU_WINDOW_HEIGHT.*KORU_LOG_LEVEL.*")
}

func TestLoadWindowSizeOverflow(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv(config.KeyWindowWidth, "4294967896")

	_, err := config.Load("")
	c.Assert(err, qt.ErrorMatches, "config: KORU_WINDOW_WIDTH: .*")
}

func TestOverrideDiagnostics(t *testing.T) {
	c := qt.New(t)
	clearEnv(t)
	t.Setenv(config.KeyValidation, "true")

	s, err := config.Load("")
	c.Assert(err, qt.IsNil)

	// not given on the command line, the environment wins
	fs := flag.NewFlagSet("koru", flag.ContinueOnError)
	fs.Bool("vkdbg", false, "")
	c.Assert(fs.Parse(nil), qt.IsNil)
	s.OverrideDiagnostics(fs, "vkdbg")
	c.Assert(s.Init.Diagnostics, qt.IsTrue)

	fs = flag.NewFlagSet("koru", flag.ContinueOnError)
	fs.Bool("vkdbg", true, "")
	c.Assert(fs.Parse([]string{"-vkdbg=false"}), qt.IsNil)
	s.OverrideDiagnostics(fs, "vkdbg")
	c.Assert(s.Init.Diagnostics, qt.IsFalse)
}
