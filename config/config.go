// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config assembles the bootstrap configuration from built-in
// defaults, an optional dotenv file and the process environment.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/devblok/vkboot/core"
	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Environment keys
const (
	KeyAppName          = "KORU_APP_NAME"
	KeyAppVersion       = "KORU_APP_VERSION"
	KeyEngineName       = "KORU_ENGINE_NAME"
	KeyEngineVersion    = "KORU_ENGINE_VERSION"
	KeyAPIVersion       = "KORU_API_VERSION"
	KeyValidation       = "KORU_VALIDATION"
	KeyValidationLayers = "KORU_VALIDATION_LAYERS"
	KeyLogLevel         = "KORU_LOG_LEVEL"
	KeyWindowTitle      = "KORU_WINDOW_TITLE"
	KeyWindowWidth      = "KORU_WINDOW_WIDTH"
	KeyWindowHeight     = "KORU_WINDOW_HEIGHT"
	KeyEventPollDelay   = "KORU_EVENT_POLL_MS"
)

const defaultsFile = "koru.env"

var defaults = packr.NewBox("./defaults")

// WindowConfiguration is used to configure the application window
type WindowConfiguration struct {
	Title  string
	Width  int32
	Height int32
}

// Settings is the complete configuration of an application shell.
type Settings struct {
	Init   core.InitConfig
	Window WindowConfiguration

	// EventPollDelay is the interval between window event polls
	EventPollDelay time.Duration

	LogLevel log.Level
}

// Load builds Settings. envFile names an optional dotenv file, a missing
// file is not an error. Variables already set in the environment win
// over the dotenv file, which wins over the built-in defaults.
func Load(envFile string) (Settings, error) {
	raw, err := defaults.FindString(defaultsFile)
	if err != nil {
		return Settings{}, fmt.Errorf("config: built-in defaults: %s", err)
	}
	builtin, err := godotenv.Unmarshal(raw)
	if err != nil {
		return Settings{}, fmt.Errorf("config: built-in defaults: %s", err)
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Settings{}, fmt.Errorf("config: %s: %s", envFile, err)
			}
		}
	}
	envy.Reload()

	get := func(key string) string {
		return envy.Get(key, builtin[key])
	}

	var (
		s    Settings
		errs []string
	)
	version := func(key string) core.Version {
		v, err := core.ParseVersion(get(key))
		if err != nil {
			errs = append(errs, key+": "+err.Error())
		}
		return v
	}
	integer := func(key string) int {
		n, err := strconv.ParseInt(strings.TrimSpace(get(key)), 10, 32)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid positive integer %q", key, get(key)))
		}
		return int(n)
	}

	s.Init.App = core.AppInfo{
		Name:          get(KeyAppName),
		Version:       version(KeyAppVersion),
		EngineName:    get(KeyEngineName),
		EngineVersion: version(KeyEngineVersion),
		APIVersion:    version(KeyAPIVersion),
	}

	s.Init.Diagnostics = DiagnosticsDefault
	if v := get(KeyValidation); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: invalid boolean %q", KeyValidation, v))
		}
		s.Init.Diagnostics = b
	}
	s.Init.ValidationLayers = splitList(get(KeyValidationLayers))
	if len(s.Init.ValidationLayers) == 0 {
		s.Init.ValidationLayers = append([]string(nil), core.DefaultValidationLayers...)
	}

	s.Window = WindowConfiguration{
		Title:  get(KeyWindowTitle),
		Width:  int32(integer(KeyWindowWidth)),
		Height: int32(integer(KeyWindowHeight)),
	}
	s.EventPollDelay = time.Duration(integer(KeyEventPollDelay)) * time.Millisecond

	level, err := log.ParseLevel(get(KeyLogLevel))
	if err != nil {
		errs = append(errs, KeyLogLevel+": "+err.Error())
	}
	s.LogLevel = level

	if len(errs) > 0 {
		return Settings{}, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return s, nil
}

// OverrideDiagnostics sets Init.Diagnostics from the boolean flag name,
// but only when it was given explicitly on fs.
func (s *Settings) OverrideDiagnostics(fs *flag.FlagSet, name string) {
	fs.Visit(func(f *flag.Flag) {
		if f.Name != name {
			return
		}
		if getter, ok := f.Value.(flag.Getter); ok {
			if b, ok := getter.Get().(bool); ok {
				s.Init.Diagnostics = b
			}
		}
	})
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
