// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/devblok/vkboot/config"
	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var (
	envFile  = flag.String("env", ".env", "Load configuration overrides from this dotenv file")
	_        = flag.Bool("vkdbg", config.DiagnosticsDefault, "Load Vulkan validation layers")
	logLevel = flag.String("loglevel", "", "Override the configured log level")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	settings, err := config.Load(*envFile)
	if err != nil {
		log.Error(err)
		return 1
	}
	settings.OverrideDiagnostics(flag.CommandLine, "vkdbg")
	log.SetLevel(settings.LogLevel)
	if *logLevel != "" {
		level, err := log.ParseLevel(*logLevel)
		if err != nil {
			log.Error(err)
			return 1
		}
		log.SetLevel(level)
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Error("sdl.Init(): ", err)
		return 1
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Error("sdl.VulkanLoadLibrary(): ", err)
		return 1
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := sdl.CreateWindow(settings.Window.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		settings.Window.Width,
		settings.Window.Height,
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.Error("sdl.CreateWindow(): ", err)
		return 1
	}
	defer window.Destroy()

	settings.Init.WindowExtensions = window.VulkanGetInstanceExtensions()

	vulkan, err := device.NewVulkan(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		log.Error(err)
		return 1
	}

	ctx, err := core.Initialise(vulkan, settings.Init, log.StandardLogger())
	if err != nil {
		log.Error(err)
		return 1
	}
	defer ctx.Destroy()

	log.WithFields(log.Fields{
		"device":      ctx.Device.Properties().Name,
		"queueFamily": ctx.Queues.Graphics,
		"diagnostics": ctx.Messenger != nil,
	}).Info("bootstrap complete")

	eventTicker := newEventTicker(settings.EventPollDelay)
	defer eventTicker.Stop()

EventLoop:
	for range eventTicker.C {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch et := event.(type) {
			case *sdl.KeyboardEvent:
				if et.Keysym.Sym == sdl.K_ESCAPE {
					break EventLoop
				}
			case *sdl.QuitEvent:
				break EventLoop
			}
		}
	}
	log.Info("event loop exited")
	return 0
}
