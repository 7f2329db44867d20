// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/devblok/vkboot/config"
	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

var (
	envFile = flag.String("env", ".env", "Load configuration overrides from this dotenv file")
	_       = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	indent  = flag.Bool("indent", false, "Indent the JSON output")
)

type report struct {
	Selected    int                         `json:"selected"`
	QueueFamily uint32                      `json:"queueFamily"`
	Devices     []device.PhysicalDeviceInfo `json:"devices"`
}

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
	log.SetLevel(settings.LogLevel)
	settings.OverrideDiagnostics(flag.CommandLine, "vkdbg")

	vulkan, err := device.NewVulkan(nil)
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

	devices, err := ctx.Instance.PhysicalDevices()
	if err != nil {
		log.Error(err)
		return 1
	}

	r := report{Selected: ctx.DeviceIndex, QueueFamily: ctx.Queues.Graphics}
	for _, d := range devices {
		if pd, ok := d.(*device.PhysicalDevice); ok {
			r.Devices = append(r.Devices, pd.Info())
		}
	}

	var bytes []byte
	if *indent {
		bytes, err = json.MarshalIndent(r, "", "  ")
	} else {
		bytes, err = json.Marshal(r)
	}
	if err != nil {
		log.Error(err)
		return 1
	}
	fmt.Printf("%s\n", bytes)
	return 0
}
