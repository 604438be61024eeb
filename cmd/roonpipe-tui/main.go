package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bluemancz/roonpipe-launcher/internal/config"
	"github.com/bluemancz/roonpipe-launcher/internal/launcher"
	"github.com/bluemancz/roonpipe-launcher/internal/roonpipe"
	"github.com/bluemancz/roonpipe-launcher/internal/tui"
)

func main() {
	var (
		socketFlag = flag.String("socket", "", "RoonPipe socket path (overrides config)")
		configFlag = flag.String("config", "", "Path to config file")
	)

	flag.Parse()

	var settings *config.Settings
	var err error
	if *configFlag != "" {
		settings, err = config.LoadFile(*configFlag)
	} else {
		settings, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *socketFlag != "" {
		settings.SocketPath = *socketFlag
	}

	client := roonpipe.NewClient(settings.SocketPath, settings.Timeout())
	adapter := launcher.New(client, nil, settings, nil)

	if err := tui.Run(adapter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
