package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/godbus/dbus/v5"
	flag "github.com/spf13/pflag"

	"github.com/bluemancz/roonpipe-launcher/internal/config"
	"github.com/bluemancz/roonpipe-launcher/internal/krunner"
	"github.com/bluemancz/roonpipe-launcher/internal/launcher"
	"github.com/bluemancz/roonpipe-launcher/internal/roonpipe"
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
	adapter := launcher.New(client, nil, settings, func(event launcher.Event) {
		if event.Level == launcher.LevelVerbose {
			return
		}
		log.Println(event.Message)
	})

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		log.Fatalf("connect session bus: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
	}()

	log.Printf("Serving %s on the session bus (socket: %s)", krunner.ServiceName, settings.SocketPath)

	runner := krunner.New(adapter, settings.Trigger)
	if err := runner.Serve(ctx, conn); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("krunner service: %v", err)
	}
}
