package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-life/engine"
	"github.com/sheikhrachel/go-life/utils"
)

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Using default configuration (config.json not usable)")
		config = utils.DefaultConfig()
	}

	headless := flag.Bool("headless", false, "print frames to stdout instead of the interactive UI")
	generations := flag.Int("generations", 50, "generations to print in headless mode")
	config.Bind(flag.CommandLine)
	flag.Parse()

	var logger *log.Logger
	if *headless {
		logger = log.New(os.Stderr, "go-life ", log.LstdFlags)
	}

	sim, err := engine.New(config, nil, logger)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if config.InitialPreset != "" {
		if err = sim.ApplyPreset(config.InitialPreset); err != nil {
			log.Fatalf("loading preset: %v (available: %v)", err, sim.Library().Names())
		}
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *headless {
		if err = runHeadless(ctx, sim, *generations, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	ui, err := newTerminalUI(sim)
	if err != nil {
		log.Fatalf("starting terminal: %v", err)
	}
	if err = ui.Run(ctx); err != nil {
		log.Fatal(err)
	}
}
