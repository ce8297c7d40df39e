// Package main is the entry point for the recruit-api service.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/causehire/recruit-api/internal/app"
)

var (
	// version can be set at build time via -ldflags
	version = "dev"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		log.Printf("recruit-api version %s\n", version)
		os.Exit(0)
	}

	a, err := app.New(app.Options{
		ConfigPath: *configPath,
		Version:    version,
	})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	runErr := a.Run(context.Background())
	if closeErr := a.Close(); closeErr != nil {
		log.Printf("Cleanup error: %v", closeErr)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
