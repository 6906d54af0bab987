package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/paularlott/cli"

	"netradar/cmd/scan"
	"netradar/cmd/troll"
	"netradar/cmd/watch"
	"netradar/internal/log"
)

var version = "0.3.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found")
	}

	cmd := &cli.Command{
		Name:        "radar",
		Version:     version,
		Usage:       "LAN device radar",
		Description: "Discovers devices on the local subnet via periodic ARP sweeps and lets you send them UDP troll messages",
		Commands: []*cli.Command{
			scan.Command(),
			watch.Command(),
			troll.Command(),
		},
	}

	if err := cmd.Execute(context.Background()); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
