package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/paularlott/cli"

	"netradar/internal/config"
	"netradar/internal/log"
	"netradar/internal/model"
	"netradar/internal/probe"
	"netradar/internal/registry"
	"netradar/internal/subnet"
	"netradar/internal/sweep"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "scan",
		Usage:       "Run a single discovery sweep",
		Description: "Sweep the subnet once with ARP probes and print the devices that answered",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			log.Configure(cfg.LogLevel, cfg.LogFormat)

			target := cfg.Subnet
			if target == "" {
				target = subnet.Resolve()
				log.Info("Subnet autodetected", "subnet", target)
			}
			sub, err := subnet.Parse(target)
			if err != nil {
				return err
			}

			reg := registry.New(cfg.Liveness())
			sched := sweep.New(reg, probe.New(), sub, cfg.ScanInterval, cfg.ProbeTimeout)

			if err := sched.SweepOnce(ctx); err != nil {
				return err
			}

			printDevices(reg.Snapshot())
			return nil
		},
	}
}

// printDevices renders a snapshot as a table.
func printDevices(snap model.Snapshot) {
	if len(snap.Devices) == 0 {
		fmt.Println("No devices found")
		return
	}

	fmt.Printf("%-16s %-18s %-28s %-8s %s\n", "IP", "MAC", "HOSTNAME", "OS", "RTT")
	for _, d := range snap.Devices {
		hostname := d.Hostname
		if hostname == "" {
			hostname = "-"
		}
		fmt.Printf("%-16s %-18s %-28s %-8s %s\n",
			d.IP, d.MAC, hostname, d.OS, formatRTT(d.RTT))
	}
	fmt.Printf("%d device(s)\n", len(snap.Devices))
}

func formatRTT(rtt time.Duration) string {
	if rtt <= 0 {
		return "-"
	}
	return rtt.Round(100 * time.Microsecond).String()
}
