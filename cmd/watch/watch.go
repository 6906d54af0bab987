package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
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

// osColors is the presentation mapping from OS guess to ANSI color,
// mirroring the dot colors of the radar display.
var osColors = map[model.OSGuess]string{
	model.OSWindows: "\033[34m", // blue
	model.OSApple:   "\033[90m", // gray
	model.OSAndroid: "\033[32m", // green
	model.OSUnknown: "\033[37m", // white
}

const colorReset = "\033[0m"

func Command() *cli.Command {
	return &cli.Command{
		Name:        "watch",
		Usage:       "Continuously sweep and display devices",
		Description: "Run periodic ARP sweeps and redraw the device table whenever a sweep completes; Ctrl-C stops",
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

			runCtx, cancel := context.WithCancel(ctx)
			defer cancel()

			go func() {
				sigChan := make(chan os.Signal, 1)
				signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
				<-sigChan
				log.Info("Shutting down...")
				cancel()
			}()

			done := make(chan struct{})
			go func() {
				sched.Run(runCtx)
				close(done)
			}()

			log.Info("Watching", "subnet", sub.String(),
				"interval", cfg.ScanInterval, "liveness", cfg.Liveness())

			// Redraw loop: the presentation side only ever reads the
			// last completed snapshot.
			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()

			var lastDrawn time.Time
			for {
				select {
				case <-runCtx.Done():
					<-done
					return nil
				case <-ticker.C:
					snap := reg.Snapshot()
					if snap.Taken.Equal(lastDrawn) {
						continue
					}
					lastDrawn = snap.Taken
					render(snap, sched.Status())
				}
			}
		},
	}
}

func render(snap model.Snapshot, st sweep.Status) {
	fmt.Printf("\n--- %s  devices:%d", snap.Taken.Format("15:04:05"), len(snap.Devices))
	if st.Expired > 0 {
		fmt.Printf("  expired:%d", st.Expired)
	}
	if st.LastError != "" {
		fmt.Printf("  error:%s", st.LastError)
	}
	fmt.Println(" ---")

	for _, d := range snap.Devices {
		hostname := d.Hostname
		if hostname == "" {
			hostname = d.IP
		}
		color := osColors[d.OS]
		fmt.Printf("%-16s %-18s %-28s %s%-8s%s\n",
			d.IP, d.MAC, hostname, color, d.OS, colorReset)
	}
}
