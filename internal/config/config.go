package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/paularlott/cli"
)

const (
	DefaultScanInterval   = 30
	DefaultProbeTimeout   = 3
	DefaultLivenessFactor = 3
	DefaultTrollPorts     = "1900,5353,5555,137"
)

type Config struct {
	Subnet         string
	ScanInterval   time.Duration
	ProbeTimeout   time.Duration
	LivenessFactor int
	LogLevel       string
	LogFormat      string
}

var (
	subnetOverride string
	scanInterval   int
	probeTimeout   int
	livenessFactor int
	logLevel       string
	logFormat      string
)

func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "subnet",
			Usage:    "Subnet to scan in CIDR notation (autodetected when empty)",
			EnvVars:  []string{"RADAR_SUBNET"},
			AssignTo: &subnetOverride,
		},
		&cli.IntFlag{
			Name:         "interval",
			Usage:        "Seconds between discovery sweeps",
			EnvVars:      []string{"RADAR_SCAN_INTERVAL"},
			DefaultValue: DefaultScanInterval,
			AssignTo:     &scanInterval,
		},
		&cli.IntFlag{
			Name:         "probe-timeout",
			Usage:        "Seconds to wait for ARP replies in one sweep",
			EnvVars:      []string{"RADAR_PROBE_TIMEOUT"},
			DefaultValue: DefaultProbeTimeout,
			AssignTo:     &probeTimeout,
		},
		&cli.IntFlag{
			Name:         "liveness-factor",
			Usage:        "Sweeps a device may miss before it is expired",
			EnvVars:      []string{"RADAR_LIVENESS_FACTOR"},
			DefaultValue: DefaultLivenessFactor,
			AssignTo:     &livenessFactor,
		},
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (debug, info, warn, error)",
			EnvVars:      []string{"RADAR_LOG_LEVEL"},
			DefaultValue: "info",
			AssignTo:     &logLevel,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			EnvVars:      []string{"RADAR_LOG_FORMAT"},
			DefaultValue: "console",
			AssignTo:     &logFormat,
		},
	}
}

func Load() *Config {
	interval := scanInterval
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	timeout := probeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	factor := livenessFactor
	if factor <= 0 {
		factor = DefaultLivenessFactor
	}

	return &Config{
		Subnet:         strings.TrimSpace(subnetOverride),
		ScanInterval:   time.Duration(interval) * time.Second,
		ProbeTimeout:   time.Duration(timeout) * time.Second,
		LivenessFactor: factor,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
	}
}

// Liveness is the age past which a silent device is expired from the
// registry, expressed as a multiple of the scan interval.
func (c *Config) Liveness() time.Duration {
	return c.ScanInterval * time.Duration(c.LivenessFactor)
}

// ParsePorts parses a comma separated port list.
func ParsePorts(s string) ([]int, error) {
	var ports []int
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		port, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q: %w", item, err)
		}
		if port < 1 || port > 65535 {
			return nil, fmt.Errorf("port %d out of range", port)
		}
		ports = append(ports, port)
	}
	return ports, nil
}
