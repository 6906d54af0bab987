package probe

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"netradar/internal/model"
	"netradar/internal/subnet"
)

// Prober issues an ARP discovery sweep across a subnet's host range.
// When the process can open raw sockets it sends ARP who-has requests
// directly; otherwise it falls back to priming the kernel ARP cache and
// reading the system ARP table.
type Prober struct {
	maxConcurrent int
	privileged    bool
}

// New creates a prober, detecting raw socket privilege once at startup.
func New() *Prober {
	privileged := os.Geteuid() == 0 || canUseRawSocket()
	return &Prober{
		maxConcurrent: 64,
		privileged:    privileged,
	}
}

// Sweep probes every usable host address in the subnet and returns the
// responders. The timeout bounds how long a host may take to answer; a
// subnet with no responders returns an empty result, never hangs.
// Failures are fatal to this sweep only.
func (p *Prober) Sweep(ctx context.Context, sub subnet.Subnet, timeout time.Duration) ([]model.ProbeResult, error) {
	if timeout <= 0 {
		return nil, fmt.Errorf("probe timeout must be positive, got %v", timeout)
	}
	if sub.IsZero() {
		return nil, fmt.Errorf("%w: no subnet configured", subnet.ErrInvalidCIDR)
	}
	if !hasUsableInterface() {
		return nil, ErrNoInterface
	}

	hosts := sub.Hosts()
	if len(hosts) == 0 {
		return nil, nil
	}

	if p.privileged {
		return p.arpSweep(ctx, hosts, timeout)
	}
	return p.tableSweep(ctx, sub, hosts, timeout)
}

// hasUsableInterface reports whether any non-loopback interface is up
// with at least one address. Connectivity can change between sweeps, so
// this is checked per sweep rather than once at startup.
func hasUsableInterface() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// canUseRawSocket checks if we can use raw sockets.
func canUseRawSocket() bool {
	conn, err := net.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// lookupHostname performs a bounded reverse DNS lookup.
func lookupHostname(ctx context.Context, ip string) string {
	lctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	names, err := net.DefaultResolver.LookupAddr(lctx, ip)
	if err != nil || len(names) == 0 {
		return ""
	}
	return strings.TrimSuffix(names[0], ".")
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
