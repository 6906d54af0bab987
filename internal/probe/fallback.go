package probe

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/go-ping/ping"

	"netradar/internal/log"
	"netradar/internal/model"
	"netradar/internal/subnet"
)

// tableSweep discovers hosts without raw sockets: short UDP dials to
// every address make the kernel issue the ARP requests, then the system
// ARP table is read back. RTT comes from an unprivileged ICMP echo when
// the platform allows it.
func (p *Prober) tableSweep(ctx context.Context, sub subnet.Subnet, hosts []string, timeout time.Duration) ([]model.ProbeResult, error) {
	sem := make(chan struct{}, p.maxConcurrent)
	var wg sync.WaitGroup

	for _, host := range hosts {
		wg.Add(1)

		go func(ip string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			// The dial is expected to fail; it exists only to trigger
			// ARP resolution for the target.
			conn, err := net.DialTimeout("udp4", net.JoinHostPort(ip, "33434"), 50*time.Millisecond)
			if err == nil {
				conn.Close()
			}
		}(host)
	}

	wg.Wait()

	// Give the kernel a moment to complete the outstanding ARP exchanges.
	settle := minDuration(timeout/2, time.Second)
	if settle < 250*time.Millisecond {
		settle = 250 * time.Millisecond
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(settle):
	}

	entries, err := readARPTable()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPermission, err)
	}

	var results []model.ProbeResult
	for _, entry := range entries {
		ip := net.ParseIP(entry.IP)
		if ip == nil || !sub.Contains(ip) {
			continue
		}

		results = append(results, model.ProbeResult{
			IP:       entry.IP,
			MAC:      entry.MAC,
			RTT:      p.confirmRTT(entry.IP, timeout),
			Hostname: lookupHostname(ctx, entry.IP),
		})
	}

	log.Debug("ARP table sweep complete", "entries", len(entries), "in_subnet", len(results))
	return results, nil
}

// confirmRTT measures latency with an unprivileged ICMP echo. Returns
// zero when the host does not answer or unprivileged ICMP is blocked.
func (p *Prober) confirmRTT(ip string, timeout time.Duration) time.Duration {
	pinger, err := ping.NewPinger(ip)
	if err != nil {
		return 0
	}

	pinger.Count = 1
	pinger.Timeout = minDuration(timeout, time.Second)
	pinger.SetPrivileged(false)

	pinger.Run()

	stats := pinger.Statistics()
	if stats.PacketsRecv > 0 {
		return stats.AvgRtt
	}
	return 0
}
