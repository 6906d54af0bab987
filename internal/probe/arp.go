package probe

import (
	"context"
	"errors"
	"net"
	"os"
	"sync"
	"time"

	"github.com/j-keck/arping"

	"netradar/internal/log"
	"netradar/internal/model"
)

// arpSweep sends an ARP who-has request to every host with bounded
// concurrency. Hosts that do not answer within their slice of the sweep
// timeout are silent misses, not errors.
func (p *Prober) arpSweep(ctx context.Context, hosts []string, timeout time.Duration) ([]model.ProbeResult, error) {
	arping.SetTimeout(perHostTimeout(timeout, len(hosts), p.maxConcurrent))

	sem := make(chan struct{}, p.maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var results []model.ProbeResult
	permDenied := false

	for _, host := range hosts {
		wg.Add(1)

		go func(ip string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			mac, rtt, err := arping.Ping(net.ParseIP(ip))
			if err != nil {
				if errors.Is(err, os.ErrPermission) {
					mu.Lock()
					permDenied = true
					mu.Unlock()
				} else if !errors.Is(err, arping.ErrTimeout) {
					log.Debug("ARP probe failed", "ip", ip, "error", err)
				}
				return
			}

			result := model.ProbeResult{
				IP:       ip,
				MAC:      mac.String(),
				RTT:      rtt,
				Hostname: lookupHostname(ctx, ip),
			}

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(host)
	}

	wg.Wait()

	if permDenied && len(results) == 0 {
		return nil, ErrPermission
	}
	return results, nil
}

// perHostTimeout splits the sweep timeout across the batches the
// semaphore admits, so the whole sweep completes within roughly the
// configured timeout regardless of subnet size. A single batch gets the
// full timeout.
func perHostTimeout(timeout time.Duration, hosts, concurrency int) time.Duration {
	if hosts <= 0 || concurrency <= 0 {
		return timeout
	}
	batches := (hosts + concurrency - 1) / concurrency
	if batches <= 1 {
		return timeout
	}
	return timeout / time.Duration(batches)
}
