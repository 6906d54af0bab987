package sweep

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"netradar/internal/log"
	"netradar/internal/model"
	"netradar/internal/registry"
	"netradar/internal/subnet"
)

// Prober is the discovery contract the scheduler drives once per tick.
type Prober interface {
	Sweep(ctx context.Context, sub subnet.Subnet, timeout time.Duration) ([]model.ProbeResult, error)
}

// Status is the transient state of the last sweep, for the presentation
// layer's status line. A failed sweep leaves the registry untouched and
// records the error here instead.
type Status struct {
	LastSweep time.Time
	Devices   int
	Expired   int
	LastError string
}

// Scheduler drives periodic discovery sweeps into the registry. All
// registry mutation happens on the Run goroutine, so at most one sweep
// executes at a time; a slow sweep delays the next tick rather than
// overlapping it.
type Scheduler struct {
	reg      *registry.Registry
	prober   Prober
	interval time.Duration
	timeout  time.Duration

	mu  sync.Mutex
	sub subnet.Subnet

	refreshCh chan struct{}
	status    atomic.Value // Status
}

func New(reg *registry.Registry, prober Prober, sub subnet.Subnet, interval, timeout time.Duration) *Scheduler {
	s := &Scheduler{
		reg:       reg,
		prober:    prober,
		interval:  interval,
		timeout:   timeout,
		sub:       sub,
		refreshCh: make(chan struct{}, 1),
	}
	s.status.Store(Status{})
	return s
}

// SetSubnet validates and installs a new scan target. On a validation
// error the previous subnet stays active. An in-flight sweep is not
// aborted; the next tick picks up the new range. Devices outside the
// new range stop being refreshed and age out normally.
func (s *Scheduler) SetSubnet(cidr string) error {
	sub, err := subnet.Parse(cidr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	log.Info("Subnet set", "subnet", sub.String())
	return nil
}

// Subnet returns the currently active scan target.
func (s *Scheduler) Subnet() subnet.Subnet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub
}

// TriggerRefresh requests an immediate sweep instead of waiting for the
// next tick. Coalesces when one is already pending.
func (s *Scheduler) TriggerRefresh() {
	select {
	case s.refreshCh <- struct{}{}:
	default:
	}
}

// Status returns the outcome of the most recent sweep.
func (s *Scheduler) Status() Status {
	return s.status.Load().(Status)
}

// Run sweeps immediately, then on every interval tick until the context
// is cancelled. Sweep failures are logged and recorded as status; they
// never stop the loop, since connectivity can come back.
func (s *Scheduler) Run(ctx context.Context) {
	s.sweepOnce(ctx)

	for {
		timer := time.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("Sweep scheduler stopped")
			return
		case <-s.refreshCh:
			timer.Stop()
		case <-timer.C:
		}
		s.sweepOnce(ctx)
	}
}

// SweepOnce runs a single probe-merge-expire pass. Exposed for the
// one-shot scan command.
func (s *Scheduler) SweepOnce(ctx context.Context) error {
	return s.sweepOnce(ctx)
}

func (s *Scheduler) sweepOnce(ctx context.Context) error {
	sub := s.Subnet()
	started := time.Now()
	log.Debug("Starting sweep", "subnet", sub.String(), "timeout", s.timeout)

	results, err := s.prober.Sweep(ctx, sub, s.timeout)
	if err != nil {
		if ctx.Err() == nil {
			log.Error("Sweep failed", "subnet", sub.String(), "error", err)
		}
		prev := s.Status()
		s.status.Store(Status{
			LastSweep: started,
			Devices:   prev.Devices,
			LastError: err.Error(),
		})
		return err
	}

	snap, expired := s.reg.MergeSweep(time.Now(), results)
	for _, mac := range expired {
		log.Debug("Device expired", "mac", mac)
	}

	s.status.Store(Status{
		LastSweep: started,
		Devices:   len(snap.Devices),
		Expired:   len(expired),
	})

	log.Info("Sweep completed", "subnet", sub.String(),
		"responders", len(results), "devices", len(snap.Devices),
		"expired", len(expired), "duration", time.Since(started).Round(time.Millisecond))
	return nil
}
