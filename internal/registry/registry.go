package registry

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"netradar/internal/classify"
	"netradar/internal/log"
	"netradar/internal/model"
)

// Registry holds every device seen on the subnet, keyed by MAC. All
// mutation goes through MergeSweep on the scheduler goroutine; readers
// take the last published snapshot and never contend with a sweep in
// progress.
type Registry struct {
	mu       sync.Mutex
	devices  map[string]*model.Device
	liveness time.Duration
	snap     atomic.Value // model.Snapshot
}

// New creates a registry. Devices silent for longer than liveness are
// expired on the next merge.
func New(liveness time.Duration) *Registry {
	r := &Registry{
		devices:  make(map[string]*model.Device),
		liveness: liveness,
	}
	r.snap.Store(model.Snapshot{})
	return r
}

// MergeSweep folds one sweep's results into the registry, expires stale
// devices, and publishes the new snapshot. The snapshot becomes visible
// to readers only after both passes complete. Returns the snapshot and
// the MACs that were expired, so a presentation layer can drop their
// display artifacts.
func (r *Registry) MergeSweep(now time.Time, results []model.ProbeResult) (model.Snapshot, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, res := range results {
		mac := model.NormalizeMAC(res.MAC)
		if mac == "" || res.IP == "" {
			continue
		}

		dev, known := r.devices[mac]
		if !known {
			dev = &model.Device{
				ID:        newID(),
				MAC:       mac,
				OS:        classify.Classify(mac, res.Hostname),
				FirstSeen: now,
			}
			r.devices[mac] = dev
			log.Debug("New device", "mac", mac, "ip", res.IP, "os", dev.OS)
		} else if res.Hostname != "" && res.Hostname != dev.Hostname {
			dev.OS = classify.Classify(mac, res.Hostname)
		}

		// Later duplicates of the same MAC within one sweep overwrite
		// earlier ones, so the most recent observation wins.
		dev.IP = res.IP
		dev.RTT = res.RTT
		dev.LastSeen = now
		if res.Hostname != "" {
			dev.Hostname = res.Hostname
		}
	}

	var expired []string
	for mac, dev := range r.devices {
		if now.Sub(dev.LastSeen) > r.liveness {
			delete(r.devices, mac)
			expired = append(expired, mac)
		}
	}
	sort.Strings(expired)

	snap := r.buildSnapshot(now)
	r.snap.Store(snap)

	// The caller gets its own copy of the device slice; writes through
	// the returned snapshot must never reach published readers.
	ret := snap
	ret.Devices = append([]model.Device(nil), snap.Devices...)
	return ret, expired
}

// Snapshot returns the last published snapshot. Lock free; never blocks
// on a sweep in progress.
func (r *Registry) Snapshot() model.Snapshot {
	return r.snap.Load().(model.Snapshot)
}

// Get looks up a device by MAC in the last published snapshot.
func (r *Registry) Get(mac string) (model.Device, bool) {
	mac = model.NormalizeMAC(mac)
	for _, dev := range r.Snapshot().Devices {
		if dev.MAC == mac {
			return dev, true
		}
	}
	return model.Device{}, false
}

// buildSnapshot copies the live devices into an immutable, stably
// ordered snapshot. Caller must hold r.mu.
func (r *Registry) buildSnapshot(now time.Time) model.Snapshot {
	devices := make([]model.Device, 0, len(r.devices))
	for _, dev := range r.devices {
		devices = append(devices, *dev)
	}

	sort.Slice(devices, func(i, j int) bool {
		if devices[i].FirstSeen.Equal(devices[j].FirstSeen) {
			return devices[i].MAC < devices[j].MAC
		}
		return devices[i].FirstSeen.Before(devices[j].FirstSeen)
	})

	return model.Snapshot{Taken: now, Devices: devices}
}

// newID generates a stable display identity for a device.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
