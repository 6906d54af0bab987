package model

import "time"

// Snapshot is the set of devices considered currently present, produced
// once per completed sweep. Devices are value copies sorted by first-seen
// time (MAC as tiebreak), so a reader may hold a snapshot indefinitely
// without observing later mutations.
type Snapshot struct {
	Taken   time.Time `json:"taken"`
	Devices []Device  `json:"devices"`
}

// Len reports the number of devices in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Devices)
}
