package probe

import "errors"

var (
	// ErrNoInterface means no non-loopback interface with an address is up.
	ErrNoInterface = errors.New("no usable network interface")

	// ErrPermission means raw ARP probes were refused and no fallback
	// data source is available on this platform.
	ErrPermission = errors.New("insufficient privilege for raw ARP probes")
)
