package model

import (
	"strings"
	"time"
)

// OSGuess is the coarse device class inferred from MAC vendor prefix
// or hostname. It is a display hint, never authoritative.
type OSGuess string

const (
	OSWindows OSGuess = "Windows"
	OSApple   OSGuess = "Apple"
	OSAndroid OSGuess = "Android"
	OSUnknown OSGuess = "Unknown"
)

// Device represents a host seen on the local subnet. The MAC address is
// the identity: the IP may change between sweeps, the MAC must not.
type Device struct {
	ID        string        `json:"id"`
	MAC       string        `json:"mac"`
	IP        string        `json:"ip"`
	Hostname  string        `json:"hostname,omitempty"`
	OS        OSGuess       `json:"os"`
	RTT       time.Duration `json:"rtt"`
	FirstSeen time.Time     `json:"first_seen"`
	LastSeen  time.Time     `json:"last_seen"`
}

// ProbeResult is one raw responder from a discovery sweep, before it is
// merged into the registry. Hostname is empty when reverse DNS failed.
type ProbeResult struct {
	IP       string
	MAC      string
	RTT      time.Duration
	Hostname string
}

// NormalizeMAC canonicalizes a MAC address to upper case colon form so
// it can serve as a registry key.
func NormalizeMAC(mac string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(mac), "-", ":"))
}
