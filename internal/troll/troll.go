package troll

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"netradar/internal/log"
)

// DefaultPorts are UDP ports most consumer devices listen on (SSDP,
// mDNS, ADB, NetBIOS), so a datagram at least reaches a socket.
var DefaultPorts = []int{1900, 5353, 5555, 137}

var (
	// ErrInvalidTarget is returned for an unparseable target address.
	ErrInvalidTarget = errors.New("invalid target address")

	// ErrEmptyMessage is returned when there is nothing to send.
	ErrEmptyMessage = errors.New("empty message")
)

// PortResult is the outcome of one datagram. Err is nil on a successful
// send; UDP gives no delivery guarantee either way.
type PortResult struct {
	Port int
	Err  error
}

// Send transmits message as one UDP datagram per port, fire-and-forget.
// Validation failures abort before any socket is touched; a send failure
// on one port does not stop the remaining ports. The returned error is
// only ever a validation error.
func Send(ip, message string, ports []int) ([]PortResult, error) {
	target := net.ParseIP(strings.TrimSpace(ip))
	if target == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, ip)
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if len(ports) == 0 {
		ports = DefaultPorts
	}

	payload := []byte(message)
	results := make([]PortResult, 0, len(ports))
	for _, port := range ports {
		err := sendOne(target, port, payload)
		if err != nil {
			log.Warn("Troll send failed", "ip", target.String(), "port", port, "error", err)
		} else {
			log.Debug("Troll sent", "ip", target.String(), "port", port, "bytes", len(payload))
		}
		results = append(results, PortResult{Port: port, Err: err})
	}
	return results, nil
}

func sendOne(ip net.IP, port int, payload []byte) error {
	conn, err := net.DialUDP("udp", nil, &net.UDPAddr{IP: ip, Port: port})
	if err != nil {
		return fmt.Errorf("dial udp %s:%d: %w", ip, port, err)
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("send to %s:%d: %w", ip, port, err)
	}
	return nil
}

// Report builds a human readable summary of a Send call, split into
// succeeded and failed ports.
func Report(name, ip string, results []PortResult) string {
	var ok, failed []string
	for _, r := range results {
		port := fmt.Sprintf("%d", r.Port)
		if r.Err != nil {
			failed = append(failed, port)
		} else {
			ok = append(ok, port)
		}
	}

	var b strings.Builder
	if name == "" || name == ip {
		fmt.Fprintf(&b, "Troll sent to %s\n", ip)
	} else {
		fmt.Fprintf(&b, "Troll sent to %s (%s)\n", name, ip)
	}
	if len(ok) > 0 {
		fmt.Fprintf(&b, "Succeeded on ports: %s\n", strings.Join(ok, ", "))
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, "Failed on ports: %s\n", strings.Join(failed, ", "))
	}
	return b.String()
}
