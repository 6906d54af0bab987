package troll

import (
	"errors"
	"net"
	"strings"
	"testing"
	"time"
)

// listenUDP opens a loopback listener on an ephemeral port.
func listenUDP(t *testing.T) (*net.UDPConn, int) {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, conn.LocalAddr().(*net.UDPAddr).Port
}

func TestSendOneDatagramPerPort(t *testing.T) {
	var listeners []*net.UDPConn
	var ports []int
	for i := 0; i < 4; i++ {
		conn, port := listenUDP(t)
		listeners = append(listeners, conn)
		ports = append(ports, port)
	}

	results, err := Send("127.0.0.1", "hello", ports)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(ports) {
		t.Fatalf("expected %d results, got %d", len(ports), len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("port %d: unexpected send error: %v", r.Port, r.Err)
		}
	}

	buf := make([]byte, 64)
	for i, conn := range listeners {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			t.Fatalf("listener %d: no datagram received: %v", i, err)
		}
		if string(buf[:n]) != "hello" {
			t.Fatalf("listener %d: unexpected payload %q", i, buf[:n])
		}
	}
}

func TestSendUTF8Payload(t *testing.T) {
	conn, port := listenUDP(t)

	message := "You have been spotted \U0001F608"
	if _, err := Send("127.0.0.1", message, []int{port}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := make([]byte, 128)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := conn.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("no datagram received: %v", err)
	}
	if string(buf[:n]) != message {
		t.Fatalf("payload mangled: %q", buf[:n])
	}
}

func TestSendValidation(t *testing.T) {
	if _, err := Send("not-an-ip", "hello", []int{1900}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if _, err := Send("", "hello", []int{1900}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget for empty ip, got %v", err)
	}
	if _, err := Send("127.0.0.1", "", []int{1900}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if _, err := Send("127.0.0.1", "   ", []int{1900}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage for whitespace, got %v", err)
	}
}

func TestSendDefaultPorts(t *testing.T) {
	results, err := Send("127.0.0.1", "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(DefaultPorts) {
		t.Fatalf("expected %d results, got %d", len(DefaultPorts), len(results))
	}
	for i, r := range results {
		if r.Port != DefaultPorts[i] {
			t.Fatalf("result %d: expected port %d, got %d", i, DefaultPorts[i], r.Port)
		}
	}
}

func TestReport(t *testing.T) {
	report := Report("iPhone-Sam", "192.168.1.5", []PortResult{
		{Port: 1900},
		{Port: 5353},
		{Port: 5555, Err: errors.New("network unreachable")},
	})

	if !strings.Contains(report, "iPhone-Sam (192.168.1.5)") {
		t.Fatalf("missing target line: %q", report)
	}
	if !strings.Contains(report, "Succeeded on ports: 1900, 5353") {
		t.Fatalf("missing success line: %q", report)
	}
	if !strings.Contains(report, "Failed on ports: 5555") {
		t.Fatalf("missing failure line: %q", report)
	}
}
