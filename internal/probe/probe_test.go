package probe

import (
	"context"
	"strings"
	"testing"
	"time"

	"netradar/internal/subnet"
)

func TestSweepRejectsNonPositiveTimeout(t *testing.T) {
	sub, err := subnet.Parse("10.0.0.0/30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := New()
	for _, timeout := range []time.Duration{0, -time.Second} {
		if _, err := p.Sweep(context.Background(), sub, timeout); err == nil {
			t.Fatalf("expected error for timeout %v", timeout)
		}
	}
}

func TestSweepRejectsZeroSubnet(t *testing.T) {
	p := New()
	if _, err := p.Sweep(context.Background(), subnet.Subnet{}, time.Second); err == nil {
		t.Fatal("expected error for zero subnet")
	}
}

func TestParseARPTable(t *testing.T) {
	content := `IP address       HW type     Flags       HW address            Mask     Device
192.168.1.1      0x1         0x2         aa:bb:cc:dd:ee:01     *        eth0
192.168.1.5      0x1         0x2         aa:bb:cc:dd:ee:05     *        eth0
192.168.1.9      0x1         0x0         00:00:00:00:00:00     *        eth0
`

	entries := parseARPTable(strings.NewReader(content))
	if len(entries) != 2 {
		t.Fatalf("expected 2 resolved entries, got %d: %v", len(entries), entries)
	}
	if entries[0].IP != "192.168.1.1" || entries[0].MAC != "aa:bb:cc:dd:ee:01" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].IP != "192.168.1.5" || entries[1].MAC != "aa:bb:cc:dd:ee:05" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestPerHostTimeout(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		hosts       int
		concurrency int
		want        time.Duration
	}{
		{"single batch gets full timeout", 3 * time.Second, 2, 64, 3 * time.Second},
		{"exactly one batch", 3 * time.Second, 64, 64, 3 * time.Second},
		{"slash 24 splits across batches", 3 * time.Second, 254, 64, 750 * time.Millisecond},
		{"no hosts", 3 * time.Second, 0, 64, 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := perHostTimeout(tt.timeout, tt.hosts, tt.concurrency); got != tt.want {
				t.Fatalf("perHostTimeout(%v, %d, %d) = %v, want %v", tt.timeout, tt.hosts, tt.concurrency, got, tt.want)
			}
		})
	}

	// The sweep-wide bound: batches x per-host slice never exceeds the
	// configured timeout.
	perHost := perHostTimeout(3*time.Second, 1000, 64)
	batches := (1000 + 63) / 64
	if time.Duration(batches)*perHost > 3*time.Second {
		t.Fatalf("sweep bound exceeded: %d batches x %v", batches, perHost)
	}
}

func TestParseARPTableEmpty(t *testing.T) {
	if entries := parseARPTable(strings.NewReader("")); len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}
