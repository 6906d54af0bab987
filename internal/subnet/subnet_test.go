package subnet

import (
	"errors"
	"testing"
)

func TestParseValid(t *testing.T) {
	sub, err := Parse("192.168.1.0/24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.String() != "192.168.1.0/24" {
		t.Fatalf("expected normalized CIDR, got %q", sub.String())
	}
}

func TestParseNormalizesHostBits(t *testing.T) {
	sub, err := Parse("192.168.1.17/24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.String() != "192.168.1.0/24" {
		t.Fatalf("expected host bits masked off, got %q", sub.String())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-subnet", "192.168.1.0", "192.168.1.0/33", "2001:db8::/64"} {
		if _, err := Parse(input); !errors.Is(err, ErrInvalidCIDR) {
			t.Fatalf("expected ErrInvalidCIDR for %q, got %v", input, err)
		}
	}
}

func TestHostsSlash30(t *testing.T) {
	sub, err := Parse("10.0.0.0/30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hosts := sub.Hosts()
	if len(hosts) != 2 {
		t.Fatalf("expected 2 usable hosts, got %d: %v", len(hosts), hosts)
	}
	if hosts[0] != "10.0.0.1" || hosts[1] != "10.0.0.2" {
		t.Fatalf("expected network/broadcast excluded, got %v", hosts)
	}
}

func TestHostsSlash24(t *testing.T) {
	sub, err := Parse("192.168.1.0/24")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hosts := sub.Hosts()
	if len(hosts) != 254 {
		t.Fatalf("expected 254 usable hosts, got %d", len(hosts))
	}
	if hosts[0] != "192.168.1.1" || hosts[253] != "192.168.1.254" {
		t.Fatalf("unexpected host range bounds: %s .. %s", hosts[0], hosts[len(hosts)-1])
	}
}

func TestHostsSlash32(t *testing.T) {
	sub, err := Parse("10.1.2.3/32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hosts := sub.Hosts()
	if len(hosts) != 1 || hosts[0] != "10.1.2.3" {
		t.Fatalf("expected single host for /32, got %v", hosts)
	}
}

func TestResolveReturnsParseableCIDR(t *testing.T) {
	cidr := Resolve()
	if _, err := Parse(cidr); err != nil {
		t.Fatalf("Resolve returned unparseable CIDR %q: %v", cidr, err)
	}
}
